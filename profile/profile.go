// Package profile holds the register maps of the supported boards and
// picks the one matching the running machine.
//
// A profile matches when the firmware's BIOS vendor, product name and BIOS
// version each start with the profile's strings. Comparison is a literal,
// case-sensitive prefix test. The table is ordered and the first match
// wins, so more specific entries must come before the ones they shadow
// ("Aspire 1810TZ" before "Aspire 1810T").
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cloudkucooland/hdfd/identity"
)

// ErrUnsupportedHardware means no profile matches the machine.
var ErrUnsupportedHardware = errors.New("unsupported hardware")

// ManualCommand is an extra register write some boards need before the fan
// actually stops.
type ManualCommand struct {
	Register byte
	Value    byte
}

// DefaultManualCommand is shared by every manual-mode board in the table.
var DefaultManualCommand = ManualCommand{Register: 0x94, Value: 0xff}

// Profile is the register map of one board and firmware combination.
type Profile struct {
	Vendor  string
	Product string
	Version string

	FanRegister         byte
	TemperatureRegister byte
	FanOff              byte // written to FanRegister to stop the fan
	FanAuto             byte // written to FanRegister to hand the fan to the BIOS

	// ManualMode boards also need Manual written when the fan goes off.
	ManualMode bool
	Manual     ManualCommand
}

// AuxiliaryOff returns the write that follows FanOff, if the board needs one.
func (p Profile) AuxiliaryOff() (ManualCommand, bool) {
	if !p.ManualMode {
		return ManualCommand{}, false
	}
	if p.Manual == (ManualCommand{}) {
		return DefaultManualCommand, true
	}
	return p.Manual, true
}

// Matches reports whether vendor, product and version start with the
// profile's strings.
func (p Profile) Matches(vendor, product, version string) bool {
	return strings.HasPrefix(vendor, p.Vendor) &&
		strings.HasPrefix(product, p.Product) &&
		strings.HasPrefix(version, p.Version)
}

func (p Profile) String() string {
	s := fmt.Sprintf("%s/%s/%s fan=0x%02x temp=0x%02x off=0x%02x auto=0x%02x",
		p.Vendor, p.Product, p.Version, p.FanRegister, p.TemperatureRegister, p.FanOff, p.FanAuto)
	if m, ok := p.AuxiliaryOff(); ok {
		s += fmt.Sprintf(" manual=0x%02x:0x%02x", m.Register, m.Value)
	}
	return s
}

// Registry is an ordered, append-only list of profiles. It is never
// modified after construction.
type Registry struct {
	profiles []Profile
}

// NewRegistry builds a registry holding profiles in the given order.
func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{profiles: make([]Profile, len(profiles))}
	copy(r.profiles, profiles)
	return r
}

// Append returns a new registry with profiles after the existing entries.
func (r *Registry) Append(profiles ...Profile) *Registry {
	all := make([]Profile, 0, len(r.profiles)+len(profiles))
	all = append(all, r.profiles...)
	all = append(all, profiles...)
	return &Registry{profiles: all}
}

// Profiles returns a copy of the table in order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Len is the number of entries.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// Select returns the first profile matching the three strings. An empty
// string is treated as not reported and never matches.
func (r *Registry) Select(vendor, product, version string) (Profile, bool) {
	if vendor == "" || product == "" || version == "" {
		return Profile{}, false
	}
	for _, p := range r.profiles {
		if p.Matches(vendor, product, version) {
			return p, true
		}
	}
	return Profile{}, false
}

// Match selects the profile for id, telling apart missing firmware strings
// from a machine that simply isn't in the table.
func (r *Registry) Match(id identity.Identity) (Profile, error) {
	if !id.Complete() {
		return Profile{}, fmt.Errorf("%w: got %q", identity.ErrUnavailable, id.String())
	}
	p, ok := r.Select(id.Vendor, id.Product, id.Version)
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnsupportedHardware, id)
	}
	return p, nil
}
