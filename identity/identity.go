// Package identity reads the firmware strings used to pick a hardware
// profile: BIOS vendor, system product name and BIOS version.
package identity

import (
	"errors"
	"fmt"

	"github.com/prometheus/procfs/sysfs"
)

// ErrUnavailable means the firmware did not report one of the strings.
var ErrUnavailable = errors.New("firmware identity unavailable")

// Identity is what the firmware says about the machine.
type Identity struct {
	Vendor  string `json:"vendor"`  // BIOS vendor
	Product string `json:"product"` // system product name
	Version string `json:"version"` // BIOS version
}

// Complete reports whether all three strings are present.
func (i Identity) Complete() bool {
	return i.Vendor != "" && i.Product != "" && i.Version != ""
}

func (i Identity) String() string {
	return fmt.Sprintf("%s/%s/%s", i.Vendor, i.Product, i.Version)
}

// Read takes the identity from /sys/class/dmi/id below sysfsRoot.
func Read(sysfsRoot string) (Identity, error) {
	fs, err := sysfs.NewFS(sysfsRoot)
	if err != nil {
		return Identity{}, fmt.Errorf("open sysfs %s: %w", sysfsRoot, err)
	}
	dmi, err := fs.DMIClass()
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	id := Identity{
		Vendor:  value(dmi.BiosVendor),
		Product: value(dmi.ProductName),
		Version: value(dmi.BiosVersion),
	}
	if !id.Complete() {
		return id, fmt.Errorf("%w: got %q", ErrUnavailable, id.String())
	}
	return id, nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
