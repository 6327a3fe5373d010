// Package hdfd wires the embedded controller, the thermal controller and
// the operator surfaces into one daemon.
package hdfd

import (
	"fmt"

	"github.com/brutella/hc/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudkucooland/hdfd/config"
	"github.com/cloudkucooland/hdfd/ec"
	tfhc "github.com/cloudkucooland/hdfd/homecontrol"
	"github.com/cloudkucooland/hdfd/identity"
	"github.com/cloudkucooland/hdfd/linuxsensors"
	"github.com/cloudkucooland/hdfd/platform"
	"github.com/cloudkucooland/hdfd/profile"
	"github.com/cloudkucooland/hdfd/tfhttp"
	"github.com/cloudkucooland/hdfd/thermal"
)

// Identify returns the configured identity override, or the DMI strings.
func Identify(c config.Config) (identity.Identity, error) {
	if c.Identity != nil {
		id := identity.Identity{Vendor: c.Identity.Vendor, Product: c.Identity.Product, Version: c.Identity.Version}
		if !id.Complete() {
			return id, fmt.Errorf("%w: incomplete override %q", identity.ErrUnavailable, id.String())
		}
		return id, nil
	}
	return identity.Read(c.SysfsPath)
}

// Profiles is the built-in table followed by the configured profile file.
func Profiles(c config.Config) (*profile.Registry, error) {
	r := profile.Builtin()
	if c.ProfileFile == "" {
		return r, nil
	}
	extra, err := profile.LoadFile(c.ProfileFile)
	if err != nil {
		return nil, err
	}
	log.Info.Printf("loaded %d profiles from %s", len(extra), c.ProfileFile)
	return r.Append(extra...), nil
}

// Port is an open register port and how to release it.
type Port struct {
	ec.Port
	Close func() error
}

// OpenPort opens the configured driver. The sim driver starts at 45C with
// the fan in auto.
func OpenPort(c config.Config, p profile.Profile) (*Port, error) {
	switch c.Driver {
	case "ec_sys", "":
		path := c.DevicePath
		if path == "" {
			path = ec.DefaultECSysPath
		}
		e, err := ec.OpenECSys(path)
		if err != nil {
			return nil, err
		}
		return &Port{Port: e, Close: e.Close}, nil
	case "port":
		path := c.DevicePath
		if path == "" {
			path = ec.DefaultIOPortPath
		}
		iop, err := ec.OpenIOPort(path)
		if err != nil {
			return nil, err
		}
		return &Port{Port: iop, Close: iop.Close}, nil
	case "sim":
		m := ec.NewMemPort(map[byte]byte{p.TemperatureRegister: 45, p.FanRegister: p.FanAuto})
		return &Port{Port: m, Close: func() error { return nil }}, nil
	}
	return nil, fmt.Errorf("unknown driver %q", c.Driver)
}

// NewController builds the controller and applies the configured
// settings through the validating setters.
func NewController(c config.Config, port ec.Port, p profile.Profile, opts ...thermal.Option) (*thermal.Controller, error) {
	ctrl := thermal.New(port, p, opts...)
	for _, s := range []struct {
		set   func(int) error
		value int
	}{
		{ctrl.SetInterval, c.Interval},
		{ctrl.SetFanOn, c.FanOn},
		{ctrl.SetFanOff, c.FanOff},
	} {
		if err := s.set(s.value); err != nil {
			return nil, err
		}
	}
	if c.Enabled {
		if err := ctrl.SetEnabled(1); err != nil {
			return nil, err
		}
	}
	return ctrl, nil
}

// ControllerPlatform runs the control loop under the platform lifecycle.
type ControllerPlatform struct {
	Controller *thermal.Controller
	Port       *Port
}

// Startup - settings are applied by NewController
func (cp *ControllerPlatform) Startup(c config.Config) platform.Control {
	log.Info.Printf("managing fan with profile %s", cp.Controller.Profile())
	return cp
}

// Background starts the control loop.
func (cp *ControllerPlatform) Background() {
	cp.Controller.Start()
}

// Shutdown hands the fan to the BIOS and releases the port.
func (cp *ControllerPlatform) Shutdown() platform.Control {
	if err := cp.Controller.Shutdown(); err != nil {
		log.Info.Printf("unable to hand the fan to the BIOS: %s", err)
	}
	if cp.Port != nil && cp.Port.Close != nil {
		if err := cp.Port.Close(); err != nil {
			log.Info.Print(err)
		}
	}
	return cp
}

// BootstrapPlatforms sets up all the platforms. The controller goes first
// so it is the last one shut down.
func BootstrapPlatforms(c config.Config, cp *ControllerPlatform, gatherer prometheus.Gatherer, debug bool) {
	platform.RegisterPlatform("Controller", cp)

	sensors := linuxsensors.New()
	platform.RegisterPlatform("LinuxSensors", sensors)

	h := &tfhttp.Platform{Controller: cp.Controller, Sensors: sensors, Gatherer: gatherer, Debug: debug}
	platform.RegisterPlatform("HTTP", h)

	hcp := &tfhc.HCPlatform{Controller: cp.Controller}
	platform.RegisterPlatform("HomeControl", hcp)

	platform.StartupAllPlatforms(c)
}
