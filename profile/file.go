package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// file is the on-disk form of an extension table, e.g.
//
//	profiles:
//	  - vendor: Acer
//	    product: AO722
//	    version: V1.10
//	    fan_register: 0x55
//	    temperature_register: 0x58
//	    fan_off: 0x1f
//	    fan_auto: 0x00
type file struct {
	Profiles []fileProfile `yaml:"profiles"`
}

type fileProfile struct {
	Vendor              string `yaml:"vendor"`
	Product             string `yaml:"product"`
	Version             string `yaml:"version"`
	FanRegister         byte   `yaml:"fan_register"`
	TemperatureRegister byte   `yaml:"temperature_register"`
	FanOff              byte   `yaml:"fan_off"`
	FanAuto             byte   `yaml:"fan_auto"`
	ManualMode          bool   `yaml:"manual_mode"`
	ManualRegister      byte   `yaml:"manual_register"`
	ManualValue         byte   `yaml:"manual_value"`
}

// LoadFile reads extra profiles from a YAML file. They are meant to be
// appended after the built-in table with Registry.Append.
func LoadFile(path string) ([]Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes an extension table.
func Parse(raw []byte) ([]Profile, error) {
	var f file
	if err := yaml.UnmarshalStrict(raw, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	profiles := make([]Profile, 0, len(f.Profiles))
	for i, fp := range f.Profiles {
		// an empty prefix would match every machine
		if fp.Vendor == "" || fp.Product == "" || fp.Version == "" {
			return nil, fmt.Errorf("profile %d (%q/%q/%q): vendor, product and version are required",
				i, fp.Vendor, fp.Product, fp.Version)
		}
		profiles = append(profiles, Profile{
			Vendor:              fp.Vendor,
			Product:             fp.Product,
			Version:             fp.Version,
			FanRegister:         fp.FanRegister,
			TemperatureRegister: fp.TemperatureRegister,
			FanOff:              fp.FanOff,
			FanAuto:             fp.FanAuto,
			ManualMode:          fp.ManualMode,
			Manual:              ManualCommand{Register: fp.ManualRegister, Value: fp.ManualValue},
		})
	}
	return profiles, nil
}
