package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brutella/hc"
)

// Config is the primary daemon configuration...
type Config struct {
	ConfigDir   string    // passed in from CLI
	ConfigFile  string    // hdfd.json
	HTTPAddress string    // net.Dial address format, :port is good enough -- "" disables the HTTP surface
	Name        string    // what this bridge shows as
	ID          string    // displayed serial number
	HomeKit     bool      // publish the HomeKit accessory
	HCConfig    hc.Config // base HomeControl configuration

	Driver      string // "ec_sys", "port" or "sim"
	DevicePath  string // defaults to the driver's usual path
	SysfsPath   string // where to read DMI from
	Identity    *Identity
	ProfileFile string // YAML profiles appended to the built-in table, relative to ConfigDir

	Enabled     bool // start managing the fan right away
	Interval    int  // seconds
	FanOn       int  // celsius
	FanOff      int  // celsius
	HaltCommand []string

	SensorsPullRate int // (seconds) how frequently to pull lm-sensors -- 0 to disable
}

// Identity overrides the DMI strings, for boards with broken firmware
// tables and for the sim driver.
type Identity struct {
	Vendor  string
	Product string
	Version string
}

// Default is used for every field the config file leaves out.
func Default() Config {
	return Config{
		HTTPAddress:     ":8088",
		Name:            "hdfd",
		ID:              "hdf-0001",
		Driver:          "ec_sys",
		SysfsPath:       "/sys",
		Interval:        5,
		FanOn:           60,
		FanOff:          53,
		HaltCommand:     []string{"/sbin/poweroff", "-f"},
		SensorsPullRate: 60,
	}
}

// Load reads dir/file over the defaults. A missing file is an error; an
// empty JSON object gives the defaults.
func Load(dir, file string) (Config, error) {
	fulldir, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, fmt.Errorf("config directory %s: %w", dir, err)
	}
	cfd := filepath.Join(fulldir, file)
	raw, err := os.ReadFile(cfd)
	if err != nil {
		return Config{}, fmt.Errorf("unable to open config: %w", err)
	}

	conf := Default()
	if err := json.Unmarshal(raw, &conf); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", cfd, err)
	}
	conf.ConfigDir = fulldir
	conf.ConfigFile = cfd

	if conf.ProfileFile != "" && !filepath.IsAbs(conf.ProfileFile) {
		conf.ProfileFile = filepath.Join(fulldir, conf.ProfileFile)
	}
	if conf.HCConfig.StoragePath == "" {
		conf.HCConfig.StoragePath = filepath.Join(fulldir, "homekit")
	}
	return conf, nil
}
