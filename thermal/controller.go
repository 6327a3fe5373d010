// Package thermal runs the fan policy: sample the temperature register,
// hand the fan to the BIOS when it gets warm, switch it off when it has
// cooled down, and stop everything at the critical temperature.
//
// The controller does not keep its own idea of the fan state. Every
// decision reads the fan register back, so whatever the BIOS did in the
// meantime is respected. All register traffic and all settings go through
// one mutex, which makes the read-decide-write sequence of a tick atomic
// with respect to operator requests.
package thermal

import (
	"sync"
	"time"

	"github.com/brutella/hc/log"

	"github.com/cloudkucooland/hdfd/ec"
	"github.com/cloudkucooland/hdfd/profile"
)

// Recorder observes the controller; package metrics implements it.
type Recorder interface {
	Temperature(celsius int)
	FanCommand(state FanState)
	TickFailed(err error)
	SettingsChanged(s Settings)
}

type nopRecorder struct{}

func (nopRecorder) Temperature(int)          {}
func (nopRecorder) FanCommand(FanState)      {}
func (nopRecorder) TickFailed(error)         {}
func (nopRecorder) SettingsChanged(Settings) {}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder reports temperatures, commands and failures to r.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithHalt replaces what happens after the critical temperature was seen.
// The default panics. fn runs on the scheduler goroutine after the
// scheduler has finished, so it may call Shutdown.
func WithHalt(fn func(*CriticalTemperatureError)) Option {
	return func(c *Controller) { c.halt = fn }
}

// WithAfter replaces time.After for the scheduler.
func WithAfter(fn func(time.Duration) <-chan time.Time) Option {
	return func(c *Controller) { c.after = fn }
}

// Controller owns the selected profile, the operator settings and the
// register port.
type Controller struct {
	mu        sync.Mutex
	port      ec.Port
	profile   profile.Profile
	settings  Settings
	commanded *FanState
	halted    bool
	stopped   bool

	recorder Recorder
	halt     func(*CriticalTemperatureError)
	after    func(time.Duration) <-chan time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	wg        sync.WaitGroup
}

// New builds a controller with default settings. Management starts
// disabled and the fan is not touched until it is enabled.
func New(port ec.Port, p profile.Profile, opts ...Option) *Controller {
	c := &Controller{
		port:     port,
		profile:  p,
		settings: DefaultSettings(),
		recorder: nopRecorder{},
		halt:     func(e *CriticalTemperatureError) { panic(e) },
		after:    time.After,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recorder.SettingsChanged(c.settings)
	return c
}

// Profile is the register map the controller was built with.
func (c *Controller) Profile() profile.Profile {
	return c.profile
}

// Tick runs one decision step. It does nothing while management is
// disabled. Register failures come back as *IOError and leave the
// hardware as it was; the critical temperature comes back as
// *CriticalTemperatureError and halts the controller without touching
// the fan.
func (c *Controller) Tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.halted || !c.settings.Enabled {
		return nil
	}

	temp, err := c.readTemperature()
	if err != nil {
		return err
	}
	c.recorder.Temperature(temp)

	if temp >= CriticalTemperature {
		c.halted = true
		return &CriticalTemperatureError{Temperature: temp}
	}

	state, err := c.readFanState()
	if err != nil {
		return err
	}

	switch {
	case temp >= c.settings.FanOn && state == FanOff:
		log.Debug.Printf("%dC >= %dC, fan to auto", temp, c.settings.FanOn)
		return c.command(FanAuto)
	case temp <= c.settings.FanOff && state == FanAuto:
		log.Debug.Printf("%dC <= %dC, fan off", temp, c.settings.FanOff)
		return c.command(FanOff)
	}
	return nil
}

// Temperature reads the temperature register.
func (c *Controller) Temperature() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readTemperature()
}

// FanState reads the fan register. Only the profile's off code means off.
func (c *Controller) FanState() (FanState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readFanState()
}

// SetEnabled turns management on (1) or off (0). Anything else is
// rejected. Whenever management ends up off, the fan is handed to the
// BIOS, even if it already is.
func (c *Controller) SetEnabled(value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var verr error
	if value != 0 && value != 1 {
		verr = &ValidationError{Name: "enabled", Value: value, Min: 0, Max: 1}
	} else {
		c.settings.Enabled = value == 1
		c.recorder.SettingsChanged(c.settings)
	}

	if !c.settings.Enabled {
		// nobody watches the temperature now, the fan must not stay off
		if err := c.command(FanAuto); err != nil {
			log.Info.Printf("unable to hand the fan to the BIOS: %s", err)
		}
	}
	return verr
}

// SetFanOn sets the temperature at which the fan goes back to auto.
func (c *Controller) SetFanOn(value int) error {
	return c.setBounded("fanon", value, MinFanOn, MaxFanOn, func(s *Settings) { s.FanOn = value })
}

// SetFanOff sets the temperature at which the fan is switched off.
func (c *Controller) SetFanOff(value int) error {
	return c.setBounded("fanoff", value, MinFanOff, MaxFanOff, func(s *Settings) { s.FanOff = value })
}

// SetInterval sets the seconds between ticks. The running scheduler picks
// it up when it next re-arms.
func (c *Controller) SetInterval(value int) error {
	return c.setBounded("interval", value, MinInterval, MaxInterval, func(s *Settings) { s.Interval = value })
}

func (c *Controller) setBounded(name string, value, min, max int, apply func(*Settings)) error {
	if value < min || value > max {
		return &ValidationError{Name: name, Value: value, Min: min, Max: max}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	apply(&c.settings)
	c.recorder.SettingsChanged(c.settings)
	return nil
}

// Settings returns a copy of the current settings.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Interval is the current tick period.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.IntervalDuration()
}

// Halted reports whether the critical temperature was reached.
func (c *Controller) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// Status is a snapshot for the operator surfaces.
type Status struct {
	Settings
	Temperature      int    `json:"temperature"`
	TemperatureError string `json:"temperature_error,omitempty"`
	FanState         string `json:"fanstate"`
	FanStateError    string `json:"fanstate_error,omitempty"`
	Commanded        string `json:"commanded,omitempty"`
	Halted           bool   `json:"halted"`
	Profile          string `json:"profile"`
}

// Status reads both registers and the settings in one critical section.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Settings: c.settings,
		Halted:   c.halted,
		Profile:  c.profile.String(),
	}
	if temp, err := c.readTemperature(); err != nil {
		s.TemperatureError = err.Error()
	} else {
		s.Temperature = temp
	}
	if state, err := c.readFanState(); err != nil {
		s.FanStateError = err.Error()
	} else {
		s.FanState = state.String()
	}
	if c.commanded != nil {
		s.Commanded = c.commanded.String()
	}
	return s
}

// command writes the profile's code for state. Callers hold c.mu.
func (c *Controller) command(state FanState) error {
	code := c.profile.FanAuto
	if state == FanOff {
		code = c.profile.FanOff
	}
	if err := c.port.Write(c.profile.FanRegister, code); err != nil {
		return &IOError{Op: "write", Register: c.profile.FanRegister, Err: err}
	}
	c.commanded = &state
	c.recorder.FanCommand(state)

	if state == FanOff {
		if m, ok := c.profile.AuxiliaryOff(); ok {
			if err := c.port.Write(m.Register, m.Value); err != nil {
				return &IOError{Op: "write", Register: m.Register, Err: err}
			}
		}
	}
	log.Debug.Printf("fan state changed to '%s'", state)
	return nil
}

func (c *Controller) readTemperature() (int, error) {
	v, err := c.port.Read(c.profile.TemperatureRegister)
	if err != nil {
		return 0, &IOError{Op: "read", Register: c.profile.TemperatureRegister, Err: err}
	}
	return int(v), nil
}

func (c *Controller) readFanState() (FanState, error) {
	v, err := c.port.Read(c.profile.FanRegister)
	if err != nil {
		return FanAuto, &IOError{Op: "read", Register: c.profile.FanRegister, Err: err}
	}
	if v == c.profile.FanOff {
		return FanOff, nil
	}
	return FanAuto, nil
}
