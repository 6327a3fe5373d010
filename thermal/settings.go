package thermal

import "time"

// Operator-tunable bounds.
const (
	MinInterval = 1  // seconds
	MaxInterval = 15 // the die heats up fast under load, don't sample slower

	MinFanOn  = 50
	MaxFanOn  = 80 // always hand the fan back at 80C, whatever the operator asks
	MinFanOff = 50
	MaxFanOff = 80

	// CriticalTemperature is where the controller gives up: the Atom N270's
	// rated junction limit is 90C.
	CriticalTemperature = 89
)

// Settings are the operator's knobs.
//
// Nothing forces FanOn >= FanOff. With FanOn below FanOff the two rules
// overlap and the fan will flip on every tick inside the overlap.
type Settings struct {
	Enabled  bool `json:"enabled"`
	Interval int  `json:"interval"` // seconds between ticks
	FanOn    int  `json:"fanon"`    // hand the fan to the BIOS at or above this
	FanOff   int  `json:"fanoff"`   // stop the fan at or below this
}

// DefaultSettings is the state at startup: management off, fan untouched.
func DefaultSettings() Settings {
	return Settings{
		Enabled:  false,
		Interval: 5,
		FanOn:    60,
		FanOff:   53,
	}
}

// IntervalDuration converts Interval to a time.Duration.
func (s Settings) IntervalDuration() time.Duration {
	return time.Duration(s.Interval) * time.Second
}

// FanState is what the fan register says.
type FanState int

const (
	FanOff FanState = iota
	FanAuto
)

func (f FanState) String() string {
	if f == FanOff {
		return "off"
	}
	return "auto"
}
