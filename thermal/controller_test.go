package thermal

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cloudkucooland/hdfd/ec"
	"github.com/cloudkucooland/hdfd/profile"
)

const (
	fanReg  = 0x55
	tempReg = 0x58
	offCode = 0x1f
)

var (
	aoa110 = profile.Profile{
		Vendor: "Acer", Product: "AOA110", Version: "v0.3109",
		FanRegister: fanReg, TemperatureRegister: tempReg, FanOff: offCode, FanAuto: 0x00,
	}
	ao753 = profile.Profile{
		Vendor: "Acer", Product: "Aspire One 753", Version: "V1.24",
		FanRegister: 0x93, TemperatureRegister: 0xac, FanOff: 0x14, FanAuto: 0x04, ManualMode: true,
	}
	errBus = errors.New("bus stuck")
)

// newEnabled returns a controller on a fresh register file with management
// switched on and the journal cleared.
func newEnabled(t *testing.T, p profile.Profile, regs map[byte]byte, opts ...Option) (*Controller, *ec.MemPort) {
	t.Helper()
	port := ec.NewMemPort(regs)
	c := New(port, p, opts...)
	if err := c.SetEnabled(1); err != nil {
		t.Fatalf("SetEnabled(1): %v", err)
	}
	port.ResetWrites()
	return c, port
}

func TestTickHysteresis(t *testing.T) {
	c, port := newEnabled(t, aoa110, map[byte]byte{fanReg: offCode})

	steps := []struct {
		temp  byte
		state byte
	}{
		{61, 0x00},    // >= fanon with fan off: auto
		{58, 0x00},    // inside the band: nothing
		{52, offCode}, // <= fanoff with fan auto: off
		{55, offCode}, // inside the band again
	}
	for i, s := range steps {
		port.Set(tempReg, s.temp)
		if err := c.Tick(); err != nil {
			t.Fatalf("step %d: Tick: %v", i, err)
		}
		if got := port.Get(fanReg); got != s.state {
			t.Errorf("step %d (%dC): fan register = 0x%02x, want 0x%02x", i, s.temp, got, s.state)
		}
	}

	want := []ec.Access{{Register: fanReg, Value: 0x00}, {Register: fanReg, Value: offCode}}
	if diff := cmp.Diff(want, port.Writes()); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestTickDisabledIsNoop(t *testing.T) {
	port := ec.NewMemPort(map[byte]byte{tempReg: 70, fanReg: offCode})
	c := New(port, aoa110)
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if w := port.Writes(); len(w) != 0 {
		t.Errorf("disabled controller wrote %v", w)
	}
}

func TestTickRespectsBIOSState(t *testing.T) {
	// the BIOS switched the fan back on behind our back; at 58C nothing
	// should happen, at 53C it goes off again
	c, port := newEnabled(t, aoa110, map[byte]byte{tempReg: 58, fanReg: 0x00})
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if w := port.Writes(); len(w) != 0 {
		t.Errorf("writes at 58C = %v, want none", w)
	}

	port.Set(tempReg, 53)
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got := port.Get(fanReg); got != offCode {
		t.Errorf("fan register = 0x%02x, want off", got)
	}
}

func TestTickCritical(t *testing.T) {
	c, port := newEnabled(t, aoa110, map[byte]byte{tempReg: 89, fanReg: offCode})

	err := c.Tick()
	var crit *CriticalTemperatureError
	if !errors.As(err, &crit) {
		t.Fatalf("Tick = %v, want *CriticalTemperatureError", err)
	}
	if crit.Temperature != 89 {
		t.Errorf("Temperature = %d, want 89", crit.Temperature)
	}
	if w := port.Writes(); len(w) != 0 {
		t.Errorf("critical tick wrote %v", w)
	}
	if !c.Halted() {
		t.Error("controller not halted")
	}

	// halted for good, even after cooling down
	port.Set(tempReg, 40)
	port.Set(fanReg, 0x00)
	if err := c.Tick(); err != nil {
		t.Errorf("Tick after halt = %v", err)
	}
	if w := port.Writes(); len(w) != 0 {
		t.Errorf("halted controller wrote %v", w)
	}
}

func TestTickReadFailures(t *testing.T) {
	for _, tc := range []struct {
		name string
		reg  byte
	}{
		{"temperature", tempReg},
		{"fan state", fanReg},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, port := newEnabled(t, aoa110, map[byte]byte{tempReg: 70, fanReg: offCode})
			port.FailReads(tc.reg, errBus)

			err := c.Tick()
			var ioe *IOError
			if !errors.As(err, &ioe) {
				t.Fatalf("Tick = %v, want *IOError", err)
			}
			if ioe.Register != tc.reg || ioe.Op != "read" {
				t.Errorf("IOError = %+v", ioe)
			}
			if !errors.Is(err, errBus) {
				t.Errorf("%v does not wrap the port error", err)
			}
			if w := port.Writes(); len(w) != 0 {
				t.Errorf("failed tick wrote %v", w)
			}
			if c.Settings() != (Settings{Enabled: true, Interval: 5, FanOn: 60, FanOff: 53}) {
				t.Errorf("settings changed: %+v", c.Settings())
			}

			// the next tick retries
			port.FailReads(tc.reg, nil)
			if err := c.Tick(); err != nil {
				t.Fatalf("retry: %v", err)
			}
			if got := port.Get(fanReg); got != 0x00 {
				t.Errorf("fan register after retry = 0x%02x, want auto", got)
			}
		})
	}
}

func TestManualModeOff(t *testing.T) {
	c, port := newEnabled(t, ao753, map[byte]byte{0xac: 50, 0x93: 0x04})
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	want := []ec.Access{{Register: 0x93, Value: 0x14}, {Register: 0x94, Value: 0xff}}
	if diff := cmp.Diff(want, port.Writes()); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}

	// auto never gets the auxiliary write
	port.ResetWrites()
	port.Set(0xac, 65)
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	want = []ec.Access{{Register: 0x93, Value: 0x04}}
	if diff := cmp.Diff(want, port.Writes()); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestManualModeFailedPrimary(t *testing.T) {
	c, port := newEnabled(t, ao753, map[byte]byte{0xac: 50, 0x93: 0x04})
	port.FailWrites(0x93, errBus)

	err := c.Tick()
	var ioe *IOError
	if !errors.As(err, &ioe) || ioe.Op != "write" || ioe.Register != 0x93 {
		t.Fatalf("Tick = %v, want write IOError on 0x93", err)
	}
	if w := port.Writes(); len(w) != 0 {
		t.Errorf("writes after failed primary = %v, want none", w)
	}
}

func TestManualModeFailedAuxiliary(t *testing.T) {
	c, port := newEnabled(t, ao753, map[byte]byte{0xac: 50, 0x93: 0x04})
	port.FailWrites(0x94, errBus)

	err := c.Tick()
	var ioe *IOError
	if !errors.As(err, &ioe) || ioe.Op != "write" || ioe.Register != 0x94 {
		t.Fatalf("Tick = %v, want write IOError on 0x94", err)
	}
	if !errors.Is(err, errBus) {
		t.Errorf("%v does not wrap the port error", err)
	}
	if got := port.Get(0x93); got != 0x14 {
		t.Errorf("fan register = 0x%02x, want the off code 0x14", got)
	}
	if diff := cmp.Diff([]ec.Access{{Register: 0x93, Value: 0x14}}, port.Writes()); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestSetEnabled(t *testing.T) {
	port := ec.NewMemPort(map[byte]byte{fanReg: offCode})
	c := New(port, aoa110)

	// disabling forces auto, even from the off state
	if err := c.SetEnabled(0); err != nil {
		t.Fatalf("SetEnabled(0): %v", err)
	}
	if got := port.Get(fanReg); got != 0x00 {
		t.Errorf("fan register = 0x%02x, want auto", got)
	}

	// and it always writes, even when the fan is already in auto
	port.ResetWrites()
	if err := c.SetEnabled(0); err != nil {
		t.Fatalf("SetEnabled(0): %v", err)
	}
	if diff := cmp.Diff([]ec.Access{{Register: fanReg, Value: 0x00}}, port.Writes()); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}

	// an invalid value is rejected; still disabled, so auto is forced again
	port.ResetWrites()
	var verr *ValidationError
	if err := c.SetEnabled(2); !errors.As(err, &verr) {
		t.Fatalf("SetEnabled(2) = %v, want *ValidationError", err)
	}
	if len(port.Writes()) != 1 {
		t.Errorf("writes = %v, want one auto command", port.Writes())
	}

	// enabling never touches the fan
	port.ResetWrites()
	if err := c.SetEnabled(1); err != nil {
		t.Fatalf("SetEnabled(1): %v", err)
	}
	if !c.Settings().Enabled {
		t.Error("not enabled")
	}
	if err := c.SetEnabled(-1); err == nil {
		t.Error("SetEnabled(-1) accepted")
	}
	if !c.Settings().Enabled {
		t.Error("rejected value changed the flag")
	}
	if w := port.Writes(); len(w) != 0 {
		t.Errorf("writes while enabled = %v", w)
	}
}

func TestSetEnabledWriteFailure(t *testing.T) {
	c, port := newEnabled(t, aoa110, map[byte]byte{fanReg: offCode})
	port.FailWrites(fanReg, errBus)
	if err := c.SetEnabled(0); err != nil {
		t.Errorf("SetEnabled(0) = %v, a failed auto command is only logged", err)
	}
	if c.Settings().Enabled {
		t.Error("still enabled")
	}
}

func TestSettersBounds(t *testing.T) {
	c := New(ec.NewMemPort(nil), aoa110)

	for _, tc := range []struct {
		name  string
		set   func(int) error
		value int
		ok    bool
	}{
		{"interval", c.SetInterval, 0, false},
		{"interval", c.SetInterval, 1, true},
		{"interval", c.SetInterval, 15, true},
		{"interval", c.SetInterval, 16, false},
		{"fanon", c.SetFanOn, 49, false},
		{"fanon", c.SetFanOn, 50, true},
		{"fanon", c.SetFanOn, 80, true},
		{"fanon", c.SetFanOn, 81, false},
		{"fanoff", c.SetFanOff, 49, false},
		{"fanoff", c.SetFanOff, 80, true},
		{"fanoff", c.SetFanOff, 81, false},
	} {
		before := c.Settings()
		err := tc.set(tc.value)
		if tc.ok {
			if err != nil {
				t.Errorf("%s=%d: %v", tc.name, tc.value, err)
			}
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s=%d: err = %v, want *ValidationError", tc.name, tc.value, err)
			continue
		}
		if verr.Name != tc.name || verr.Value != tc.value {
			t.Errorf("%s=%d: %+v", tc.name, tc.value, verr)
		}
		if c.Settings() != before {
			t.Errorf("%s=%d changed settings to %+v", tc.name, tc.value, c.Settings())
		}
	}

	want := Settings{Interval: 15, FanOn: 80, FanOff: 80}
	if diff := cmp.Diff(want, c.Settings()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestStatus(t *testing.T) {
	c, port := newEnabled(t, aoa110, map[byte]byte{tempReg: 61, fanReg: offCode})
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	port.FailReads(fanReg, errBus)

	s := c.Status()
	if s.Temperature != 61 || s.TemperatureError != "" {
		t.Errorf("temperature = %d %q", s.Temperature, s.TemperatureError)
	}
	if s.FanState != "" || s.FanStateError == "" {
		t.Errorf("fan state = %q %q, want a read error", s.FanState, s.FanStateError)
	}
	if s.Commanded != "auto" {
		t.Errorf("Commanded = %q, want auto", s.Commanded)
	}
	if !s.Enabled || s.Halted {
		t.Errorf("status = %+v", s)
	}
}

type countingRecorder struct {
	temps    []int
	commands []FanState
	failures int
	changes  int
}

func (r *countingRecorder) Temperature(v int)        { r.temps = append(r.temps, v) }
func (r *countingRecorder) FanCommand(s FanState)    { r.commands = append(r.commands, s) }
func (r *countingRecorder) TickFailed(error)         { r.failures++ }
func (r *countingRecorder) SettingsChanged(Settings) { r.changes++ }

func TestRecorder(t *testing.T) {
	rec := &countingRecorder{}
	c, port := newEnabled(t, aoa110, map[byte]byte{tempReg: 61, fanReg: offCode}, WithRecorder(rec))
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	port.Set(tempReg, 50)
	if err := c.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if diff := cmp.Diff([]int{61, 50}, rec.temps); diff != "" {
		t.Errorf("temperatures (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]FanState{FanAuto, FanOff}, rec.commands); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}
	// New and SetEnabled(1)
	if rec.changes != 2 {
		t.Errorf("SettingsChanged called %d times, want 2", rec.changes)
	}
}
