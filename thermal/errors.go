package thermal

import "fmt"

// ValidationError rejects an operator value outside its range. The stored
// setting is left alone.
type ValidationError struct {
	Name     string
	Value    int
	Min, Max int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d out of range [%d,%d]", e.Name, e.Value, e.Min, e.Max)
}

// IOError is a failed register access. It is never fatal: the tick is
// skipped and the next one tries again.
type IOError struct {
	Op       string // "read" or "write"
	Register byte
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s register 0x%02x: %s", e.Op, e.Register, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CriticalTemperatureError stops the controller for good. Software fan
// control is no longer trusted past this point; whoever runs the
// controller must take the machine down.
type CriticalTemperatureError struct {
	Temperature int
}

func (e *CriticalTemperatureError) Error() string {
	return fmt.Sprintf("critical system temperature %dC (limit %dC)", e.Temperature, CriticalTemperature)
}
