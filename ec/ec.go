// Package ec reads and writes single byte registers of the ACPI embedded
// controller. The controller in package thermal only ever talks to a Port,
// so the same decision code runs against the kernel's ec_sys debugfs file,
// raw port I/O, or an in-memory register file.
package ec

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Port is a byte-wide register space. Implementations must be safe for
// concurrent use and may fail transiently (bus busy, timeout).
type Port interface {
	// Read returns the value held in register.
	Read(register byte) (byte, error)

	// Write stores value in register.
	Write(register, value byte) error
}

// ErrTimeout is returned when the controller does not become ready in time.
var ErrTimeout = errors.New("embedded controller timeout")

// register traffic goes through logrus so --debug can trace every access
var trace = logrus.New()

// SetDebug turns register tracing on or off.
func SetDebug(on bool) {
	if on {
		trace.SetLevel(logrus.DebugLevel)
		return
	}
	trace.SetLevel(logrus.InfoLevel)
}

func traceRead(driver string, register, value byte) {
	trace.WithFields(logrus.Fields{
		"driver":   driver,
		"register": register,
		"value":    value,
	}).Debug("ec read")
}

func traceWrite(driver string, register, value byte) {
	trace.WithFields(logrus.Fields{
		"driver":   driver,
		"register": register,
		"value":    value,
	}).Debug("ec write")
}
