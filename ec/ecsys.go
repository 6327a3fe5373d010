package ec

import (
	"fmt"
	"os"
	"sync"
)

// DefaultECSysPath is where the ec_sys module exposes the register space.
// Writes need the module loaded with write_support=1.
const DefaultECSysPath = "/sys/kernel/debug/ec/ec0/io"

// ECSys accesses the controller through the ec_sys debugfs file, one byte
// per register at the register's offset.
type ECSys struct {
	path string
	f    *os.File
	mu   sync.Mutex
}

// OpenECSys opens the debugfs register file read-write.
func OpenECSys(path string) (*ECSys, error) {
	if path == "" {
		path = DefaultECSysPath
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open ec_sys %s: %w (is ec_sys loaded with write_support=1?)", path, err)
	}
	return &ECSys{path: path, f: f}, nil
}

// Read returns the value of a single register.
func (e *ECSys) Read(register byte) (byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	buf := make([]byte, 1)
	if _, err := e.f.ReadAt(buf, int64(register)); err != nil {
		return 0, fmt.Errorf("ec_sys read 0x%02x: %w", register, err)
	}
	traceRead("ec_sys", register, buf[0])
	return buf[0], nil
}

// Write stores a single register.
func (e *ECSys) Write(register, value byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.f.WriteAt([]byte{value}, int64(register)); err != nil {
		return fmt.Errorf("ec_sys write 0x%02x: %w", register, err)
	}
	traceWrite("ec_sys", register, value)
	return nil
}

// Close releases the debugfs file.
func (e *ECSys) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.f.Close()
}
