package ec

import (
	"fmt"
	"sync"
)

// Access is one recorded register write.
type Access struct {
	Register byte
	Value    byte
}

// MemPort is an in-memory register file. The daemon uses it for the "sim"
// driver; tests use it to script the controller's hardware.
type MemPort struct {
	mu         sync.Mutex
	regs       [256]byte
	writes     []Access
	readFault  map[byte]error
	writeFault map[byte]error
}

// NewMemPort returns a register file preloaded with initial.
func NewMemPort(initial map[byte]byte) *MemPort {
	m := &MemPort{
		readFault:  make(map[byte]error),
		writeFault: make(map[byte]error),
	}
	for r, v := range initial {
		m.regs[r] = v
	}
	return m
}

// Read returns a register, or the injected fault for it.
func (m *MemPort) Read(register byte) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.readFault[register]; err != nil {
		return 0, fmt.Errorf("sim read 0x%02x: %w", register, err)
	}
	traceRead("sim", register, m.regs[register])
	return m.regs[register], nil
}

// Write stores a register and journals it, unless a fault is injected.
func (m *MemPort) Write(register, value byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.writeFault[register]; err != nil {
		return fmt.Errorf("sim write 0x%02x: %w", register, err)
	}
	m.regs[register] = value
	m.writes = append(m.writes, Access{Register: register, Value: value})
	traceWrite("sim", register, value)
	return nil
}

// Set changes a register without journaling it, the way the hardware
// itself would (a new temperature sample, say).
func (m *MemPort) Set(register, value byte) {
	m.mu.Lock()
	m.regs[register] = value
	m.mu.Unlock()
}

// Get returns a register without tracing or fault injection.
func (m *MemPort) Get(register byte) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[register]
}

// FailReads makes reads of register fail with err; nil clears the fault.
func (m *MemPort) FailReads(register byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.readFault, register)
		return
	}
	m.readFault[register] = err
}

// FailWrites makes writes of register fail with err; nil clears the fault.
func (m *MemPort) FailWrites(register byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.writeFault, register)
		return
	}
	m.writeFault[register] = err
}

// Writes returns the journal of successful writes, oldest first.
func (m *MemPort) Writes() []Access {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Access, len(m.writes))
	copy(out, m.writes)
	return out
}

// ResetWrites empties the journal.
func (m *MemPort) ResetWrites() {
	m.mu.Lock()
	m.writes = nil
	m.mu.Unlock()
}
