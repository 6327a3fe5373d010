package ec

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultIOPortPath is the kernel's raw I/O port device.
const DefaultIOPortPath = "/dev/port"

const (
	dataPort    = 0x62
	commandPort = 0x66

	statusOBF = 1 << 0 // output buffer full: data ready for us
	statusIBF = 1 << 1 // input buffer full: controller still busy

	cmdRead  = 0x80
	cmdWrite = 0x81

	pollAttempts = 100
	pollDelay    = time.Millisecond
)

type portFile interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

// IOPort talks the ACPI EC protocol directly over ports 0x62/0x66. Use it
// on kernels without ec_sys.
type IOPort struct {
	f  portFile
	mu sync.Mutex
}

// OpenIOPort opens the raw port device read-write.
func OpenIOPort(path string) (*IOPort, error) {
	if path == "" {
		path = DefaultIOPortPath
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &IOPort{f: f}, nil
}

// Read queries one register: command 0x80, address, then wait for data.
func (p *IOPort) Read(register byte) (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.waitIBF(); err != nil {
		return 0, fmt.Errorf("ec read 0x%02x, before command: %w", register, err)
	}
	if err := p.out(commandPort, cmdRead); err != nil {
		return 0, err
	}
	if err := p.waitIBF(); err != nil {
		return 0, fmt.Errorf("ec read 0x%02x, before address: %w", register, err)
	}
	if err := p.out(dataPort, register); err != nil {
		return 0, err
	}
	if err := p.waitOBF(); err != nil {
		return 0, fmt.Errorf("ec read 0x%02x, waiting for data: %w", register, err)
	}
	value, err := p.in(dataPort)
	if err != nil {
		return 0, err
	}
	traceRead("ioport", register, value)
	return value, nil
}

// Write sends one register: command 0x81, address, value.
func (p *IOPort) Write(register, value byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.waitIBF(); err != nil {
		return fmt.Errorf("ec write 0x%02x, before command: %w", register, err)
	}
	if err := p.out(commandPort, cmdWrite); err != nil {
		return err
	}
	if err := p.waitIBF(); err != nil {
		return fmt.Errorf("ec write 0x%02x, before address: %w", register, err)
	}
	if err := p.out(dataPort, register); err != nil {
		return err
	}
	if err := p.waitIBF(); err != nil {
		return fmt.Errorf("ec write 0x%02x, before value: %w", register, err)
	}
	if err := p.out(dataPort, value); err != nil {
		return err
	}
	traceWrite("ioport", register, value)
	return nil
}

// Close releases the port device.
func (p *IOPort) Close() error {
	return p.f.Close()
}

func (p *IOPort) in(port int64) (byte, error) {
	buf := make([]byte, 1)
	if _, err := p.f.ReadAt(buf, port); err != nil {
		return 0, fmt.Errorf("inb 0x%02x: %w", port, err)
	}
	return buf[0], nil
}

func (p *IOPort) out(port int64, value byte) error {
	if _, err := p.f.WriteAt([]byte{value}, port); err != nil {
		return fmt.Errorf("outb 0x%02x: %w", port, err)
	}
	return nil
}

// waitIBF waits for the controller to drain its input buffer.
func (p *IOPort) waitIBF() error {
	for i := 0; i < pollAttempts; i++ {
		status, err := p.in(commandPort)
		if err != nil {
			return err
		}
		if status&statusIBF == 0 {
			return nil
		}
		time.Sleep(pollDelay)
	}
	return ErrTimeout
}

// waitOBF waits for the controller to put a byte in its output buffer.
func (p *IOPort) waitOBF() error {
	for i := 0; i < pollAttempts; i++ {
		status, err := p.in(commandPort)
		if err != nil {
			return err
		}
		if status&statusOBF != 0 {
			return nil
		}
		time.Sleep(pollDelay)
	}
	return ErrTimeout
}
