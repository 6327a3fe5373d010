// Package linuxsensors keeps a cached copy of the lm-sensors readings for
// the status pages. The fan controller never looks at them.
package linuxsensors

import (
	"sync"
	"time"

	"github.com/brutella/hc/log"
	"github.com/ssimunic/gosensors"

	"github.com/cloudkucooland/hdfd/config"
	"github.com/cloudkucooland/hdfd/platform"
)

// Readings maps chip name to feature name to the raw value, e.g.
// "acpitz-virtual-0" -> "temp1" -> "+52.0°C".
type Readings map[string]map[string]string

// Platform is the handle to the sensors
type Platform struct {
	mu       sync.Mutex
	readings Readings
	pulled   time.Time
	rate     time.Duration
	done     chan struct{}
	wg       sync.WaitGroup

	read func() (Readings, error)
}

// New returns a platform reading from lm-sensors.
func New() *Platform {
	return &Platform{read: fromSystem}
}

func fromSystem() (Readings, error) {
	nfs, err := gosensors.NewFromSystem()
	if err != nil {
		return nil, err
	}
	r := make(Readings, len(nfs.Chips))
	for chip, entries := range nfs.Chips {
		r[chip] = make(map[string]string, len(entries))
		for k, v := range entries {
			r[chip][k] = v
		}
	}
	return r, nil
}

// Startup is called by the platform management to get things going
func (s *Platform) Startup(c config.Config) platform.Control {
	s.rate = time.Duration(c.SensorsPullRate) * time.Second
	s.done = make(chan struct{})
	if s.rate > 0 {
		s.pull()
	}
	return s
}

// Background starts up the go process to periodically update the sensor values
func (s *Platform) Background() {
	if s.rate <= 0 || s.done == nil {
		log.Info.Println("lm-sensors pulling disabled")
		return
	}
	s.wg.Add(1)
	go func(done chan struct{}, rate time.Duration) {
		defer s.wg.Done()
		t := time.NewTicker(rate)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				s.pull()
			}
		}
	}(s.done, s.rate)
}

// Shutdown stops the puller and waits for it to exit.
func (s *Platform) Shutdown() platform.Control {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.wg.Wait()
	return s
}

func (s *Platform) pull() {
	r, err := s.read()
	if err != nil {
		log.Info.Println(err)
		return
	}
	s.mu.Lock()
	s.readings = r
	s.pulled = time.Now()
	s.mu.Unlock()
}

// Readings returns the last successful pull and when it happened. The
// time is zero if nothing was read yet.
func (s *Platform) Readings() (Readings, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readings, s.pulled
}
