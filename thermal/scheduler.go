package thermal

import (
	"errors"

	"github.com/brutella/hc/log"
)

// Start launches the recurring tick. Calling it again does nothing.
func (c *Controller) Start() {
	c.startOnce.Do(func() {
		c.wg.Add(1)
		go func() {
			crit := c.run()
			c.wg.Done()
			if crit != nil {
				c.halt(crit)
			}
		}()
	})
}

// run waits one interval, ticks, and repeats until stopped or halted. The
// interval is read again before each wait.
func (c *Controller) run() *CriticalTemperatureError {
	for {
		select {
		case <-c.stop:
			return nil
		case <-c.after(c.Interval()):
		}

		err := c.Tick()
		if err == nil {
			continue
		}
		var crit *CriticalTemperatureError
		if errors.As(err, &crit) {
			log.Info.Printf("%s, halting", crit)
			return crit
		}
		c.recorder.TickFailed(err)
		log.Info.Printf("tick skipped: %s", err)
	}
}

// Shutdown hands the fan to the BIOS, then stops the scheduler and waits
// for it. Ticks that fire after the fan went to auto do nothing.
func (c *Controller) Shutdown() error {
	c.mu.Lock()
	err := c.command(FanAuto)
	c.stopped = true
	c.mu.Unlock()

	c.stopOnce.Do(func() { close(c.stop) })
	c.wg.Wait()
	return err
}
