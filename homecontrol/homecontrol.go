package tfhc

import (
	"time"

	"github.com/brutella/hc"
	"github.com/brutella/hc/accessory"
	"github.com/brutella/hc/log"
	"github.com/brutella/hc/util"

	"github.com/cloudkucooland/hdfd/config"
	"github.com/cloudkucooland/hdfd/devices"
	"github.com/cloudkucooland/hdfd/platform"
	"github.com/cloudkucooland/hdfd/thermal"
)

// HCPlatform is the platform handle
type HCPlatform struct {
	Controller *thermal.Controller

	Device    *devices.FanControl
	transport hc.Transport
	done      chan struct{}
}

// Startup builds the bridge and the fan accessory and starts the transport.
func (h *HCPlatform) Startup(c config.Config) platform.Control {
	if !c.HomeKit {
		log.Info.Print("HomeKit disabled")
		return h
	}

	storage, err := util.NewFileStorage(c.HCConfig.StoragePath)
	if err != nil {
		log.Info.Println("unable to get storage", err)
		return h
	}
	serial := util.GetSerialNumberForAccessoryName(c.Name, storage)

	root := accessory.NewBridge(accessory.Info{
		Name:             c.Name,
		ID:               1,
		SerialNumber:     serial,
		Manufacturer:     "deviousness",
		Model:            "hdfd",
		FirmwareRevision: "0.1.0",
	})
	root.Accessory.OnIdentify(func() {
		log.Info.Printf("bridge root identify called: %+v", root.Accessory)
	})

	p := h.Controller.Profile()
	h.Device = devices.NewFanControl(accessory.Info{
		Name:         "Fan",
		ID:           2,
		SerialNumber: c.ID,
		Manufacturer: p.Vendor,
		Model:        p.Product,
	})
	h.Bind()

	transport, err := hc.NewIPTransport(c.HCConfig, root.Accessory, h.Device.Accessory)
	if err != nil {
		log.Info.Println(err)
		return h
	}
	h.transport = transport
	go transport.Start()

	if uri, err := transport.XHMURI(); err == nil {
		log.Info.Printf("add this bridge with: %s", uri)
	}
	return h
}

// Bind connects the accessory's writable characteristics to the controller.
func (h *HCPlatform) Bind() {
	h.Device.Control.On.OnValueRemoteUpdate(func(on bool) {
		v := 0
		if on {
			v = 1
		}
		if err := h.Controller.SetEnabled(v); err != nil {
			log.Info.Println(err)
		}
		h.Refresh()
	})
	// the fan itself is read-only, put back whatever the EC says
	h.Device.Fan.On.OnValueRemoteUpdate(func(bool) {
		h.Refresh()
	})
	h.Refresh()
}

// Refresh pushes the current controller status to HomeKit.
func (h *HCPlatform) Refresh() {
	if h.Device == nil {
		return
	}
	h.Device.Update(h.Controller.Status())
}

// Background re-reads the controller once per control interval.
func (h *HCPlatform) Background() {
	if h.Device == nil {
		return
	}
	h.done = make(chan struct{})
	go func(done chan struct{}) {
		for {
			select {
			case <-done:
				return
			case <-time.After(h.Controller.Interval()):
				h.Refresh()
			}
		}
	}(h.done)
}

// Shutdown is called at process teardown
func (h *HCPlatform) Shutdown() platform.Control {
	if h.done != nil {
		close(h.done)
		h.done = nil
	}
	if h.transport != nil {
		<-h.transport.Stop()
		h.transport = nil
	}
	return h
}
