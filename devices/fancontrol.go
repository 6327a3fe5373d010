package devices

import (
	"github.com/brutella/hc/accessory"
	"github.com/brutella/hc/characteristic"
	"github.com/brutella/hc/service"

	"github.com/cloudkucooland/hdfd/thermal"
)

// FanControl shows the embedded controller in the Home app: the EC
// temperature, whether the fan is with the BIOS, and a switch for fan
// management.
type FanControl struct {
	*accessory.Accessory
	TempSensor *service.TemperatureSensor
	Fan        *service.Fan
	Control    *ControlSwitch
}

// ControlSwitch is a switch with a visible name, so it does not show up as
// a second copy of the accessory.
type ControlSwitch struct {
	*service.Service

	On   *characteristic.On
	Name *characteristic.Name
}

func NewFanControl(info accessory.Info) *FanControl {
	acc := FanControl{}
	acc.Accessory = accessory.New(info, accessory.TypeFan)

	acc.TempSensor = service.NewTemperatureSensor()
	acc.TempSensor.CurrentTemperature.SetMinValue(0)
	acc.TempSensor.CurrentTemperature.SetMaxValue(127)
	acc.AddService(acc.TempSensor.Service)

	acc.Fan = service.NewFan()
	acc.Fan.Primary = true
	acc.AddService(acc.Fan.Service)

	acc.Control = NewControlSwitch("Fan control")
	acc.AddService(acc.Control.Service)

	return &acc
}

func NewControlSwitch(name string) *ControlSwitch {
	svc := ControlSwitch{}
	svc.Service = service.New(service.TypeSwitch)

	svc.On = characteristic.NewOn()
	svc.AddCharacteristic(svc.On.Characteristic)

	svc.Name = characteristic.NewName()
	svc.Name.SetValue(name)
	svc.AddCharacteristic(svc.Name.Characteristic)

	return &svc
}

// Update copies a controller snapshot into the characteristics. Values that
// could not be read are left as they were.
func (f *FanControl) Update(s thermal.Status) {
	if s.TemperatureError == "" {
		t := float64(s.Temperature)
		if f.TempSensor.CurrentTemperature.GetValue() != t {
			f.TempSensor.CurrentTemperature.SetValue(t)
		}
	}
	if s.FanStateError == "" {
		f.Fan.On.SetValue(s.FanState == thermal.FanAuto.String())
	}
	f.Control.On.SetValue(s.Enabled)
}
