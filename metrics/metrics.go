// Package metrics exports the controller's view of the machine to
// Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudkucooland/hdfd/thermal"
)

const namespace = "hdf"

// Recorder implements thermal.Recorder.
type Recorder struct {
	temperature prometheus.Gauge
	enabled     prometheus.Gauge
	interval    prometheus.Gauge
	fanOn       prometheus.Gauge
	fanOff      prometheus.Gauge
	fanAuto     prometheus.Gauge
	commands    *prometheus.CounterVec
	tickErrors  prometheus.Counter
}

var _ thermal.Recorder = (*Recorder)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	r := &Recorder{
		temperature: gauge("temperature_celsius", "Last temperature read from the embedded controller."),
		enabled:     gauge("enabled", "1 when fan management is on."),
		interval:    gauge("interval_seconds", "Seconds between control ticks."),
		fanOn:       gauge("fan_on_threshold_celsius", "Temperature at which the fan is handed back to the BIOS."),
		fanOff:      gauge("fan_off_threshold_celsius", "Temperature at which the fan is switched off."),
		fanAuto:     gauge("fan_auto", "1 when the last fan command was auto, 0 when it was off."),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fan_commands_total",
			Help:      "Fan commands written to the embedded controller.",
		}, []string{"state"}),
		tickErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_errors_total",
			Help:      "Control ticks skipped because of register errors.",
		}),
	}
	reg.MustRegister(r.temperature, r.enabled, r.interval, r.fanOn, r.fanOff, r.fanAuto, r.commands, r.tickErrors)
	return r
}

func (r *Recorder) Temperature(celsius int) {
	r.temperature.Set(float64(celsius))
}

func (r *Recorder) FanCommand(state thermal.FanState) {
	r.commands.WithLabelValues(state.String()).Inc()
	r.fanAuto.Set(boolGauge(state == thermal.FanAuto))
}

func (r *Recorder) TickFailed(error) {
	r.tickErrors.Inc()
}

func (r *Recorder) SettingsChanged(s thermal.Settings) {
	r.enabled.Set(boolGauge(s.Enabled))
	r.interval.Set(float64(s.Interval))
	r.fanOn.Set(float64(s.FanOn))
	r.fanOff.Set(float64(s.FanOff))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
