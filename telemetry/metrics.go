package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/orrery/engine"
)

// Metrics are the prometheus series updated once per tick
type Metrics struct {
	frames       prometheus.Counter
	tickDuration prometheus.Histogram
	sunScale     prometheus.Gauge
	animState    prometheus.Gauge
	activeBodies prometheus.Gauge
	speedFactor  prometheus.Gauge
}

// NewMetrics creates and registers the series on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Simulation ticks processed",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_tick_duration_seconds",
			Help:    "Wall time spent in one simulation tick",
			Buckets: prometheus.ExponentialBuckets(0.000_01, 4, 8),
		}),
		sunScale: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_sun_scale",
			Help: "Current uniform scale of the sun mesh",
		}),
		animState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_anim_state",
			Help: "Sun animation state (0 none, 1 growing, 2 shrinking, 3 plasma)",
		}),
		activeBodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_active_bodies",
			Help: "Bodies currently updated and drawn",
		}),
		speedFactor: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_speed_factor",
			Help: "Simulation speed multiplier",
		}),
	}

	reg.MustRegister(m.frames, m.tickDuration, m.sunScale, m.animState, m.activeBodies, m.speedFactor)
	return m
}

// Observe records one tick
func (m *Metrics) Observe(s *Snapshot, took time.Duration) {
	m.frames.Inc()
	m.tickDuration.Observe(took.Seconds())
	m.sunScale.Set(s.SunScale)
	m.animState.Set(float64(s.anim))
	m.activeBodies.Set(float64(s.ActiveBodies))
	m.speedFactor.Set(s.SpeedFactor)
}

// Hook returns a tick hook that captures, publishes and records each frame
// Either pub or m may be nil
func Hook(pub *Publisher, m *Metrics) engine.TickHook {
	return func(u *engine.Updater, took time.Duration) {
		s := Capture(u)
		if pub != nil {
			pub.Publish(s)
		}
		if m != nil {
			m.Observe(s, took)
		}
	}
}
