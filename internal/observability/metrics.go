package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cory-johannsen/charsim/internal/game/event"
)

const metricsNamespace = "charsim"

// Metrics counts character events for Prometheus.
type Metrics struct {
	Events      *prometheus.CounterVec
	DamageDealt *prometheus.CounterVec
	Deaths      prometheus.Counter
	Level       *prometheus.GaugeVec
}

// NewMetrics registers the event collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// handler, or a fresh registry in tests.
//
// Precondition: reg is non-nil and has none of these collectors yet.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Character events published, by type.",
		}, []string{"type"}),
		DamageDealt: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "damage_dealt_total",
			Help:      "Damage that got through defenses, by attack strategy.",
		}, []string{"strategy"}),
		Deaths: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deaths_total",
			Help:      "Character deaths.",
		}),
		Level: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "character_level",
			Help:      "Current level, by character.",
		}, []string{"character"}),
	}
}

// Attach subscribes the collectors to every event on bus.
func (m *Metrics) Attach(bus *event.Bus) *event.Subscription {
	return bus.Subscribe(m.Handle)
}

// Handle records e. It satisfies event.Handler.
func (m *Metrics) Handle(e event.Event) error {
	m.Events.WithLabelValues(string(e.Type)).Inc()
	switch e.Type {
	case event.DamageDealt:
		m.DamageDealt.WithLabelValues(e.String(event.KeyStrategy)).Add(float64(e.Int(event.KeyAmount)))
	case event.CharacterDied:
		m.Deaths.Inc()
		m.Level.WithLabelValues(e.Actor).Set(float64(e.Int(event.KeyLevel)))
	case event.LevelUp, event.LevelDown:
		m.Level.WithLabelValues(e.Actor).Set(float64(e.Int(event.KeyLevel)))
	}
	return nil
}
