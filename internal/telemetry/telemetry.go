package telemetry

import (
	"net/http"
	"time"

	"github.com/klokku/freelancer/internal/event_bus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Telemetry owns the application collectors. Each instance registers on its
// own registry so several applications can live in one process (tests).
type Telemetry struct {
	registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	CollectionSaves     *prometheus.CounterVec
	TimerRunning        prometheus.Gauge
}

func New() *Telemetry {
	t := &Telemetry{
		registry: prometheus.NewRegistry(),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "path", "status"},
		),
		CollectionSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collection_saves_total",
				Help: "Total number of record collection writes",
			},
			[]string{"key"},
		),
		TimerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timer_running",
			Help: "1 while the work timer is running",
		}),
	}
	t.registry.MustRegister(t.HTTPRequestDuration, t.CollectionSaves, t.TimerRunning)
	return t
}

func (t *Telemetry) RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	t.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{Registry: t.registry})
}

// Subscribe keeps the collectors in sync with the domain events. The returned
// function removes every subscription.
func (t *Telemetry) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubs := []func(){
		event_bus.SubscribeTyped(bus, event_bus.CollectionSaved,
			func(e event_bus.EventT[event_bus.CollectionSavedData]) error {
				t.CollectionSaves.WithLabelValues(e.Data.Key).Inc()
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.TimerStarted,
			func(e event_bus.EventT[event_bus.TimerStartedData]) error {
				t.TimerRunning.Set(1)
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.TimerStopped,
			func(e event_bus.EventT[event_bus.TimerStoppedData]) error {
				t.TimerRunning.Set(0)
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.DataReset,
			func(e event_bus.EventT[event_bus.DataResetData]) error {
				t.TimerRunning.Set(0)
				return nil
			}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// SubscribeAudit logs every domain event at debug level.
func SubscribeAudit(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubs := []func(){
		event_bus.SubscribeTyped(bus, event_bus.CollectionSaved,
			func(e event_bus.EventT[event_bus.CollectionSavedData]) error {
				log.Debugf("audit: saved %d record(s) to %s", e.Data.Count, e.Data.Key)
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.TimerStarted,
			func(e event_bus.EventT[event_bus.TimerStartedData]) error {
				log.Debugf("audit: timer started for project %s at %s (%q, rate %.2f)",
					e.Data.ProjectId, e.Data.Start.Format(time.RFC3339), e.Data.Description, e.Data.HourlyRate)
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.TimerStopped,
			func(e event_bus.EventT[event_bus.TimerStoppedData]) error {
				log.Debugf("audit: timer stopped for project %s after %v, entry %s",
					e.Data.ProjectId, e.Data.Duration, e.Data.TimeEntryId)
				return nil
			}),
		event_bus.SubscribeTyped(bus, event_bus.DataReset,
			func(e event_bus.EventT[event_bus.DataResetData]) error {
				log.Debugf("audit: all data deleted, timer was running: %t", e.Data.TimerWasRunning)
				return nil
			}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
