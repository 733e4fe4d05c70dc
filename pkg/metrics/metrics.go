// Package metrics exports client-mode telemetry as Prometheus collectors.
//
// A Collector plugs into the machine three ways: as an attempt reporter, as
// the machine observer, and as the link broadcaster.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stactl/stactl-go/pkg/attempt"
	"github.com/stactl/stactl-go/pkg/wifi"
)

const namespace = "stactl"

// Collector holds the client-mode metric vectors for one interface.
type Collector struct {
	attemptsStarted  *prometheus.CounterVec
	attemptsEnded    *prometheus.CounterVec
	attemptDuration  *prometheus.HistogramVec
	transitions      *prometheus.CounterVec
	currentState     *prometheus.GaugeVec
	eventsDispatched *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	defects          *prometheus.CounterVec
	rssi             prometheus.Gauge
	signalLevel      prometheus.Gauge
	supplicantState  *prometheus.GaugeVec
}

// New creates the collectors for iface and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func New(reg prometheus.Registerer, iface string) *Collector {
	labels := prometheus.Labels{"iface": iface}
	c := &Collector{
		attemptsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "attempt",
			Name:        "started_total",
			Help:        "Connection attempts begun, by roam type.",
			ConstLabels: labels,
		}, []string{"roam_type"}),
		attemptsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "attempt",
			Name:        "ended_total",
			Help:        "Connection attempts ended, by failure code.",
			ConstLabels: labels,
		}, []string{"code"}),
		attemptDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "attempt",
			Name:        "duration_seconds",
			Help:        "Time from attempt start to end.",
			ConstLabels: labels,
			Buckets:     []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}, []string{"code"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "machine",
			Name:        "transitions_total",
			Help:        "State machine transitions.",
			ConstLabels: labels,
		}, []string{"from", "to"}),
		currentState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "machine",
			Name:        "state",
			Help:        "1 for the active leaf state, 0 otherwise.",
			ConstLabels: labels,
		}, []string{"state"}),
		eventsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "machine",
			Name:        "events_total",
			Help:        "Events dispatched, by kind and outcome.",
			ConstLabels: labels,
		}, []string{"event", "outcome"}),
		dispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "machine",
			Name:        "dispatch_duration_seconds",
			Help:        "Time spent handling one event.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		defects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "machine",
			Name:        "defects_total",
			Help:        "Invariant violations caught by the dispatch loop.",
			ConstLabels: labels,
		}, []string{"kind"}),
		rssi: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "link",
			Name:        "rssi_dbm",
			Help:        "Last signal strength reading.",
			ConstLabels: labels,
		}),
		signalLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "link",
			Name:        "signal_level",
			Help:        "Coarse signal level bucket.",
			ConstLabels: labels,
		}),
		supplicantState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "link",
			Name:        "supplicant_state",
			Help:        "1 for the current supplicant state, 0 otherwise.",
			ConstLabels: labels,
		}, []string{"state"}),
	}
	reg.MustRegister(
		c.attemptsStarted,
		c.attemptsEnded,
		c.attemptDuration,
		c.transitions,
		c.currentState,
		c.eventsDispatched,
		c.dispatchDuration,
		c.defects,
		c.rssi,
		c.signalLevel,
		c.supplicantState,
	)
	return c
}

// AttemptStarted implements attempt.Reporter.
func (c *Collector) AttemptStarted(a attempt.Attempt) {
	c.attemptsStarted.WithLabelValues(a.RoamType.String()).Inc()
}

// AttemptEnded implements attempt.Reporter.
func (c *Collector) AttemptEnded(o attempt.Outcome) {
	code := o.Code.String()
	c.attemptsEnded.WithLabelValues(code).Inc()
	c.attemptDuration.WithLabelValues(code).Observe(o.Duration().Seconds())
}

// StateChanged records a transition and moves the state gauge.
func (c *Collector) StateChanged(from, to string) {
	c.transitions.WithLabelValues(from, to).Inc()
	c.currentState.WithLabelValues(from).Set(0)
	c.currentState.WithLabelValues(to).Set(1)
}

// EventDispatched counts one handled event.
func (c *Collector) EventDispatched(what, outcome string, elapsed time.Duration) {
	c.eventsDispatched.WithLabelValues(what, outcome).Inc()
	c.dispatchDuration.Observe(elapsed.Seconds())
}

// Defect counts an invariant violation.
func (c *Collector) Defect(kind string) {
	c.defects.WithLabelValues(kind).Inc()
}

// SignalChanged records a new signal level.
func (c *Collector) SignalChanged(rssi, level int) {
	c.rssi.Set(float64(rssi))
	c.signalLevel.Set(float64(level))
}

// SupplicantStateChanged moves the supplicant state gauge.
func (c *Collector) SupplicantStateChanged(state wifi.SupplicantState) {
	c.supplicantState.Reset()
	c.supplicantState.WithLabelValues(state.String()).Set(1)
}

var _ attempt.Reporter = (*Collector)(nil)
