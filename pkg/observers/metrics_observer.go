package observers

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anggasct/roadlight/pkg/session"
	"github.com/anggasct/roadlight/pkg/traffic"
)

const metricsNamespace = "roadlight"

// MetricsObserver collects counters about junction and session activity on
// its own registry
type MetricsObserver struct {
	traffic.BaseObserver

	registry    *prometheus.Registry
	ticks       prometheus.Counter
	rotations   prometheus.Counter
	added       prometheus.Counter
	deleted     prometheus.Counter
	queueErrors *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

var (
	_ session.Observer = &MetricsObserver{}
	_ traffic.Observer = &MetricsObserver{}
)

// NewMetricsObserver creates a new metrics observer with a private registry
func NewMetricsObserver() *MetricsObserver {
	o := &MetricsObserver{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Seconds advanced by the road clock.",
		}),
		rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rotations_total",
			Help:      "Open road changes caused by interval expiry.",
		}),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "roads_added_total",
			Help:      "Roads added to the queue.",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "roads_deleted_total",
			Help:      "Roads removed from the queue.",
		}),
		queueErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "queue_errors_total",
			Help:      "Rejected queue operations by error code.",
		}, []string{"code"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "session_transitions_total",
			Help:      "Session state transitions.",
		}, []string{"from", "to"}),
	}

	o.registry.MustRegister(o.ticks, o.rotations, o.added, o.deleted, o.queueErrors, o.transitions)
	return o
}

// Registry returns the registry holding the collectors
func (o *MetricsObserver) Registry() *prometheus.Registry {
	return o.registry
}

// OnTransition counts session transitions
func (o *MetricsObserver) OnTransition(from session.State, to session.State, event session.Event) {
	o.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

// OnStateEnter implements session.Observer
func (o *MetricsObserver) OnStateEnter(state session.State) {}

// OnEventRejected implements session.Observer
func (o *MetricsObserver) OnEventRejected(event session.Event, reason string) {}

// OnRoadAdded counts added roads
func (o *MetricsObserver) OnRoadAdded(name string, queueLen int) {
	o.added.Inc()
}

// OnRoadDeleted counts deleted roads
func (o *MetricsObserver) OnRoadDeleted(name string, queueLen int) {
	o.deleted.Inc()
}

// OnRotation counts rotations
func (o *MetricsObserver) OnRotation(from string, to string) {
	o.rotations.Inc()
}

// OnTick counts road clock seconds
func (o *MetricsObserver) OnTick(elapsed int) {
	o.ticks.Inc()
}

// OnQueueError counts rejected queue operations
func (o *MetricsObserver) OnQueueError(err error) {
	o.queueErrors.WithLabelValues(traffic.GetErrorCode(err).String()).Inc()
}

// Summary returns the current counter values keyed by metric name and labels
func (o *MetricsObserver) Summary() (map[string]float64, error) {
	families, err := o.registry.Gather()
	if err != nil {
		return nil, err
	}

	summary := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName()
			for _, label := range metric.GetLabel() {
				key += "," + label.GetName() + "=" + label.GetValue()
			}
			summary[key] = metric.GetCounter().GetValue()
		}
	}
	return summary, nil
}
