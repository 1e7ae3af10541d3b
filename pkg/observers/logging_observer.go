// Package observers provides observers for monitoring the session machine
// and the junction
package observers

import (
	"github.com/go-logr/logr"

	"github.com/anggasct/roadlight/pkg/logging"
	"github.com/anggasct/roadlight/pkg/session"
	"github.com/anggasct/roadlight/pkg/traffic"
)

// LoggingObserver logs session and junction events
type LoggingObserver struct {
	traffic.BaseObserver
	logger logr.Logger
}

var (
	_ session.Observer = &LoggingObserver{}
	_ traffic.Observer = &LoggingObserver{}
)

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger logr.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// NewDefaultLoggingObserver creates a logging observer named "session"
func NewDefaultLoggingObserver(logger logr.Logger) *LoggingObserver {
	return NewLoggingObserver(logger.WithName("session"))
}

// OnTransition logs transitions
func (o *LoggingObserver) OnTransition(from session.State, to session.State, event session.Event) {
	o.logger.V(logging.VERBOSE).Info("Transition", "from", from, "to", to,
		"event", event.GetName(), "eventID", event.GetID())
}

// OnStateEnter logs state entry
func (o *LoggingObserver) OnStateEnter(state session.State) {
	o.logger.V(logging.DEBUG).Info("Entering state", "state", state)
}

// OnEventRejected logs rejected events
func (o *LoggingObserver) OnEventRejected(event session.Event, reason string) {
	o.logger.Info("Event rejected", "event", event.GetName(), "eventID", event.GetID(), "reason", reason)
}

// OnRoadAdded logs added roads
func (o *LoggingObserver) OnRoadAdded(name string, queueLen int) {
	o.logger.Info("Road added", "road", name, "queueLen", queueLen)
}

// OnRoadDeleted logs deleted roads
func (o *LoggingObserver) OnRoadDeleted(name string, queueLen int) {
	o.logger.Info("Road deleted", "road", name, "queueLen", queueLen)
}

// OnRotation logs open road changes
func (o *LoggingObserver) OnRotation(from string, to string) {
	o.logger.V(logging.VERBOSE).Info("Rotation", "from", from, "to", to)
}

// OnTick logs every second of the road clock
func (o *LoggingObserver) OnTick(elapsed int) {
	o.logger.V(logging.TRACE).Info("Tick", "elapsed", elapsed)
}

// OnQueueError logs rejected queue operations
func (o *LoggingObserver) OnQueueError(err error) {
	o.logger.V(logging.VERBOSE).Info("Queue operation rejected", "reason", err.Error())
}
