package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/roadlight/pkg/session"
	"github.com/anggasct/roadlight/pkg/traffic"
)

// ValidationObserver checks observed behavior against expectations: session
// transitions must be allowed and every rotation must move to the next road
// in insertion order. It mirrors the queue from the notifications it gets.
type ValidationObserver struct {
	traffic.BaseObserver

	allowedTransitions map[session.State]map[session.State]bool
	visitedStates      map[session.State]bool
	roads              []string
	open               int
	violations         []string
	mutex              sync.RWMutex
}

var (
	_ session.Observer = &ValidationObserver{}
	_ traffic.Observer = &ValidationObserver{}
)

// NewValidationObserver creates a new validation observer
func NewValidationObserver() *ValidationObserver {
	return &ValidationObserver{
		allowedTransitions: make(map[session.State]map[session.State]bool),
		visitedStates:      make(map[session.State]bool),
		open:               -1,
	}
}

// NewSessionValidationObserver creates a validation observer that allows
// exactly the transitions of the given definition
func NewSessionValidationObserver(definition *session.Definition) *ValidationObserver {
	o := NewValidationObserver()
	for _, state := range definition.GetStates() {
		for _, transition := range definition.GetTransitions(state) {
			o.AddAllowedTransition(transition.SourceState, transition.TargetState)
		}
	}
	return o
}

// AddAllowedTransition adds an allowed transition
func (o *ValidationObserver) AddAllowedTransition(from, to session.State) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if _, exists := o.allowedTransitions[from]; !exists {
		o.allowedTransitions[from] = make(map[session.State]bool)
	}
	o.allowedTransitions[from][to] = true
}

// OnTransition validates transitions
func (o *ValidationObserver) OnTransition(from session.State, to session.State, event session.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !o.allowedTransitions[from][to] {
		o.violations = append(o.violations, fmt.Sprintf(
			"Invalid transition from '%s' to '%s' on event '%s'", from, to, event.GetName()))
	}
}

// OnStateEnter records visited states
func (o *ValidationObserver) OnStateEnter(state session.State) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.visitedStates[state] = true
}

// OnEventRejected implements session.Observer
func (o *ValidationObserver) OnEventRejected(event session.Event, reason string) {}

// OnRoadAdded mirrors an added road
func (o *ValidationObserver) OnRoadAdded(name string, queueLen int) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.roads = append(o.roads, name)
	if len(o.roads) == 1 {
		o.open = 0
	}
	o.checkLengthLocked("add", queueLen)
}

// OnRoadDeleted mirrors a deleted road
func (o *ValidationObserver) OnRoadDeleted(name string, queueLen int) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if len(o.roads) == 0 {
		o.violations = append(o.violations, fmt.Sprintf("Road '%s' deleted from an empty queue", name))
		return
	}
	if o.roads[0] != name {
		o.violations = append(o.violations, fmt.Sprintf(
			"Deleted road '%s' is not the oldest road '%s'", name, o.roads[0]))
	}
	o.roads = o.roads[1:]
	switch {
	case len(o.roads) == 0:
		o.open = -1
	case o.open > 0:
		o.open--
	}
	o.checkLengthLocked("delete", queueLen)
}

// OnRotation validates that the next road in insertion order opened
func (o *ValidationObserver) OnRotation(from string, to string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.open < 0 {
		o.violations = append(o.violations, fmt.Sprintf("Rotation '%s' -> '%s' on an empty queue", from, to))
		return
	}
	next := (o.open + 1) % len(o.roads)
	if o.roads[o.open] != from || o.roads[next] != to {
		o.violations = append(o.violations, fmt.Sprintf(
			"Rotation '%s' -> '%s' does not follow insertion order ('%s' -> '%s')",
			from, to, o.roads[o.open], o.roads[next]))
	}
	o.open = next
}

func (o *ValidationObserver) checkLengthLocked(operation string, queueLen int) {
	if len(o.roads) != queueLen {
		o.violations = append(o.violations, fmt.Sprintf(
			"Queue length after %s is %d, expected %d", operation, queueLen, len(o.roads)))
	}
}

// GetViolations returns all validation violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// HasViolations returns whether any violations occurred
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// WasVisited reports whether the state was entered
func (o *ValidationObserver) WasVisited(state session.State) bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.visitedStates[state]
}
