package session

import (
	"errors"
	"sync"
	"testing"
)

// TestObserver is a mock observer that captures all observer events
type TestObserver struct {
	mutex        sync.RWMutex
	Transitions  []TransitionRecord
	StateEnters  []State
	EventRejects []string
}

type TransitionRecord struct {
	From  State
	To    State
	Event string
}

func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) OnTransition(from State, to State, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = append(o.Transitions, TransitionRecord{From: from, To: to, Event: event.GetName()})
}

func (o *TestObserver) OnStateEnter(state State) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateEnters = append(o.StateEnters, state)
}

func (o *TestObserver) OnEventRejected(event Event, reason string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.EventRejects = append(o.EventRejects, event.GetName())
}

func (o *TestObserver) TransitionCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Transitions)
}

// createSessionMachine builds the operator session layout with a road counter
// standing in for the junction
func createSessionMachine(t *testing.T, capacity int) (*Machine, *int) {
	t.Helper()
	roads := 0
	def, err := NewMachine().
		State(NotStarted).Initial().
		To(Menu).On(EventInitialize).
		State(Menu).
		ToSelf().On(EventAddRoad).Do(func(Event) error {
		if roads >= capacity {
			return errors.New("full")
		}
		roads++
		return nil
	}).
		To(SystemView).On(EventOpenSystem).
		To(Quit).On(EventQuit).
		State(SystemView).
		To(Menu).On(EventContinue).
		State(Quit).Final().
		Build()
	if err != nil {
		t.Fatalf("Expected no error building machine, got: %v", err)
	}
	return def.CreateInstance(), &roads
}

func AssertState(t *testing.T, machine *Machine, expected State) {
	t.Helper()
	if actual := machine.CurrentState(); actual != expected {
		t.Errorf("Expected state '%s', got '%s'", expected, actual)
	}
}

func AssertEventProcessed(t *testing.T, result *EventResult, expected bool) {
	t.Helper()
	if result.Processed != expected {
		t.Errorf("Expected event processed=%v, got %v (reason: %s, error: %v)",
			expected, result.Processed, result.RejectionReason, result.Error)
	}
}

func AssertStateChanged(t *testing.T, result *EventResult, from, to State) {
	t.Helper()
	if !result.StateChanged {
		t.Error("Expected state to change")
	}
	if result.PreviousState != from {
		t.Errorf("Expected previous state '%s', got '%s'", from, result.PreviousState)
	}
	if result.CurrentState != to {
		t.Errorf("Expected current state '%s', got '%s'", to, result.CurrentState)
	}
}
