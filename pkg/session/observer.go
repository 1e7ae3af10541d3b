package session

import "sync"

// Observer represents an entity that observes the session lifecycle
type Observer interface {
	// OnTransition is called when a state transition occurs
	OnTransition(from State, to State, event Event)

	// OnStateEnter is called when entering a new state
	OnStateEnter(state State)

	// OnEventRejected is called when an event is rejected
	OnEventRejected(event Event, reason string)
}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	mutex     sync.RWMutex
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// NotifyTransition notifies all observers of a state transition
func (om *ObserverManager) NotifyTransition(from State, to State, event Event) {
	for _, observer := range om.snapshot() {
		observer.OnTransition(from, to, event)
	}
}

// NotifyStateEnter notifies all observers of a state entry
func (om *ObserverManager) NotifyStateEnter(state State) {
	for _, observer := range om.snapshot() {
		observer.OnStateEnter(state)
	}
}

// NotifyEventRejected notifies all observers of a rejected event
func (om *ObserverManager) NotifyEventRejected(event Event, reason string) {
	for _, observer := range om.snapshot() {
		observer.OnEventRejected(event, reason)
	}
}
