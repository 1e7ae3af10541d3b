package session

import (
	"fmt"
	"strings"
	"sync"
)

// Definition is an immutable session machine configuration
type Definition struct {
	initialState State
	order        []State
	states       map[State]stateConfig
	transitions  map[State][]Transition
}

// GetInitialState returns the initial state
func (d *Definition) GetInitialState() State {
	return d.initialState
}

// GetStates returns the declared states in declaration order
func (d *Definition) GetStates() []State {
	return append([]State(nil), d.order...)
}

// GetTransitions returns the transitions leaving the given state
func (d *Definition) GetTransitions(state State) []Transition {
	return append([]Transition(nil), d.transitions[state]...)
}

// IsFinal reports whether the state is terminal
func (d *Definition) IsFinal(state State) bool {
	return d.states[state].final
}

// CreateInstance creates a new machine from the definition
func (d *Definition) CreateInstance() *Machine {
	return &Machine{
		definition:   d,
		currentState: d.initialState,
		observers:    NewObserverManager(),
		done:         make(chan struct{}),
	}
}

// Machine is a running session machine. It is safe for concurrent use: the
// operator loop drives it while the timer engine reads the current state.
type Machine struct {
	definition   *Definition
	currentState State
	started      bool
	observers    *ObserverManager
	mutex        sync.RWMutex

	done     chan struct{}
	doneOnce sync.Once
}

// Start starts the machine in its initial state and runs its entry action
func (m *Machine) Start() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.started {
		return NewMachineError(ErrCodeInvalidState, "Start", "machine is already started")
	}
	m.started = true

	m.observers.NotifyStateEnter(m.currentState)
	if err := m.runEntry(m.currentState, nil); err != nil {
		return err
	}
	return nil
}

// CurrentState returns the current state
func (m *Machine) CurrentState() State {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.currentState
}

// IsInState reports whether the machine is in the given state
func (m *Machine) IsInState(state State) bool {
	return m.CurrentState() == state
}

// IfInState runs fn while holding the state, so no transition can happen
// until fn returns. fn must not call back into the machine. IfInState reports
// whether fn ran.
func (m *Machine) IfInState(state State, fn func()) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.currentState != state {
		return false
	}
	fn()
	return true
}

// Done is closed once the machine enters a final state
func (m *Machine) Done() <-chan struct{} {
	return m.done
}

// Definition returns the definition the machine was created from
func (m *Machine) Definition() *Definition {
	return m.definition
}

// AddObserver adds an observer
func (m *Machine) AddObserver(observer Observer) {
	m.observers.AddObserver(observer)
}

// RemoveObserver removes an observer
func (m *Machine) RemoveObserver(observer Observer) {
	m.observers.RemoveObserver(observer)
}

// HandleEvent handles an event synchronously. Transition actions run before
// the state changes; a failing action aborts the transition.
func (m *Machine) HandleEvent(eventName string, eventData any) *EventResult {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.started {
		return rejected(m.currentState, NewMachineNotStartedError("HandleEvent"))
	}

	event := NewEvent(eventName, eventData)
	reject := func(err error) *EventResult {
		m.observers.NotifyEventRejected(event, err.Error())
		return rejected(m.currentState, err)
	}

	if strings.TrimSpace(eventName) == "" {
		return reject(NewMachineError(ErrCodeInvalidState, "HandleEvent", "event name cannot be empty"))
	}

	transition, err := m.findTransition(event)
	if err != nil {
		return reject(err)
	}

	previousState := m.currentState
	if transition.Action != nil {
		if err := safeExecuteAction(transition.Action, event); err != nil {
			return reject(NewActionError(eventName, previousState, err))
		}
	}

	if transition.IsSelf() {
		m.observers.NotifyTransition(previousState, previousState, event)
		return accepted(previousState, previousState)
	}

	result := accepted(previousState, transition.TargetState)
	m.currentState = transition.TargetState
	m.observers.NotifyTransition(previousState, m.currentState, event)
	m.observers.NotifyStateEnter(m.currentState)

	if err := m.runEntry(m.currentState, event); err != nil {
		result.Error = err
	}
	return result
}

// findTransition returns the first transition from the current state bound
// to the event
func (m *Machine) findTransition(event Event) (*Transition, error) {
	for i := range m.definition.transitions[m.currentState] {
		transition := &m.definition.transitions[m.currentState][i]
		if transition.EventName == event.GetName() {
			return transition, nil
		}
	}
	return nil, NewNoTransitionError(m.currentState, event.GetName())
}

func (m *Machine) runEntry(state State, event Event) error {
	config := m.definition.states[state]
	if config.final {
		m.doneOnce.Do(func() { close(m.done) })
	}
	if config.onEntry == nil {
		return nil
	}
	if err := safeExecuteAction(config.onEntry, event); err != nil {
		name := ""
		if event != nil {
			name = event.GetName()
		}
		return NewActionError(name, state, err)
	}
	return nil
}

// safeExecuteAction executes an action with panic recovery
func safeExecuteAction(action ActionFunc, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panic: %v", r)
		}
	}()
	return action(event)
}
