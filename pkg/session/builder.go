package session

import "fmt"

// MachineBuilder provides the main entry point for building session machines
type MachineBuilder interface {
	State(id State) StateBuilder
	Build() (*Definition, error)
}

// StateBuilder handles state configuration
type StateBuilder interface {
	To(target State) TransitionBuilder
	ToSelf() TransitionBuilder

	OnEntry(action ActionFunc) StateBuilder
	Initial() StateBuilder
	Final() StateBuilder

	State(id State) StateBuilder
	Build() (*Definition, error)
}

// TransitionBuilder handles transition configuration with inline actions
type TransitionBuilder interface {
	// Event binding
	On(event string) TransitionBuilder

	// Actions
	Do(action ActionFunc) TransitionBuilder

	// Multiple transitions from same state
	To(target State) TransitionBuilder
	ToSelf() TransitionBuilder

	// Navigation back
	State(id State) StateBuilder
	Build() (*Definition, error)
}

type machineBuilderImpl struct {
	initialState State
	order        []State
	states       map[State]*stateConfig
	transitions  []*Transition
}

// NewMachine creates a new session machine builder
func NewMachine() MachineBuilder {
	return &machineBuilderImpl{
		states: make(map[State]*stateConfig),
	}
}

// State declares a state, or returns the builder of an already declared one
func (mb *machineBuilderImpl) State(id State) StateBuilder {
	if _, exists := mb.states[id]; !exists {
		mb.states[id] = &stateConfig{id: id}
		mb.order = append(mb.order, id)
	}
	return &stateBuilderImpl{machineBuilder: mb, config: mb.states[id]}
}

// Build validates the configuration and returns the machine definition
func (mb *machineBuilderImpl) Build() (*Definition, error) {
	if err := mb.validate(); err != nil {
		return nil, err
	}

	def := &Definition{
		initialState: mb.initialState,
		order:        append([]State(nil), mb.order...),
		states:       make(map[State]stateConfig, len(mb.states)),
		transitions:  make(map[State][]Transition),
	}
	for id, config := range mb.states {
		def.states[id] = *config
	}
	for _, transition := range mb.transitions {
		def.transitions[transition.SourceState] = append(def.transitions[transition.SourceState], *transition)
	}
	return def, nil
}

// validate checks the machine configuration
func (mb *machineBuilderImpl) validate() error {
	if mb.initialState == "" {
		return NewConfigurationError("MachineBuilder", "no initial state defined")
	}

	for _, transition := range mb.transitions {
		if transition.EventName == "" {
			return NewConfigurationError("MachineBuilder",
				fmt.Sprintf("transition %s->%s has no event", transition.SourceState, transition.TargetState))
		}
		if _, exists := mb.states[transition.TargetState]; !exists {
			return NewConfigurationError("MachineBuilder",
				fmt.Sprintf("target state '%s' does not exist for transition", transition.TargetState))
		}
		if mb.states[transition.SourceState].final {
			return NewConfigurationError("MachineBuilder",
				fmt.Sprintf("final state '%s' cannot have outgoing transitions", transition.SourceState))
		}
	}

	return nil
}

func (mb *machineBuilderImpl) addTransition(source, target State) TransitionBuilder {
	transition := NewTransition(source, target, "")
	mb.transitions = append(mb.transitions, transition)
	return &transitionBuilderImpl{machineBuilder: mb, transition: transition}
}

type stateBuilderImpl struct {
	machineBuilder *machineBuilderImpl
	config         *stateConfig
}

// To creates a transition to another state
func (sb *stateBuilderImpl) To(target State) TransitionBuilder {
	return sb.machineBuilder.addTransition(sb.config.id, target)
}

// ToSelf creates a transition that stays in this state
func (sb *stateBuilderImpl) ToSelf() TransitionBuilder {
	return sb.machineBuilder.addTransition(sb.config.id, sb.config.id)
}

// OnEntry sets the entry action
func (sb *stateBuilderImpl) OnEntry(action ActionFunc) StateBuilder {
	sb.config.onEntry = action
	return sb
}

// Initial marks this state as the initial state
func (sb *stateBuilderImpl) Initial() StateBuilder {
	sb.machineBuilder.initialState = sb.config.id
	return sb
}

// Final marks this state as terminal
func (sb *stateBuilderImpl) Final() StateBuilder {
	sb.config.final = true
	return sb
}

// State switches to configuring another state
func (sb *stateBuilderImpl) State(id State) StateBuilder {
	return sb.machineBuilder.State(id)
}

// Build builds the machine definition
func (sb *stateBuilderImpl) Build() (*Definition, error) {
	return sb.machineBuilder.Build()
}

type transitionBuilderImpl struct {
	machineBuilder *machineBuilderImpl
	transition     *Transition
}

// On binds the transition to an event
func (tb *transitionBuilderImpl) On(event string) TransitionBuilder {
	tb.transition.EventName = event
	return tb
}

// Do adds an action to this transition
func (tb *transitionBuilderImpl) Do(action ActionFunc) TransitionBuilder {
	tb.transition.Action = action
	return tb
}

// To creates another transition from the same source state
func (tb *transitionBuilderImpl) To(target State) TransitionBuilder {
	return tb.machineBuilder.addTransition(tb.transition.SourceState, target)
}

// ToSelf creates another self transition from the same source state
func (tb *transitionBuilderImpl) ToSelf() TransitionBuilder {
	source := tb.transition.SourceState
	return tb.machineBuilder.addTransition(source, source)
}

// State switches to configuring another state
func (tb *transitionBuilderImpl) State(id State) StateBuilder {
	return tb.machineBuilder.State(id)
}

// Build builds the machine definition
func (tb *transitionBuilderImpl) Build() (*Definition, error) {
	return tb.machineBuilder.Build()
}
