package session

// Transition represents a session state transition
type Transition struct {
	SourceState State
	TargetState State
	EventName   string
	Action      ActionFunc
}

// NewTransition creates a new transition
func NewTransition(sourceState, targetState State, eventName string) *Transition {
	return &Transition{
		SourceState: sourceState,
		TargetState: targetState,
		EventName:   eventName,
	}
}

// IsSelf reports whether the transition returns to its source state
func (t *Transition) IsSelf() bool {
	return t.SourceState == t.TargetState
}
