package session

import (
	"time"

	"github.com/google/uuid"
)

// Event triggers a transition. The road name of an add_road event travels as
// its data.
type Event interface {
	GetID() string
	GetName() string
	GetData() any
	GetTimestamp() time.Time
}

type baseEvent struct {
	id   string
	name string
	data any
	at   time.Time
}

// NewEvent creates an event with a fresh ID
func NewEvent(name string, data any) Event {
	return &baseEvent{id: uuid.NewString(), name: name, data: data, at: time.Now()}
}

func (e *baseEvent) GetID() string           { return e.id }
func (e *baseEvent) GetName() string         { return e.name }
func (e *baseEvent) GetData() any            { return e.data }
func (e *baseEvent) GetTimestamp() time.Time { return e.at }

// EventResult is the outcome of HandleEvent. Processed is false when the
// event was rejected or its action failed; Error then says why.
type EventResult struct {
	Processed       bool
	StateChanged    bool
	PreviousState   State
	CurrentState    State
	Error           error
	RejectionReason string
}

func accepted(previous, current State) *EventResult {
	return &EventResult{
		Processed:     true,
		StateChanged:  previous != current,
		PreviousState: previous,
		CurrentState:  current,
	}
}

func rejected(state State, err error) *EventResult {
	return &EventResult{
		PreviousState:   state,
		CurrentState:    state,
		Error:           err,
		RejectionReason: err.Error(),
	}
}
