// Package session provides the operator session state machine. It follows the
// fluent definition style of a finite state machine: states, event-driven
// transitions with actions, and observers.
package session

// State identifies a session state
type State string

const (
	// NotStarted is the state before the junction is configured
	NotStarted State = "not_started"
	// Menu is the state while the operator works with the menu
	Menu State = "menu"
	// SystemView is the state while the junction status is displayed
	SystemView State = "system_view"
	// Quit is the terminal state
	Quit State = "quit"
)

// String returns the state identifier
func (s State) String() string {
	return string(s)
}

// Event names accepted by the session machine
const (
	EventInitialize = "initialize"
	EventAddRoad    = "add_road"
	EventDeleteRoad = "delete_road"
	EventOpenSystem = "open_system"
	EventContinue   = "continue"
	EventQuit       = "quit"
)

// ActionFunc performs an operation during a transition or on state entry
type ActionFunc func(event Event) error

// stateConfig holds the per-state configuration collected by the builder
type stateConfig struct {
	id      State
	final   bool
	onEntry ActionFunc
}
