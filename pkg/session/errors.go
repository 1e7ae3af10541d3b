package session

import (
	"errors"
	"fmt"
)

// ErrorCode classifies session machine errors
type ErrorCode int

const (
	ErrCodeNone ErrorCode = iota
	ErrCodeTransitionNotAllowed
	ErrCodeMachineNotStarted
	ErrCodeActionFailed
	ErrCodeInvalidConfiguration
	ErrCodeInvalidState
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTransitionNotAllowed:
		return "transition_not_allowed"
	case ErrCodeMachineNotStarted:
		return "machine_not_started"
	case ErrCodeActionFailed:
		return "action_failed"
	case ErrCodeInvalidConfiguration:
		return "invalid_configuration"
	case ErrCodeInvalidState:
		return "invalid_state"
	default:
		return "none"
	}
}

// coded is implemented by every error of this package
type coded interface {
	errorCode() ErrorCode
}

// TransitionError reports an event the current state cannot handle
type TransitionError struct {
	Code  ErrorCode
	From  State
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("state '%s' has no transition for event '%s'", e.From, e.Event)
}

func (e *TransitionError) errorCode() ErrorCode { return e.Code }

// NewNoTransitionError reports that from has no transition for event
func NewNoTransitionError(from State, event string) *TransitionError {
	return &TransitionError{Code: ErrCodeTransitionNotAllowed, From: from, Event: event}
}

// ConfigurationError reports an invalid machine definition
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Component, e.Issue)
}

func (e *ConfigurationError) errorCode() ErrorCode { return ErrCodeInvalidConfiguration }

// NewConfigurationError creates a configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{Component: component, Issue: issue}
}

// MachineError reports misuse of a machine instance
type MachineError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *MachineError) errorCode() ErrorCode { return e.Code }

// NewMachineNotStartedError reports an operation on a machine before Start
func NewMachineNotStartedError(operation string) *MachineError {
	return NewMachineError(ErrCodeMachineNotStarted, operation, "session machine is not started")
}

// NewMachineError creates a machine error
func NewMachineError(code ErrorCode, operation string, message string) *MachineError {
	return &MachineError{Code: code, Operation: operation, Message: message}
}

// ActionError wraps the error returned by a transition or entry action
type ActionError struct {
	Event string
	State State
	Err   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action for event '%s' in state '%s': %v", e.Event, e.State, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func (e *ActionError) errorCode() ErrorCode { return ErrCodeActionFailed }

// NewActionError wraps err as the failure of the action for event in state
func NewActionError(event string, state State, err error) *ActionError {
	return &ActionError{Event: event, State: state, Err: err}
}

// IsTransitionError reports whether err is a TransitionError
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}

// IsActionError reports whether err is an ActionError
func IsActionError(err error) bool {
	var ae *ActionError
	return errors.As(err, &ae)
}

// GetErrorCode returns the code of the first session error in err's chain
func GetErrorCode(err error) ErrorCode {
	var c coded
	if errors.As(err, &c) {
		return c.errorCode()
	}
	return ErrCodeNone
}
