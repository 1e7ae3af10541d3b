package console

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific operator input errors
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Input is not a positive whole number
	ErrCodeInvalidIntegerInput
	// Input is not one of the menu options
	ErrCodeInvalidMenuOption
)

// InputError represents rejected operator input. Input errors are always
// recovered by prompting again.
type InputError struct {
	Code  ErrorCode
	Input string
}

func (e *InputError) Error() string {
	switch e.Code {
	case ErrCodeInvalidIntegerInput:
		return fmt.Sprintf("invalid integer input %q: expected a positive whole number", e.Input)
	case ErrCodeInvalidMenuOption:
		return fmt.Sprintf("invalid menu option %q", e.Input)
	default:
		return fmt.Sprintf("invalid input %q", e.Input)
	}
}

// NewInvalidIntegerInputError creates a new invalid integer input error
func NewInvalidIntegerInputError(input string) *InputError {
	return &InputError{Code: ErrCodeInvalidIntegerInput, Input: input}
}

// NewInvalidMenuOptionError creates a new invalid menu option error
func NewInvalidMenuOptionError(input string) *InputError {
	return &InputError{Code: ErrCodeInvalidMenuOption, Input: input}
}

// GetErrorCode returns the error code for input errors
func GetErrorCode(err error) ErrorCode {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ErrCodeNone
}
