package traffic

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions of the road queue
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Queue already holds capacity roads
	ErrCodeQueueFull
	// Queue holds no roads
	ErrCodeQueueEmpty
	// Capacity is not a positive integer
	ErrCodeInvalidCapacity
	// Interval is not a positive integer
	ErrCodeInvalidInterval
)

// String returns a short label for the code, used as a metrics label
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeQueueFull:
		return "queue_full"
	case ErrCodeQueueEmpty:
		return "queue_empty"
	case ErrCodeInvalidCapacity:
		return "invalid_capacity"
	case ErrCodeInvalidInterval:
		return "invalid_interval"
	default:
		return "none"
	}
}

// QueueError represents road queue errors
type QueueError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *QueueError) Error() string {
	return fmt.Sprintf("queue error during %s: %s", e.Operation, e.Message)
}

// NewQueueFullError creates a new queue full error
func NewQueueFullError(capacity int) *QueueError {
	return &QueueError{
		Code:      ErrCodeQueueFull,
		Operation: "add",
		Message:   fmt.Sprintf("queue is full (capacity %d)", capacity),
	}
}

// NewQueueEmptyError creates a new queue empty error
func NewQueueEmptyError() *QueueError {
	return &QueueError{
		Code:      ErrCodeQueueEmpty,
		Operation: "delete",
		Message:   "queue is empty",
	}
}

// NewInvalidCapacityError creates a new invalid capacity error
func NewInvalidCapacityError(capacity int) *QueueError {
	return &QueueError{
		Code:      ErrCodeInvalidCapacity,
		Operation: "init",
		Message:   fmt.Sprintf("capacity must be positive, got %d", capacity),
	}
}

// NewInvalidIntervalError creates a new invalid interval error
func NewInvalidIntervalError(interval int) *QueueError {
	return &QueueError{
		Code:      ErrCodeInvalidInterval,
		Operation: "init",
		Message:   fmt.Sprintf("interval must be positive, got %d", interval),
	}
}

// IsQueueFullError checks if an error is a queue full error
func IsQueueFullError(err error) bool {
	return GetErrorCode(err) == ErrCodeQueueFull
}

// IsQueueEmptyError checks if an error is a queue empty error
func IsQueueEmptyError(err error) bool {
	return GetErrorCode(err) == ErrCodeQueueEmpty
}

// GetErrorCode returns the error code for queue errors, including wrapped ones
func GetErrorCode(err error) ErrorCode {
	var qe *QueueError
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ErrCodeNone
}
