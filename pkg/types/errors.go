// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrTimeout indicates a wait gave up before the result was ready
	ErrTimeout = errors.New("operation timeout")

	// ErrInvalidConfig indicates a pool configuration failed validation
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TaskPanicError carries a panic recovered from a task body
type TaskPanicError struct {
	// Pool is the name of the pool that ran the task
	Pool string

	// Value is the value passed to panic
	Value interface{}

	// Cause is the panic value as an error, when it was one
	Cause error

	// Context contains diagnostic information such as the stack trace
	Context map[string]interface{}
}

// NewTaskPanicError wraps a recovered panic value
func NewTaskPanicError(pool string, value interface{}) *TaskPanicError {
	e := &TaskPanicError{
		Pool:    pool,
		Value:   value,
		Context: make(map[string]interface{}),
	}
	if err, ok := value.(error); ok {
		e.Cause = err
	}
	return e
}

// Error implements the error interface
func (e *TaskPanicError) Error() string {
	if e.Pool == "" {
		return fmt.Sprintf("task panicked: %v", e.Value)
	}
	return fmt.Sprintf("task panicked in pool %s: %v", e.Pool, e.Value)
}

// Unwrap returns the panic value when it was an error
func (e *TaskPanicError) Unwrap() error {
	return e.Cause
}

// WithContext adds error context
func (e *TaskPanicError) WithContext(key string, value interface{}) *TaskPanicError {
	e.Context[key] = value
	return e
}

// StackTrace returns the captured stack trace, if any
func (e *TaskPanicError) StackTrace() string {
	s, _ := e.Context["stack_trace"].(string)
	return s
}

// IsTaskPanic reports whether err wraps a recovered task panic
func IsTaskPanic(err error) bool {
	var pe *TaskPanicError
	return errors.As(err, &pe)
}
