package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrTimeout", ErrTimeout},
		{"ErrInvalidConfig", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Errorf("expected error, got nil")
			}
			if tt.err.Error() == "" {
				t.Errorf("expected non-empty error message")
			}
		})
	}
}

func TestTaskPanicError(t *testing.T) {
	t.Run("string panic", func(t *testing.T) {
		err := NewTaskPanicError("workers", "boom")

		if err.Error() != "task panicked in pool workers: boom" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if err.Unwrap() != nil {
			t.Errorf("expected nil cause for non-error panic value")
		}
	})

	t.Run("error panic unwraps", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewTaskPanicError("", cause)

		if !errors.Is(err, cause) {
			t.Errorf("expected errors.Is to find the cause")
		}
		if err.Error() != "task panicked: disk full" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("context and stack trace", func(t *testing.T) {
		err := NewTaskPanicError("p", 42).
			WithContext("worker_id", 3).
			WithContext("stack_trace", "goroutine 1")

		if err.Context["worker_id"] != 3 {
			t.Errorf("expected worker_id 3, got %v", err.Context["worker_id"])
		}
		if err.StackTrace() != "goroutine 1" {
			t.Errorf("unexpected stack trace %q", err.StackTrace())
		}
	})

	t.Run("IsTaskPanic through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("job failed: %w", NewTaskPanicError("p", "x"))

		if !IsTaskPanic(wrapped) {
			t.Errorf("expected wrapped panic to be detected")
		}
		if IsTaskPanic(errors.New("plain")) {
			t.Errorf("plain error must not be a task panic")
		}
	})
}
