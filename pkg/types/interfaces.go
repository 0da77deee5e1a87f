// Package types defines core interfaces and types for the thread pool library
package types

import (
	"time"
)

// Task is a deferred unit of work. Arguments are supplied through closures.
type Task func()

// PoolState defines the lifecycle state of a thread pool
type PoolState int

const (
	// StateInactive means no worker accepts work: never activated, or fully waited
	StateInactive PoolState = iota
	// StateActive means workers are running and dequeuing tasks
	StateActive
	// StateDraining means shutdown was requested and workers are finishing the queue
	StateDraining
)

// String returns the string representation of PoolState
func (s PoolState) String() string {
	switch s {
	case StateInactive:
		return "Inactive"
	case StateActive:
		return "Active"
	case StateDraining:
		return "Draining"
	default:
		return "Unknown"
	}
}

// PoolStats is a point-in-time snapshot of a thread pool
type PoolStats struct {
	// Name identifies the pool in logs and metrics
	Name string

	// State is the lifecycle state at snapshot time
	State PoolState

	// Threads is the number of worker handles not yet joined by Wait
	Threads int

	// LiveWorkers is the number of worker goroutines still looping
	LiveWorkers int

	// BusyWorkers is the number of workers currently running a task
	BusyWorkers int

	// QueuedTasks is the number of tasks waiting in the queue
	QueuedTasks int

	// TotalSubmitted counts every task ever added
	TotalSubmitted int64

	// TotalCompleted counts tasks that returned normally
	TotalCompleted int64

	// TotalPanicked counts tasks that panicked
	TotalPanicked int64
}

// Logger is the structured logging contract consumed by pools.
// *slog.Logger and *checkpoint.CheckPoint both satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Metrics receives pool events. Implementations must be safe for concurrent use.
type Metrics interface {
	RecordTaskSubmitted(pool string)
	RecordTaskDuration(pool string, duration time.Duration)
	RecordTaskPanic(pool string, panicInfo any)
	RecordQueueDepth(pool string, depth int)
	RecordWorkers(pool string, workers int)
}

// NoopMetrics discards every event
type NoopMetrics struct{}

func (NoopMetrics) RecordTaskSubmitted(string)               {}
func (NoopMetrics) RecordTaskDuration(string, time.Duration) {}
func (NoopMetrics) RecordTaskPanic(string, any)              {}
func (NoopMetrics) RecordQueueDepth(string, int)             {}
func (NoopMetrics) RecordWorkers(string, int)                {}

// ErrorHandler receives failures that escaped fire-and-forget tasks
type ErrorHandler func(error)
