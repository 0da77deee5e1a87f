// Package queue provides the FIFO task queue consumed by thread pools
package queue

import (
	"github.com/jzx17/gothreadpool/pkg/types"
)

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // don't compact small backing arrays
	compactShrinkFactor = 4  // compact when len < cap/4
)

// TaskQueue is an unbounded FIFO of tasks.
//
// TaskQueue is not safe for concurrent use. The owning ThreadPool serializes
// every call under its own mutex, so the queue carries no lock of its own.
type TaskQueue struct {
	tasks []types.Task
}

// New creates an empty task queue
func New() *TaskQueue {
	return &TaskQueue{
		tasks: make([]types.Task, 0, defaultQueueCap),
	}
}

// Add appends task to the back of the queue
func (q *TaskQueue) Add(task types.Task) {
	q.tasks = append(q.tasks, task)
}

// Take removes and returns the front task. It returns false if the queue is empty.
func (q *TaskQueue) Take() (types.Task, bool) {
	if len(q.tasks) == 0 {
		return nil, false
	}

	task := q.tasks[0]
	// release the closure held by the backing array
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	q.maybeCompact()

	return task, true
}

// Empty reports whether the queue holds no tasks
func (q *TaskQueue) Empty() bool {
	return len(q.tasks) == 0
}

// Size returns the number of queued tasks
func (q *TaskQueue) Size() int {
	return len(q.tasks)
}

// Clear drops every queued task and returns how many were dropped
func (q *TaskQueue) Clear() int {
	n := len(q.tasks)
	q.tasks = make([]types.Task, 0, defaultQueueCap)
	return n
}

func (q *TaskQueue) maybeCompact() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]types.Task, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)
	compacted := make([]types.Task, n, newCap)
	copy(compacted, q.tasks)
	q.tasks = compacted
}
