package threadpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jzx17/gothreadpool/pkg/checkpoint"
	"github.com/jzx17/gothreadpool/pkg/queue"
	"github.com/jzx17/gothreadpool/pkg/types"
)

// expecter is implemented by loggers that can evaluate runtime expectations,
// such as *checkpoint.CheckPoint
type expecter interface {
	Expect(cond bool, msg string, args ...any) bool
}

// ThreadPool runs queued tasks on a set of long-lived worker goroutines.
//
// The queue, the activity flag and the worker handles are guarded by mu.
// Workers park on cond until the queue is non-empty or the pool is shut down.
// Shutdown drains: workers keep taking tasks until the queue is empty and only
// then exit. ShutdownNow drops whatever is still queued.
type ThreadPool struct {
	name   string
	config *Config

	tasks   *queue.TaskQueue
	workers []*worker
	active  bool
	nextID  int

	mu   sync.Mutex
	cond *sync.Cond

	// statistics
	live      int32
	busy      int32
	submitted int64
	completed int64
	panicked  int64

	clock        types.Clock
	logger       types.Logger
	metrics      types.Metrics
	errorHandler types.ErrorHandler
}

// New creates an inactive thread pool, then activates config.Workers workers if positive
func New(config *Config) (*ThreadPool, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = checkpoint.New("threadpool")
	}

	p := &ThreadPool{
		name:         config.Name,
		config:       config,
		tasks:        queue.New(),
		clock:        config.Clock,
		logger:       logger,
		metrics:      config.Metrics,
		errorHandler: config.ErrorHandler,
	}
	p.cond = sync.NewCond(&p.mu)

	p.Activate(config.Workers)
	return p, nil
}

// Name returns the pool name
func (p *ThreadPool) Name() string {
	return p.name
}

// Activate starts n more workers and marks the pool active.
// Workers accumulate across calls. n <= 0 is a no-op.
func (p *ThreadPool) Activate(n int) *ThreadPool {
	if n <= 0 {
		return p
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < n; i++ {
		w := newWorker(p.nextID)
		p.nextID++
		p.workers = append(p.workers, w)
		atomic.AddInt32(&p.live, 1)
		go p.run(w)
	}
	p.active = true

	p.metrics.RecordWorkers(p.name, int(atomic.LoadInt32(&p.live)))
	p.logger.Debug("workers activated", "pool", p.name, "added", n, "threads", len(p.workers))
	return p
}

// AddTask appends task to the queue and wakes the workers.
// It never blocks on task execution and may be called from inside a running task.
// Nil tasks are ignored.
func (p *ThreadPool) AddTask(task types.Task) *ThreadPool {
	if task == nil {
		return p
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.tasks.Add(task)
	atomic.AddInt64(&p.submitted, 1)
	p.metrics.RecordTaskSubmitted(p.name)
	p.metrics.RecordQueueDepth(p.name, p.tasks.Size())
	p.cond.Broadcast()
	return p
}

// AddTasks appends several tasks in order with a single wake-up
func (p *ThreadPool) AddTasks(tasks ...types.Task) *ThreadPool {
	p.mu.Lock()
	defer p.mu.Unlock()

	added := 0
	for _, task := range tasks {
		if task == nil {
			continue
		}
		p.tasks.Add(task)
		p.metrics.RecordTaskSubmitted(p.name)
		added++
	}
	if added == 0 {
		return p
	}

	atomic.AddInt64(&p.submitted, int64(added))
	p.metrics.RecordQueueDepth(p.name, p.tasks.Size())
	p.cond.Broadcast()
	return p
}

// Shutdown clears the activity flag and wakes every worker.
// Queued tasks are still drained before the workers exit. Calling it again is a no-op.
func (p *ThreadPool) Shutdown() *ThreadPool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		p.active = false
		p.logger.Info("thread pool shutting down", "pool", p.name, "queued", p.tasks.Size(), "threads", len(p.workers))
	}
	p.cond.Broadcast()
	return p
}

// ShutdownNow clears the activity flag, drops every queued task and wakes the workers.
// Tasks already running finish. It returns the number of abandoned tasks.
// Futures of abandoned tasks never resolve.
func (p *ThreadPool) ShutdownNow() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active = false
	dropped := p.tasks.Clear()
	p.metrics.RecordQueueDepth(p.name, 0)
	p.cond.Broadcast()

	if dropped > 0 {
		p.logger.Warn("thread pool abandoned queued tasks", "pool", p.name, "dropped", dropped)
	}
	return dropped
}

// Wait blocks until every worker has exited, then forgets their handles.
// Without a prior Shutdown it blocks until another goroutine shuts the pool down.
// Waiting on a pool with no workers returns immediately.
func (p *ThreadPool) Wait() {
	workers := p.snapshotAndWake()
	for _, w := range workers {
		<-w.done
	}
	p.forget(workers)
}

// WaitContext is Wait bounded by ctx. On cancellation the handles are kept
// so a later Wait can still join them.
func (p *ThreadPool) WaitContext(ctx context.Context) error {
	workers := p.snapshotAndWake()
	for _, w := range workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			return fmt.Errorf("waiting for %d workers: %w", len(workers), ctx.Err())
		}
	}
	p.forget(workers)
	return nil
}

// Close shuts the pool down and waits for every worker. It always returns nil.
func (p *ThreadPool) Close() error {
	p.Shutdown().Wait()
	return nil
}

// snapshotAndWake sends a final wake-up and copies the worker handles
func (p *ThreadPool) snapshotAndWake() []*worker {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cond.Broadcast()
	workers := make([]*worker, len(p.workers))
	copy(workers, p.workers)
	return workers
}

// forget removes joined handles. Handles added by a concurrent Activate are kept.
func (p *ThreadPool) forget(joined []*worker) {
	if len(joined) == 0 {
		return
	}

	gone := make(map[*worker]struct{}, len(joined))
	for _, w := range joined {
		gone[w] = struct{}{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	kept := p.workers[:0]
	for _, w := range p.workers {
		if _, ok := gone[w]; !ok {
			kept = append(kept, w)
		}
	}
	for i := len(kept); i < len(p.workers); i++ {
		p.workers[i] = nil
	}
	p.workers = kept
	p.logger.Debug("workers joined", "pool", p.name, "joined", len(joined), "threads", len(p.workers))
}

// Active reports whether the pool accepts work for execution
func (p *ThreadPool) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Threads returns the number of worker handles not yet joined by Wait
func (p *ThreadPool) Threads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Tasks returns the number of queued tasks
func (p *ThreadPool) Tasks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasks.Size()
}

// State returns the lifecycle state
func (p *ThreadPool) State() types.PoolState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *ThreadPool) stateLocked() types.PoolState {
	switch {
	case p.active:
		return types.StateActive
	case len(p.workers) > 0:
		return types.StateDraining
	default:
		return types.StateInactive
	}
}

// Stats returns a snapshot of the pool
func (p *ThreadPool) Stats() types.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return types.PoolStats{
		Name:           p.name,
		State:          p.stateLocked(),
		Threads:        len(p.workers),
		LiveWorkers:    int(atomic.LoadInt32(&p.live)),
		BusyWorkers:    int(atomic.LoadInt32(&p.busy)),
		QueuedTasks:    p.tasks.Size(),
		TotalSubmitted: atomic.LoadInt64(&p.submitted),
		TotalCompleted: atomic.LoadInt64(&p.completed),
		TotalPanicked:  atomic.LoadInt64(&p.panicked),
	}
}

func (p *ThreadPool) expect(cond bool, msg string, args ...any) {
	if e, ok := p.logger.(expecter); ok {
		e.Expect(cond, msg, args...)
		return
	}
	if !cond {
		p.logger.Error("expectation failed: "+msg, args...)
	}
}
