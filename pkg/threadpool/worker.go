package threadpool

import (
	"runtime"
	"sync/atomic"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// worker is the handle of one worker goroutine
type worker struct {
	id   int
	done chan struct{}
}

func newWorker(id int) *worker {
	return &worker{
		id:   id,
		done: make(chan struct{}),
	}
}

// run is the worker loop: take the next task, run it outside the lock, repeat
func (p *ThreadPool) run(w *worker) {
	defer close(w.done)
	defer func() {
		p.mu.Lock()
		live := atomic.AddInt32(&p.live, -1)
		p.metrics.RecordWorkers(p.name, int(live))
		p.mu.Unlock()
	}()

	for {
		task, ok, active := p.next()
		if !ok {
			// only an inactive pool with nothing left to drain releases a worker
			p.expect(!active, "worker exiting while pool is active", "pool", p.name, "worker_id", w.id)
			break
		}
		p.execute(w, task)
	}

	p.logger.Debug("worker exited", "pool", p.name, "worker_id", w.id)
}

// next blocks until a task is available or the pool is inactive with an empty queue.
// active is the activity flag observed when the decision was made.
func (p *ThreadPool) next() (task types.Task, ok bool, active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.active && p.tasks.Empty() {
		p.cond.Wait()
	}

	task, ok = p.tasks.Take()
	if ok {
		p.metrics.RecordQueueDepth(p.name, p.tasks.Size())
	}
	return task, ok, p.active
}

// execute runs a task and records its outcome. A panic never escapes.
func (p *ThreadPool) execute(w *worker, task types.Task) {
	atomic.AddInt32(&p.busy, 1)
	defer atomic.AddInt32(&p.busy, -1)

	start := p.clock.Now()
	perr := p.safeRun(w, task)
	p.metrics.RecordTaskDuration(p.name, p.clock.Since(start))

	if perr == nil {
		atomic.AddInt64(&p.completed, 1)
		return
	}

	atomic.AddInt64(&p.panicked, 1)
	p.metrics.RecordTaskPanic(p.name, perr.Value)
	p.logger.Error("task panicked", "pool", p.name, "worker_id", w.id, "error", perr, "stack_trace", perr.StackTrace())
	if p.errorHandler != nil {
		p.errorHandler(perr)
	}
}

// safeRun executes task with panic recovery support
func (p *ThreadPool) safeRun(w *worker, task types.Task) (perr *types.TaskPanicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = p.panicError(r).WithContext("worker_id", w.id)
		}
	}()

	task()
	return nil
}

// panicError wraps a recovered value together with the current stack
func (p *ThreadPool) panicError(r interface{}) *types.TaskPanicError {
	var buf [4096]byte
	n := runtime.Stack(buf[:], false)

	return types.NewTaskPanicError(p.name, r).
		WithContext("stack_trace", string(buf[:n]))
}
