/*
Package threadpool provides a worker pool that runs queued tasks on long-lived worker goroutines.

# Overview

A ThreadPool owns one unbounded FIFO task queue and a set of workers. Each
worker waits until the queue is non-empty or the pool has been shut down,
takes the task at the front, runs it outside the pool lock and repeats.

	pool, err := threadpool.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	pool.Activate(4)
	pool.AddTask(func() {
		// Execute work
	})

# Lifecycle

A pool starts inactive. Activate(n) adds n workers and may be called again to
add more. Shutdown clears the activity flag; workers finish everything still
queued and then exit. Wait blocks until all workers have exited and forgets
their handles, after which the pool can be activated again. Close is
Shutdown followed by Wait.

ShutdownNow is the abandoning variant: queued tasks are dropped, running tasks
finish.

Tasks added before the first Activate stay queued until workers exist.

# Results

Submit wraps a value-returning function and hands back a Future right away:

	future := threadpool.Submit(pool, func() (int, error) {
		return compute()
	})
	sum, err := future.WaitFor(2 * time.Second)

The Future carries either the value or the failure. A panic inside the
function arrives as *types.TaskPanicError.

# Failures

A panic escaping a fire-and-forget task is recovered by the worker, logged,
counted, and passed to Config.ErrorHandler. The worker keeps running.

# Configuration

Config can be built in code or loaded from YAML or JSON with LoadConfig.
THREADPOOL_NAME and THREADPOOL_WORKERS override file values.
*/
package threadpool
