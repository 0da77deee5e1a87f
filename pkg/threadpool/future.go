package threadpool

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// ErrNilFunc is the failure carried by a Future submitted with a nil function
var ErrNilFunc = errors.New("nil function submitted")

// Future is the pending result of a value-returning task.
// It is fulfilled at most once, with either a value or an error. Once fulfilled
// it can be read any number of times. Discarding a Future is allowed.
type Future[R any] struct {
	done  chan struct{}
	once  sync.Once
	value R
	err   error
	clock types.Clock
}

func newFuture[R any](clock types.Clock) *Future[R] {
	if clock == nil {
		clock = types.NewRealClock()
	}
	return &Future[R]{
		done:  make(chan struct{}),
		clock: clock,
	}
}

// resolve fulfills the future. Only the first call has any effect.
func (f *Future[R]) resolve(value R, err error) bool {
	resolved := false
	f.once.Do(func() {
		if err != nil {
			var zero R
			value = zero
		}
		f.value = value
		f.err = err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done returns a channel closed once the result is available
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the result is available without blocking
func (f *Future[R]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the task has run and returns its value or failure
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is Get bounded by ctx
func (f *Future[R]) GetContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// WaitFor waits at most timeout for the result. It returns types.ErrTimeout
// if the task has not finished in time; the task itself is not interrupted.
func (f *Future[R]) WaitFor(timeout time.Duration) (R, error) {
	if f.Ready() {
		return f.value, f.err
	}

	timer := f.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C():
		var zero R
		return zero, types.ErrTimeout
	}
}

// Submit queues fn on p and returns a Future for its result. It returns before fn runs.
// An error returned by fn, or a panic inside it, fulfills the Future with that failure;
// a panic arrives as *types.TaskPanicError.
func Submit[R any](p *ThreadPool, fn func() (R, error)) *Future[R] {
	f := newFuture[R](p.clock)
	if fn == nil {
		var zero R
		f.resolve(zero, ErrNilFunc)
		return f
	}

	p.AddTask(func() {
		value, err := callCapturing(p, fn)
		f.resolve(value, err)
	})
	return f
}

// SubmitValue is Submit for functions that cannot return an error
func SubmitValue[R any](p *ThreadPool, fn func() R) *Future[R] {
	if fn == nil {
		return Submit[R](p, nil)
	}
	return Submit(p, func() (R, error) {
		return fn(), nil
	})
}

// callCapturing runs fn and turns a panic into a failure
func callCapturing[R any](p *ThreadPool, fn func() (R, error)) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			value = zero
			err = p.panicError(r)
		}
	}()

	return fn()
}
