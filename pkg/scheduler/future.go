package scheduler

import (
	"context"
	"sync"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future holds the outcome of a unit of work.
type Future[T any] struct {
	input       chan T
	output      chan T
	inputClosed bool
	value       T
	cancel      context.CancelFunc
	lock        sync.Mutex
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	f := &Future[T]{
		input:  input,
		output: make(chan T, 1),
		cancel: cancel,
	}

	go func() {
		v := <-f.input
		f.lock.Lock()
		f.value = v
		f.inputClosed = true
		f.lock.Unlock()

		f.output <- v
		close(f.output)
		f.cancel()
	}()

	return f
}

// C returns a channel which receives the value once and is closed afterwards.
func (f *Future[T]) C() <-chan T {
	return f.output
}

func (f *Future[T]) Poll() (value T, isResolved bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.inputClosed {
		return f.value, true
	}

	var none T
	return none, false
}

func (f *Future[T]) Stop() {
	f.cancel()
}
