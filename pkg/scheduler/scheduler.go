package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type workRequest struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

type worker struct {
	done   chan any
	closed chan struct{}
	wg     *sync.WaitGroup
}

func (w worker) Work(r workRequest) {
	defer w.wg.Done()

	r.c <- w.call(r)

	select {
	case w.done <- struct{}{}:
	case <-w.closed:
	}
}

func (w worker) call(r workRequest) (result Result[any]) {
	defer func() {
		if p := recover(); p != nil {
			zap.S().Named("scheduler").Errorw("work panicked", "panic", p)
			result = Result[any]{Err: fmt.Errorf("worker panicked: %v", p)}
		}
	}()

	v, err := r.fn(r.ctx)
	return Result[any]{Data: v, Err: err}
}

// Scheduler runs work on a fixed pool of workers. Work is started in the order it was added.
type Scheduler struct {
	workers    *queue[worker]
	workQueue  *queue[workRequest]
	done       chan any
	work       chan workRequest
	closed     chan struct{}
	runDone    chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
	mainCtx    context.Context
	mainCancel context.CancelFunc
}

func NewScheduler(nbWorkers int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		workQueue:  &queue[workRequest]{},
		done:       make(chan any),
		work:       make(chan workRequest),
		closed:     make(chan struct{}),
		runDone:    make(chan struct{}),
		mainCtx:    ctx,
		mainCancel: cancel,
	}

	s.workers = &queue[worker]{}
	for range max(nbWorkers, 1) {
		s.workers.Push(s.newWorker())
	}

	go s.run()
	return s
}

// AddWork queues the work and returns its future.
// Once the scheduler is closed the future resolves with context.Canceled.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	select {
	case s.work <- workRequest{fn: w, c: c, ctx: ctx}:
	case <-s.closed:
		c <- Result[any]{Err: context.Canceled}
	}

	return NewFuture(c, cancel)
}

// Close cancels all work, resolves queued work with context.Canceled and
// waits for running work to return.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.mainCancel()
		<-s.runDone
		s.wg.Wait()
	})
}

func (s *Scheduler) newWorker() worker {
	return worker{done: s.done, closed: s.closed, wg: &s.wg}
}

func (s *Scheduler) run() {
	defer close(s.runDone)

	for {
		select {
		case w := <-s.work:
			s.workQueue.Push(w)
			if s.workers.Len() == 0 {
				continue
			}
			s.dispatch(s.workQueue.Pop())
		case <-s.done:
			s.workers.Push(s.newWorker())

			if s.workQueue.Len() == 0 {
				continue
			}
			s.dispatch(s.workQueue.Pop())
		case <-s.closed:
			for s.workQueue.Len() > 0 {
				r := s.workQueue.Pop()
				r.c <- Result[any]{Err: context.Canceled}
			}
			return
		}
	}
}

func (s *Scheduler) dispatch(r workRequest) {
	worker := s.workers.Pop()
	s.wg.Add(1)
	go worker.Work(r)
}
