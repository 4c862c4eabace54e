package async

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrPoolShutDown is returned when submitting to a pool that has been shut down
var ErrPoolShutDown = errors.New("worker pool shut down")

// SafeGo executes fn in a goroutine bounded by timeout. Panics and errors are
// logged, never propagated.
//
// Example:
//
//	SafeGo(ctx, log, 5*time.Second, "plugin discovery", func(ctx context.Context) error {
//	    _, err := loader.DiscoverPlugins(ctx)
//	    return err
//	})
func SafeGo(parentCtx context.Context, log logrus.FieldLogger, timeout time.Duration, taskName string, fn func(context.Context) error) {
	go func() {
		_ = run(parentCtx, log, timeout, taskName, fn)
	}()
}

// SafeGoNoError is like SafeGo but for functions that don't return errors
func SafeGoNoError(parentCtx context.Context, log logrus.FieldLogger, timeout time.Duration, taskName string, fn func(context.Context)) {
	SafeGo(parentCtx, log, timeout, taskName, func(ctx context.Context) error {
		fn(ctx)
		return nil
	})
}

// run executes fn synchronously with the SafeGo guarantees and returns its
// error, or a panic converted to an error.
func run(parentCtx context.Context, log logrus.FieldLogger, timeout time.Duration, taskName string, fn func(context.Context) error) (err error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	ctx, cancel := context.WithTimeout(parentCtx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"task":  taskName,
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("PANIC in background task")
			err = fmt.Errorf("panic in %s: %v", taskName, r)
		}
	}()

	if err = fn(ctx); err != nil {
		log.WithError(err).WithField("task", taskName).Warn("Background task failed")
	}
	return err
}

// WorkerPool runs submitted tasks on a fixed number of workers
type WorkerPool struct {
	workers      int
	taskName     string
	timeout      time.Duration
	log          logrus.FieldLogger
	workCh       chan func(context.Context) error
	doneCh       chan struct{}
	errCh        chan error
	onError      func(error)
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	closed       bool
	shutdownOnce sync.Once
}

// NewWorkerPool creates a new worker pool and starts its workers.
//
// Example:
//
//	pool := NewWorkerPool(ctx, log, 8, "seed", 30*time.Second)
//	defer pool.Shutdown(5 * time.Second)
//
//	pool.Submit(func(ctx context.Context) error {
//	    return store.Create(ctx, category)
//	})
func NewWorkerPool(ctx context.Context, log logrus.FieldLogger, workers int, taskName string, timeout time.Duration) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		workers:  workers,
		taskName: taskName,
		timeout:  timeout,
		log:      log,
		workCh:   make(chan func(context.Context) error, workers*2),
		doneCh:   make(chan struct{}),
		errCh:    make(chan error, workers*10),
		ctx:      ctx,
		cancel:   cancel,
	}

	go func() {
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				pool.worker(id)
			}(i)
		}
		wg.Wait()
		close(pool.doneCh)
	}()

	return pool
}

// Submit adds a task to the worker pool
func (p *WorkerPool) Submit(fn func(context.Context) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx.Err() != nil {
		return ErrPoolShutDown
	}

	select {
	case p.workCh <- fn:
		return nil
	case <-p.ctx.Done():
		return ErrPoolShutDown
	}
}

// close stops intake; queued tasks still drain
func (p *WorkerPool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.workCh)
	}
}

// Shutdown stops intake and waits up to timeout for queued tasks to finish
func (p *WorkerPool) Shutdown(timeout time.Duration) error {
	var shutdownErr error

	p.shutdownOnce.Do(func() {
		p.close()

		select {
		case <-p.doneCh:
			p.cancel()
		case <-time.After(timeout):
			p.cancel()
			shutdownErr = fmt.Errorf("worker pool shutdown timed out after %v", timeout)
		}
	})

	return shutdownErr
}

// Errors returns a channel that receives worker errors
func (p *WorkerPool) Errors() <-chan error {
	return p.errCh
}

func (p *WorkerPool) worker(id int) {
	for {
		select {
		case <-p.ctx.Done():
			return

		case fn, ok := <-p.workCh:
			if !ok {
				return
			}
			err := run(p.ctx, p.log.WithField("worker", id), p.timeout, p.taskName, fn)
			if err == nil {
				continue
			}
			if p.onError != nil {
				p.onError(err)
				continue
			}
			select {
			case p.errCh <- err:
			default:
				p.log.WithError(err).Warn("Worker error channel full, dropping error")
			}
		}
	}
}

// Batch processes items concurrently and returns every error encountered.
//
// Example:
//
//	errs := Batch(ctx, log, categories, 8, "seed", 10*time.Second, func(ctx context.Context, c *content.Category) error {
//	    return store.Create(ctx, c)
//	})
func Batch[T any](ctx context.Context, log logrus.FieldLogger, items []T, workers int, taskName string, timeout time.Duration,
	fn func(context.Context, T) error) []error {

	pool := NewWorkerPool(ctx, log, workers, taskName, timeout)

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	pool.onError = record

	for _, item := range items {
		if err := pool.Submit(func(ctx context.Context) error {
			return fn(ctx, item)
		}); err != nil {
			record(err)
			break
		}
	}

	pool.close()
	<-pool.doneCh
	pool.cancel()

	return errs
}
