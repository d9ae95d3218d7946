// Package worker runs settlement jobs pulled from the queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/owarai/internal/adapters/mq/queue"
	"github.com/okian/owarai/internal/domain/types"
	"github.com/okian/owarai/pkg/logger"
	"github.com/okian/owarai/pkg/metrics"
)

// Settler settles one stored prediction.
type Settler interface {
	Settle(ctx context.Context, j queue.Job) (types.Settlement, error)
}

// Sink receives the outcome of every successfully processed job.
type Sink interface {
	Report(ctx context.Context, s types.Settlement)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, s types.Settlement)

// Report implements Sink.
func (f SinkFunc) Report(ctx context.Context, s types.Settlement) { f(ctx, s) }

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes jobs until its queue is drained or it is stopped.
type Worker struct {
	queue   Queue
	settler Settler
	sink    Sink
	name    string

	stop chan struct{}
	done chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker.
func NewWorker(q Queue, settler Settler, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		queue:   q,
		settler: settler,
		sink:    sink,
		name:    "worker",
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Named(w.name)
	}
	return w
}

// Run consumes jobs until the queue channel closes, ctx is done or the
// worker is stopped.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "settlement failed",
					logger.String("prediction_id", j.Record.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Done is closed when Run returns.
func (w *Worker) Done() <-chan struct{} { return w.done }

func (w *Worker) process(ctx context.Context, j queue.Job) error { //nolint:gocritic // hugeParam: jobs travel by value over the channel
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(time.Since(start))
	}()

	s, err := w.settler.Settle(ctx, j)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "settle_error")
		return fmt.Errorf("settle %s: %w", j.Record.ID, err)
	}
	if w.sink != nil {
		w.sink.Report(ctx, s)
	}
	return nil
}

// Pool manages a fixed set of workers sharing one queue.
type Pool struct {
	workers []*Worker
	queue   Queue

	stopOnce sync.Once
	logger   logger.Logger
}

// NewPool creates a pool. A non-positive workerCount uses one worker per CPU.
func NewPool(workerCount int, q Queue, settler Settler, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		queue:   q,
		logger:  logger.Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(q, settler, sink, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() {
	for _, w := range p.workers {
		<-w.done
	}
}

// Shutdown closes the queue and lets the workers drain it. If ctx ends
// first the workers are stopped and the remaining jobs are abandoned.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	drained := make(chan struct{})
	go func() {
		p.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		p.stopOnce.Do(func() {
			for _, w := range p.workers {
				close(w.stop)
			}
		})
		p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("workers", len(p.workers)))
		return fmt.Errorf("%w: %w", ErrShutdownTimeout, ctx.Err())
	}
}
