package worker

import (
	"context"
	"errors"
	"sync"

	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/infrastructure/metrics"
)

// Logger defines the logging behaviour required by the worker pool.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Pool drains submission batches and hands every reading to the submitter.
type Pool struct {
	submitter   domain.ReadingSubmitter
	workerCount int
	logger      Logger
}

// New creates a pool with the provided submitter and worker count.
func New(workerCount int, submitter domain.ReadingSubmitter, logger Logger) *Pool {
	if workerCount < 0 {
		workerCount = 0
	}
	return &Pool{submitter: submitter, workerCount: workerCount, logger: logger}
}

// Run starts the worker pool and blocks until the context is cancelled or the
// batches channel is closed.
func (p *Pool) Run(ctx context.Context, batches <-chan domain.Batch) {
	if p.workerCount == 0 {
		p.drainUntilClosed(ctx, batches)
		return
	}

	var wg sync.WaitGroup
	wg.Add(p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		go func() {
			defer wg.Done()
			metrics.WorkerStarted()
			defer metrics.WorkerFinished()
			p.workerLoop(ctx, batches)
		}()
	}
	wg.Wait()
}

func (p *Pool) workerLoop(ctx context.Context, batches <-chan domain.Batch) {
	for {
		select {
		case <-ctx.Done():
			p.debug("worker: context cancelled", "error", ctx.Err())
			return
		case batch, ok := <-batches:
			if !ok {
				return
			}
			p.processBatch(ctx, batch)
		}
	}
}

func (p *Pool) processBatch(ctx context.Context, batch domain.Batch) {
	for _, sub := range batch.Submissions {
		if ctx.Err() != nil {
			p.debug("worker: aborting batch", "batch", batch.ID, "error", ctx.Err())
			return
		}

		status, err := p.submitter.SubmitReading(ctx, sub.Sensor, sub.TemperatureF, sub.Humidity)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			metrics.IncUnknownSensor()
			p.warn("worker: unknown sensor", "batch", batch.ID, "sensor", sub.Sensor)
		case err != nil:
			p.warn("worker: submit failed", "batch", batch.ID, "sensor", sub.Sensor, "error", err)
		case status.Lost():
			p.warn("worker: reading lost", "batch", batch.ID, "sensor", sub.Sensor, "status", status.String())
		default:
			p.debug("worker: stored", "batch", batch.ID, "sensor", sub.Sensor)
		}
	}
}

// drainUntilClosed keeps producers from blocking when the pool has no
// workers. Every discarded batch is logged and counted.
func (p *Pool) drainUntilClosed(ctx context.Context, batches <-chan domain.Batch) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-batches:
			if !ok {
				return
			}
			metrics.AddDroppedSubmissions(len(batch.Submissions))
			p.warn("worker: no workers configured, batch dropped", "batch", batch.ID, "submissions", len(batch.Submissions))
		}
	}
}

func (p *Pool) debug(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg, args...)
}

func (p *Pool) warn(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Warn(msg, args...)
}

var _ domain.WorkerPool = (*Pool)(nil)
