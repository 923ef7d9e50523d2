package domain

import (
	"context"
	"time"
)

// ReadingLog is the append-only durable sequence of readings for one sensor.
type ReadingLog interface {
	Name() string
	Append(reading Reading) AppendStatus
	// Record stamps the current time under the log's lock and appends.
	Record(temperatureF, humidity float64) (Reading, AppendStatus)
	Query(start, end time.Time) ([]Reading, error)
}

// LogDirectory resolves sensor names to their logs.
type LogDirectory interface {
	Lookup(name string) (ReadingLog, error)
	Names() []string
}

// ReadingSubmitter accepts new measurements for a named sensor.
type ReadingSubmitter interface {
	SubmitReading(ctx context.Context, sensor string, temperatureF, humidity float64) (AppendStatus, error)
}

// ReadingFetcher answers range queries for a named sensor.
type ReadingFetcher interface {
	FetchReadings(ctx context.Context, sensor string, start, end time.Time) ([]Reading, error)
}

// ReadingService describes the behaviour exposed to collaborators.
type ReadingService interface {
	ReadingSubmitter
	ReadingFetcher
	SensorNames() []string
}

// BatchGenerator produces batches that will be processed by workers.
type BatchGenerator interface {
	Run(ctx context.Context, out chan<- Batch)
}

// WorkerPool consumes batches and submits their readings.
type WorkerPool interface {
	Run(ctx context.Context, batches <-chan Batch)
}
