// Package generator simulates a set of temperature/humidity sensors. It is a
// stand-in for the remote pollers and is only started when configured.
package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/infrastructure/metrics"
)

const (
	minTemperatureF = 60.0
	maxTemperatureF = 85.0
	minHumidity     = 25.0
	maxHumidity     = 65.0
)

// Logger defines the logging behaviour required by the generator.
type Logger interface {
	Debug(msg string, args ...any)
}

// Config describes the runtime characteristics of the generator.
type Config struct {
	Interval   time.Duration
	Sensors    []string
	RandSource rand.Source
}

// Generator produces one batch per interval with a reading for every sensor.
type Generator struct {
	cfg    Config
	logger Logger
	rnd    *rand.Rand
}

// New creates a configured generator instance.
func New(cfg Config, logger Logger) *Generator {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}

	source := cfg.RandSource
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}

	return &Generator{
		cfg:    cfg,
		logger: logger,
		rnd:    rand.New(source),
	}
}

// Run starts generating batches until the provided context is cancelled. The
// output channel is closed once generation stops.
func (g *Generator) Run(ctx context.Context, out chan<- domain.Batch) {
	defer close(out)

	ticker := time.NewTicker(g.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.log("generator: context cancelled", "error", ctx.Err())
			return
		case <-ticker.C:
		}

		batch := domain.Batch{
			ID:          uuid.NewString(),
			Submissions: make([]domain.Submission, len(g.cfg.Sensors)),
		}
		for i, sensor := range g.cfg.Sensors {
			batch.Submissions[i] = domain.Submission{
				Sensor:       sensor,
				TemperatureF: g.between(minTemperatureF, maxTemperatureF),
				Humidity:     g.between(minHumidity, maxHumidity),
			}
		}

		metrics.IncSimulatedBatches()
		g.log("generator: produced batch", "batch", batch.ID, "size", len(batch.Submissions))

		select {
		case <-ctx.Done():
			g.log("generator: stopping before delivering batch", "error", ctx.Err())
			return
		case out <- batch:
		}
	}
}

// between returns a value in [lo, hi) rounded to one decimal place, the
// resolution typical hobby sensors report.
func (g *Generator) between(lo, hi float64) float64 {
	v := lo + g.rnd.Float64()*(hi-lo)
	return float64(int(v*10)) / 10
}

func (g *Generator) log(msg string, args ...any) {
	if g.logger == nil {
		return
	}
	g.logger.Debug(msg, args...)
}

var _ domain.BatchGenerator = (*Generator)(nil)
