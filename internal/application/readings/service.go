package readings

import (
	"context"
	"errors"
	"time"

	"sensorlog-service/internal/domain"
)

// ErrNotFound is returned for sensors that are not configured.
var ErrNotFound = domain.ErrNotFound

// Logger defines the logging behaviour required by the service.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Service routes collaborator calls to the per-sensor logs.
type Service struct {
	logs   domain.LogDirectory
	logger Logger
}

// New creates a service backed by the provided log directory.
func New(logs domain.LogDirectory, logger Logger) *Service {
	return &Service{logs: logs, logger: logger}
}

// SubmitReading appends a reading stamped with the current time to the named
// sensor's log. Storage failures are reported only through the status; the
// error is non-nil for unknown sensors or a cancelled context.
func (s *Service) SubmitReading(ctx context.Context, sensor string, temperatureF, humidity float64) (domain.AppendStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.AppendFailed, err
	}

	log, err := s.logs.Lookup(sensor)
	if err != nil {
		return domain.AppendFailed, err
	}

	reading, status := log.Record(temperatureF, humidity)
	if status.Lost() && s.logger != nil {
		s.logger.Warn("reading lost", "sensor", sensor, "status", status.String(), "timestamp", reading.Timestamp)
	}
	return status, nil
}

// FetchReadings returns the named sensor's readings in [start, end). An
// unknown sensor yields ErrNotFound, never an empty result.
func (s *Service) FetchReadings(ctx context.Context, sensor string, start, end time.Time) ([]domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log, err := s.logs.Lookup(sensor)
	if err != nil {
		return nil, err
	}

	readings, err := log.Query(start, end)
	if err != nil {
		if errors.Is(err, domain.ErrFormat) && s.logger != nil {
			s.logger.Warn("query aborted by malformed log line", "sensor", sensor, "error", err.Error())
		}
		return nil, err
	}
	return readings, nil
}

// SensorNames lists the configured sensors.
func (s *Service) SensorNames() []string {
	return s.logs.Names()
}

var _ domain.ReadingService = (*Service)(nil)
