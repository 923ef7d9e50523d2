// Package filelog stores the readings of one sensor in an append-only text
// file, one encoded reading per line, and answers half-open time-range
// queries with a forward scan.
//
// Readings must be appended in non-decreasing timestamp order. The scan stops
// at the first line at or past the end of the requested window, so it never
// looks at the rest of the file and never sorts.
package filelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/infrastructure/codec"
	"sensorlog-service/internal/infrastructure/metrics"
	"sensorlog-service/internal/logging"
)

// Extension is the suffix of every backing file.
const Extension = ".log"

const filePerm = 0o644

// Log owns the backing file of one sensor.
//
// Appends hold the write lock for the whole open-write-sync-close sequence.
// Queries hold the read lock, so they never observe a line that this process
// has only partly written and can run alongside each other.
type Log struct {
	name   string
	path   string
	logger *logging.Logger
	clock  func() time.Time

	mu sync.RWMutex
}

type Option func(*Log)

// WithLogger sets the logger; records are tagged with the sensor and path.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// WithClock overrides the time source used by Record.
func WithClock(clock func() time.Time) Option {
	return func(l *Log) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// FileName derives the backing file name for a sensor.
func FileName(sensor string) string {
	return strings.ReplaceAll(sensor, " ", "_") + Extension
}

// New binds a Log to <root>/<FileName(name)> and creates the file if it does
// not exist yet. Existing contents are kept.
func New(name, root string, opts ...Option) (*Log, error) {
	l := &Log{
		name:  name,
		path:  filepath.Join(root, FileName(name)),
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("sensor", name, "path", l.path)

	if err := createFile(l.path); err != nil {
		return nil, fmt.Errorf("create log file for %q: %w", name, err)
	}
	return l, nil
}

func (l *Log) Name() string {
	return l.name
}

func (l *Log) Path() string {
	return l.path
}

// Append writes one line for the reading. It never returns an error: a lost
// reading is reported through the status and logged.
func (l *Log) Append(reading domain.Reading) domain.AppendStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.appendLocked(reading)
}

// Record stamps the clock, truncated to the second, and appends the reading.
// The stamp is taken under the lock so file order matches timestamp order.
func (l *Log) Record(temperatureF, humidity float64) (domain.Reading, domain.AppendStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()

	reading := domain.Reading{
		Timestamp:    l.clock().Truncate(time.Second),
		TemperatureF: temperatureF,
		Humidity:     humidity,
	}
	return reading, l.appendLocked(reading)
}

func (l *Log) appendLocked(reading domain.Reading) domain.AppendStatus {
	status := domain.AppendFailed
	if err := codec.CheckTime(reading.Timestamp); err != nil {
		l.logError("reading not encodable, reading dropped", err)
	} else {
		status = l.write(codec.Encode(reading) + "\n")
	}
	metrics.RecordAppend(l.name, status.String())
	return status
}

func (l *Log) write(line string) domain.AppendStatus {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l.recreate(err)
		}
		l.logError("append failed, reading dropped", err)
		return domain.AppendFailed
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		l.logError("append failed, reading dropped", err)
		return domain.AppendFailed
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		l.logError("sync failed, reading may be lost", err)
		return domain.AppendFailed
	}
	if err := f.Close(); err != nil {
		l.logError("close failed, reading may be lost", err)
		return domain.AppendFailed
	}
	return domain.AppendWritten
}

// recreate restores an externally deleted backing file. The reading that hit
// the missing file is not retried.
func (l *Log) recreate(cause error) domain.AppendStatus {
	l.logError("backing file missing, recreating it; reading dropped",
		fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, cause))
	metrics.RecordRecreated(l.name)

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		l.logError("recreate log directory failed", err)
		return domain.AppendFailed
	}
	if err := createFile(l.path); err != nil {
		l.logError("recreate log file failed", err)
		return domain.AppendFailed
	}

	l.log("backing file recreated")
	return domain.AppendRecreated
}

// Query returns the readings with start <= timestamp < end in file order.
// An empty or unreadable file yields an empty result. A malformed line in
// the scanned prefix aborts the query with a *domain.FormatError.
func (l *Log) Query(start, end time.Time) ([]domain.Reading, error) {
	began := time.Now()

	l.mu.RLock()
	readings, err := l.scan(start, end)
	l.mu.RUnlock()

	metrics.ObserveQuery(l.name, time.Since(began), errors.Is(err, domain.ErrFormat))
	return readings, err
}

func (l *Log) scan(start, end time.Time) ([]domain.Reading, error) {
	f, err := os.Open(l.path)
	if err != nil {
		l.logError("query could not open backing file", err)
		return []domain.Reading{}, nil
	}
	defer f.Close()

	readings := []domain.Reading{}
	reader := bufio.NewReader(f)
	inWindow := false

	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", l.path, err)
		}
		if line == "" {
			return readings, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, lineNo,
				&domain.FormatError{Line: line, Reason: "unterminated line"})
		}

		reading, err := codec.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, lineNo, err)
		}

		if !inWindow {
			if reading.Timestamp.Before(start) {
				continue
			}
			inWindow = true
		}
		if !reading.Timestamp.Before(end) {
			return readings, nil
		}
		readings = append(readings, reading)
	}
}

func createFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return err
	}
	return f.Close()
}

func (l *Log) log(msg string) {
	l.logger.Info(msg)
}

func (l *Log) logError(msg string, err error) {
	l.logger.Error(msg, logging.AttachError(err)...)
}

var _ domain.ReadingLog = (*Log)(nil)
