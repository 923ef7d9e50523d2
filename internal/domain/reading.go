package domain

import (
	"math"
	"time"
)

// Reading is one timestamped temperature/humidity measurement.
type Reading struct {
	Timestamp    time.Time
	TemperatureF float64
	Humidity     float64
}

// Equal reports whether two readings are the same at second precision.
func (r Reading) Equal(other Reading) bool {
	if !r.Timestamp.Truncate(time.Second).Equal(other.Timestamp.Truncate(time.Second)) {
		return false
	}
	return sameFloat(r.TemperatureF, other.TemperatureF) && sameFloat(r.Humidity, other.Humidity)
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

// AppendStatus reports what happened to a single append.
type AppendStatus int

const (
	// AppendWritten means the reading is durably stored.
	AppendWritten AppendStatus = iota
	// AppendRecreated means the backing file was missing and has been
	// recreated empty; the reading was not written.
	AppendRecreated
	// AppendFailed means an I/O failure lost the reading.
	AppendFailed
)

func (s AppendStatus) String() string {
	switch s {
	case AppendWritten:
		return "written"
	case AppendRecreated:
		return "recreated"
	case AppendFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Lost reports whether the reading behind this status was dropped.
func (s AppendStatus) Lost() bool {
	return s != AppendWritten
}

// Submission is a raw measurement addressed to a named sensor log.
type Submission struct {
	Sensor       string
	TemperatureF float64
	Humidity     float64
}

// Batch groups submissions delivered to the ingest pool together.
type Batch struct {
	ID          string
	Submissions []Submission
}
