// Package codec converts readings to and from their one-line text form:
//
//	20150818T161400Z === 70 === 40
//
// The timestamp is a fixed-width compact ISO-8601 basic date-time with second
// precision and an explicit offset ("Z" for UTC, "-0400" otherwise).
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sensorlog-service/internal/domain"
)

const (
	// Delimiter separates the fields of an encoded reading.
	Delimiter = " === "
	// TimeLayout is the persisted timestamp format.
	TimeLayout = "20060102T150405Z0700"
)

// Encode renders a reading as a single line without a trailing newline.
// Sub-second precision is dropped.
func Encode(r domain.Reading) string {
	var b strings.Builder
	b.Grow(len(TimeLayout) + 2*len(Delimiter) + 16)
	b.WriteString(FormatTime(r.Timestamp))
	b.WriteString(Delimiter)
	b.WriteString(formatFloat(r.TemperatureF))
	b.WriteString(Delimiter)
	b.WriteString(formatFloat(r.Humidity))
	return b.String()
}

// Decode parses a line produced by Encode. A single trailing newline is
// tolerated; any other deviation yields a *domain.FormatError.
func Decode(line string) (domain.Reading, error) {
	raw := line
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	fields := strings.Split(line, Delimiter)
	if len(fields) < 3 {
		return domain.Reading{}, &domain.FormatError{
			Line:   raw,
			Reason: "expected 3 fields, got " + strconv.Itoa(len(fields)),
		}
	}

	ts, err := ParseTime(fields[0])
	if err != nil {
		return domain.Reading{}, &domain.FormatError{Line: raw, Reason: "bad timestamp", Err: err}
	}
	temp, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return domain.Reading{}, &domain.FormatError{Line: raw, Reason: "bad temperature", Err: err}
	}
	humidity, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return domain.Reading{}, &domain.FormatError{Line: raw, Reason: "bad humidity", Err: err}
	}

	return domain.Reading{Timestamp: ts, TemperatureF: temp, Humidity: humidity}, nil
}

// ErrYearOutOfRange reports a timestamp whose year does not fit the four
// digit field of TimeLayout.
var ErrYearOutOfRange = errors.New("timestamp year outside 0000-9999")

// FormatTime renders t in the persisted timestamp format. Offsets with a
// seconds component, such as local mean time zones, cannot be written in
// ±hhmm form, so those instants are rendered in UTC.
func FormatTime(t time.Time) string {
	return normalize(t).Format(TimeLayout)
}

// CheckTime reports whether t can be written in a form ParseTime reads back.
func CheckTime(t time.Time) error {
	if year := normalize(t).Year(); year < 0 || year > 9999 {
		return fmt.Errorf("%w: %d", ErrYearOutOfRange, year)
	}
	return nil
}

func normalize(t time.Time) time.Time {
	if _, offset := t.Zone(); offset%60 != 0 {
		return t.UTC()
	}
	return t
}

// ParseTime parses a timestamp in the persisted format, keeping its offset.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(TimeLayout, value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
