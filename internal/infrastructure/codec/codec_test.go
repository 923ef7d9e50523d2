package codec_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/infrastructure/codec"
)

func TestEncodeLayout(t *testing.T) {
	t.Parallel()

	r := domain.Reading{
		Timestamp:    time.Date(2015, 8, 18, 16, 14, 0, 0, time.UTC),
		TemperatureF: 71.5,
		Humidity:     40,
	}

	assert.Equal(t, "20150818T161400Z === 71.5 === 40", codec.Encode(r))
}

func TestEncodeKeepsOffset(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("EDT", -4*60*60)
	r := domain.Reading{
		Timestamp:    time.Date(2015, 8, 18, 12, 14, 0, 999_000_000, zone),
		TemperatureF: -3.25,
		Humidity:     0.5,
	}

	assert.Equal(t, "20150818T121400-0400 === -3.25 === 0.5", codec.Encode(r))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	zones := []*time.Location{time.UTC, time.FixedZone("", 5*60*60+30*60), time.FixedZone("", -8*60*60)}
	values := []float64{0, -0.1, 70, 71.5, 99.99999, 1e21, 1.0 / 3.0, math.SmallestNonzeroFloat64, math.Inf(1), math.NaN()}

	base := time.Date(2015, 8, 18, 16, 14, 0, 0, time.UTC)
	for i, zone := range zones {
		for j, v := range values {
			r := domain.Reading{
				Timestamp:    base.Add(time.Duration(i*len(values)+j) * time.Hour).In(zone),
				TemperatureF: v,
				Humidity:     values[len(values)-1-j],
			}

			decoded, err := codec.Decode(codec.Encode(r))
			require.NoError(t, err)
			assert.True(t, decoded.Equal(r), "round trip of %+v gave %+v", r, decoded)
		}
	}
}

func TestEncodeSecondsOffsetFallsBackToUTC(t *testing.T) {
	t.Parallel()

	// New York local mean time before 1883.
	lmt := time.FixedZone("LMT", -(4*60*60 + 56*60 + 2))
	r := domain.Reading{Timestamp: time.Date(1850, 1, 1, 12, 0, 0, 0, lmt), TemperatureF: 50, Humidity: 30}

	line := codec.Encode(r)
	assert.Equal(t, "18500101T165602Z === 50 === 30", line)

	decoded, err := codec.Decode(line)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(r), "round trip of %+v gave %+v", r, decoded)
}

func TestCheckTime(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		ts time.Time
		ok bool
	}{
		"common":        {ts: time.Date(2015, 8, 18, 16, 14, 0, 0, time.UTC), ok: true},
		"year zero":     {ts: time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC), ok: true},
		"year 9999":     {ts: time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC), ok: true},
		"year 10000":    {ts: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), ok: false},
		"negative year": {ts: time.Date(-1, 1, 1, 0, 0, 0, 0, time.UTC), ok: false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := codec.CheckTime(tc.ts)
			if tc.ok {
				require.NoError(t, err)
				_, err := codec.Decode(codec.Encode(domain.Reading{Timestamp: tc.ts}))
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, codec.ErrYearOutOfRange)
		})
	}
}

func TestRoundTripDropsSubSeconds(t *testing.T) {
	t.Parallel()

	ts := time.Date(2020, 1, 2, 3, 4, 5, 600_000_000, time.UTC)
	decoded, err := codec.Decode(codec.Encode(domain.Reading{Timestamp: ts}))
	require.NoError(t, err)

	assert.True(t, decoded.Timestamp.Equal(ts.Truncate(time.Second)))
}

func TestDecodeAcceptsLegacyNumbers(t *testing.T) {
	t.Parallel()

	r, err := codec.Decode("20150818T161400Z === 70.0 === 1.0E2\n")
	require.NoError(t, err)

	assert.Equal(t, 70.0, r.TemperatureF)
	assert.Equal(t, 100.0, r.Humidity)
	assert.True(t, r.Timestamp.Equal(time.Date(2015, 8, 18, 16, 14, 0, 0, time.UTC)))
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	t.Parallel()

	r, err := codec.Decode("20150818T161400Z === 70 === 40 === extra")
	require.NoError(t, err)
	assert.Equal(t, 40.0, r.Humidity)
}

func TestDecodeRejectsMalformedLines(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":           "",
		"two fields":      "20150818T161400Z === 70",
		"wrong delimiter": "20150818T161400Z|70|40",
		"rfc3339 time":    "2015-08-18T16:14:00Z === 70 === 40",
		"bad temperature": "20150818T161400Z === warm === 40",
		"bad humidity":    "20150818T161400Z === 70 === 4O",
		"torn number":     "20150818T161400Z === 70 === ",
	}

	for name, line := range cases {
		line := line
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := codec.Decode(line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrFormat))

			var formatErr *domain.FormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, line, formatErr.Line)
		})
	}
}
