package registry_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensorlog-service/internal/domain"
	"sensorlog-service/internal/logging"
	"sensorlog-service/internal/registry"
)

func TestOpenBindsOneLogPerName(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "nested", "logs")
	reg, err := registry.Open(root, []string{"indoor1", " outdoor ", "indoor1", "", "living room"}, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, []string{"indoor1", "living room", "outdoor"}, reg.Names())
	assert.Equal(t, root, reg.Root())

	for _, file := range []string{"indoor1.log", "outdoor.log", "living_room.log"} {
		_, err := os.Stat(filepath.Join(root, file))
		assert.NoError(t, err, file)
	}
}

func TestLookupReturnsSameLog(t *testing.T) {
	t.Parallel()

	reg, err := registry.Open(t.TempDir(), []string{"indoor1"}, nil)
	require.NoError(t, err)

	first, err := reg.Lookup("indoor1")
	require.NoError(t, err)
	second, err := reg.Lookup("indoor1")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "indoor1", first.Name())
}

func TestLookupUnknownIsNotFound(t *testing.T) {
	t.Parallel()

	reg, err := registry.Open(t.TempDir(), []string{"indoor1"}, nil)
	require.NoError(t, err)

	l, err := reg.Lookup("garage")
	assert.Nil(t, l)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOpenRejectsCollidingNames(t *testing.T) {
	t.Parallel()

	_, err := registry.Open(t.TempDir(), []string{"living room", "living_room"}, nil)
	assert.ErrorContains(t, err, "share log file")
}

func TestOpenRejectsPathNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"..", "../escape", `a\b`, "a/b"} {
		_, err := registry.Open(t.TempDir(), []string{name}, nil)
		assert.Error(t, err, name)
	}
}

func TestOpenFailsWhenRootUnavailable(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := registry.Open(filepath.Join(blocker, "logs"), []string{"indoor1"}, nil)
	assert.Error(t, err)
}

func TestLogsAreIndependent(t *testing.T) {
	t.Parallel()

	reg, err := registry.Open(t.TempDir(), []string{"a", "b"}, nil)
	require.NoError(t, err)

	a, err := reg.Lookup("a")
	require.NoError(t, err)
	b, err := reg.Lookup("b")
	require.NoError(t, err)

	ts := time.Date(2015, 8, 18, 16, 14, 0, 0, time.UTC)
	require.Equal(t, domain.AppendWritten, a.Append(domain.Reading{Timestamp: ts, TemperatureF: 70, Humidity: 40}))

	got, err := b.Query(ts, ts.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = a.Query(ts, ts.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
