package recorder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acc-orientation/internal/engine"
	"acc-orientation/internal/geometry/vector"
	"acc-orientation/internal/orientation"
)

func TestDisabledRecorder(t *testing.T) {
	rec, err := New("")
	require.NoError(t, err)
	require.Nil(t, rec)

	// nil receiver is a no-op, not a panic
	assert.NoError(t, rec.Write(engine.SensorState{}))
	assert.NoError(t, rec.Close())
}

func TestWriteReadings(t *testing.T) {
	dir := t.TempDir()
	rec, err := New(dir)
	require.NoError(t, err)

	ts := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	states := []engine.SensorState{
		{
			Raw:       vector.Vec3{X: 0.1, Y: -0.2, Z: 9.81},
			Magnitude: orientation.Magnitude{Up: 9.8, Front: -0.2, Right: 0.1},
			TS:        ts,
		},
		{
			Raw:       vector.Vec3{Z: -9.81},
			Magnitude: orientation.Magnitude{Up: -9.81},
			TS:        ts.Add(20 * time.Millisecond),
			Warning:   "saturation: sample clipped to full-scale range",
		},
	}
	for _, st := range states {
		require.NoError(t, rec.Write(st))
	}
	require.NoError(t, rec.Close())

	data, err := os.ReadFile(filepath.Join(dir, "readings.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.Equal(t, "ts,raw_x,raw_y,raw_z,up,front,right,warning", lines[0])
	assert.Contains(t, lines[1], "9.81")
	assert.Contains(t, lines[2], "saturation")
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "run1")
	rec, err := New(dir)
	require.NoError(t, err)
	defer rec.Close()

	_, err = os.Stat(filepath.Join(dir, "readings.csv"))
	assert.NoError(t, err)
}
