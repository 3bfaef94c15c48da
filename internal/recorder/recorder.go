// Package recorder captures decomposed readings as CSV for offline analysis.
package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"acc-orientation/internal/engine"
)

// Reading is one CSV row: the raw sample and its signed decomposition.
type Reading struct {
	TS      string  `csv:"ts"`
	RawX    float64 `csv:"raw_x"`
	RawY    float64 `csv:"raw_y"`
	RawZ    float64 `csv:"raw_z"`
	Up      float64 `csv:"up"`
	Front   float64 `csv:"front"`
	Right   float64 `csv:"right"`
	Warning string  `csv:"warning"`
}

// Recorder appends readings to readings.csv in the output directory.
type Recorder struct {
	dir  string
	file *os.File

	headerWritten bool
}

// New creates a recorder and initializes the output directory.
// Returns nil if dir is empty (recording disabled).
func New(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, "readings.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating readings.csv: %w", err)
	}

	return &Recorder{dir: dir, file: f}, nil
}

// Write appends one state snapshot to readings.csv. Safe on a nil receiver.
func (r *Recorder) Write(st engine.SensorState) error {
	if r == nil {
		return nil
	}

	records := []Reading{{
		TS:      st.TS.Format(time.RFC3339Nano),
		RawX:    st.Raw.X,
		RawY:    st.Raw.Y,
		RawZ:    st.Raw.Z,
		Up:      st.Magnitude.Up,
		Front:   st.Magnitude.Front,
		Right:   st.Magnitude.Right,
		Warning: st.Warning,
	}}

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing reading: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("writing reading: %w", err)
		}
	}

	return nil
}

// Close flushes and closes the output file. Safe on a nil receiver.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}
