package engine

import (
	"time"

	"acc-orientation/internal/geometry/vector"
	"acc-orientation/internal/orientation"
)

// SensorState is a snapshot of the engine after its most recent sample.
type SensorState struct {
	// Raw is the last sample after feed transforms, in the caller's units.
	Raw vector.Vec3 `json:"raw"`

	// Magnitude is Raw decomposed along the calibrated basis. Zero until
	// the engine is calibrated.
	Magnitude orientation.Magnitude `json:"magnitude"`

	Orientation orientation.Orientation `json:"orientation"`
	Calibrated  bool                    `json:"calibrated"`
	Paused      bool                    `json:"paused,omitempty"`

	// Samples counts every decomposed sample since the engine started.
	Samples uint64    `json:"samples"`
	TS      time.Time `json:"ts"`
	Warning string    `json:"warning,omitempty"`
}
