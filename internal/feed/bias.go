package feed

import (
	"acc-orientation/internal/geometry/vector"
)

// Bias represents a constant additive offset on every sample, the shape a
// miscalibrated or deliberately offset sensor produces. Units match the
// sample's (m/s² for accelerometer feeds).
type Bias struct {
	// Offset is added to each sample componentwise.
	Offset vector.Vec3
}

// Apply shifts the sample by the configured offset. Time step is irrelevant
// for a constant bias.
func (b Bias) Apply(dt float64, sample vector.Vec3) (vector.Vec3, string) {
	return sample.Add(b.Offset), ""
}

// None returns a Bias with zero offset.
func None() Bias {
	return Bias{}
}
