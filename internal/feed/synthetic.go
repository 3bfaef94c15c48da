package feed

import (
	"math"
	"time"

	"acc-orientation/internal/geometry/vector"
)

// Synthetic generates samples for a device slowly tumbling about its X axis:
// the gravity reaction sweeps through the body Y-Z plane while a gentler
// surge oscillates along the body X axis. Useful for demos and soak runs
// when no real sensor is attached.
type Synthetic struct {
	// Gravity is the magnitude of the swept gravity reaction in m/s².
	Gravity float64
	// SweepHz is how many full tumbles the device completes per second.
	SweepHz float64
	// Surge is the amplitude of the fore-aft oscillation in m/s².
	Surge float64
}

// DefaultSynthetic returns a Synthetic with standard gravity, one tumble
// every ten seconds and a gentle 2 m/s² surge.
func DefaultSynthetic() Synthetic {
	return Synthetic{
		Gravity: 9.80665,
		SweepHz: 0.1,
		Surge:   2,
	}
}

// Next returns the sample for the given elapsed time since the feed started.
// At elapsed zero the sample is pure gravity along body Z.
func (s Synthetic) Next(elapsed time.Duration) vector.Vec3 {
	t := elapsed.Seconds()
	theta := 2 * math.Pi * s.SweepHz * t
	return vector.Vec3{
		X: s.Surge * math.Sin(theta/4),
		Y: s.Gravity * math.Sin(theta),
		Z: s.Gravity * math.Cos(theta),
	}
}
