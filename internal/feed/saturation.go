package feed

import (
	"acc-orientation/internal/geometry/vector"
)

// Saturation models the sensor's full-scale range: any component beyond
// ±FullScale is clipped to the rail, the way a real accelerometer saturates
// instead of reporting values outside its range.
type Saturation struct {
	// FullScale is the maximum representable component magnitude, in the
	// sample's units.
	FullScale float64
}

// Apply clips each component of the sample to the full-scale range.
// A warning is returned whenever clipping occurred, since a saturated sample
// no longer points in the true direction of the measured acceleration.
func (s Saturation) Apply(dt float64, sample vector.Vec3) (vector.Vec3, string) {
	clipped := false
	out := vector.Vec3{
		X: s.clip(sample.X, &clipped),
		Y: s.clip(sample.Y, &clipped),
		Z: s.clip(sample.Z, &clipped),
	}
	if clipped {
		return out, "saturation: sample clipped to full-scale range"
	}
	return out, ""
}

func (s Saturation) clip(c float64, clipped *bool) float64 {
	if c > s.FullScale {
		*clipped = true
		return s.FullScale
	}
	if c < -s.FullScale {
		*clipped = true
		return -s.FullScale
	}
	return c
}

// DefaultSaturation returns a Saturation matching a ±16 g accelerometer
// range expressed in m/s².
func DefaultSaturation() Saturation {
	return Saturation{FullScale: 16 * 9.80665}
}
