// Package orientation builds a body-fixed (Up, Front, Right) basis from two
// reference vectors and decomposes measured vectors against it.
//
// The caller supplies vUp (typically the gravity reaction measured at rest)
// and vUpFront, a second reference tilted from vUp toward the device's front.
// Find derives the remaining two axes by rotation, so all three basis vectors
// share vUp's magnitude and are mutually orthogonal.
package orientation

import (
	"fmt"

	"acc-orientation/internal/geometry/rotation"
	"acc-orientation/internal/geometry/vector"
)

// Orientation is a right-handed basis of three mutually orthogonal vectors,
// each with the magnitude of the vUp reference it was built from.
type Orientation struct {
	Up    vector.Vec3 `json:"up"`
	Front vector.Vec3 `json:"front"`
	Right vector.Vec3 `json:"right"`
}

// Magnitude holds the signed lengths of a vector's projections onto the three
// basis axes. A negative Front means the vector points backward, a negative
// Right means it points left, and so on.
type Magnitude struct {
	Up    float64 `json:"up"`
	Front float64 `json:"front"`
	Right float64 `json:"right"`
}

// Find builds the orientation basis from the two reference vectors.
//
// Front is vUp rotated 90° toward vUpFront, which lands orthogonal to vUp in
// their shared plane. Right is vUp rotated 90° around the new Front axis.
// Up is vUp unchanged. The references must be non-zero and non-collinear.
func Find(vUp, vUpFront vector.Vec3) (Orientation, error) {
	front, err := rotation.Toward(vUp, vUpFront, 90)
	if err != nil {
		return Orientation{}, fmt.Errorf("front axis: %w", err)
	}
	right, err := rotation.Around(vUp, front, 90)
	if err != nil {
		return Orientation{}, fmt.Errorf("right axis: %w", err)
	}
	return Orientation{Up: vUp, Front: front, Right: right}, nil
}

// Components resolves v into its vector components parallel to each basis
// axis. The per-axis components sum back to v when o is a complete basis.
func Components(v vector.Vec3, o Orientation) Orientation {
	return Orientation{
		Up:    v.Project(o.Up),
		Front: v.Project(o.Front),
		Right: v.Project(o.Right),
	}
}

// Magnitudes resolves v into signed scalar magnitudes along each basis axis:
// the length of the per-axis component, negated when that component points
// against its basis axis. A zero component reports +0.
func Magnitudes(v vector.Vec3, o Orientation) Magnitude {
	c := Components(v, o)
	m := Magnitude{
		Up:    c.Up.Magnitude(),
		Front: c.Front.Magnitude(),
		Right: c.Right.Magnitude(),
	}
	if c.Up.OppositeTo(o.Up) {
		m.Up = -m.Up
	}
	if c.Front.OppositeTo(o.Front) {
		m.Front = -m.Front
	}
	if c.Right.OppositeTo(o.Right) {
		m.Right = -m.Right
	}
	return m
}
