// Package rotation provides angle-preserving rotation operators over Vec3.
//
// Both operators take the angle in degrees (fractional degrees allowed) and
// preserve the magnitude of the rotated vector. Degenerate inputs that would
// make the rotation plane or axis undefined are reported as errors instead of
// propagating NaN through the arithmetic.
package rotation

import (
	"errors"
	"fmt"
	"math"

	"acc-orientation/internal/geometry/vector"
)

// ErrCollinear is returned by Toward when the two vectors are parallel, so
// the plane to rotate in is undefined.
var ErrCollinear = errors.New("collinear vectors span no plane")

func radians(angleDeg float64) float64 { return angleDeg * math.Pi / 180 }

// Toward rotates v1 within the plane spanned by v1 and v2, by angleDeg
// measured from v1 toward v2. The result keeps v1's magnitude: at 0° it is v1
// itself, at 90° it is orthogonal to v1 on v2's side of the plane.
//
// The in-plane basis is built by Gram–Schmidt: e1 along v1, e2 along the part
// of v2 orthogonal to e1. Both inputs must be non-zero and non-collinear.
func Toward(v1, v2 vector.Vec3, angleDeg float64) (vector.Vec3, error) {
	e1, err := v1.Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("rotate toward: v1: %w", err)
	}
	if v2.IsZero() {
		return vector.Vec3{}, fmt.Errorf("rotate toward: v2: %w", vector.ErrZeroVector)
	}

	// u2 = v2 - (v2·e1)e1 is v2 with its component along v1 removed.
	u2 := v2.Sub(e1.Scale(v2.Dot(e1)))
	e2, err := u2.Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("rotate toward: %w", ErrCollinear)
	}

	m := v1.Magnitude()
	rad := radians(angleDeg)
	return e1.Scale(m * math.Cos(rad)).Add(e2.Scale(m * math.Sin(rad))), nil
}

// Around rotates v1 about the axis vector by angleDeg, right-hand rule
// around the axis. The axis must be non-zero; its magnitude is irrelevant.
//
// v1 is split into its component parallel to the axis (unchanged by the
// rotation) and the perpendicular remainder, which is rotated within the
// plane normal to the axis (Rodrigues). When v1 is parallel to the axis the
// rotation is a true no-op and v1 is returned unchanged.
func Around(v1, axis vector.Vec3, angleDeg float64) (vector.Vec3, error) {
	if axis.IsZero() {
		return vector.Vec3{}, fmt.Errorf("rotate around: axis: %w", vector.ErrZeroVector)
	}

	par := v1.Project(axis)
	perp := v1.Sub(par)
	if perp.IsZero() {
		return v1, nil
	}

	// w is perpendicular to both the axis and perp; normalized it completes
	// the rotation-plane basis with perp.
	w := axis.Cross(perp)
	wUnit, err := w.Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("rotate around: %w", err)
	}

	rad := radians(angleDeg)
	rotated := perp.Scale(math.Cos(rad)).Add(wUnit.Scale(perp.Magnitude() * math.Sin(rad)))
	return par.Add(rotated), nil
}
