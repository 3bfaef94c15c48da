// Package vector provides 3D vector operations
package vector

import (
	"errors"
	"math"
)

// ErrZeroVector is returned when an operation requires a direction but the
// vector has no magnitude.
var ErrZeroVector = errors.New("zero-magnitude vector")

// epsilon below which a magnitude is treated as zero. Guards the unit-vector
// and axis computations against denormal garbage as well as exact zeros.
const epsilon = 1e-12

// NewVec3 creates a new 3D vector with the given components
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec3 represents a 3D vector in body-fixed coordinates. Units are whatever
// the caller measures in (typically m/s² for accelerometer samples).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale scales a vector by a scalar
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of two vectors
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Magnitude returns the vector's Euclidean norm
func (v Vec3) Magnitude() float64 { return math.Sqrt(v.Dot(v)) }

// IsZero reports whether the vector's magnitude is indistinguishable from zero
func (v Vec3) IsZero() bool { return v.Magnitude() < epsilon }

// Cross returns the cross product of two vectors (right-hand rule)
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Unit returns a unit vector in the same direction.
// Returns ErrZeroVector when the vector has no direction to normalize.
func (v Vec3) Unit() (Vec3, error) {
	m := v.Magnitude()
	if m < epsilon {
		return Vec3{}, ErrZeroVector
	}
	return v.Scale(1 / m), nil
}

// Project returns the component of v parallel to b, i.e. (v·b / b·b)·b.
// The result points along b, or opposite to it when the angle between
// v and b exceeds 90°. b must be non-zero.
func (v Vec3) Project(b Vec3) Vec3 {
	return b.Scale(v.Dot(b) / b.Dot(b))
}

// OppositeTo reports whether v points away from o, i.e. the angle between
// them exceeds 90°. Exactly perpendicular vectors (dot product zero,
// including either vector being zero) are not opposite.
func (v Vec3) OppositeTo(o Vec3) bool { return v.Dot(o) < 0 }
