// Package feed supplies accelerometer samples to the engine and applies
// mechanical transforms to them before decomposition.
package feed

import (
	"time"

	"acc-orientation/internal/geometry/vector"
)

// Source produces the next raw sample for a given elapsed time since the
// feed started. Implementations stand in for the sensor bus, which is owned
// by the host platform and out of scope here.
type Source interface {
	Next(elapsed time.Duration) vector.Vec3
}

// Transform is a mechanical adjustment applied to a raw sample before it is
// decomposed. Each implementation can shift or clip the sample and return an
// optional warning message. The dt parameter is the time step in seconds
// since the last sample.
type Transform interface {
	Apply(dt float64, sample vector.Vec3) (vector.Vec3, string)
}

// Chain is a composite transform that applies multiple transforms in
// sequence, the output of one becoming the input of the next. The last
// non-empty warning message is returned.
type Chain struct {
	Stages []Transform
}

// Apply applies all transforms in the chain, in order.
func (c *Chain) Apply(dt float64, sample vector.Vec3) (vector.Vec3, string) {
	var warning string
	for _, stage := range c.Stages {
		out, w := stage.Apply(dt, sample)
		if w != "" {
			warning = w
		}
		sample = out
	}
	return sample, warning
}

// NoOp is a transform that does nothing.
var NoOp Transform = noOpTransform{}

type noOpTransform struct{}

func (noOpTransform) Apply(dt float64, sample vector.Vec3) (vector.Vec3, string) {
	return sample, ""
}
