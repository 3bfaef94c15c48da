package engine

import (
	"time"

	"acc-orientation/internal/geometry/vector"
)

type CommandType string

const (
	CmdCalibrate CommandType = "calibrate"
	CmdMeasure   CommandType = "measure"
	CmdPause     CommandType = "pause"
	CmdResume    CommandType = "resume"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

// CalibrateCommand rebuilds the orientation basis from two reference
// vectors: Up is the acceleration measured with the device at rest, UpFront
// the reading with the device tipped toward its front.
type CalibrateCommand struct {
	At      time.Time
	Up      vector.Vec3 `json:"up"`
	UpFront vector.Vec3 `json:"upFront"`
}

func (c CalibrateCommand) Type() CommandType     { return CmdCalibrate }
func (c CalibrateCommand) ReceivedAt() time.Time { return c.At }

// MeasureCommand submits one externally captured sample for decomposition
// against the current orientation.
type MeasureCommand struct {
	At     time.Time
	Sample vector.Vec3 `json:"sample"`
}

func (c MeasureCommand) Type() CommandType     { return CmdMeasure }
func (c MeasureCommand) ReceivedAt() time.Time { return c.At }

// PauseCommand stops the attached feed source from producing samples.
// Externally submitted measurements are still processed.
type PauseCommand struct{ At time.Time }

func (c PauseCommand) Type() CommandType     { return CmdPause }
func (c PauseCommand) ReceivedAt() time.Time { return c.At }

// ResumeCommand restarts a paused feed source.
type ResumeCommand struct{ At time.Time }

func (c ResumeCommand) Type() CommandType     { return CmdResume }
func (c ResumeCommand) ReceivedAt() time.Time { return c.At }
