package system

import "github.com/younwookim/tileclash/internal/domain/geom"

// Intent is the per-tick input snapshot handed to the simulation.
// Pressed fields are edge-triggered, held fields level-triggered.
type Intent struct {
	MoveLeft    bool
	MoveRight   bool
	JumpHeld    bool
	JumpPressed bool
	DownHeld    bool
	Fire        bool

	// Aim is a world-space point the equipped weapon points at.
	Aim geom.Vec
}

// Direction returns -1, 0 or 1 for the horizontal move input.
func (in Intent) Direction() float64 {
	var dir float64
	if in.MoveLeft {
		dir--
	}
	if in.MoveRight {
		dir++
	}
	return dir
}
