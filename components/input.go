package components

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// InputData is written by the host's input mapper and read by the tick.
type InputData struct {
	Steering mgl.Vec2 // x right, y forward; length at most 1
	// Jump latches a press until a tick consumes it, so presses between
	// ticks are not lost.
	Jump bool
}

var Input = donburi.NewComponentType[InputData]()
