package components

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/config"
)

type GroundData struct {
	Category config.GroundCategory
	Previous config.GroundCategory
	// Changed is set on the tick Category differs from the last tick.
	Changed bool
	Surface donburi.Entity
	Tag     string
}

var Ground = donburi.NewComponentType[GroundData]()

// TransitionData is captured on every ground change. Conveyor movement reads
// it instead of live input.
type TransitionData struct {
	Input        mgl.Vec2
	Velocity     mgl.Vec3
	Forward      mgl.Vec3 // unit direction on the ground plane
	ForwardSpeed float64  // never below config.Player.MinConveyorSpeed
	Tick         uint64
}

var Transition = donburi.NewComponentType[TransitionData]()
