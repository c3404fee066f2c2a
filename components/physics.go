package components

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/config"
)

// VelocityData is the agent's velocity record. Added holds one-shot
// impulses and is zero after every integration step.
type VelocityData struct {
	Target  mgl.Vec3 // desired steering velocity, rewritten each tick
	Current mgl.Vec3 // settled velocity carried between ticks
	Added   mgl.Vec3
}

var Velocity = donburi.NewComponentType[VelocityData]()

// TuningData holds the multipliers for the ground the agent stands on. Only
// the ground transition stage writes it.
type TuningData struct {
	config.Multipliers
}

var Tuning = donburi.NewComponentType[TuningData]()
