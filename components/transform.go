package components

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TransformData is the authoritative pose of an entity. Only simulation
// ticks write it.
type TransformData struct {
	Position mgl.Vec3
	Rotation mgl.Quat
}

// NewTransform returns a transform at p facing -Z.
func NewTransform(p mgl.Vec3) TransformData {
	return TransformData{Position: p, Rotation: mgl.QuatIdent()}
}

var Transform = donburi.NewComponentType[TransformData]()
