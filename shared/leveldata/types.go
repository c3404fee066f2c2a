// Package leveldata turns TMX maps into plain level descriptions. It has no
// dependencies on ebitengine, donburi or resolv.
//
// One TMX tile is one world unit. TMX x maps to world X and TMX y maps to
// world Z.
package leveldata

import (
	mgl "github.com/go-gl/mathgl/mgl64"

	"github.com/automoto/steadystep/config"
)

// Level is everything needed to populate a simulation.
type Level struct {
	Name   string
	Width  int // tiles along X
	Depth  int // tiles along Z
	Tiles  []Tile
	Spawns []Spawn
	Props  []Prop
}

// Tile is one ground cell, centred on X/Z.
type Tile struct {
	X, Z    float64
	Surface config.GroundCategory
}

// Spawn is an agent start point.
type Spawn struct {
	Position mgl.Vec3
	Index    int
}

// Prop is a scripted surface that patrols Path. Props with a single point
// stand still.
type Prop struct {
	Name    string
	Path    []mgl.Vec3
	HalfX   float64
	HalfZ   float64
	Speed   float64 // units per second between path points
	Wait    float64 // pause at each point in seconds
	Surface config.GroundCategory
}
