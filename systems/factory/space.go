package factory

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/archetypes"
	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/surface"
)

// spaceMargin pads the grid so props may leave the level edge a little.
const spaceMargin = 4

// CreateSpace spawns the surface grid covering a width x depth level whose
// corner sits at the origin.
func CreateSpace(w donburi.World, width, depth int) *donburi.Entry {
	space := archetypes.Space.Spawn(w)
	grid := surface.NewGrid(
		-spaceMargin, -spaceMargin,
		float64(width+2*spaceMargin), float64(depth+2*spaceMargin),
		cfg.Surface.CellSize,
	)
	components.Space.SetValue(space, components.SpaceData{Grid: grid})
	return space
}

// Grid returns the world's surface grid, if one was created.
func Grid(w donburi.World) (*surface.Grid, bool) {
	entry, ok := components.Space.First(w)
	if !ok {
		return nil, false
	}
	return components.Space.Get(entry).Grid, true
}
