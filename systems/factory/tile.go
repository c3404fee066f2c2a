package factory

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/archetypes"
	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/shared/leveldata"
	"github.com/automoto/steadystep/surface"
)

// CreateTile spawns a static ground cell whose top face is at y=0.
func CreateTile(w donburi.World, t leveldata.Tile) *donburi.Entry {
	tile := archetypes.Tile.Spawn(w)
	pos := mgl.Vec3{t.X, 0, t.Z}
	components.Transform.SetValue(tile, components.NewTransform(pos))

	data := components.ObjectData{HalfX: 0.5, HalfZ: 0.5}
	if grid, ok := Grid(w); ok {
		data.Object = grid.Add(tile.Entity(), pos, data.HalfX, data.HalfZ, 0, surface.TagFor(t.Surface))
	}
	components.Object.SetValue(tile, data)
	return tile
}

// SurfaceCategory reports the ground category a tile or prop was created with.
func SurfaceCategory(e *donburi.Entry) cfg.GroundCategory {
	obj := components.Object.Get(e)
	if obj.Object == nil {
		return cfg.Normal
	}
	for _, c := range []cfg.GroundCategory{cfg.Slippery, cfg.Conveyor} {
		if obj.HasTags(surface.TagFor(c)) {
			return c
		}
	}
	return cfg.Normal
}
