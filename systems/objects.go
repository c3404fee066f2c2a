package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/surface"
	"github.com/automoto/steadystep/tags"
)

// UpdateObjects moves colliders to follow their transforms. Tiles never move
// and are skipped.
func UpdateObjects(w donburi.World, grid *surface.Grid) {
	components.Object.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(tags.Tile) || !e.HasComponent(components.Transform) {
			return
		}
		obj := components.Object.Get(e)
		if obj.Object == nil {
			return
		}
		pos := components.Transform.Get(e).Position
		grid.Move(obj.Object, pos, pos.Y()+obj.Height)
	})
}
