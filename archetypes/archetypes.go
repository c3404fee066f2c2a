package archetypes

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/tags"
)

var (
	Agent = newArchetype(
		tags.Agent,
		components.Transform,
		components.Velocity,
		components.Tuning,
		components.Ground,
		components.Transition,
		components.Input,
		components.Object,
		components.Actions,
	)
	Prop = newArchetype(
		tags.Prop,
		components.Transform,
		components.Object,
		components.Actions,
	)
	Tile = newArchetype(
		tags.Tile,
		components.Transform,
		components.Object,
	)
	Proxy = newArchetype(
		tags.Proxy,
		components.Interpolation,
	)
	Space = newArchetype(
		tags.Space,
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus cs.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := append(append([]donburi.IComponentType{}, a.components...), cs...)
	return w.Entry(w.Create(all...))
}
