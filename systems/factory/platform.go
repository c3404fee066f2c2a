package factory

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/actions"
	"github.com/automoto/steadystep/archetypes"
	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/shared/leveldata"
	"github.com/automoto/steadystep/surface"
	"github.com/automoto/steadystep/systems"
)

// propThickness lifts a prop's top face above the tiles it slides over so
// the probe prefers it.
const propThickness = 0.01

// CreateProp spawns a scripted surface at the first point of its path. When
// the path has more points it patrols them in a loop, pausing at each.
func CreateProp(w donburi.World, p leveldata.Prop) (*donburi.Entry, error) {
	if len(p.Path) == 0 {
		return nil, fmt.Errorf("prop %q has no path", p.Name)
	}

	prop := archetypes.Prop.Spawn(w)
	start := p.Path[0]
	components.Transform.SetValue(prop, components.NewTransform(start))

	data := components.ObjectData{HalfX: p.HalfX, HalfZ: p.HalfZ, Height: propThickness}
	if grid, ok := Grid(w); ok {
		data.Object = grid.Add(prop.Entity(), start, p.HalfX, p.HalfZ, start.Y()+propThickness, surface.TagFor(p.Surface))
	}
	components.Object.SetValue(prop, data)

	q := actions.NewQueue()
	components.Actions.SetValue(prop, components.ActionsData{Queue: q})

	if len(p.Path) < 2 {
		return prop, nil
	}

	ctx := systems.ActionContext(w, prop.Entity(), 0)
	opts := actions.Config{Repeat: actions.Forever}
	// Visit every point after the first, then return home.
	for i := 1; i <= len(p.Path); i++ {
		target := p.Path[i%len(p.Path)]
		if err := q.Enqueue(ctx, actions.MoveTo(target, p.Speed, false), opts); err != nil {
			return nil, fmt.Errorf("prop %q: %w", p.Name, err)
		}
		opts = actions.Config{}
		if p.Wait > 0 {
			if err := q.Enqueue(ctx, actions.Wait(p.Wait), opts); err != nil {
				return nil, fmt.Errorf("prop %q: %w", p.Name, err)
			}
		}
	}
	return prop, nil
}
