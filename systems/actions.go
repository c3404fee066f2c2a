package systems

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/actions"
	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/logger"
)

// WorldEnv exposes entity transforms in a donburi world to action queues.
type WorldEnv struct {
	World donburi.World
}

func (env WorldEnv) Exists(e donburi.Entity) bool {
	return env.World.Valid(e) && env.World.Entry(e).HasComponent(components.Transform)
}

func (env WorldEnv) Position(e donburi.Entity) mgl.Vec3 {
	return components.Transform.Get(env.World.Entry(e)).Position
}

func (env WorldEnv) SetPosition(e donburi.Entity, p mgl.Vec3) {
	components.Transform.Get(env.World.Entry(e)).Position = p
}

func (env WorldEnv) Rotation(e donburi.Entity) mgl.Quat {
	return components.Transform.Get(env.World.Entry(e)).Rotation
}

func (env WorldEnv) SetRotation(e donburi.Entity, q mgl.Quat) {
	components.Transform.Get(env.World.Entry(e)).Rotation = q
}

// ActionContext builds the context for e's queue.
func ActionContext(w donburi.World, e donburi.Entity, dt float64) actions.Context {
	return actions.Context{Env: WorldEnv{World: w}, Agent: e, Delta: dt}
}

// UpdateActions ticks every action queue once. Failed actions have already
// been skipped by the queue; they are only logged here.
func UpdateActions(w donburi.World, dt float64) {
	components.Actions.Each(w, func(e *donburi.Entry) {
		q := components.Actions.Get(e).Queue
		if q == nil {
			return
		}
		if err := q.Tick(ActionContext(w, e.Entity(), dt)); err != nil {
			logger.L().Warn("action canceled", "entity", e.Entity(), "err", err)
		}
	})
}
