package systems

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/shared/gamemath"
)

// UpdatePhysics steers, turns and integrates every agent by one tick.
func UpdatePhysics(w donburi.World, dt float64) {
	components.Velocity.Each(w, func(e *donburi.Entry) {
		input := components.Input.Get(e)
		vel := components.Velocity.Get(e)
		tuning := components.Tuning.Get(e)
		ground := components.Ground.Get(e)
		transform := components.Transform.Get(e)

		vel.Target = targetVelocity(e, ground.Category, input, tuning.Multipliers)

		// Jump is edge triggered: the latch is consumed whether or not the
		// current ground allows a jump.
		if input.Jump {
			input.Jump = false
			gravity := cfg.Player.BaseGravity * tuning.Gravity
			height := cfg.Player.BaseJumpHeight * tuning.JumpHeight
			vel.Added[1] += gamemath.JumpImpulse(gravity, height)
		}

		transform.Rotation = gamemath.TurnTowards(transform.Rotation, vel.Target, cfg.Player.TurnRate, dt)

		transform.Position, vel.Current = gamemath.Integrate(transform.Position, vel.Current, vel.Added, gamemath.StepParams{
			Target:       vel.Target,
			Acceleration: cfg.Player.BaseAcceleration * tuning.Acceleration,
			Damping:      cfg.Player.BaseDamping * tuning.Damping,
			Gravity:      cfg.Player.BaseGravity * tuning.Gravity,
			Delta:        dt,
		})
		vel.Added = mgl.Vec3{}
	})
}

// targetVelocity is the steering velocity for this tick. On a conveyor live
// input is ignored in favour of the direction and speed captured on entry.
func targetVelocity(e *donburi.Entry, category cfg.GroundCategory, input *components.InputData, m cfg.Multipliers) mgl.Vec3 {
	if category == cfg.Conveyor {
		t := components.Transition.Get(e)
		return t.Forward.Mul(t.ForwardSpeed)
	}
	steer := gamemath.ClampInput(input.Steering)
	return gamemath.SteeringToWorld(steer).Mul(cfg.Player.BaseSpeed * m.Speed)
}
