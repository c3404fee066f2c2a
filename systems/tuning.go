package systems

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/shared/gamemath"
)

// UpdateTuning swaps in the multipliers for the new ground category and
// snapshots transition memory. It only acts on the tick a change was seen.
func UpdateTuning(w donburi.World, tick uint64) {
	components.Ground.Each(w, func(e *donburi.Entry) {
		ground := components.Ground.Get(e)
		if !ground.Changed {
			return
		}
		ApplyGround(e, ground.Category, tick)
	})
}

// ApplyGround writes the tuning for category onto e and captures the
// transition memory. Factories call it once at spawn.
func ApplyGround(e *donburi.Entry, category cfg.GroundCategory, tick uint64) {
	components.Tuning.Get(e).Multipliers = cfg.Tuning.For(category)
	*components.Transition.Get(e) = captureTransition(e, tick)
}

func captureTransition(e *donburi.Entry, tick uint64) components.TransitionData {
	vel := components.Velocity.Get(e)
	input := components.Input.Get(e)
	rot := components.Transform.Get(e).Rotation

	return components.TransitionData{
		Input:        input.Steering,
		Velocity:     vel.Current,
		Forward:      gamemath.Forward(rot),
		ForwardSpeed: math.Max(gamemath.HorizontalLen(vel.Current), cfg.Player.MinConveyorSpeed),
		Tick:         tick,
	}
}
