package actions

import (
	"fmt"
	"math"

	mgl "github.com/go-gl/mathgl/mgl64"

	"github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/shared/gamemath"
)

type moveState struct {
	target mgl.Vec3
	speed  float64
	rotate bool
}

// MoveTo walks the queue owner toward target at speed units per second. With
// rotate set the owner also turns to face its direction of travel.
func MoveTo(target mgl.Vec3, speed float64, rotate bool) *Action {
	return &Action{kind: KindMoveTo, move: moveState{target: target, speed: speed, rotate: rotate}}
}

// Target returns the destination of a MoveTo action.
func (a *Action) Target() mgl.Vec3 {
	return a.move.target
}

func validateMoveTo(a *Action) error {
	s := a.move.speed
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: move speed %v", ErrInvalidAction, s)
	}
	return nil
}

func startMoveTo(_ *Action, ctx Context) error {
	if !ctx.Env.Exists(ctx.Agent) {
		return ErrMissingTarget
	}
	return nil
}

func tickMoveTo(a *Action, ctx Context) (bool, error) {
	if !ctx.Env.Exists(ctx.Agent) {
		return false, ErrMissingTarget
	}

	pos := ctx.Env.Position(ctx.Agent)
	next := gamemath.MoveTowards(pos, a.move.target, a.move.speed*ctx.Delta)
	ctx.Env.SetPosition(ctx.Agent, next)

	if a.move.rotate {
		travel := a.move.target.Sub(pos)
		rot := ctx.Env.Rotation(ctx.Agent)
		ctx.Env.SetRotation(ctx.Agent, gamemath.TurnTowards(rot, travel, config.Actions.TurnRate, ctx.Delta))
	}

	// MoveTowards returns the target itself on the final step.
	return next == a.move.target || next.Sub(a.move.target).Len() <= gamemath.Epsilon, nil
}

func stopMoveTo(*Action, Context, StopReason) {}
