package actions

import (
	"fmt"
	"math"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/shared/gamemath"
)

// Channel selects which part of a transform a ValueLerp drives.
type Channel int

const (
	ChannelPosition Channel = iota
	ChannelRotation
)

func (c Channel) String() string {
	if c == ChannelRotation {
		return "rotation"
	}
	return "position"
}

type lerpState struct {
	entity   donburi.Entity
	channel  Channel
	duration float64
	ease     ease.TweenFunc

	endPos   mgl.Vec3
	endRot   mgl.Quat
	startPos mgl.Vec3
	startRot mgl.Quat

	elapsed float64
	started bool

	// tracker lives only while the action is active.
	tracker *gween.Tween
}

// LerpPosition moves entity's position to end over duration seconds. A nil
// fn means linear and is computed in float64. Eased curves go through gween,
// which works in float32, so their progress carries about 7 significant
// digits.
func LerpPosition(entity donburi.Entity, end mgl.Vec3, duration float64, fn ease.TweenFunc) *Action {
	return &Action{kind: KindValueLerp, lerp: lerpState{
		entity:   entity,
		channel:  ChannelPosition,
		duration: duration,
		ease:     fn,
		endPos:   end,
	}}
}

// LerpRotation slerps entity's rotation to end over duration seconds. A nil
// fn means linear; precision is as for LerpPosition.
func LerpRotation(entity donburi.Entity, end mgl.Quat, duration float64, fn ease.TweenFunc) *Action {
	return &Action{kind: KindValueLerp, lerp: lerpState{
		entity:   entity,
		channel:  ChannelRotation,
		duration: duration,
		ease:     fn,
		endRot:   end.Normalize(),
	}}
}

// Elapsed returns how far a ValueLerp has progressed, in seconds.
func (a *Action) Elapsed() float64 {
	return a.lerp.elapsed
}

// Tracking reports whether a ValueLerp currently holds its tracking tween.
func (a *Action) Tracking() bool {
	return a.lerp.tracker != nil
}

func validateLerp(a *Action) error {
	d := a.lerp.duration
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: lerp duration %v", ErrInvalidAction, d)
	}
	if a.lerp.channel != ChannelPosition && a.lerp.channel != ChannelRotation {
		return fmt.Errorf("%w: lerp channel %d", ErrInvalidAction, a.lerp.channel)
	}
	return nil
}

func startLerp(a *Action, ctx Context) error {
	l := &a.lerp
	if !ctx.Env.Exists(l.entity) {
		return ErrMissingTarget
	}
	if !l.started {
		l.startPos = ctx.Env.Position(l.entity)
		l.startRot = ctx.Env.Rotation(l.entity)
		l.elapsed = 0
		l.started = true
	}

	fn := l.ease
	if fn == nil {
		fn = ease.Linear
	}
	// The tracker runs over normalized time so its float32 clock does not
	// lose resolution on long lerps.
	l.tracker = gween.New(0, 1, 1, fn)
	l.tracker.Set(float32(l.ratio()))
	return nil
}

func tickLerp(a *Action, ctx Context) (bool, error) {
	l := &a.lerp
	if !ctx.Env.Exists(l.entity) {
		return false, ErrMissingTarget
	}

	l.elapsed += ctx.Delta
	done := l.elapsed >= l.duration-completionEpsilon

	progress := 1.0
	if !done {
		progress = l.ratio()
		if l.ease != nil {
			p, _ := l.tracker.Set(float32(progress))
			progress = float64(p)
		} else {
			l.tracker.Set(float32(progress))
		}
	}

	switch l.channel {
	case ChannelPosition:
		v := l.endPos
		if !done {
			v = gamemath.LerpVec3(l.startPos, l.endPos, progress)
		}
		ctx.Env.SetPosition(l.entity, v)
	case ChannelRotation:
		q := l.endRot
		if !done {
			q = gamemath.Slerp(l.startRot, l.endRot, progress)
		}
		ctx.Env.SetRotation(l.entity, q)
	}
	return done, nil
}

// ratio is elapsed over duration, clamped to [0, 1].
func (l *lerpState) ratio() float64 {
	if l.duration <= 0 {
		return 1
	}
	return math.Min(math.Max(l.elapsed/l.duration, 0), 1)
}

func stopLerp(a *Action, _ Context, reason StopReason) {
	a.lerp.tracker = nil
	if reason != Paused {
		a.lerp.started = false
		a.lerp.elapsed = 0
	}
}
