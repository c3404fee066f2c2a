// Package actions runs per-entity queues of scripted behaviours: waiting,
// moving to a point and interpolating a transform channel. Actions keep their
// own progress so a paused queue resumes where it stopped.
package actions

import (
	"errors"
	"fmt"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

var (
	// ErrMissingTarget is returned when an action's entity no longer exists.
	ErrMissingTarget = errors.New("action target does not exist")
	// ErrInvalidAction is returned for actions built with unusable parameters.
	ErrInvalidAction = errors.New("invalid action")
)

// completionEpsilon absorbs floating residue in countdowns and elapsed time.
const completionEpsilon = 1e-9

// Kind identifies the variant an Action holds.
type Kind int

const (
	KindWait Kind = iota
	KindMoveTo
	KindValueLerp
	kindCount // Must be last - used for array sizing
)

func (k Kind) String() string {
	switch k {
	case KindWait:
		return "wait"
	case KindMoveTo:
		return "move_to"
	case KindValueLerp:
		return "value_lerp"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StopReason tells an action why it is being stopped.
type StopReason int

const (
	Completed StopReason = iota
	Canceled
	Paused
)

func (r StopReason) String() string {
	switch r {
	case Completed:
		return "completed"
	case Canceled:
		return "canceled"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Env is the slice of the world actions may read and write.
type Env interface {
	Exists(e donburi.Entity) bool
	Position(e donburi.Entity) mgl.Vec3
	SetPosition(e donburi.Entity, p mgl.Vec3)
	Rotation(e donburi.Entity) mgl.Quat
	SetRotation(e donburi.Entity, q mgl.Quat)
}

// Context is handed to every action callback.
type Context struct {
	Env   Env
	Agent donburi.Entity // owner of the queue
	Delta float64        // tick duration in seconds
}

// Action is a tagged variant over the concrete behaviours. Build one with
// Wait, MoveTo, LerpPosition or LerpRotation.
type Action struct {
	kind Kind
	wait waitState
	move moveState
	lerp lerpState
}

// Kind reports which behaviour a holds.
func (a *Action) Kind() Kind {
	return a.kind
}

func (a *Action) String() string {
	return a.kind.String()
}

type handler struct {
	validate func(a *Action) error
	start    func(a *Action, ctx Context) error
	tick     func(a *Action, ctx Context) (done bool, err error)
	stop     func(a *Action, ctx Context, reason StopReason)
}

var handlers = [kindCount]handler{
	KindWait: {
		validate: validateWait,
		start:    startWait,
		tick:     tickWait,
		stop:     stopWait,
	},
	KindMoveTo: {
		validate: validateMoveTo,
		start:    startMoveTo,
		tick:     tickMoveTo,
		stop:     stopMoveTo,
	},
	KindValueLerp: {
		validate: validateLerp,
		start:    startLerp,
		tick:     tickLerp,
		stop:     stopLerp,
	},
}

func (a *Action) handler() handler {
	return handlers[a.kind]
}

func (a *Action) validate() error {
	if a == nil || a.kind < 0 || a.kind >= kindCount {
		return fmt.Errorf("%w: unknown kind", ErrInvalidAction)
	}
	return a.handler().validate(a)
}
