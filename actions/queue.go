package actions

import (
	"errors"
	"fmt"
)

// Status is the queue's state machine position.
type Status int

const (
	Idle Status = iota
	Running
	Suspended
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Suspended:
		return "paused"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type repeatMode int

const (
	repeatUnset repeatMode = iota
	repeatNever
	repeatCount
	repeatForever
)

// Repeat controls whether an exhausted queue starts another pass.
type Repeat struct {
	mode  repeatMode
	count int
}

var (
	// Never runs the queue once.
	Never = Repeat{mode: repeatNever}
	// Forever wraps back to the first action indefinitely.
	Forever = Repeat{mode: repeatForever}
)

// Count allows n additional passes after the first.
func Count(n int) Repeat {
	if n <= 0 {
		return Never
	}
	return Repeat{mode: repeatCount, count: n}
}

func (r Repeat) String() string {
	switch r.mode {
	case repeatNever:
		return "never"
	case repeatCount:
		return fmt.Sprintf("count(%d)", r.count)
	case repeatForever:
		return "forever"
	default:
		return "unset"
	}
}

// Config accompanies Enqueue.
type Config struct {
	// Repeat replaces the queue's repeat mode when set.
	Repeat Repeat
	// Hold appends without starting an idle queue. Call Resume to start it.
	Hold bool
}

// Queue is an ordered list of actions of which at most one is active.
type Queue struct {
	actions []*Action
	index   int
	status  Status
	repeat  Repeat
}

func NewQueue() *Queue {
	return &Queue{repeat: Never}
}

func (q *Queue) Status() Status { return q.status }
func (q *Queue) Len() int       { return len(q.actions) }
func (q *Queue) Index() int     { return q.index }
func (q *Queue) Repeat() Repeat { return q.repeat }

// Current returns the action at the queue index, or nil when empty.
func (q *Queue) Current() *Action {
	if q.index < 0 || q.index >= len(q.actions) {
		return nil
	}
	return q.actions[q.index]
}

// Enqueue appends a. An idle queue starts it immediately unless cfg.Hold is
// set. A non-nil error after a successful append reports actions that were
// skipped while starting; the queue has already moved past them.
func (q *Queue) Enqueue(ctx Context, a *Action, cfg Config) error {
	if err := a.validate(); err != nil {
		return err
	}
	if cfg.Repeat.mode != repeatUnset {
		q.repeat = cfg.Repeat
	}

	q.actions = append(q.actions, a)
	if q.status != Idle || cfg.Hold {
		return nil
	}
	return q.startCurrent(ctx)
}

// Advance completes the active action and starts the next one. It is a
// no-op when nothing is active.
func (q *Queue) Advance(ctx Context) error {
	if q.status != Running {
		return nil
	}
	cur := q.actions[q.index]
	cur.handler().stop(cur, ctx, Completed)
	return q.next(ctx)
}

// Pause stops the active action, keeping its progress and the index.
func (q *Queue) Pause(ctx Context) {
	if q.status != Running {
		return
	}
	cur := q.actions[q.index]
	cur.handler().stop(cur, ctx, Paused)
	q.status = Suspended
}

// Resume restarts the action at the index. It also starts a held queue.
func (q *Queue) Resume(ctx Context) error {
	if q.status == Running || len(q.actions) == 0 {
		return nil
	}
	return q.startCurrent(ctx)
}

// Cancel stops the active action and empties the queue.
func (q *Queue) Cancel(ctx Context) {
	if q.status == Running {
		cur := q.actions[q.index]
		cur.handler().stop(cur, ctx, Canceled)
	}
	q.clear()
}

// Tick drives the active action by one step and advances past it once it
// reports completion. Actions that fail are canceled and skipped; the
// returned error describes the failure.
func (q *Queue) Tick(ctx Context) error {
	if q.status != Running {
		return nil
	}
	cur := q.actions[q.index]
	done, err := cur.handler().tick(cur, ctx)
	if err != nil {
		err = fmt.Errorf("%s action %d: %w", cur, q.index, err)
		cur.handler().stop(cur, ctx, Canceled)
		return errors.Join(err, q.next(ctx))
	}
	if done {
		return q.Advance(ctx)
	}
	return nil
}

// next moves the index forward, wrapping when the repeat mode allows, and
// starts the new current action.
func (q *Queue) next(ctx Context) error {
	if !q.step() {
		q.clear()
		return nil
	}
	return q.startCurrent(ctx)
}

func (q *Queue) step() bool {
	q.index++
	if q.index < len(q.actions) {
		return true
	}
	switch q.repeat.mode {
	case repeatForever:
	case repeatCount:
		if q.repeat.count <= 0 {
			return false
		}
		q.repeat.count--
	default:
		return false
	}
	q.index = 0
	return true
}

// startCurrent starts the action at the index, skipping past actions whose
// start fails. It gives up once every action has failed in a row.
func (q *Queue) startCurrent(ctx Context) error {
	var firstErr error
	for failures := 0; ; failures++ {
		cur := q.actions[q.index]
		err := cur.handler().start(cur, ctx)
		if err == nil {
			q.status = Running
			return firstErr
		}

		cur.handler().stop(cur, ctx, Canceled)
		if firstErr == nil {
			firstErr = fmt.Errorf("%s action %d: %w", cur, q.index, err)
		}
		if failures+1 >= len(q.actions) || !q.step() {
			q.clear()
			return firstErr
		}
	}
}

func (q *Queue) clear() {
	q.actions = nil
	q.index = 0
	q.status = Idle
	q.repeat = Never
}
