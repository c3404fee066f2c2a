package core

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/actions"
	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/systems"
)

// Queue returns e's action queue for inspection.
func (s *Simulation) Queue(e donburi.Entity) (*actions.Queue, error) {
	if !s.world.Valid(e) {
		return nil, fmt.Errorf("entity %v: %w", e, ErrNoQueue)
	}
	entry := s.world.Entry(e)
	if !entry.HasComponent(components.Actions) {
		return nil, fmt.Errorf("entity %v: %w", e, ErrNoQueue)
	}
	data := components.Actions.Get(entry)
	if data.Queue == nil {
		data.Queue = actions.NewQueue()
	}
	return data.Queue, nil
}

func (s *Simulation) context(e donburi.Entity) actions.Context {
	return systems.ActionContext(s.world, e, s.clock.Delta())
}

// Enqueue appends a to e's queue.
func (s *Simulation) Enqueue(e donburi.Entity, a *actions.Action, cfg actions.Config) error {
	q, err := s.Queue(e)
	if err != nil {
		return err
	}
	if err := q.Enqueue(s.context(e), a, cfg); err != nil {
		return fmt.Errorf("enqueue %s on %v: %w", a, e, err)
	}
	s.log.Debug("action queued", "entity", e, "kind", a, "len", q.Len(), "repeat", q.Repeat())
	return nil
}

// Advance completes e's active action early.
func (s *Simulation) Advance(e donburi.Entity) error {
	q, err := s.Queue(e)
	if err != nil {
		return err
	}
	return q.Advance(s.context(e))
}

// Pause suspends e's queue, keeping the active action's progress.
func (s *Simulation) Pause(e donburi.Entity) error {
	q, err := s.Queue(e)
	if err != nil {
		return err
	}
	q.Pause(s.context(e))
	s.log.Debug("queue paused", "entity", e, "index", q.Index())
	return nil
}

// Resume continues e's paused or held queue.
func (s *Simulation) Resume(e donburi.Entity) error {
	q, err := s.Queue(e)
	if err != nil {
		return err
	}
	if err := q.Resume(s.context(e)); err != nil {
		s.log.Warn("action canceled on resume", "entity", e, "err", err)
		return err
	}
	s.log.Debug("queue resumed", "entity", e, "index", q.Index())
	return nil
}

// Cancel stops e's active action and empties the queue.
func (s *Simulation) Cancel(e donburi.Entity) error {
	q, err := s.Queue(e)
	if err != nil {
		return err
	}
	q.Cancel(s.context(e))
	s.log.Debug("queue canceled", "entity", e)
	return nil
}
