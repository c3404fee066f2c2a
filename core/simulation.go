// Package core runs the fixed-tick simulation over a donburi world. Every
// routine takes an explicit entity handle; nothing assumes a single agent
// except FindSoleAgent and MustSoleAgent.
package core

import (
	"errors"
	"fmt"
	"log/slog"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/clock"
	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/logger"
	"github.com/automoto/steadystep/shared/gamemath"
	"github.com/automoto/steadystep/surface"
	"github.com/automoto/steadystep/systems"
	"github.com/automoto/steadystep/systems/factory"
	"github.com/automoto/steadystep/tags"
)

var (
	// ErrAgentNotUnique is returned when exactly one agent was expected.
	ErrAgentNotUnique = errors.New("expected exactly one agent")
	// ErrNotAgent is returned when an entity handle does not name an agent.
	ErrNotAgent = errors.New("entity is not an agent")
	// ErrNoQueue is returned when an entity has no action queue.
	ErrNoQueue = errors.New("entity has no action queue")
	// ErrNoSpace is returned when the world has no surface grid.
	ErrNoSpace = errors.New("world has no surface grid")
)

// Simulation owns the clock and drives the per-tick pipeline.
type Simulation struct {
	world       donburi.World
	clock       *clock.Clock
	grid        *surface.Grid
	ticks       uint64
	interpolate bool
	log         *slog.Logger
}

// New wraps a world populated by factory.BuildLevel (or at least
// factory.CreateSpace).
func New(w donburi.World, tickRate int) (*Simulation, error) {
	grid, ok := factory.Grid(w)
	if !ok {
		return nil, ErrNoSpace
	}
	if tickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", tickRate)
	}
	return &Simulation{
		world:       w,
		clock:       clock.New(tickRate),
		grid:        grid,
		interpolate: true,
		log:         logger.L().With("component", "sim"),
	}, nil
}

func (s *Simulation) World() donburi.World { return s.world }
func (s *Simulation) Clock() *clock.Clock  { return s.clock }

// Ticks returns the number of ticks run since New.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// SetTickRate swaps in a clock at the new rate. Time banked toward the next
// tick is dropped.
func (s *Simulation) SetTickRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", rate)
	}
	if rate == s.clock.Rate() {
		return nil
	}
	s.log.Info("tick rate changed", "from", s.clock.Rate(), "to", rate)
	s.clock = clock.New(rate)
	return nil
}

// SetInterpolation toggles render blending. When off, proxies show the
// latest tick.
func (s *Simulation) SetInterpolation(on bool) { s.interpolate = on }
func (s *Simulation) Interpolating() bool      { return s.interpolate }

// Frame feeds one host frame of dt seconds. It runs every due tick, then
// resamples the interpolation proxies. Invalid deltas are logged, skipped
// and returned.
func (s *Simulation) Frame(dt float64) (int, error) {
	n, err := s.clock.Drain(dt, s.tick)
	if err != nil {
		s.log.Warn("frame skipped", "dt", dt, "err", err)
		return n, err
	}
	s.sample()
	return n, nil
}

// tick is the strict per-tick pipeline. The interpolation snapshot only
// runs after the last tick of a frame.
func (s *Simulation) tick(last bool) {
	s.ticks++
	dt := s.clock.Delta()

	systems.UpdateGround(s.world, s.grid)
	systems.UpdateTuning(s.world, s.ticks)
	systems.UpdatePhysics(s.world, dt)
	systems.UpdateActions(s.world, dt)
	systems.UpdateObjects(s.world, s.grid)

	if last {
		systems.SnapshotInterpolation(s.world)
	}
}

func (s *Simulation) sample() {
	alpha := 1.0
	if s.interpolate {
		alpha = s.clock.Percent()
	}
	systems.SampleInterpolation(s.world, alpha)
}

// Rendered returns the blended pose of a proxy entity.
func (s *Simulation) Rendered(proxy donburi.Entity) (components.TransformData, bool) {
	return systems.Rendered(s.world, proxy)
}

// SetInput stores steering for agent and latches a jump press until the
// next tick consumes it.
func (s *Simulation) SetInput(agent donburi.Entity, steering mgl.Vec2, jump bool) error {
	e, err := s.agent(agent)
	if err != nil {
		return err
	}
	in := components.Input.Get(e)
	in.Steering = gamemath.ClampInput(steering)
	in.Jump = in.Jump || jump
	return nil
}

// Agents lists every agent in the world.
func (s *Simulation) Agents() []donburi.Entity {
	return Agents(s.world)
}

func (s *Simulation) agent(e donburi.Entity) (*donburi.Entry, error) {
	if !s.world.Valid(e) {
		return nil, fmt.Errorf("entity %v: %w", e, ErrNotAgent)
	}
	entry := s.world.Entry(e)
	if !entry.HasComponent(tags.Agent) || !entry.HasComponent(components.Input) {
		return nil, fmt.Errorf("entity %v: %w", e, ErrNotAgent)
	}
	return entry, nil
}

// Agents lists every agent in w.
func Agents(w donburi.World) []donburi.Entity {
	var out []donburi.Entity
	tags.Agent.Each(w, func(e *donburi.Entry) {
		out = append(out, e.Entity())
	})
	return out
}

// FindSoleAgent returns the only agent in w.
func FindSoleAgent(w donburi.World) (donburi.Entity, error) {
	agents := Agents(w)
	if len(agents) != 1 {
		return donburi.Null, fmt.Errorf("found %d agents: %w", len(agents), ErrAgentNotUnique)
	}
	return agents[0], nil
}

// MustSoleAgent is FindSoleAgent for hosts built around one agent. It
// panics when there are zero or several.
func MustSoleAgent(w donburi.World) donburi.Entity {
	e, err := FindSoleAgent(w)
	if err != nil {
		panic(err)
	}
	return e
}
