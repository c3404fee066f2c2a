// Package headless runs a level without a window. The agent is steered in a
// slow circle and its state is logged once a second.
package headless

import (
	"log/slog"
	"os"
	"os/signal"
	"time"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/assets"
	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/core"
	"github.com/automoto/steadystep/shared/gamemath"
	"github.com/automoto/steadystep/systems/factory"
)

// frameRate is how often the loop feeds wall-clock time to the simulation.
const frameRate = 60

// turnRate is the steering direction's angular speed in radians per second.
const turnRate = 0.5

// Runner owns one simulated level and its sole agent.
type Runner struct {
	sim        *core.Simulation
	agent      donburi.Entity
	log        *slog.Logger
	nextReport time.Duration
}

// New builds the embedded level levelName at the configured tick rate.
func New(levelName string, log *slog.Logger) (*Runner, error) {
	level, err := assets.LoadLevel(levelName)
	if err != nil {
		return nil, err
	}
	w := donburi.NewWorld()
	if _, err := factory.BuildLevel(w, level); err != nil {
		return nil, err
	}
	sim, err := core.New(w, config.Simulation.TickRate)
	if err != nil {
		return nil, err
	}
	agent, err := core.FindSoleAgent(w)
	if err != nil {
		return nil, err
	}
	return &Runner{
		sim:        sim,
		agent:      agent,
		log:        log.With("component", "headless"),
		nextReport: time.Second,
	}, nil
}

// Steer points the agent's input along the circle at elapsed. Rejected input
// is logged and the run continues.
func (r *Runner) Steer(elapsed time.Duration) {
	steering := mgl.Rotate2D(elapsed.Seconds() * turnRate).Mul2x1(mgl.Vec2{0, 1})
	if err := r.sim.SetInput(r.agent, steering, false); err != nil {
		r.log.Warn("input rejected", "agent", r.agent, "err", err)
	}
}

// report logs the agent's state once per elapsed second.
func (r *Runner) report(elapsed time.Duration) {
	if elapsed < r.nextReport {
		return
	}
	r.nextReport += time.Second
	e := r.sim.World().Entry(r.agent)
	r.log.Info("agent",
		"tick", r.sim.Ticks(),
		"position", components.Transform.Get(e).Position,
		"speed", gamemath.HorizontalLen(components.Velocity.Get(e).Current),
		"ground", components.Ground.Get(e).Category,
	)
}

// Run drives the level from wall-clock time until d elapses or the process
// is interrupted.
func (r *Runner) Run(d time.Duration) {
	start := time.Now()
	loop := core.NewLoop(r.sim, frameRate)
	loop.OnFrame = func(_ *core.Simulation, _ int) {
		elapsed := time.Since(start)
		r.Steer(elapsed)
		r.report(elapsed)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)
	go func() {
		select {
		case <-stop:
		case <-time.After(d):
		}
		loop.Stop()
	}()

	loop.Run()
}
