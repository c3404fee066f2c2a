// Package scenes hosts the simulation in an ebitengine window: a top-down
// sandbox with keyboard steering and live tuning switches.
package scenes

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"time"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/steadystep/actions"
	"github.com/automoto/steadystep/assets"
	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/core"
	"github.com/automoto/steadystep/logger"
	"github.com/automoto/steadystep/shared/leveldata"
	"github.com/automoto/steadystep/systems/factory"
)

// LayerDefault is the only render layer.
const LayerDefault ecs.LayerID = iota

// maxFrameDelta caps the wall-clock time fed to the simulation after a
// window drag or breakpoint.
const maxFrameDelta = 0.25

// SandboxScene runs one level with a single controllable agent.
type SandboxScene struct {
	levelName string
	level     *leveldata.Level

	ecs     *ecs.ECS
	sim     *core.Simulation
	spawned *factory.Spawned
	agent   donburi.Entity

	lastFrame time.Time
	frameDt   float64
	propsHeld bool
	err       error

	hud  *hud
	log  *slog.Logger
	once sync.Once
}

func NewSandboxScene(levelName string) *SandboxScene {
	return &SandboxScene{
		levelName: levelName,
		log:       logger.L().With("component", "sandbox"),
	}
}

func (s *SandboxScene) Update() error {
	s.once.Do(s.configure)
	if s.err != nil {
		return s.err
	}
	s.ecs.Update()
	return nil
}

func (s *SandboxScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if s.ecs == nil {
		return
	}
	s.ecs.Draw(screen)
}

func (s *SandboxScene) configure() {
	level, err := assets.LoadLevel(s.levelName)
	if err != nil {
		s.err = fmt.Errorf("load level %q: %w", s.levelName, err)
		return
	}
	s.level = level

	world := donburi.NewWorld()
	spawned, err := factory.BuildLevel(world, level)
	if err != nil {
		s.err = err
		return
	}
	s.spawned = spawned

	sim, err := core.New(world, cfg.Simulation.TickRate)
	if err != nil {
		s.err = err
		return
	}
	sim.SetInterpolation(cfg.Render.Interpolate)
	s.sim = sim
	s.agent = spawned.Agents[0]

	hud, err := newHUD()
	if err != nil {
		s.err = err
		return
	}
	s.hud = hud

	e := ecs.NewECS(world)
	e.AddSystem(s.updateControls)
	e.AddSystem(s.updateSimulation)

	e.AddRenderer(LayerDefault, s.drawGround)
	e.AddRenderer(LayerDefault, s.drawProxies)
	e.AddRenderer(LayerDefault, s.drawHUD)
	s.ecs = e

	s.log.Info("sandbox ready",
		"level", level.Name,
		"tiles", len(level.Tiles),
		"props", len(spawned.Props),
		"tick_rate", sim.Clock().Rate(),
	)
}

// updateSimulation feeds the wall-clock time since the previous frame to
// the simulation.
func (s *SandboxScene) updateSimulation(_ *ecs.ECS) {
	now := time.Now()
	dt := 1.0 / float64(ebiten.DefaultTPS)
	if !s.lastFrame.IsZero() {
		dt = math.Min(now.Sub(s.lastFrame).Seconds(), maxFrameDelta)
	}
	s.lastFrame = now
	s.frameDt = dt

	// Frame logs and drops rejected deltas itself.
	_, _ = s.sim.Frame(dt)
}

func (s *SandboxScene) updateControls(_ *ecs.ECS) {
	in := pollInput()
	if err := s.sim.SetInput(s.agent, in.steering, in.pressed[controlJump]); err != nil {
		s.log.Warn("input rejected", "err", err)
	}

	if in.pressed[controlPauseProps] {
		s.toggleProps()
	}
	if in.pressed[controlInterpolate] {
		s.sim.SetInterpolation(!s.sim.Interpolating())
		s.saveSettings()
	}
	if in.pressed[controlSlower] {
		s.changeTickRate(-1)
	}
	if in.pressed[controlFaster] {
		s.changeTickRate(1)
	}
	if in.pressed[controlReturn] {
		home := s.level.Spawns[0].Position
		s.enqueue(actions.MoveTo(home, cfg.Player.BaseSpeed, true), actions.Config{})
	}
	if in.pressed[controlSpin] {
		s.spin()
	}
	if in.pressed[controlSkip] {
		if err := s.sim.Advance(s.agent); err != nil {
			s.log.Warn("advance failed", "err", err)
		}
	}
	if in.pressed[controlCancel] {
		if err := s.sim.Cancel(s.agent); err != nil {
			s.log.Warn("cancel failed", "err", err)
		}
	}
}

// toggleProps pauses every prop script, or resumes them all if they are
// already held.
func (s *SandboxScene) toggleProps() {
	s.propsHeld = !s.propsHeld
	for _, p := range s.spawned.Props {
		var err error
		if s.propsHeld {
			err = s.sim.Pause(p)
		} else {
			err = s.sim.Resume(p)
		}
		if err != nil {
			s.log.Warn("prop script toggle failed", "prop", p, "err", err)
		}
	}
}

func (s *SandboxScene) changeTickRate(step int) {
	rate := cfg.NextTickRate(s.sim.Clock().Rate(), step)
	if err := s.sim.SetTickRate(rate); err != nil {
		s.log.Warn("tick rate rejected", "rate", rate, "err", err)
		return
	}
	s.saveSettings()
}

// spin turns the agent half a revolution about Y with an eased lerp.
func (s *SandboxScene) spin() {
	tr := components.Transform.Get(s.sim.World().Entry(s.agent))
	end := tr.Rotation.Mul(mgl.QuatRotate(math.Pi, mgl.Vec3{0, 1, 0}))
	s.enqueue(actions.LerpRotation(s.agent, end, 0.6, ease.InOutQuad), actions.Config{})
}

func (s *SandboxScene) enqueue(a *actions.Action, opts actions.Config) {
	if err := s.sim.Enqueue(s.agent, a, opts); err != nil {
		s.log.Warn("enqueue failed", "action", a, "err", err)
	}
}

func (s *SandboxScene) saveSettings() {
	_ = SaveSettings(&SavedSettings{
		TickRate:    s.sim.Clock().Rate(),
		Interpolate: s.sim.Interpolating(),
		Level:       s.levelName,
	})
}
