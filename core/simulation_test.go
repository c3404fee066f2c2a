package core

import (
	"errors"
	"math"
	"testing"
	"time"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/actions"
	"github.com/automoto/steadystep/clock"
	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/shared/leveldata"
	"github.com/automoto/steadystep/systems/factory"
)

// withConfig restores the global configuration when the test ends.
func withConfig(t *testing.T) {
	t.Helper()
	player, tuning := config.Player, config.Tuning
	t.Cleanup(func() {
		config.Player, config.Tuning = player, tuning
	})
}

// frictionlessConfig turns every category into accel 1, damping 0 and no
// gravity so motion follows the discrete formula exactly.
func frictionlessConfig(t *testing.T) {
	withConfig(t)
	config.Player.BaseSpeed = 1
	config.Player.BaseAcceleration = 1
	config.Player.BaseDamping = 0
	for c := range config.Tuning {
		config.Tuning[c] = config.Multipliers{Speed: 1, Acceleration: 1, Damping: 0, Gravity: 0, JumpHeight: 1}
	}
}

func newWorld(t *testing.T, tiles ...leveldata.Tile) (*Simulation, donburi.Entity, donburi.Entity) {
	t.Helper()
	w := donburi.NewWorld()
	factory.CreateSpace(w, 32, 32)
	for _, tile := range tiles {
		factory.CreateTile(w, tile)
	}
	agent := factory.CreateAgent(w, mgl.Vec3{}).Entity()
	proxy := factory.CreateProxy(w, agent, true, true).Entity()

	sim, err := New(w, 20)
	if err != nil {
		t.Fatal(err)
	}
	return sim, agent, proxy
}

func transform(sim *Simulation, e donburi.Entity) components.TransformData {
	return *components.Transform.Get(sim.World().Entry(e))
}

func TestEndToEndDiscreteIntegration(t *testing.T) {
	frictionlessConfig(t)
	sim, agent, _ := newWorld(t)

	if err := sim.SetInput(agent, mgl.Vec2{1, 0}, false); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if n, err := sim.Frame(0.05); err != nil || n != 1 {
			t.Fatalf("frame %d: ticks=%d err=%v, want 1 tick", i, n, err)
		}
	}

	if sim.Ticks() != 20 {
		t.Fatalf("ticks = %d, want 20", sim.Ticks())
	}
	vel := components.Velocity.Get(sim.World().Entry(agent))
	if math.Abs(vel.Current.X()-20) > 1e-9 {
		t.Errorf("vel.x = %v, want 20 (one unit added per tick)", vel.Current.X())
	}
	if vel.Added != (mgl.Vec3{}) {
		t.Errorf("added = %v, want zero after integration", vel.Added)
	}
	// x = sum(n * 0.05) for n = 1..20
	if x := transform(sim, agent).Position.X(); math.Abs(x-10.5) > 1e-9 {
		t.Errorf("pos.x = %v, want 10.5", x)
	}
}

func TestCatchUpBuffersOnlyFrameEdges(t *testing.T) {
	frictionlessConfig(t)
	sim, agent, proxy := newWorld(t)
	_ = sim.SetInput(agent, mgl.Vec2{1, 0}, false)

	if _, err := sim.Frame(0.05); err != nil {
		t.Fatal(err)
	}
	before := transform(sim, agent).Position

	n, err := sim.Frame(0.16)
	if err != nil || n != 3 {
		t.Fatalf("catch-up frame: ticks=%d err=%v, want 3", n, err)
	}
	after := transform(sim, agent).Position

	ip := components.Interpolation.Get(sim.World().Entry(proxy))
	if ip.Previous.Position != before {
		t.Errorf("previous = %v, want state before the catch-up %v", ip.Previous.Position, before)
	}
	if ip.Current.Position != after {
		t.Errorf("current = %v, want state after the last tick %v", ip.Current.Position, after)
	}

	rendered, ok := sim.Rendered(proxy)
	if !ok {
		t.Fatal("proxy not rendered")
	}
	alpha := sim.Clock().Percent()
	want := before.Add(after.Sub(before).Mul(alpha))
	if !rendered.Position.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("rendered = %v, want %v at alpha %v", rendered.Position, want, alpha)
	}
}

func TestNoTickFrameKeepsBuffer(t *testing.T) {
	frictionlessConfig(t)
	sim, agent, proxy := newWorld(t)
	_ = sim.SetInput(agent, mgl.Vec2{1, 0}, false)
	_, _ = sim.Frame(0.05)
	_, _ = sim.Frame(0.05)

	ip := *components.Interpolation.Get(sim.World().Entry(proxy))
	if n, _ := sim.Frame(0.01); n != 0 {
		t.Fatalf("ticks = %d, want 0", n)
	}
	after := *components.Interpolation.Get(sim.World().Entry(proxy))
	if after.Previous != ip.Previous || after.Current != ip.Current {
		t.Error("a frame without ticks changed the interpolation buffer")
	}
	if after.Rendered.Position == ip.Rendered.Position {
		t.Error("rendered pose should move with the new alpha")
	}
}

func TestInterpolationDisabledShowsCurrent(t *testing.T) {
	frictionlessConfig(t)
	sim, agent, proxy := newWorld(t)
	sim.SetInterpolation(false)
	_ = sim.SetInput(agent, mgl.Vec2{1, 0}, false)

	_, _ = sim.Frame(0.05)
	_, _ = sim.Frame(0.07)

	rendered, _ := sim.Rendered(proxy)
	if rendered.Position != transform(sim, agent).Position {
		t.Errorf("rendered = %v, want current %v", rendered.Position, transform(sim, agent).Position)
	}
}

func TestInvalidDeltaSkipsFrame(t *testing.T) {
	sim, _, _ := newWorld(t)
	_, _ = sim.Frame(0.03)

	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		n, err := sim.Frame(dt)
		if !errors.Is(err, clock.ErrInvalidDelta) || n != 0 {
			t.Errorf("Frame(%v) = %d, %v; want 0, ErrInvalidDelta", dt, n, err)
		}
	}
	if math.Abs(sim.Clock().Accumulated()-0.03) > 1e-12 {
		t.Errorf("accumulator = %v, want untouched 0.03", sim.Clock().Accumulated())
	}
}

func TestAgentStaysOnGroundAndClassifies(t *testing.T) {
	withConfig(t)
	sim, agent, _ := newWorld(t,
		leveldata.Tile{X: 0.5, Z: 0.5, Surface: config.Slippery},
	)
	w := sim.World()
	components.Transform.Get(w.Entry(agent)).Position = mgl.Vec3{0.5, 0, 0.5}

	for i := 0; i < 10; i++ {
		_, _ = sim.Frame(0.05)
	}

	ground := components.Ground.Get(w.Entry(agent))
	if ground.Category != config.Slippery || ground.Previous != config.Airborne {
		t.Errorf("ground = %v (prev %v), want slippery after airborne", ground.Category, ground.Previous)
	}
	if tuning := components.Tuning.Get(w.Entry(agent)); tuning.Multipliers != config.Tuning[config.Slippery] {
		t.Errorf("tuning = %+v, want slippery table", tuning.Multipliers)
	}
	if y := transform(sim, agent).Position.Y(); y != 0 {
		t.Errorf("pos.y = %v, want resting on the floor", y)
	}
}

func TestJumpLatchIsConsumedOnce(t *testing.T) {
	withConfig(t)
	sim, agent, _ := newWorld(t, leveldata.Tile{X: 0.5, Z: 0.5, Surface: config.Normal})
	w := sim.World()
	components.Transform.Get(w.Entry(agent)).Position = mgl.Vec3{0.5, 0, 0.5}
	_, _ = sim.Frame(0.05) // land on normal ground

	_ = sim.SetInput(agent, mgl.Vec2{}, true)
	_ = sim.SetInput(agent, mgl.Vec2{}, false) // release before the tick
	_, _ = sim.Frame(0.05)

	vel := components.Velocity.Get(w.Entry(agent))
	impulse := math.Sqrt(2 * config.Player.BaseGravity * config.Player.BaseJumpHeight)
	want := impulse - config.Player.BaseGravity*0.05
	if math.Abs(vel.Current.Y()-want) > 1e-9 {
		t.Errorf("vel.y = %v, want %v", vel.Current.Y(), want)
	}
	if components.Input.Get(w.Entry(agent)).Jump {
		t.Error("jump latch should be consumed by the tick")
	}
}

func TestQueueOperationsPerAgent(t *testing.T) {
	sim, agent, proxy := newWorld(t)

	if err := sim.Enqueue(agent, actions.Wait(1), actions.Config{}); err != nil {
		t.Fatal(err)
	}
	q, _ := sim.Queue(agent)
	if q.Status() != actions.Running {
		t.Fatalf("status = %v, want running", q.Status())
	}
	if err := sim.Pause(agent); err != nil || q.Status() != actions.Suspended {
		t.Errorf("Pause: err=%v status=%v", err, q.Status())
	}
	if err := sim.Resume(agent); err != nil || q.Status() != actions.Running {
		t.Errorf("Resume: err=%v status=%v", err, q.Status())
	}
	if err := sim.Advance(agent); err != nil || q.Status() != actions.Idle {
		t.Errorf("Advance: err=%v status=%v", err, q.Status())
	}
	if err := sim.Advance(agent); err != nil {
		t.Errorf("Advance on idle queue: %v", err)
	}
	_ = sim.Enqueue(agent, actions.Wait(1), actions.Config{})
	if err := sim.Cancel(agent); err != nil || q.Len() != 0 {
		t.Errorf("Cancel: err=%v len=%d", err, q.Len())
	}

	if err := sim.Enqueue(proxy, actions.Wait(1), actions.Config{}); !errors.Is(err, ErrNoQueue) {
		t.Errorf("Enqueue on proxy = %v, want ErrNoQueue", err)
	}
	if err := sim.SetInput(proxy, mgl.Vec2{}, false); !errors.Is(err, ErrNotAgent) {
		t.Errorf("SetInput on proxy = %v, want ErrNotAgent", err)
	}
}

func TestAgentsHaveIndependentRecords(t *testing.T) {
	frictionlessConfig(t)
	w := donburi.NewWorld()
	factory.CreateSpace(w, 16, 16)
	a := factory.CreateAgent(w, mgl.Vec3{1, 0, 1}).Entity()
	b := factory.CreateAgent(w, mgl.Vec3{5, 0, 5}).Entity()
	sim, err := New(w, 20)
	if err != nil {
		t.Fatal(err)
	}

	_ = sim.SetInput(a, mgl.Vec2{1, 0}, false)
	_ = sim.Enqueue(b, actions.Wait(5), actions.Config{})
	_, _ = sim.Frame(0.05)

	if transform(sim, b).Position != (mgl.Vec3{5, 0, 5}) {
		t.Errorf("agent b moved to %v from a's input", transform(sim, b).Position)
	}
	if transform(sim, a).Position.X() <= 1 {
		t.Error("agent a did not move")
	}
	qa, _ := sim.Queue(a)
	if qa.Len() != 0 {
		t.Error("agent a shares b's queue")
	}

	if _, err := FindSoleAgent(w); !errors.Is(err, ErrAgentNotUnique) {
		t.Errorf("FindSoleAgent = %v, want ErrAgentNotUnique", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustSoleAgent should panic with two agents")
		}
	}()
	MustSoleAgent(w)
}

func TestFindSoleAgent(t *testing.T) {
	sim, agent, _ := newWorld(t)
	got, err := FindSoleAgent(sim.World())
	if err != nil || got != agent {
		t.Errorf("FindSoleAgent = %v, %v; want %v", got, err, agent)
	}

	empty := donburi.NewWorld()
	if _, err := FindSoleAgent(empty); !errors.Is(err, ErrAgentNotUnique) {
		t.Errorf("FindSoleAgent on empty world = %v, want ErrAgentNotUnique", err)
	}
}

func TestNewRequiresSpace(t *testing.T) {
	if _, err := New(donburi.NewWorld(), 20); !errors.Is(err, ErrNoSpace) {
		t.Errorf("New = %v, want ErrNoSpace", err)
	}
}

func TestSetTickRate(t *testing.T) {
	sim, _, _ := newWorld(t)
	if err := sim.SetTickRate(0); err == nil {
		t.Error("SetTickRate(0) should fail")
	}
	if err := sim.SetTickRate(60); err != nil || sim.Clock().Rate() != 60 {
		t.Errorf("SetTickRate(60): err=%v rate=%d", err, sim.Clock().Rate())
	}
}

func TestLoopRunsFrames(t *testing.T) {
	sim, _, _ := newWorld(t)
	loop := NewLoop(sim, 200)

	frames := make(chan struct{}, 1)
	loop.OnFrame = func(*Simulation, int) {
		select {
		case frames <- struct{}{}:
		default:
		}
	}

	done := make(chan struct{})
	go func() {
		loop.Run()
		close(done)
	}()

	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Error("loop produced no frames")
	}
	loop.Stop()
	loop.Stop()
	<-done
}
