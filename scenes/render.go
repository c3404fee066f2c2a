package scenes

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/shared/gamemath"
	"github.com/automoto/steadystep/systems/factory"
	"github.com/automoto/steadystep/tags"
)

var surfaceColors = [cfg.GroundCategoryCount]color.RGBA{
	cfg.Airborne: {0, 0, 0, 255},
	cfg.Normal:   {70, 74, 82, 255},
	cfg.Slippery: {150, 210, 240, 255},
	cfg.Conveyor: {200, 150, 60, 255},
}

var (
	agentColor  = color.RGBA{240, 90, 90, 255}
	shadowColor = color.RGBA{0, 0, 0, 110}
	facingColor = color.RGBA{255, 255, 255, 255}
	propEdge    = color.RGBA{255, 255, 255, 80}
)

type hud struct {
	face text.Face
}

func newHUD() (*hud, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	return &hud{face: &text.GoTextFace{Source: src, Size: 14}}, nil
}

// camera returns the world point drawn at the screen centre: the agent's
// rendered position, or the level centre before the first frame.
func (s *SandboxScene) camera() mgl.Vec3 {
	if tr, ok := s.sim.Rendered(s.spawned.Proxies[s.agent]); ok {
		return tr.Position
	}
	return mgl.Vec3{float64(s.level.Width) / 2, 0, float64(s.level.Depth) / 2}
}

// toScreen projects the ground plane: X to the right, Z down. Height lifts
// the point up the screen.
func toScreen(p, cam mgl.Vec3, screen *ebiten.Image) (float32, float32) {
	ppu := cfg.Render.UnitPixels
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	x := (p.X()-cam.X())*ppu + float64(w)/2
	y := (p.Z()-cam.Z()-p.Y())*ppu + float64(h)/2
	return float32(x), float32(y)
}

func (s *SandboxScene) drawGround(e *ecs.ECS, screen *ebiten.Image) {
	cam := s.camera()
	size := float32(cfg.Render.UnitPixels)

	tags.Tile.Each(e.World, func(tile *donburi.Entry) {
		pos := components.Transform.Get(tile).Position
		x, y := toScreen(pos.Sub(mgl.Vec3{0.5, 0, 0.5}), cam, screen)
		vector.FillRect(screen, x, y, size-1, size-1, surfaceColors[factory.SurfaceCategory(tile)], false)
	})
}

func (s *SandboxScene) drawProxies(e *ecs.ECS, screen *ebiten.Image) {
	cam := s.camera()
	ppu := float32(cfg.Render.UnitPixels)

	// Props first so agents stay visible on top of them.
	var agents []*donburi.Entry
	components.Interpolation.Each(e.World, func(proxy *donburi.Entry) {
		target := components.Interpolation.Get(proxy).Target
		if !e.World.Valid(target) {
			return
		}
		entry := e.World.Entry(target)
		if entry.HasComponent(tags.Agent) {
			agents = append(agents, proxy)
			return
		}
		tr, ok := s.sim.Rendered(proxy.Entity())
		if !ok {
			return
		}
		obj := components.Object.Get(entry)
		corner := tr.Position.Sub(mgl.Vec3{obj.HalfX, 0, obj.HalfZ})
		x, y := toScreen(corner, cam, screen)
		w, h := float32(obj.HalfX*2)*ppu, float32(obj.HalfZ*2)*ppu
		vector.FillRect(screen, x, y, w, h, surfaceColors[factory.SurfaceCategory(entry)], false)
		vector.StrokeRect(screen, x, y, w, h, 2, propEdge, false)
	})

	radius := float32(cfg.Player.Radius) * ppu
	for _, proxy := range agents {
		tr, ok := s.sim.Rendered(proxy.Entity())
		if !ok {
			continue
		}
		ground := tr.Position
		ground[1] = 0
		sx, sy := toScreen(ground, cam, screen)
		vector.FillCircle(screen, sx, sy, radius, shadowColor, true)

		x, y := toScreen(tr.Position, cam, screen)
		vector.FillCircle(screen, x, y, radius, agentColor, true)

		nose := tr.Position.Add(gamemath.Forward(tr.Rotation).Mul(cfg.Player.Radius * 1.5))
		nx, ny := toScreen(nose, cam, screen)
		vector.StrokeLine(screen, x, y, nx, ny, 2, facingColor, true)
	}
}

func (s *SandboxScene) drawHUD(e *ecs.ECS, screen *ebiten.Image) {
	var b strings.Builder
	clk := s.sim.Clock()
	fmt.Fprintf(&b, "level %s  tick %d @ %d Hz  frame %.1f ms  alpha %.2f\n",
		s.level.Name, s.sim.Ticks(), clk.Rate(), s.frameDt*1000, clk.Percent())
	fmt.Fprintf(&b, "interpolation %s  props %s\n", onOff(s.sim.Interpolating()), heldRunning(s.propsHeld))

	agent := e.World.Entry(s.agent)
	ground := components.Ground.Get(agent)
	vel := components.Velocity.Get(agent)
	fmt.Fprintf(&b, "ground %s (was %s)  speed %.2f  height %.2f\n",
		ground.Category, ground.Previous, gamemath.HorizontalLen(vel.Current),
		components.Transform.Get(agent).Position.Y())

	if q, err := s.sim.Queue(s.agent); err == nil {
		fmt.Fprintf(&b, "agent queue %s  %d/%d\n", q.Status(), q.Index(), q.Len())
	}
	b.WriteString("WASD steer  Space jump  P props  I interp  [ ] tick rate  R return  L spin  N skip  C cancel")

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 18
	op.ColorScale.ScaleWithColor(facingColor)
	text.Draw(screen, b.String(), s.hud.face, op)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func heldRunning(held bool) string {
	if held {
		return "paused"
	}
	return "running"
}
