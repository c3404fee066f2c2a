package surface

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/tags"
)

var down = mgl.Vec3{0, -1, 0}

type fixture struct {
	world                 donburi.World
	grid                  *Grid
	ground, ice, conveyor donburi.Entity
	raised                donburi.Entity
	nobody                donburi.Entity
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	w := donburi.NewWorld()
	f := fixture{
		world:    w,
		grid:     NewGrid(-5, -5, 10, 10, 1),
		ground:   w.Create(tags.Tile),
		ice:      w.Create(tags.Tile),
		conveyor: w.Create(tags.Tile),
		raised:   w.Create(tags.Prop),
		nobody:   w.Create(tags.Agent),
	}
	f.grid.Add(f.ground, mgl.Vec3{0, 0, 0}, 0.5, 0.5, 0, tags.ResolvSolid)
	f.grid.Add(f.ice, mgl.Vec3{1, 0, 0}, 0.5, 0.5, 0, tags.ResolvIce)
	f.grid.Add(f.conveyor, mgl.Vec3{-1, 0, -2}, 0.5, 0.5, 0, tags.ResolvConveyor)
	f.grid.Add(f.raised, mgl.Vec3{3, 0, 3}, 0.5, 0.5, 1, tags.ResolvSolid)
	return f
}

func TestProbeClassifiesSurfaces(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		origin mgl.Vec3
		want   config.GroundCategory
		entity donburi.Entity
	}{
		{"standing on ground", mgl.Vec3{0, 0.1, 0}, config.Normal, f.ground},
		{"standing on ice", mgl.Vec3{1.2, 0.1, 0.3}, config.Slippery, f.ice},
		{"standing on conveyor", mgl.Vec3{-1, 0.1, -2}, config.Conveyor, f.conveyor},
		{"standing on raised platform", mgl.Vec3{3, 1.1, 3}, config.Normal, f.raised},
		{"jumping above ground", mgl.Vec3{0, 1.1, 0}, config.Airborne, f.nobody},
		{"over empty cell", mgl.Vec3{-3, 0.1, 3}, config.Airborne, f.nobody},
		{"outside the grid", mgl.Vec3{50, 0.1, 50}, config.Airborne, f.nobody},
		{"below raised platform top", mgl.Vec3{3, 0.1, 3}, config.Airborne, f.nobody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := f.grid.Probe(tt.origin, down, 0.2, f.nobody)
			if got := Classify(hit, ok); got != tt.want {
				t.Fatalf("Classify = %v, want %v (hit=%+v ok=%v)", got, tt.want, hit, ok)
			}
			if ok && hit.Entity != tt.entity {
				t.Errorf("hit entity = %v, want %v", hit.Entity, tt.entity)
			}
		})
	}
}

func TestProbeExcludesOwnCollider(t *testing.T) {
	f := newFixture(t)

	if _, ok := f.grid.Probe(mgl.Vec3{3, 1.1, 3}, down, 0.2, f.raised); ok {
		t.Error("probe should ignore the excluded entity")
	}
}

func TestProbePrefersHighestSurface(t *testing.T) {
	f := newFixture(t)
	lift := f.world.Create(tags.Prop)
	f.grid.Add(lift, mgl.Vec3{0, 0, 0}, 0.5, 0.5, 0.05, tags.ResolvIce)

	hit, ok := f.grid.Probe(mgl.Vec3{0, 0.1, 0}, down, 0.2, f.nobody)
	if !ok || hit.Tag != tags.ResolvIce {
		t.Fatalf("hit = %+v ok=%v, want the higher ice surface", hit, ok)
	}
	if diff := hit.Distance - 0.05; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("distance = %v, want 0.05", hit.Distance)
	}
}

func TestProbeFollowsMovedSurface(t *testing.T) {
	f := newFixture(t)
	platform := f.world.Create(tags.Prop)
	obj := f.grid.Add(platform, mgl.Vec3{-3, 0, 3}, 0.5, 0.5, 0, tags.ResolvIce)

	f.grid.Move(obj, mgl.Vec3{-3, 0, 1}, 0.5)

	if _, ok := f.grid.Probe(mgl.Vec3{-3, 0.1, 3}, down, 0.2, f.nobody); ok {
		t.Error("old footprint should be empty after Move")
	}
	hit, ok := f.grid.Probe(mgl.Vec3{-3, 0.6, 1}, down, 0.2, f.nobody)
	if !ok || hit.Entity != platform {
		t.Errorf("hit = %+v ok=%v, want moved platform", hit, ok)
	}
}

func TestProbeRejectsUpwardDirection(t *testing.T) {
	f := newFixture(t)
	if _, ok := f.grid.Probe(mgl.Vec3{0, 0.1, 0}, mgl.Vec3{0, 1, 0}, 0.2, f.nobody); ok {
		t.Error("upward probe should never hit")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		hit  Hit
		ok   bool
		want config.GroundCategory
	}{
		{Hit{Tag: tags.ResolvIce}, true, config.Slippery},
		{Hit{Tag: tags.ResolvConveyor}, true, config.Conveyor},
		{Hit{Tag: tags.ResolvSolid}, true, config.Normal},
		{Hit{Tag: "mystery"}, true, config.Normal},
		{Hit{}, false, config.Airborne},
	}

	for _, tt := range tests {
		if got := Classify(tt.hit, tt.ok); got != tt.want {
			t.Errorf("Classify(%+v, %v) = %v, want %v", tt.hit, tt.ok, got, tt.want)
		}
	}
	for _, c := range []config.GroundCategory{config.Normal, config.Slippery, config.Conveyor} {
		if got := Classify(Hit{Tag: TagFor(c)}, true); got != c {
			t.Errorf("TagFor(%v) round trip = %v", c, got)
		}
	}
}
