// Package surface answers "what is beneath this point" for the ground
// classifier. Surfaces live in a resolv space laid over the XZ plane; each
// carries the height of its top face.
package surface

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/shared/gamemath"
	"github.com/automoto/steadystep/tags"
)

// Hit describes the surface a probe landed on.
type Hit struct {
	Entity   donburi.Entity
	Tag      string  // resolv tag of the surface
	Top      float64 // height of the top face
	Distance float64 // distance travelled down from the probe origin
}

// Prober is the raycast oracle the classifier queries.
type Prober interface {
	Probe(origin, dir mgl.Vec3, maxDist float64, exclude donburi.Entity) (Hit, bool)
}

// Surface is stored in resolv.Object.Data for every collider in the grid.
type Surface struct {
	Entity donburi.Entity
	Top    float64
}

var surfaceTags = []string{tags.ResolvSolid, tags.ResolvIce, tags.ResolvConveyor}

// Grid is a resolv space covering a rectangle of the ground plane. World X
// maps to resolv X and world Z maps to resolv Y.
type Grid struct {
	space            *resolv.Space
	originX, originZ float64
	probe            *resolv.Object
}

// NewGrid covers [minX, minX+width) x [minZ, minZ+depth).
func NewGrid(minX, minZ, width, depth float64, cellSize int) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	w := int(math.Ceil(width))
	d := int(math.Ceil(depth))
	g := &Grid{
		space:   resolv.NewSpace(w, d, cellSize, cellSize),
		originX: minX,
		originZ: minZ,
	}
	g.probe = resolv.NewObject(0, 0, 0, 0, tags.ResolvProbe)
	g.space.Add(g.probe)
	return g
}

// Space exposes the underlying resolv space.
func (g *Grid) Space() *resolv.Space {
	return g.space
}

// Add registers a box collider. center is the middle of the footprint on the
// ground plane and top is the height of its upper face.
func (g *Grid) Add(e donburi.Entity, center mgl.Vec3, halfX, halfZ, top float64, tag string) *resolv.Object {
	obj := resolv.NewObject(0, 0, halfX*2, halfZ*2, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, halfX*2, halfZ*2))
	obj.Data = &Surface{Entity: e, Top: top}
	g.place(obj, center)
	g.space.Add(obj)
	return obj
}

// Move recenters obj on the ground plane and updates its top height.
func (g *Grid) Move(obj *resolv.Object, center mgl.Vec3, top float64) {
	g.place(obj, center)
	if s, ok := obj.Data.(*Surface); ok {
		s.Top = top
	}
	obj.Update()
}

// Remove drops obj from the grid.
func (g *Grid) Remove(obj *resolv.Object) {
	g.space.Remove(obj)
}

func (g *Grid) place(obj *resolv.Object, center mgl.Vec3) {
	obj.X = center.X() - g.originX - obj.W/2
	obj.Y = center.Z() - g.originZ - obj.H/2
}

// Probe casts straight down from origin. Only the vertical component of dir
// is used; a dir that does not point down never hits. The probe footprint is
// a point, so surfaces are found when origin lies inside their footprint.
func (g *Grid) Probe(origin, dir mgl.Vec3, maxDist float64, exclude donburi.Entity) (Hit, bool) {
	return g.ProbeArea(origin, dir, maxDist, 0, exclude)
}

// ProbeArea is Probe with a square footprint of the given half extent. When
// several surfaces are in reach the highest top wins, then the one whose
// footprint center is nearest origin.
func (g *Grid) ProbeArea(origin, dir mgl.Vec3, maxDist, half float64, exclude donburi.Entity) (Hit, bool) {
	if dir.Y() >= 0 || maxDist <= 0 {
		return Hit{}, false
	}

	size := math.Max(half*2, gamemath.Epsilon)
	g.probe.W, g.probe.H = size, size
	g.place(g.probe, origin)
	g.probe.Update()

	check := g.probe.Check(0, 0, surfaceTags...)
	if check == nil {
		return Hit{}, false
	}

	var (
		best     Hit
		bestDist = math.Inf(1)
		found    bool
	)
	for _, obj := range check.Objects {
		s, ok := obj.Data.(*Surface)
		if !ok || s.Entity == exclude {
			continue
		}
		if !overlaps(g.probe, obj) {
			continue
		}
		down := origin.Y() - s.Top
		if down < 0 || down > maxDist {
			continue
		}
		cx := obj.X + obj.W/2 - (g.probe.X + g.probe.W/2)
		cz := obj.Y + obj.H/2 - (g.probe.Y + g.probe.H/2)
		centerDist := cx*cx + cz*cz
		if found && (s.Top < best.Top || (s.Top == best.Top && centerDist >= bestDist)) {
			continue
		}
		best = Hit{Entity: s.Entity, Tag: surfaceTag(obj), Top: s.Top, Distance: down}
		bestDist = centerDist
		found = true
	}
	return best, found
}

func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func surfaceTag(obj *resolv.Object) string {
	for _, tag := range surfaceTags {
		if obj.HasTags(tag) {
			return tag
		}
	}
	return tags.ResolvSolid
}
