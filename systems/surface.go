package systems

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/logger"
	"github.com/automoto/steadystep/surface"
)

var down = mgl.Vec3{0, -1, 0}

// UpdateGround probes beneath every agent and records a new category only
// when it differs from the last one.
func UpdateGround(w donburi.World, prober surface.Prober) {
	components.Ground.Each(w, func(e *donburi.Entry) {
		pos := components.Transform.Get(e).Position
		ground := components.Ground.Get(e)

		origin := pos.Add(mgl.Vec3{0, cfg.Surface.ProbeLift, 0})
		hit, ok := prober.Probe(origin, down, cfg.Surface.ProbeLength, e.Entity())
		category := surface.Classify(hit, ok)

		if ok {
			ground.Surface, ground.Tag = hit.Entity, hit.Tag
		} else {
			ground.Surface, ground.Tag = donburi.Null, ""
		}

		ground.Changed = category != ground.Category
		if !ground.Changed {
			return
		}
		logger.L().Debug("ground changed",
			"entity", e.Entity(),
			"from", ground.Category,
			"to", category,
		)
		ground.Previous = ground.Category
		ground.Category = category
	})
}
