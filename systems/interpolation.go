package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/components"
	"github.com/automoto/steadystep/shared/gamemath"
)

// SnapshotInterpolation shifts every proxy's buffer by one tick. Run it once
// per frame after the last tick, never after intermediate catch-up ticks.
func SnapshotInterpolation(w donburi.World) {
	components.Interpolation.Each(w, func(e *donburi.Entry) {
		ip := components.Interpolation.Get(e)
		cur, ok := authoritative(w, ip.Target)
		if !ok {
			return
		}
		if !ip.Initialized {
			ip.Previous, ip.Current, ip.Rendered = cur, cur, cur
			ip.Initialized = true
			return
		}
		ip.Previous = ip.Current
		ip.Current = cur
	})
}

// SampleInterpolation blends each proxy's buffer by alpha. Channels with
// interpolation disabled show the current pose.
func SampleInterpolation(w donburi.World, alpha float64) {
	components.Interpolation.Each(w, func(e *donburi.Entry) {
		ip := components.Interpolation.Get(e)
		if !ip.Initialized {
			return
		}
		r := ip.Current
		if ip.Translate {
			r.Position = gamemath.LerpVec3(ip.Previous.Position, ip.Current.Position, alpha)
		}
		if ip.Rotate {
			r.Rotation = gamemath.Slerp(ip.Previous.Rotation, ip.Current.Rotation, alpha)
		}
		ip.Rendered = r
	})
}

// Rendered returns the last sampled pose of proxy.
func Rendered(w donburi.World, proxy donburi.Entity) (components.TransformData, bool) {
	if !w.Valid(proxy) {
		return components.TransformData{}, false
	}
	e := w.Entry(proxy)
	if !e.HasComponent(components.Interpolation) {
		return components.TransformData{}, false
	}
	ip := components.Interpolation.Get(e)
	return ip.Rendered, ip.Initialized
}

func authoritative(w donburi.World, target donburi.Entity) (components.TransformData, bool) {
	if !w.Valid(target) {
		return components.TransformData{}, false
	}
	e := w.Entry(target)
	if !e.HasComponent(components.Transform) {
		return components.TransformData{}, false
	}
	return *components.Transform.Get(e), true
}
