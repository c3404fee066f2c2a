package factory

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/archetypes"
	"github.com/automoto/steadystep/components"
)

// CreateProxy spawns a render proxy that buffers target's transform.
func CreateProxy(w donburi.World, target donburi.Entity, translate, rotate bool) *donburi.Entry {
	proxy := archetypes.Proxy.Spawn(w)
	components.Interpolation.SetValue(proxy, components.InterpolationData{
		Target:    target,
		Translate: translate,
		Rotate:    rotate,
	})
	return proxy
}
