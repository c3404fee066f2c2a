package surface

import (
	"github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/tags"
)

// Classify maps a probe result to a ground category.
func Classify(hit Hit, ok bool) config.GroundCategory {
	if !ok {
		return config.Airborne
	}
	switch hit.Tag {
	case tags.ResolvIce:
		return config.Slippery
	case tags.ResolvConveyor:
		return config.Conveyor
	default:
		return config.Normal
	}
}

// TagFor returns the resolv tag used for surfaces of category c. Airborne
// has no surface and maps to solid.
func TagFor(c config.GroundCategory) string {
	switch c {
	case config.Slippery:
		return tags.ResolvIce
	case config.Conveyor:
		return tags.ResolvConveyor
	default:
		return tags.ResolvSolid
	}
}
