package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/surface"
)

type SpaceData struct {
	*surface.Grid
}

var Space = donburi.NewComponentType[SpaceData]()
