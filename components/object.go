package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to its collider. HalfX and HalfZ are the
// footprint half extents; Height is the top face above the position.
type ObjectData struct {
	*resolv.Object
	HalfX, HalfZ float64
	Height       float64
}

var Object = donburi.NewComponentType[ObjectData]()
