package components

import (
	"github.com/yohamta/donburi"
)

// InterpolationData buffers two authoritative poses of Target so the
// renderer can blend between ticks.
type InterpolationData struct {
	Target    donburi.Entity
	Translate bool
	Rotate    bool

	Previous    TransformData
	Current     TransformData
	Initialized bool

	// Rendered is the blended pose from the last sample.
	Rendered TransformData
}

var Interpolation = donburi.NewComponentType[InterpolationData]()
