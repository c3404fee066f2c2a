package tags

import "github.com/yohamta/donburi"

var (
	Agent = donburi.NewTag().SetName("Agent")
	Prop  = donburi.NewTag().SetName("Prop")
	Proxy = donburi.NewTag().SetName("Proxy")
	Tile  = donburi.NewTag().SetName("Tile")
	Space = donburi.NewTag().SetName("Space")
)

// Resolv tags for surface probing
const (
	ResolvSolid    = "solid"
	ResolvIce      = "ice"
	ResolvConveyor = "conveyor"
	ResolvAgent    = "agent"
	ResolvProbe    = "probe"
)
