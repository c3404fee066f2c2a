package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/actions"
)

// ActionsData gives an entity its own action queue.
type ActionsData struct {
	Queue *actions.Queue
}

var Actions = donburi.NewComponentType[ActionsData]()
