package factory

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/shared/leveldata"
)

// Spawned lists the entities BuildLevel created.
type Spawned struct {
	Agents  []donburi.Entity
	Props   []donburi.Entity
	Proxies map[donburi.Entity]donburi.Entity // target -> proxy
}

// BuildLevel populates w from level: the surface grid, every tile, one agent
// per spawn point and every prop. Agents and props get interpolated proxies.
func BuildLevel(w donburi.World, level *leveldata.Level) (*Spawned, error) {
	if len(level.Spawns) == 0 {
		return nil, fmt.Errorf("level %q has no spawn points", level.Name)
	}

	CreateSpace(w, level.Width, level.Depth)
	for _, t := range level.Tiles {
		CreateTile(w, t)
	}

	s := &Spawned{Proxies: map[donburi.Entity]donburi.Entity{}}
	for _, p := range level.Props {
		prop, err := CreateProp(w, p)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", level.Name, err)
		}
		s.Props = append(s.Props, prop.Entity())
		s.Proxies[prop.Entity()] = CreateProxy(w, prop.Entity(), true, false).Entity()
	}
	for _, sp := range level.Spawns {
		agent := CreateAgent(w, sp.Position)
		s.Agents = append(s.Agents, agent.Entity())
		s.Proxies[agent.Entity()] = CreateProxy(w, agent.Entity(), true, true).Entity()
	}
	return s, nil
}
