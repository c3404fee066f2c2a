package factory

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/automoto/steadystep/actions"
	"github.com/automoto/steadystep/archetypes"
	"github.com/automoto/steadystep/components"
	cfg "github.com/automoto/steadystep/config"
	"github.com/automoto/steadystep/systems"
	"github.com/automoto/steadystep/tags"
)

// agentHeight is the collider height above the agent's feet.
const agentHeight = 1.0

// CreateAgent spawns a controllable agent standing at pos. It starts
// airborne; the first tick classifies the ground beneath it.
func CreateAgent(w donburi.World, pos mgl.Vec3) *donburi.Entry {
	agent := archetypes.Agent.Spawn(w)

	components.Transform.SetValue(agent, components.NewTransform(pos))
	components.Velocity.SetValue(agent, components.VelocityData{})
	components.Input.SetValue(agent, components.InputData{})
	components.Ground.SetValue(agent, components.GroundData{
		Category: cfg.Airborne,
		Previous: cfg.Airborne,
		Surface:  donburi.Null,
	})
	components.Actions.SetValue(agent, components.ActionsData{Queue: actions.NewQueue()})

	r := cfg.Player.Radius
	data := components.ObjectData{HalfX: r, HalfZ: r, Height: agentHeight}
	if grid, ok := Grid(w); ok {
		data.Object = grid.Add(agent.Entity(), pos, r, r, pos.Y()+agentHeight, tags.ResolvAgent)
	}
	components.Object.SetValue(agent, data)

	systems.ApplyGround(agent, cfg.Airborne, 0)
	return agent
}
