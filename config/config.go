// Package config holds the simulation constants. Values are populated in init()
// and may be overlaid from a YAML file with Load. The package must stay free of
// ebiten imports so headless hosts can use it.
package config

// SimulationConfig contains fixed-tick clock settings.
type SimulationConfig struct {
	TickRate int `yaml:"tick_rate"` // ticks per simulated second
}

// PlayerConfig contains the base constants the tuning multipliers scale.
type PlayerConfig struct {
	BaseSpeed float64 `yaml:"base_speed"` // target speed in units/s at full steering input

	// BaseAcceleration is the fraction of the target velocity folded into the
	// current velocity each tick.
	BaseAcceleration float64 `yaml:"base_acceleration"`

	// BaseDamping is the fraction of horizontal velocity removed each tick.
	// Applied per tick, not per second, so changing TickRate changes how fast
	// the agent slows down.
	BaseDamping float64 `yaml:"base_damping"`

	BaseGravity    float64 `yaml:"base_gravity"`     // units/s^2
	BaseJumpHeight float64 `yaml:"base_jump_height"` // apex height in units
	TurnRate       float64 `yaml:"turn_rate"`        // facing slerp factor per second

	// MinConveyorSpeed is the lowest speed a conveyor will carry the agent at.
	MinConveyorSpeed float64 `yaml:"min_conveyor_speed"`

	Radius float64 `yaml:"radius"` // collider half extent on the ground plane
}

// SurfaceConfig contains the ground probe settings.
type SurfaceConfig struct {
	ProbeLength float64 `yaml:"probe_length"` // max distance the probe travels downwards
	ProbeLift   float64 `yaml:"probe_lift"`   // probe origin height above the agent's feet
	CellSize    int     `yaml:"cell_size"`    // resolv cell size in world units
}

// ActionsConfig contains action queue settings.
type ActionsConfig struct {
	TurnRate float64 `yaml:"turn_rate"` // MoveTo facing slerp factor per second
}

// RenderConfig contains sandbox display settings.
type RenderConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	UnitPixels  float64 `yaml:"unit_pixels"` // screen pixels per world unit
	Interpolate bool    `yaml:"interpolate"`
}

// LogConfig selects the logger level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Global configuration instances
var Simulation SimulationConfig
var Player PlayerConfig
var Surface SurfaceConfig
var Actions ActionsConfig
var Render RenderConfig
var Log LogConfig

// Tick rates the sandbox cycles through.
var TickRates = []int{10, 20, 30, 60}

func init() {
	Simulation = SimulationConfig{
		TickRate: 20,
	}

	Player = PlayerConfig{
		BaseSpeed:        6.0,
		BaseAcceleration: 0.25,
		BaseDamping:      0.2, // with 0.25 acceleration the agent settles at exactly BaseSpeed
		BaseGravity:      9.81,
		BaseJumpHeight:   2.0,
		TurnRate:         15.0,
		MinConveyorSpeed: 1.0,
		Radius:           0.4,
	}

	Surface = SurfaceConfig{
		ProbeLength: 0.2,
		ProbeLift:   0.1,
		CellSize:    1,
	}

	Actions = ActionsConfig{
		TurnRate: 10.0,
	}

	Render = RenderConfig{
		Width:       960,
		Height:      540,
		UnitPixels:  32,
		Interpolate: true,
	}

	Log = LogConfig{
		Level:  "info",
		Format: "console",
	}

	Tuning = DefaultTuning()
}

// NextTickRate steps through TickRates from current by step, wrapping at both
// ends. A rate not in the list starts from the first entry.
func NextTickRate(current, step int) int {
	if len(TickRates) == 0 {
		return current
	}
	i := 0
	for j, r := range TickRates {
		if r == current {
			i = j
			break
		}
	}
	n := len(TickRates)
	return TickRates[((i+step)%n+n)%n]
}
