package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type tuningDocument struct {
	Airborne Multipliers `yaml:"airborne"`
	Normal   Multipliers `yaml:"normal"`
	Slippery Multipliers `yaml:"slippery"`
	Conveyor Multipliers `yaml:"conveyor"`
}

type document struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Player     PlayerConfig     `yaml:"player"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Actions    ActionsConfig    `yaml:"actions"`
	Render     RenderConfig     `yaml:"render"`
	Log        LogConfig        `yaml:"log"`
	Tuning     tuningDocument   `yaml:"tuning"`
}

// Load overlays the YAML file at path onto the current configuration.
// Keys missing from the file keep their current values.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(data); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	return nil
}

// Parse overlays YAML data onto the current configuration. Nothing is
// applied when the result fails validation.
func Parse(data []byte) error {
	doc := document{
		Simulation: Simulation,
		Player:     Player,
		Surface:    Surface,
		Actions:    Actions,
		Render:     Render,
		Log:        Log,
		Tuning: tuningDocument{
			Airborne: Tuning[Airborne],
			Normal:   Tuning[Normal],
			Slippery: Tuning[Slippery],
			Conveyor: Tuning[Conveyor],
		},
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	table := TuningTable{
		Airborne: doc.Tuning.Airborne,
		Normal:   doc.Tuning.Normal,
		Slippery: doc.Tuning.Slippery,
		Conveyor: doc.Tuning.Conveyor,
	}
	if err := validate(doc, table); err != nil {
		return err
	}

	Simulation = doc.Simulation
	Player = doc.Player
	Surface = doc.Surface
	Actions = doc.Actions
	Render = doc.Render
	Log = doc.Log
	Tuning = table
	return nil
}

func validate(doc document, table TuningTable) error {
	if doc.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %d", doc.Simulation.TickRate)
	}
	if doc.Surface.ProbeLength <= 0 {
		return fmt.Errorf("surface.probe_length must be positive, got %v", doc.Surface.ProbeLength)
	}
	if doc.Surface.CellSize <= 0 {
		return fmt.Errorf("surface.cell_size must be positive, got %d", doc.Surface.CellSize)
	}
	for c, m := range table {
		damping := doc.Player.BaseDamping * m.Damping
		if damping < 0 || damping > 1 {
			return fmt.Errorf("tuning.%s: effective damping %v outside [0,1]", GroundCategory(c), damping)
		}
		if m.Speed < 0 || m.Acceleration < 0 || m.Gravity < 0 || m.JumpHeight < 0 {
			return fmt.Errorf("tuning.%s: multipliers must not be negative", GroundCategory(c))
		}
	}
	return nil
}
