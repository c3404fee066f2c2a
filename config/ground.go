package config

import (
	"fmt"
	"strings"
)

// GroundCategory classifies the surface beneath an agent.
type GroundCategory int

const (
	Airborne GroundCategory = iota
	Normal
	Slippery
	Conveyor
	GroundCategoryCount // Must be last - used for array sizing
)

var groundCategoryNames = [GroundCategoryCount]string{
	Airborne: "airborne",
	Normal:   "normal",
	Slippery: "slippery",
	Conveyor: "conveyor",
}

func (c GroundCategory) String() string {
	if c < 0 || c >= GroundCategoryCount {
		return fmt.Sprintf("GroundCategory(%d)", int(c))
	}
	return groundCategoryNames[c]
}

// ParseGroundCategory maps a lower-case category name back to its value.
func ParseGroundCategory(name string) (GroundCategory, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range groundCategoryNames {
		if n == name {
			return GroundCategory(c), nil
		}
	}
	return Airborne, fmt.Errorf("unknown ground category %q", name)
}

// Multipliers scale the PlayerConfig base constants for one ground category.
type Multipliers struct {
	Speed        float64 `yaml:"speed"`
	Acceleration float64 `yaml:"acceleration"`
	Damping      float64 `yaml:"damping"`
	Gravity      float64 `yaml:"gravity"`
	JumpHeight   float64 `yaml:"jump_height"`
}

// TuningTable maps every ground category to its multiplier bundle.
type TuningTable [GroundCategoryCount]Multipliers

// Tuning is the active table. Only the ground transition stage reads it.
var Tuning TuningTable

// For returns the multipliers for c. Unknown categories fall back to Normal.
func (t TuningTable) For(c GroundCategory) Multipliers {
	if c < 0 || c >= GroundCategoryCount {
		return t[Normal]
	}
	return t[c]
}

// DefaultTuning returns the built-in table.
func DefaultTuning() TuningTable {
	return TuningTable{
		Airborne: {
			Speed:        1.0,
			Acceleration: 0.2,
			Damping:      0.2,
			Gravity:      1.0,
			JumpHeight:   0.0, // no double jumps
		},
		Normal: {
			Speed:        1.0,
			Acceleration: 1.0,
			Damping:      1.0,
			Gravity:      1.0,
			JumpHeight:   1.0,
		},
		Slippery: {
			Speed:        1.5,
			Acceleration: 0.1,
			Damping:      0.05,
			Gravity:      1.0,
			JumpHeight:   0.0,
		},
		Conveyor: {
			Speed:        1.0,
			Acceleration: 1.0,
			Damping:      1.0,
			Gravity:      1.0,
			JumpHeight:   0.0,
		},
	}
}
