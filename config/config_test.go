package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// snapshot restores the package globals after a test mutates them.
func snapshot(t *testing.T) {
	t.Helper()
	sim, player, surface, acts, render, log, tuning := Simulation, Player, Surface, Actions, Render, Log, Tuning
	t.Cleanup(func() {
		Simulation, Player, Surface, Actions, Render, Log, Tuning = sim, player, surface, acts, render, log, tuning
	})
}

func TestDefaults(t *testing.T) {
	if Simulation.TickRate != 20 {
		t.Errorf("Simulation.TickRate = %d, want 20", Simulation.TickRate)
	}
	if Surface.ProbeLength != 0.2 {
		t.Errorf("Surface.ProbeLength = %v, want 0.2", Surface.ProbeLength)
	}
	if Tuning != DefaultTuning() {
		t.Error("Tuning does not match DefaultTuning()")
	}
}

func TestTuningFor(t *testing.T) {
	table := DefaultTuning()
	tests := []struct {
		name     string
		category GroundCategory
		want     Multipliers
	}{
		{"airborne cannot jump", Airborne, table[Airborne]},
		{"normal is identity", Normal, Multipliers{1, 1, 1, 1, 1}},
		{"slippery is fast and loose", Slippery, table[Slippery]},
		{"conveyor", Conveyor, table[Conveyor]},
		{"unknown falls back to normal", GroundCategory(42), table[Normal]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.For(tt.category); got != tt.want {
				t.Errorf("For(%v) = %+v, want %+v", tt.category, got, tt.want)
			}
		})
	}

	if table.For(Airborne).JumpHeight != 0 {
		t.Error("airborne jump height multiplier should be 0")
	}
	if table.For(Slippery).Speed <= table.For(Normal).Speed {
		t.Error("slippery should be faster than normal")
	}
}

func TestGroundCategoryNames(t *testing.T) {
	for c := GroundCategory(0); c < GroundCategoryCount; c++ {
		parsed, err := ParseGroundCategory(strings.ToUpper(c.String()))
		if err != nil {
			t.Fatalf("ParseGroundCategory(%q) error: %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("ParseGroundCategory(%q) = %v, want %v", c.String(), parsed, c)
		}
	}
	if _, err := ParseGroundCategory("lava"); err == nil {
		t.Error("ParseGroundCategory(lava) should fail")
	}
	if got := GroundCategory(9).String(); got != "GroundCategory(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		validate func(t *testing.T)
	}{
		{
			name: "partial overlay keeps defaults",
			content: `simulation:
  tick_rate: 60
player:
  base_speed: 8
tuning:
  slippery:
    speed: 2
`,
			validate: func(t *testing.T) {
				if Simulation.TickRate != 60 {
					t.Errorf("TickRate = %d, want 60", Simulation.TickRate)
				}
				if Player.BaseSpeed != 8 {
					t.Errorf("BaseSpeed = %v, want 8", Player.BaseSpeed)
				}
				if Player.BaseGravity != 9.81 {
					t.Errorf("BaseGravity = %v, want default 9.81", Player.BaseGravity)
				}
				if Tuning[Slippery].Speed != 2 {
					t.Errorf("slippery speed = %v, want 2", Tuning[Slippery].Speed)
				}
				if Tuning[Slippery].Damping != DefaultTuning()[Slippery].Damping {
					t.Errorf("slippery damping = %v, want default", Tuning[Slippery].Damping)
				}
			},
		},
		{
			name:    "zero tick rate rejected",
			content: "simulation:\n  tick_rate: 0\n",
			wantErr: true,
		},
		{
			name:    "damping above one rejected",
			content: "tuning:\n  normal:\n    damping: 10\n",
			wantErr: true,
		},
		{
			name:    "negative multiplier rejected",
			content: "tuning:\n  airborne:\n    gravity: -1\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			content: "simulation: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot(t)
			before := Simulation

			err := Parse([]byte(tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() succeeded, want error")
				}
				if Simulation != before {
					t.Error("failed Parse() modified the configuration")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			tt.validate(t)
		})
	}
}

func TestLoad(t *testing.T) {
	snapshot(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "steadystep.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", Log.Level)
	}

	if err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestNextTickRate(t *testing.T) {
	tests := []struct {
		current, step, want int
	}{
		{20, 1, 30},
		{20, -1, 10},
		{60, 1, 10},
		{10, -1, 60},
		{25, 1, 20},
	}
	for _, tt := range tests {
		if got := NextTickRate(tt.current, tt.step); got != tt.want {
			t.Errorf("NextTickRate(%d, %d) = %d, want %d", tt.current, tt.step, got, tt.want)
		}
	}
}
