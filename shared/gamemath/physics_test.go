package gamemath

import (
	"math"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl64"
)

func TestIntegrateMatchesDiscreteFormula(t *testing.T) {
	p := StepParams{
		Target:       mgl.Vec3{1, 0, 0},
		Acceleration: 1,
		Damping:      0,
		Gravity:      0,
		Delta:        0.05,
	}

	var pos, vel mgl.Vec3
	wantX := 0.0
	for n := 1; n <= 20; n++ {
		pos, vel = Integrate(pos, vel, mgl.Vec3{}, p)
		wantX += float64(n) * p.Delta

		if math.Abs(vel.X()-float64(n)) > 1e-12 {
			t.Fatalf("tick %d: vel.x = %v, want %v", n, vel.X(), n)
		}
	}

	if math.Abs(pos.X()-10.5) > 1e-9 || math.Abs(pos.X()-wantX) > 1e-9 {
		t.Errorf("pos.x = %v, want 10.5", pos.X())
	}
	if pos.Y() != 0 || pos.Z() != 0 {
		t.Errorf("pos = %v, want motion only along x", pos)
	}
}

func TestIntegrateConvergesWithDamping(t *testing.T) {
	tests := []struct {
		name  string
		accel float64
		damp  float64
		want  float64
	}{
		{"half damping", 1, 0.5, 1},
		{"default player tuning", 0.25, 0.2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := StepParams{Target: mgl.Vec3{1, 0, 0}, Acceleration: tt.accel, Damping: tt.damp, Delta: 0.05}
			var pos, vel mgl.Vec3
			for i := 0; i < 200; i++ {
				pos, vel = Integrate(pos, vel, mgl.Vec3{}, p)
			}
			if math.Abs(vel.X()-tt.want) > 1e-6 {
				t.Errorf("terminal vel.x = %v, want %v", vel.X(), tt.want)
			}
		})
	}
}

func TestIntegrateFloorClamp(t *testing.T) {
	tests := []struct {
		name    string
		pos     mgl.Vec3
		current mgl.Vec3
		added   mgl.Vec3
	}{
		{"falling through floor", mgl.Vec3{0, 0.01, 0}, mgl.Vec3{0, -5, 0}, mgl.Vec3{}},
		{"resting on floor", mgl.Vec3{2, 0, 3}, mgl.Vec3{}, mgl.Vec3{}},
		{"already below floor", mgl.Vec3{0, -1, 0}, mgl.Vec3{1, -1, 0}, mgl.Vec3{}},
		{"impulse downward", mgl.Vec3{0, 0.1, 0}, mgl.Vec3{}, mgl.Vec3{0, -10, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := StepParams{Gravity: 9.81, Delta: 0.05}
			pos, vel := Integrate(tt.pos, tt.current, tt.added, p)
			if pos.Y() != 0 {
				t.Errorf("pos.y = %v, want 0", pos.Y())
			}
			if vel.Y() != 0 {
				t.Errorf("vel.y = %v, want 0", vel.Y())
			}
		})
	}
}

func TestIntegrateFoldsImpulse(t *testing.T) {
	p := StepParams{Gravity: 9.81, Delta: 0.05}
	pos, vel := Integrate(mgl.Vec3{}, mgl.Vec3{}, mgl.Vec3{0, 6, 0}, p)

	if math.Abs(pos.Y()-0.3) > 1e-12 {
		t.Errorf("pos.y = %v, want 0.3", pos.Y())
	}
	if want := 6 - 9.81*0.05; math.Abs(vel.Y()-want) > 1e-12 {
		t.Errorf("vel.y = %v, want %v", vel.Y(), want)
	}
}

func TestIntegrateClampsDamping(t *testing.T) {
	p := StepParams{Damping: 3, Delta: 0.05}
	_, vel := Integrate(mgl.Vec3{}, mgl.Vec3{4, 0, 4}, mgl.Vec3{}, p)
	if vel.X() != 0 || vel.Z() != 0 {
		t.Errorf("vel = %v, want horizontal velocity fully damped", vel)
	}

	p.Damping = -1
	_, vel = Integrate(mgl.Vec3{}, mgl.Vec3{4, 0, 0}, mgl.Vec3{}, p)
	if vel.X() != 4 {
		t.Errorf("vel.x = %v, want negative damping treated as 0", vel.X())
	}
}

func TestJumpImpulse(t *testing.T) {
	v := JumpImpulse(9.81, 2)
	if apex := v * v / (2 * 9.81); math.Abs(apex-2) > 1e-9 {
		t.Errorf("apex = %v, want 2", apex)
	}
	if JumpImpulse(9.81, 0) != 0 {
		t.Error("zero height should give no impulse")
	}
	if JumpImpulse(0, 2) != 0 {
		t.Error("zero gravity should give no impulse")
	}
}
