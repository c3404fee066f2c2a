package gamemath

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl64"
)

// StepParams are the per-tick integration inputs after tuning has been
// applied.
type StepParams struct {
	Target       mgl.Vec3 // desired horizontal velocity
	Acceleration float64  // fraction of Target added per tick
	Damping      float64  // fraction of horizontal velocity removed per tick
	Gravity      float64  // downward acceleration in units/s^2
	Delta        float64  // tick duration in seconds
}

// Integrate advances one tick from position with the settled velocity current
// and the one-shot impulse added. It returns the new position and the
// velocity to store as the next current; the caller must zero added.
//
// Damping is applied per tick, so the same value decays faster at higher
// tick rates.
func Integrate(position, current, added mgl.Vec3, p StepParams) (mgl.Vec3, mgl.Vec3) {
	v := current.Add(added)

	target := Horizontal(p.Target)
	v[0] += target[0] * p.Acceleration
	v[2] += target[2] * p.Acceleration

	keep := 1 - ClampDamping(p.Damping)
	v[0] *= keep
	v[2] *= keep

	position = position.Add(v.Mul(p.Delta))

	v[1] -= p.Gravity * p.Delta

	if position[1] < 0 || (position[1] == 0 && v[1] < 0) {
		position[1] = 0
		v[1] = 0
	}

	return position, v
}

// ClampDamping limits d to [0,1].
func ClampDamping(d float64) float64 {
	if math.IsNaN(d) {
		return 0
	}
	return mgl.Clamp(d, 0, 1)
}

// JumpImpulse returns the upward velocity that reaches height under gravity.
func JumpImpulse(gravity, height float64) float64 {
	if gravity <= 0 || height <= 0 {
		return 0
	}
	return math.Sqrt(2 * gravity * height)
}
