package gamemath

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the distance below which two positions are considered equal.
const Epsilon = 1e-9

// forward is the direction an unrotated transform faces.
var forward = mgl.Vec3{0, 0, -1}

// Horizontal drops the vertical component of v.
func Horizontal(v mgl.Vec3) mgl.Vec3 {
	return mgl.Vec3{v.X(), 0, v.Z()}
}

// HorizontalLen returns the length of v on the ground plane.
func HorizontalLen(v mgl.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}

// SteeringToWorld maps a 2D input vector (x right, y forward) onto the
// ground plane. Forward is -Z.
func SteeringToWorld(input mgl.Vec2) mgl.Vec3 {
	return mgl.Vec3{input.X(), 0, -input.Y()}
}

// ClampInput scales input down to unit length when it is longer.
func ClampInput(input mgl.Vec2) mgl.Vec2 {
	l := input.Len()
	if l <= 1 {
		return input
	}
	return input.Mul(1 / l)
}

// MoveTowards moves current toward target by at most maxDelta. It returns
// target itself once the remaining distance fits in one step, so callers can
// compare the result with == to detect arrival.
func MoveTowards(current, target mgl.Vec3, maxDelta float64) mgl.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist <= Epsilon {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// LerpVec3 blends a toward b. t is not clamped.
func LerpVec3(a, b mgl.Vec3, t float64) mgl.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// YawLook returns the rotation about +Y that faces dir on the ground plane.
// ok is false when dir has no horizontal length.
func YawLook(dir mgl.Vec3) (q mgl.Quat, ok bool) {
	if HorizontalLen(dir) <= Epsilon {
		return mgl.QuatIdent(), false
	}
	yaw := math.Atan2(-dir.X(), -dir.Z())
	return mgl.QuatRotate(yaw, mgl.Vec3{0, 1, 0}), true
}

// Forward returns the ground-plane direction q faces.
func Forward(q mgl.Quat) mgl.Vec3 {
	f := Horizontal(q.Rotate(forward))
	l := f.Len()
	if l <= Epsilon {
		return forward
	}
	return f.Mul(1 / l)
}

// Slerp interpolates along the shortest arc between a and b. t is clamped to
// [0,1].
func Slerp(a, b mgl.Quat, t float64) mgl.Quat {
	t = mgl.Clamp(t, 0, 1)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl.QuatSlerp(a, b, t)
}

// TurnTowards slerps the facing rotation toward dir by rate*dt.
func TurnTowards(rotation mgl.Quat, dir mgl.Vec3, rate, dt float64) mgl.Quat {
	look, ok := YawLook(dir)
	if !ok {
		return rotation
	}
	return Slerp(rotation, look, rate*dt)
}
