package scenes

import (
	mgl "github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/automoto/steadystep/shared/gamemath"
)

// control is a logical sandbox input.
type control int

const (
	controlLeft control = iota
	controlRight
	controlForward
	controlBack
	controlJump
	controlPauseProps
	controlInterpolate
	controlSlower
	controlFaster
	controlReturn
	controlSpin
	controlSkip
	controlCancel
	controlCount // Must be last - used for array sizing
)

// binding lists the keys and gamepad buttons for one control.
type binding struct {
	keys    []ebiten.Key
	buttons []ebiten.StandardGamepadButton
}

var bindings = [controlCount]binding{
	controlLeft:        {keys: []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft}},
	controlRight:       {keys: []ebiten.Key{ebiten.KeyD, ebiten.KeyRight}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight}},
	controlForward:     {keys: []ebiten.Key{ebiten.KeyW, ebiten.KeyUp}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop}},
	controlBack:        {keys: []ebiten.Key{ebiten.KeyS, ebiten.KeyDown}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom}},
	controlJump:        {keys: []ebiten.Key{ebiten.KeySpace}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom}},
	controlPauseProps:  {keys: []ebiten.Key{ebiten.KeyP}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight}},
	controlInterpolate: {keys: []ebiten.Key{ebiten.KeyI}},
	controlSlower:      {keys: []ebiten.Key{ebiten.KeyBracketLeft}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopLeft}},
	controlFaster:      {keys: []ebiten.Key{ebiten.KeyBracketRight}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopRight}},
	controlReturn:      {keys: []ebiten.Key{ebiten.KeyR}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop}},
	controlSpin:        {keys: []ebiten.Key{ebiten.KeyL}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft}},
	controlSkip:        {keys: []ebiten.Key{ebiten.KeyN}},
	controlCancel:      {keys: []ebiten.Key{ebiten.KeyC}, buttons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight}},
}

// analogDeadzone ignores stick noise near the centre.
const analogDeadzone = 0.25

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// inputState is one frame of polled controls.
type inputState struct {
	steering mgl.Vec2
	pressed  [controlCount]bool // went down this frame
}

func pollInput() inputState {
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var s inputState
	held := func(c control) bool {
		for _, k := range bindings[c].keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		for _, id := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(id) {
				continue
			}
			for _, b := range bindings[c].buttons {
				if ebiten.IsStandardGamepadButtonPressed(id, b) {
					return true
				}
			}
		}
		return false
	}

	for c := control(0); c < controlCount; c++ {
		s.pressed[c] = justPressed(c)
	}

	if held(controlLeft) {
		s.steering[0]--
	}
	if held(controlRight) {
		s.steering[0]++
	}
	if held(controlForward) {
		s.steering[1]++
	}
	if held(controlBack) {
		s.steering[1]--
	}
	s.steering = gamemath.ClampInput(s.steering.Add(analogStick()))
	return s
}

func justPressed(c control) bool {
	for _, k := range bindings[c].keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	for _, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range bindings[c].buttons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				return true
			}
		}
	}
	return false
}

// analogStick reads the left stick of the first gamepad outside the
// deadzone. Stick up is negative on the vertical axis; steering forward is
// positive.
func analogStick() mgl.Vec2 {
	for _, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		v := mgl.Vec2{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		}
		if v.Len() > analogDeadzone {
			return v
		}
	}
	return mgl.Vec2{}
}
