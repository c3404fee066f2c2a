package actions

import (
	"fmt"
	"math"
)

type waitState struct {
	duration  float64
	remaining float64
	started   bool
}

// Wait completes after duration seconds of ticks.
func Wait(duration float64) *Action {
	return &Action{kind: KindWait, wait: waitState{duration: duration}}
}

// Remaining returns the countdown left on a Wait action.
func (a *Action) Remaining() float64 {
	if !a.wait.started {
		return a.wait.duration
	}
	return a.wait.remaining
}

func validateWait(a *Action) error {
	d := a.wait.duration
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: wait duration %v", ErrInvalidAction, d)
	}
	return nil
}

func startWait(a *Action, _ Context) error {
	if !a.wait.started {
		a.wait.remaining = a.wait.duration
		a.wait.started = true
	}
	return nil
}

func tickWait(a *Action, ctx Context) (bool, error) {
	a.wait.remaining -= ctx.Delta
	return a.wait.remaining <= completionEpsilon, nil
}

func stopWait(a *Action, _ Context, reason StopReason) {
	if reason != Paused {
		a.wait.started = false
	}
}
