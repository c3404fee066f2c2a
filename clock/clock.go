// Package clock turns variable wall-clock frame deltas into whole, fixed-duration
// simulation ticks. It has no dependencies on ebiten or donburi so headless hosts
// can drive the simulation directly.
package clock

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDelta is returned when a frame delta is negative, NaN or infinite.
var ErrInvalidDelta = errors.New("invalid frame delta")

// TickSignal tells the caller how many ticks to run for the current frame.
type TickSignal int

const (
	// None means the accumulator has not filled a whole tick yet.
	None TickSignal = iota
	// One means exactly one tick is due; it is the last one of the frame.
	One
	// OneAndMore means a tick is due and another one is still pending. The
	// caller must run the tick and call Advance again within the same frame.
	OneAndMore
)

func (s TickSignal) String() string {
	switch s {
	case None:
		return "None"
	case One:
		return "One"
	case OneAndMore:
		return "OneAndMore"
	default:
		return fmt.Sprintf("TickSignal(%d)", int(s))
	}
}

// Clock accumulates frame time into fixed ticks.
type Clock struct {
	tickRate     int
	tickDuration float64
	slack        float64 // rounding allowance when comparing against tickDuration
	accumulator  float64
	carryingOver bool
	frameDelta   float64
}

// New returns a clock firing tickRate ticks per simulated second.
func New(tickRate int) *Clock {
	if tickRate <= 0 {
		panic(fmt.Sprintf("clock: tick rate must be positive, got %d", tickRate))
	}
	return &Clock{
		tickRate:     tickRate,
		tickDuration: 1.0 / float64(tickRate),
		slack:        1e-9 / float64(tickRate),
	}
}

// Advance feeds a frame delta (seconds) into the clock. While a backlog is
// being drained (the previous call returned OneAndMore) dt is not added again.
func (c *Clock) Advance(dt float64) (TickSignal, error) {
	if !c.carryingOver {
		if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
			return None, fmt.Errorf("advance by %v: %w", dt, ErrInvalidDelta)
		}
		c.accumulator += dt
		c.frameDelta = dt
	}

	// A banked total that is a whole number of ticks can come out one ulp
	// short after repeated subtraction; it still counts as due.
	due := c.tickDuration - c.slack
	if c.accumulator < due {
		c.carryingOver = false
		return None, nil
	}

	c.accumulator -= c.tickDuration
	if c.accumulator < 0 {
		c.accumulator = 0
	}
	if c.accumulator >= due {
		c.carryingOver = true
		return OneAndMore, nil
	}
	c.carryingOver = false
	return One, nil
}

// Rate returns the number of ticks per simulated second.
func (c *Clock) Rate() int {
	return c.tickRate
}

// Delta returns the fixed duration of one tick in seconds.
func (c *Clock) Delta() float64 {
	return c.tickDuration
}

// FrameDelta returns the last wall-clock delta accepted by Advance.
func (c *Clock) FrameDelta() float64 {
	return c.frameDelta
}

// Accumulated returns the time banked towards the next tick.
func (c *Clock) Accumulated() float64 {
	return c.accumulator
}

// CarryingOver reports whether a backlog of ticks is being drained.
func (c *Clock) CarryingOver() bool {
	return c.carryingOver
}

// Percent is the interpolation alpha between the last two ticks, in [0, 1).
func (c *Clock) Percent() float64 {
	p := c.accumulator / c.tickDuration
	if p >= 1 {
		return math.Nextafter(1, 0)
	}
	if p < 0 {
		return 0
	}
	return p
}

// Drain advances the clock by dt and calls tick once per due tick. last is
// true for the final tick of the frame. It returns the number of ticks run.
func (c *Clock) Drain(dt float64, tick func(last bool)) (int, error) {
	signal, err := c.Advance(dt)
	if err != nil {
		return 0, err
	}

	ticks := 0
	for signal != None {
		last := signal == One
		tick(last)
		ticks++
		if last {
			break
		}
		signal, err = c.Advance(dt)
		if err != nil {
			return ticks, err
		}
	}
	return ticks, nil
}
