package core

import (
	"sync"
	"time"
)

// Loop drives a Simulation from wall-clock time for hosts without a render
// loop of their own. Frames arrive at frameRate; the clock turns them into
// ticks.
type Loop struct {
	sim       *Simulation
	frameRate int
	stopChan  chan struct{}
	stopOnce  sync.Once

	// OnFrame, if set, runs after every frame with the number of ticks it
	// produced.
	OnFrame func(sim *Simulation, ticks int)
}

func NewLoop(sim *Simulation, frameRate int) *Loop {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &Loop{
		sim:       sim,
		frameRate: frameRate,
		stopChan:  make(chan struct{}),
	}
}

// Run blocks until Stop is called.
func (l *Loop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(l.frameRate))
	defer ticker.Stop()

	log := l.sim.log
	log.Info("loop started", "frame_rate", l.frameRate, "tick_rate", l.sim.Clock().Rate())

	last := time.Now()
	for {
		select {
		case <-l.stopChan:
			log.Info("loop stopped", "ticks", l.sim.Ticks())
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			n, err := l.sim.Frame(dt)
			if err != nil {
				continue
			}
			if l.OnFrame != nil {
				l.OnFrame(l.sim, n)
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}
