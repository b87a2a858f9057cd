package engine

import (
	"context"
	"time"

	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/logger"
)

// Loop calls onUpdate at a fixed rate until its context is cancelled. onUpdate receives the time since the previous
// frame in seconds.
type Loop struct {
	clock    clock.WithTicker
	tickRate int
	onUpdate func(float64)
}

// New creates a loop running tickRate frames per second. Rates below one are raised to one.
func New(clk clock.WithTicker, tickRate int, onUpdate func(float64)) *Loop {
	if tickRate < 1 {
		tickRate = 1
	}
	return &Loop{
		clock:    clk,
		tickRate: tickRate,
		onUpdate: onUpdate,
	}
}

func (l *Loop) GetTickRate() int {
	return l.tickRate
}

// Interval is the time between frames.
func (l *Loop) Interval() time.Duration {
	return time.Second / time.Duration(l.tickRate)
}

// Run blocks, calling onUpdate every Interval, and returns when ctx is done.
func (l *Loop) Run(ctx context.Context) {
	logger := logger.GetProjectLogger()
	logger.Infof("Frame loop started at %d fps", l.tickRate)

	last := l.clock.Now()
	ticker := l.clock.NewTicker(l.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Frame loop shutdown")
			return
		case <-ticker.C():
			now := l.clock.Now()
			// DT in seconds
			delta := now.Sub(last).Seconds()
			last = now
			l.onUpdate(delta)
		}
	}
}
