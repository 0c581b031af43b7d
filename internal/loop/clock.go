package loop

import (
	"context"
	"time"
)

// Clock paces a frame loop at a fixed rate. Frames that run long are not
// made up; the simulation advances exactly one tick per frame.
type Clock struct {
	FrameTime time.Duration
}

// NewClock returns a clock for fps frames per second.
func NewClock(fps int) Clock {
	if fps <= 0 {
		fps = 60
	}
	return Clock{FrameTime: time.Second / time.Duration(fps)}
}

// Run calls step once per frame until step returns false or ctx is done.
// step receives the wall time since the previous frame.
func (c Clock) Run(ctx context.Context, step func(delta time.Duration) bool) error {
	lastTime := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if !step(delta) {
			return nil
		}

		elapsed := time.Since(frameStart)
		if elapsed < c.FrameTime {
			time.Sleep(c.FrameTime - elapsed)
		}
	}
}
