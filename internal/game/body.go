// Package game implements the Flappy simulation: the bird body, the pipe
// stream, collision evaluation, scoring, persistence and the mode machine.
// Nothing in this package draws; the renderer reads Snapshots.
package game

import (
	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/physics"
)

// Body is the bird. Y grows downward, so Lift is negative.
// Velocity is deliberately not clamped; long falls accelerate without bound.
type Body struct {
	X, Y     float64 // Top-left corner
	Velocity float64 // Vertical velocity, units per tick
	Width    float64
	Height   float64
	Gravity  float64 // Added to Velocity every tick
	Lift     float64 // Velocity after a flap
}

// NewBody creates a body at its start position at rest.
func NewBody(t config.BirdTuning) Body {
	return Body{
		X:       t.X,
		Y:       t.StartY,
		Width:   t.Width,
		Height:  t.Height,
		Gravity: t.Gravity,
		Lift:    t.Lift,
	}
}

// ApplyGravity integrates one tick: velocity first, then position.
func (b *Body) ApplyGravity() {
	b.Velocity += b.Gravity
	b.Y += b.Velocity
}

// ApplyLift replaces the current velocity with the lift impulse.
func (b *Body) ApplyLift() {
	b.Velocity = b.Lift
}

// Rect returns the body's bounding box.
func (b Body) Rect() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Top returns the y coordinate of the top edge.
func (b Body) Top() float64 { return b.Y }

// Bottom returns the y coordinate of the bottom edge.
func (b Body) Bottom() float64 { return b.Y + b.Height }
