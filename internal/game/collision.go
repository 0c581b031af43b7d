package game

import "github.com/tomz197/flappy/internal/physics"

// IsGameOver reports whether the body has left the screen vertically or hit
// a pipe. It has no side effects.
func IsGameOver(body Body, obstacles []Obstacle, screenHeight float64) bool {
	if body.Bottom() > screenHeight || body.Top() < 0 {
		return true
	}

	bodyRect := body.Rect()
	for _, o := range obstacles {
		if !physics.HorizontalOverlap(bodyRect, o.Span(screenHeight)) {
			continue
		}
		if !physics.SpanWithin(body.Top(), body.Bottom(), o.GapTop, o.GapBottom) {
			return true
		}
	}
	return false
}
