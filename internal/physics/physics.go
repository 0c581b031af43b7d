// Package physics provides axis-aligned overlap tests.
package physics

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
// Y grows downward.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// SpansOverlap reports whether the open intervals (a0,a1) and (b0,b1)
// intersect. Touching endpoints do not overlap.
func SpansOverlap(a0, a1, b0, b1 float64) bool {
	return a0 < b1 && a1 > b0
}

// HorizontalOverlap reports whether two rectangles overlap on the x axis.
func HorizontalOverlap(a, b Rect) bool {
	return SpansOverlap(a.X, a.Right(), b.X, b.Right())
}

// SpanWithin reports whether [inner0,inner1] lies inside the closed interval [outer0,outer1].
func SpanWithin(inner0, inner1, outer0, outer1 float64) bool {
	return inner0 >= outer0 && inner1 <= outer1
}
