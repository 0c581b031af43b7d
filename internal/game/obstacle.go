package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/physics"
)

// Obstacle is a pipe pair with an open gap between GapTop and GapBottom.
type Obstacle struct {
	X         float64 // Left edge
	Width     float64
	GapTop    float64
	GapBottom float64 // Always GapTop + gap height
}

// Right returns the x coordinate of the right edge.
func (o Obstacle) Right() float64 { return o.X + o.Width }

// Span returns the full-height rectangle the pipe pair occupies on screen.
func (o Obstacle) Span(screenHeight float64) physics.Rect {
	return physics.Rect{X: o.X, Y: 0, W: o.Width, H: screenHeight}
}

// Stream spawns, scrolls and retires obstacles. The front of the slice is
// the oldest, leftmost pipe.
type Stream struct {
	cfg       config.PipeTuning
	rng       *rand.Rand
	obstacles []Obstacle
}

// NewStream creates an empty stream. A nil rng is replaced by a time-seeded one.
func NewStream(cfg config.PipeTuning, rng *rand.Rand) *Stream {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Stream{cfg: cfg, rng: rng}
}

// Tick advances the stream by one simulation step and reports whether the
// front obstacle was retired (one point scored). speed is the only scroll
// rate in the game.
func (s *Stream) Tick(frameCount int, speed, screenWidth, screenHeight float64) bool {
	if frameCount%s.cfg.SpawnInterval == 0 {
		s.spawn(screenWidth, screenHeight)
	}

	for i := range s.obstacles {
		s.obstacles[i].X -= speed
	}

	if len(s.obstacles) > 0 && s.obstacles[0].Right() < 0 {
		s.obstacles = s.obstacles[1:]
		return true
	}
	return false
}

// spawn appends a pipe at the right edge with a uniformly placed gap.
func (s *Stream) spawn(screenWidth, screenHeight float64) {
	usable := screenHeight - s.cfg.Gap - s.cfg.TopMargin - s.cfg.BottomMargin
	top := s.cfg.TopMargin + s.rng.Float64()*usable
	s.obstacles = append(s.obstacles, Obstacle{
		X:         screenWidth,
		Width:     s.cfg.Width,
		GapTop:    top,
		GapBottom: top + s.cfg.Gap,
	})
}

// Obstacles returns the live obstacles, oldest first. Callers must not
// modify the returned slice.
func (s *Stream) Obstacles() []Obstacle {
	return s.obstacles
}

// Reset removes every obstacle.
func (s *Stream) Reset() {
	s.obstacles = s.obstacles[:0]
}
