package loop

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/flappy/internal/draw"
)

// Crash burst tuning, in logical units and seconds. Effects are purely
// visual and run on wall-clock time, outside the simulation.
const (
	burstCount    = 24
	burstSpeed    = 160.0
	burstLifetime = 0.8
	featherGrav   = 420.0
	featherSize   = 5.0
)

// particlePool is a sync.Pool for reusing particles to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &particle{}
	},
}

// particle is a short-lived feather drawn over the world.
type particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
}

// effects owns the particles of one client.
type effects struct {
	rng       *rand.Rand
	particles []*particle
}

func newEffects(rng *rand.Rand) *effects {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &effects{rng: rng}
}

// burst spawns count particles in a circular pattern around x, y.
func (e *effects) burst(x, y float64, count int, speed, lifetime float64) {
	for i := 0; i < count; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + e.rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + e.rng.Float64()*0.5)

		p := particlePool.Get().(*particle)
		*p = particle{
			X:           x,
			Y:           y,
			VX:          math.Cos(angle) * spd,
			VY:          math.Sin(angle) * spd,
			Lifetime:    life,
			MaxLifetime: life,
			Drag:        0.95,
		}
		e.particles = append(e.particles, p)
	}
}

// update moves every particle by dt and releases the expired ones.
func (e *effects) update(dt time.Duration) {
	secs := dt.Seconds()
	kept := e.particles[:0]
	for _, p := range e.particles {
		p.Lifetime -= secs
		if p.Lifetime <= 0 {
			particlePool.Put(p)
			continue
		}
		dragFactor := math.Pow(p.Drag, secs*60) // Normalize drag to ~60fps
		p.VX *= dragFactor
		p.VY = p.VY*dragFactor + featherGrav*secs
		p.X += p.VX * secs
		p.Y += p.VY * secs
		kept = append(kept, p)
	}
	clear(e.particles[len(kept):])
	e.particles = kept
}

// reset releases every particle.
func (e *effects) reset() {
	if len(e.particles) == 0 {
		return
	}
	for _, p := range e.particles {
		particlePool.Put(p)
	}
	clear(e.particles)
	e.particles = e.particles[:0]
}

// paint draws the live particles, skipping faded ones (< 25% lifetime).
func (e *effects) paint(c *draw.Canvas, color draw.Color) {
	for _, p := range e.particles {
		if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
			continue
		}
		c.FillRect(p.X, p.Y, featherSize, featherSize, color)
	}
}
