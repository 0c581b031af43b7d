package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is returned by Validate when the tuning cannot produce a
// playable field. It is fatal at startup.
var ErrInvalidTuning = errors.New("invalid tuning")

// Frame timing.
const (
	TargetFPS = 60
)

// Leaderboard display sizes.
const (
	HUDLeaderboardSize  = 5
	FullLeaderboardSize = 100
	MaxUsernameLength   = 16
	DefaultPlayerName   = "Player"
)

// Tuning holds every gameplay constant of a run. All values are in logical
// units; the renderer scales them to the terminal.
type Tuning struct {
	Screen ScreenTuning `yaml:"screen"`
	Bird   BirdTuning   `yaml:"bird"`
	Pipes  PipeTuning   `yaml:"pipes"`
	Speed  SpeedTuning  `yaml:"speed"`
}

// ScreenTuning is the logical playfield size.
type ScreenTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BirdTuning defines the body and its physics.
type BirdTuning struct {
	X       float64 `yaml:"x"`
	StartY  float64 `yaml:"start_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gravity float64 `yaml:"gravity"`
	Lift    float64 `yaml:"lift"`
}

// PipeTuning defines obstacle geometry and cadence.
type PipeTuning struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`
	SpawnInterval int     `yaml:"spawn_interval"` // Ticks between spawns
	TopMargin     float64 `yaml:"top_margin"`
	BottomMargin  float64 `yaml:"bottom_margin"`
}

// SpeedTuning defines the scroll speed progression.
type SpeedTuning struct {
	Base   float64 `yaml:"base"`
	Growth float64 `yaml:"growth"` // Added per point scored
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Screen: ScreenTuning{Width: 480, Height: 400},
		Bird: BirdTuning{
			X:       50,
			StartY:  150,
			Width:   34,
			Height:  24,
			Gravity: 0.6,
			Lift:    -10,
		},
		Pipes: PipeTuning{
			Width:         20,
			Gap:           230,
			SpawnInterval: 60,
			TopMargin:     20,
			BottomMargin:  80,
		},
		Speed: SpeedTuning{Base: 1.0, Growth: 0.03},
	}
}

// LoadTuning reads a YAML tuning file on top of the defaults. An empty path
// returns the defaults. The result is not validated.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	return t, nil
}

// UsableGapRange returns the span available for random gap placement.
func (t Tuning) UsableGapRange() float64 {
	return t.Screen.Height - t.Pipes.Gap - t.Pipes.TopMargin - t.Pipes.BottomMargin
}

// Validate checks the spawn geometry once before the loop starts.
func (t Tuning) Validate() error {
	switch {
	case t.Screen.Width <= 0 || t.Screen.Height <= 0:
		return fmt.Errorf("%w: screen must be positive, got %gx%g", ErrInvalidTuning, t.Screen.Width, t.Screen.Height)
	case t.Bird.Width <= 0 || t.Bird.Height <= 0:
		return fmt.Errorf("%w: bird size must be positive", ErrInvalidTuning)
	case t.Pipes.Width <= 0 || t.Pipes.Gap <= 0:
		return fmt.Errorf("%w: pipe width and gap must be positive", ErrInvalidTuning)
	case t.Pipes.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn interval must be positive, got %d", ErrInvalidTuning, t.Pipes.SpawnInterval)
	case t.Pipes.TopMargin < 0 || t.Pipes.BottomMargin < 0:
		return fmt.Errorf("%w: margins must not be negative", ErrInvalidTuning)
	case t.UsableGapRange() <= 0:
		return fmt.Errorf("%w: gap %g plus margins %g/%g does not fit screen height %g",
			ErrInvalidTuning, t.Pipes.Gap, t.Pipes.TopMargin, t.Pipes.BottomMargin, t.Screen.Height)
	case t.Speed.Base < 0 || t.Speed.Growth < 0:
		return fmt.Errorf("%w: speed must not be negative", ErrInvalidTuning)
	}
	return nil
}
