package game

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/store"
)

// Event is a discrete player input.
type Event int

const (
	EventLift             Event = iota // Flap; also starts and restarts
	EventPause                         // Toggle pause
	EventLeaderboard                   // Toggle the full leaderboard view
	EventResetLeaderboard              // Wipe the leaderboard
)

// WarningNotSaved is shown when a run could not be persisted.
const WarningNotSaved = "progress not saved"

// Options configures a new Game.
type Options struct {
	Tuning     config.Tuning
	PlayerName string
	Store      store.Store // nil keeps progress in memory only
	Rand       *rand.Rand  // nil seeds from the clock
	Logger     *log.Logger
}

// Game owns every piece of simulation state for one player. It is not safe
// for concurrent use; the loop calls Handle and Step from one goroutine.
type Game struct {
	tuning  config.Tuning
	body    Body
	stream  *Stream
	session *Session
	machine *Machine
	warning string
	logger  *log.Logger
}

// New validates the tuning and builds a game in ModeNotStarted.
func New(opts Options) (*Game, error) {
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		tuning:  opts.Tuning,
		body:    NewBody(opts.Tuning.Bird),
		stream:  NewStream(opts.Tuning.Pipes, opts.Rand),
		session: NewSession(opts.PlayerName, opts.Tuning.Speed, opts.Store, logger),
		machine: NewMachine(),
		logger:  logger,
	}, nil
}

// Handle applies one input event. Events never advance the simulation; the
// effect is visible on the next Step or Snapshot.
func (g *Game) Handle(ev Event) {
	switch ev {
	case EventLift:
		g.handleLift()
	case EventPause:
		g.machine.TogglePause()
	case EventLeaderboard:
		g.machine.ToggleLeaderboard()
	case EventResetLeaderboard:
		if err := g.session.ResetLeaderboard(); err != nil {
			g.warn(err)
			return
		}
		g.warning = ""
		g.logger.Info("leaderboard reset", "player", g.session.PlayerName)
	}
}

func (g *Game) handleLift() {
	switch g.machine.Mode() {
	case ModeNotStarted:
		g.machine.Start()
	case ModeRunning:
		g.body.ApplyLift()
	case ModeGameOver:
		g.reset()
		g.machine.Restart()
	}
}

// reset puts the bird, pipes and session back to their start values.
func (g *Game) reset() {
	g.body = NewBody(g.tuning.Bird)
	g.stream.Reset()
	g.session.Reset()
}

// Step advances the simulation by one tick when running. It reports whether
// the tick ended the run.
func (g *Game) Step() bool {
	if !g.machine.Advancing() {
		return false
	}
	w, h := g.tuning.Screen.Width, g.tuning.Screen.Height

	g.body.ApplyGravity()
	if g.stream.Tick(g.session.FrameCount, g.session.Speed, w, h) {
		g.session.OnScoreIncrement()
	}
	over := IsGameOver(g.body, g.stream.Obstacles(), h)
	g.session.FrameCount++

	if !over {
		return false
	}
	g.machine.End()
	g.endRun()
	return true
}

// endRun reconciles the finished run with persisted progress.
func (g *Game) endRun() {
	score := g.session.Score
	if err := g.session.OnRunEnd(score); err != nil {
		g.warn(err)
	} else {
		g.warning = ""
	}
	g.logger.Info("run ended", "player", g.session.PlayerName, "score", score, "high", g.session.HighScore)
}

func (g *Game) warn(err error) {
	g.warning = WarningNotSaved
	g.logger.Warn(WarningNotSaved, "player", g.session.PlayerName, "err", err)
}

// Mode returns the current mode.
func (g *Game) Mode() Mode { return g.machine.Mode() }

// Snapshot is a read-only copy of everything the renderer needs.
type Snapshot struct {
	Mode        Mode
	Underlying  Mode // Mode beneath the leaderboard view
	Screen      config.ScreenTuning
	Body        Body
	Obstacles   []Obstacle
	Session     SessionState
	PlayerName  string
	Leaderboard []Entry // Top 5, or top 100 in the leaderboard view
	Warning     string
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	top := config.HUDLeaderboardSize
	if g.machine.Mode() == ModeLeaderboardView {
		top = config.FullLeaderboardSize
	}
	live := g.stream.Obstacles()
	obstacles := make([]Obstacle, len(live))
	copy(obstacles, live)

	return Snapshot{
		Mode:        g.machine.Mode(),
		Underlying:  g.machine.Underlying(),
		Screen:      g.tuning.Screen,
		Body:        g.body,
		Obstacles:   obstacles,
		Session:     g.session.SessionState,
		PlayerName:  g.session.PlayerName,
		Leaderboard: g.session.Leaderboard().Top(top),
		Warning:     g.warning,
	}
}
