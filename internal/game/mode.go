package game

// Mode is the single source of truth for what the game is doing.
type Mode int

const (
	ModeNotStarted      Mode = iota // Waiting for the first input
	ModeRunning                     // Physics advancing
	ModePaused                      // Frozen by the player
	ModeGameOver                    // Run ended, waiting for restart
	ModeLeaderboardView             // Full leaderboard overlay; underlying mode is frozen
)

var modeNames = [...]string{
	ModeNotStarted:      "not-started",
	ModeRunning:         "running",
	ModePaused:          "paused",
	ModeGameOver:        "game-over",
	ModeLeaderboardView: "leaderboard",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Machine enforces the legal mode transitions. Each transition method
// reports whether it changed the mode.
type Machine struct {
	mode  Mode
	prior Mode // Mode to restore when leaving the leaderboard view
}

// NewMachine returns a machine in ModeNotStarted.
func NewMachine() *Machine {
	return &Machine{mode: ModeNotStarted, prior: ModeNotStarted}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Underlying returns the mode beneath the leaderboard view, or the current
// mode when the view is closed.
func (m *Machine) Underlying() Mode {
	if m.mode == ModeLeaderboardView {
		return m.prior
	}
	return m.mode
}

// Advancing reports whether physics should run this tick.
func (m *Machine) Advancing() bool { return m.mode == ModeRunning }

// Start leaves the title screen.
func (m *Machine) Start() bool {
	return m.move(ModeNotStarted, ModeRunning)
}

// TogglePause flips between Running and Paused.
func (m *Machine) TogglePause() bool {
	switch m.mode {
	case ModeRunning:
		return m.move(ModeRunning, ModePaused)
	case ModePaused:
		return m.move(ModePaused, ModeRunning)
	}
	return false
}

// End records that the running game is over.
func (m *Machine) End() bool {
	return m.move(ModeRunning, ModeGameOver)
}

// Restart begins a new run after game over. The caller resets state first.
func (m *Machine) Restart() bool {
	return m.move(ModeGameOver, ModeRunning)
}

// ToggleLeaderboard opens the leaderboard view from any mode, or closes it
// and restores the mode it was opened from.
func (m *Machine) ToggleLeaderboard() {
	if m.mode == ModeLeaderboardView {
		m.mode = m.prior
		return
	}
	m.prior = m.mode
	m.mode = ModeLeaderboardView
}

func (m *Machine) move(from, to Mode) bool {
	if m.mode != from {
		return false
	}
	m.mode = to
	return true
}
