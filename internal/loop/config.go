package loop

import "time"

// Shutdown
const (
	shutdownDisplay = 10 * time.Second // How long the shutdown notice shows before disconnecting
)

// Inactivity defaults, in seconds.
const (
	InactivityWarnUser       = 90
	InactivityDisconnectUser = 120
)

// Presentation
const (
	restartGrace  = 400 * time.Millisecond // Lift presses ignored right after a crash
	maxCanvasCols = 160
	blinkPeriod   = 600 * time.Millisecond
)
