// Package loop drives a game: it reads input, advances the simulation one
// tick per frame and draws the result to a terminal.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/game"
	"github.com/tomz197/flappy/internal/input"
)

// Options configures a client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc  // nil reads the size of os.Stdout
	Renderer     *lipgloss.Renderer // nil renders for the output writer
	Logger       *log.Logger
	Hub          *Hub          // nil for single-player
	IdleWarn     time.Duration // 0 disables the inactivity warning
	IdleKick     time.Duration // 0 disables the inactivity disconnect
	FPS          int           // 0 means config.TargetFPS
}

// Client connects one game to one terminal.
type Client struct {
	game     *game.Game
	opts     Options
	logger   *log.Logger
	writer   io.Writer
	stream   *input.Stream
	renderer *renderer
	effects  *effects
	handle   *Handle

	lastInput  time.Time
	idle       bool
	overAt     time.Time // When the last run ended
	shutdownAt time.Time // Zero until the hub announces shutdown
}

// NewClient prepares a client for g that reads r and draws to w.
func NewClient(g *game.Game, r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.NewRenderer(w)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.FPS <= 0 {
		opts.FPS = config.TargetFPS
	}
	snap := g.Snapshot()
	return &Client{
		game:     g,
		opts:     opts,
		logger:   opts.Logger.With("player", snap.PlayerName),
		writer:   w,
		stream:   input.StartStream(r),
		renderer: newRenderer(w, opts.Renderer, opts.TermSizeFunc, snap.Screen),
		effects:  newEffects(nil),
	}
}

// Run is a convenience wrapper for NewClient(...).Run(ctx).
func Run(ctx context.Context, g *game.Game, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewClient(g, r, w, opts).Run(ctx)
}

// Run plays until the player quits, the input ends, the hub shuts down or
// ctx is cancelled. A cancelled context is not an error.
func (c *Client) Run(ctx context.Context) error {
	if c.opts.Hub != nil {
		snap := c.game.Snapshot()
		c.handle = c.opts.Hub.Register(snap.PlayerName)
		defer c.opts.Hub.Unregister(c.handle.ID)
	}

	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ClearScreen(c.writer)
		draw.ShowCursor(c.writer)
	}()

	c.lastInput = time.Now()
	c.logger.Info("session started")

	var frameErr error
	err := NewClock(c.opts.FPS).Run(ctx, func(delta time.Duration) bool {
		keep, err := c.frame(time.Now(), delta)
		frameErr = err
		return keep
	})
	c.logger.Info("session ended", "high", c.game.Snapshot().Session.HighScore)

	if frameErr != nil {
		return frameErr
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// frame runs one Input → Update → Draw cycle. It reports whether the loop
// should continue.
func (c *Client) frame(now time.Time, delta time.Duration) (bool, error) {
	in := input.ReadInput(c.stream)
	if in.Quit {
		return false, nil
	}
	if !c.updateIdle(in, now) {
		c.logger.Info("disconnected for inactivity")
		return false, nil
	}
	if !c.processHubEvents(now) {
		return false, nil
	}

	shuttingDown := !c.shutdownAt.IsZero()
	if shuttingDown && !now.Before(c.shutdownAt) {
		return false, nil
	}
	if !shuttingDown {
		c.apply(in, now)
		if c.game.Step() {
			c.overAt = now
			input.ResetKeyInput(c.stream)
			c.crashBurst()
		}
	}
	if c.game.Mode() == game.ModeRunning {
		c.effects.reset()
	}
	c.effects.update(delta)

	if err := c.renderer.frame(c.game.Snapshot(), c.overlay(now), c.effects); err != nil {
		return false, err
	}
	return true, nil
}

// crashBurst scatters feathers from the middle of the bird.
func (c *Client) crashBurst() {
	b := c.game.Snapshot().Body
	c.effects.burst(b.X+b.Width/2, b.Y+b.Height/2, burstCount, burstSpeed, burstLifetime)
}

// updateIdle tracks input activity. It reports false once the client has
// been idle long enough to be disconnected.
func (c *Client) updateIdle(in input.Input, now time.Time) bool {
	if in.Any {
		c.lastInput = now
		c.idle = false
		return true
	}
	idleFor := now.Sub(c.lastInput)
	if c.opts.IdleKick > 0 && idleFor > c.opts.IdleKick {
		return false
	}
	c.idle = c.opts.IdleWarn > 0 && idleFor > c.opts.IdleWarn
	return true
}

// processHubEvents handles notices from the hub. It reports false if the
// hub dropped this client.
func (c *Client) processHubEvents(now time.Time) bool {
	if c.handle == nil {
		return true
	}
	for {
		select {
		case ev, ok := <-c.handle.Events:
			if !ok {
				return false
			}
			if ev.Type == EventServerShutdown && c.shutdownAt.IsZero() {
				c.shutdownAt = now.Add(shutdownDisplay)
				c.logger.Info("server shutdown announced")
			}
		default:
			return true
		}
	}
}

// apply maps this frame's input onto game events.
func (c *Client) apply(in input.Input, now time.Time) {
	if in.Leaderboard {
		c.game.Handle(game.EventLeaderboard)
	}
	if in.Pause {
		c.game.Handle(game.EventPause)
	}
	if in.ResetLeaderboard {
		c.game.Handle(game.EventResetLeaderboard)
	}

	lift := in.Lift
	mode := c.game.Mode()
	if in.Enter && (mode == game.ModeNotStarted || mode == game.ModeGameOver) {
		lift = true
	}
	if lift && mode == game.ModeGameOver && now.Sub(c.overAt) < restartGrace {
		lift = false
	}
	if lift {
		c.game.Handle(game.EventLift)
	}
}

func (c *Client) overlay(now time.Time) overlay {
	ov := overlay{
		blink: now.UnixMilli()/blinkPeriod.Milliseconds()%2 == 0,
		idle:  c.idle,
	}
	if c.opts.Hub != nil {
		ov.players = c.opts.Hub.Players()
	}
	if c.idle {
		ov.idleLeft = max(c.opts.IdleKick-now.Sub(c.lastInput), 0)
	}
	if !c.shutdownAt.IsZero() {
		ov.shutdown = true
		ov.shutdownLeft = max(c.shutdownAt.Sub(now), 0)
	}
	return ov
}
