package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/game"
	"github.com/tomz197/flappy/internal/loop"
	"github.com/tomz197/flappy/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDataPath    = "/app/data/flappy.json"
)

// server holds what every session shares.
type server struct {
	logger   *log.Logger
	hub      *loop.Hub
	store    store.Store
	tuning   config.Tuning
	idleWarn time.Duration
	idleKick time.Duration
}

func main() {
	logger := config.NewLogger(os.Stderr, "flappy-ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dataPath := config.GetEnv("FLAPPY_DATA", defaultDataPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "data", dataPath)

	tuning, err := config.LoadTuning(config.GetEnv("FLAPPY_TUNING", ""))
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}
	if err := tuning.Validate(); err != nil {
		logger.Fatal("invalid tuning", "err", err)
	}

	st, err := store.OpenFile(dataPath)
	if err != nil {
		logger.Fatal("open store", "err", err)
	}
	defer st.Close()
	logger.Info("store opened", "path", st.Path())

	srv := &server{
		logger:   logger,
		hub:      loop.NewHub(logger),
		store:    st,
		tuning:   tuning,
		idleWarn: time.Duration(config.GetEnvInt("FLAPPY_IDLE_WARN", loop.InactivityWarnUser)) * time.Second,
		idleKick: time.Duration(config.GetEnvInt("FLAPPY_IDLE_KICK", loop.InactivityDisconnectUser)) * time.Second,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "players", srv.hub.Players())

	// Tell players, give them the countdown, then cut whoever is left.
	srv.hub.Shutdown(15 * time.Second)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		name := game.NormalizeName(sess.User())
		logger := srv.logger.With("player", name)
		logger.Info("new game session", "terminal", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		g, err := game.New(game.Options{
			Tuning:     srv.tuning,
			PlayerName: name,
			Store:      srv.store,
			Logger:     logger,
		})
		if err != nil {
			logger.Error("create game", "err", err)
			return
		}

		renderer := lipglossRenderer(sess)

		err = loop.Run(sess.Context(), g, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Renderer:     renderer,
			Logger:       logger,
			Hub:          srv.hub,
			IdleWarn:     srv.idleWarn,
			IdleKick:     srv.idleKick,
		})
		if err != nil {
			logger.Warn("game error", "err", err)
		}
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
