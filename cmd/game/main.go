package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/game"
	"github.com/tomz197/flappy/internal/input"
	"github.com/tomz197/flappy/internal/loop"
	"github.com/tomz197/flappy/internal/store"
)

const defaultDataPath = "flappy.json"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The game owns the terminal, so logs go to a file or nowhere.
	logOut, closeLog, err := config.OpenLogFile(config.GetEnv("FLAPPY_LOG_FILE", ""))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	logger := config.NewLogger(logOut, "flappy")

	tuning, err := config.LoadTuning(config.GetEnv("FLAPPY_TUNING", ""))
	if err != nil {
		return err
	}
	if err := tuning.Validate(); err != nil {
		return err
	}

	st, err := store.OpenFile(config.GetEnv("FLAPPY_DATA", defaultDataPath))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	reader := bufio.NewReader(os.Stdin)
	name := input.PromptName(reader, os.Stdout, config.DefaultPlayerName)

	g, err := game.New(game.Options{
		Tuning:     tuning,
		PlayerName: name,
		Store:      st,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting local game", "player", name, "store", st.Path())
	return loop.Run(ctx, g, reader, os.Stdout, loop.Options{Logger: logger})
}
