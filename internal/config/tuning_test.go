package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"gap fills screen", func(tu *Tuning) { tu.Pipes.Gap = tu.Screen.Height }},
		{"gap plus margins fill screen", func(tu *Tuning) { tu.Pipes.Gap = tu.Screen.Height - tu.Pipes.TopMargin - tu.Pipes.BottomMargin }},
		{"zero height", func(tu *Tuning) { tu.Screen.Height = 0 }},
		{"zero spawn interval", func(tu *Tuning) { tu.Pipes.SpawnInterval = 0 }},
		{"negative margin", func(tu *Tuning) { tu.Pipes.TopMargin = -1 }},
		{"zero bird", func(tu *Tuning) { tu.Bird.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTuning()
			tt.mutate(&tu)
			err := tu.Validate()
			if !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("Validate() = %v, want ErrInvalidTuning", err)
			}
		})
	}
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte("pipes:\n  gap: 180\nspeed:\n  growth: 0.05\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tu, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tu.Pipes.Gap != 180 {
		t.Fatalf("gap = %g, want 180", tu.Pipes.Gap)
	}
	if tu.Speed.Growth != 0.05 {
		t.Fatalf("growth = %g, want 0.05", tu.Speed.Growth)
	}
	def := DefaultTuning()
	if tu.Bird != def.Bird || tu.Screen != def.Screen {
		t.Fatalf("untouched sections changed: bird=%+v screen=%+v", tu.Bird, tu.Screen)
	}
}

func TestLoadTuningEmptyPath(t *testing.T) {
	tu, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning(\"\"): %v", err)
	}
	if tu != DefaultTuning() {
		t.Fatalf("empty path should return defaults")
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("FLAPPY_TEST_INT", " 42 ")
	if got := GetEnvInt("FLAPPY_TEST_INT", 7); got != 42 {
		t.Fatalf("GetEnvInt = %d, want 42", got)
	}
	t.Setenv("FLAPPY_TEST_INT", "x")
	if got := GetEnvInt("FLAPPY_TEST_INT", 7); got != 7 {
		t.Fatalf("GetEnvInt on garbage = %d, want 7", got)
	}
	if got := GetEnvInt("FLAPPY_TEST_UNSET_INT", 3); got != 3 {
		t.Fatalf("GetEnvInt unset = %d, want 3", got)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	t.Setenv("FLAPPY_LOG_LEVEL", "debug")
	var buf bytes.Buffer
	NewLogger(&buf, "test").Debug("hello", "k", 1)
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("debug line missing: %q", buf.String())
	}

	t.Setenv("FLAPPY_LOG_LEVEL", "bogus")
	buf.Reset()
	logger := NewLogger(&buf, "test")
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unknown level should mean info: %q", buf.String())
	}
}

func TestOpenLogFile(t *testing.T) {
	w, closeFn, err := OpenLogFile("")
	if err != nil || w == nil || closeFn() != nil {
		t.Fatalf("empty path: %v", err)
	}

	path := filepath.Join(t.TempDir(), "flappy.log")
	w, closeFn, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	if _, err := w.Write([]byte("line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "line\n" {
		t.Fatalf("log file = %q", data)
	}
}
