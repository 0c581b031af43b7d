package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/game"
	"github.com/tomz197/flappy/internal/store"
)

const (
	defaultHost     = "0.0.0.0"
	defaultPort     = "8080"
	defaultDataPath = "/app/data/flappy.json"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "flappy-web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	st, err := store.OpenFile(config.GetEnv("FLAPPY_DATA", defaultDataPath))
	if err != nil {
		logger.Fatal("open store", "err", err)
	}
	defer st.Close()

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, newMux(st, sshHost, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// leaderboardResponse is the body of GET /api/leaderboard.
type leaderboardResponse struct {
	HighScore int          `json:"highScore"`
	Entries   []game.Entry `json:"entries"`
}

func newMux(st store.Store, sshHost string, logger *log.Logger) *http.ServeMux {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		limit, err := parseLimit(r.URL.Query().Get("limit"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		progress, err := game.LoadProgress(st)
		if err != nil {
			logger.Error("load progress", "err", err)
			http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		resp := leaderboardResponse{
			HighScore: progress.HighScore,
			Entries:   progress.Leaderboard.Top(limit),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Warn("write leaderboard", "err", err)
		}
	})
	return mux
}

// parseLimit reads the limit query value, defaulting to the full board size
// and capping at it.
func parseLimit(v string) (int, error) {
	if v == "" {
		return config.FullLeaderboardSize, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", v)
	}
	return min(n, config.FullLeaderboardSize), nil
}
