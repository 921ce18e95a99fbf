package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/api"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/session"
	"github.com/jobdeck/jobdeck/internal/tui"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobdeck",
	Short: "Terminal client for a job application tracker",
	Long:  "Jobdeck is a terminal client for a job-application tracker API: log in once, then add, edit, filter and search your applications.",
	// Default to the TUI so that `jobdeck` with no args opens the dashboard
	// (or the login screen when no session is stored).
	RunE:         runTUI,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBDECK_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBDECK_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBDECK_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(w *os.File, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// appEnv bundles the collaborators every command needs.
type appEnv struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	logger *slog.Logger
}

func newEnv(logger *slog.Logger) (*appEnv, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := session.NewStore(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	client := api.NewClient(cfg.API.BaseURL, httpClient, store)

	return &appEnv{cfg: cfg, store: store, client: client, logger: logger}, nil
}

func (e *appEnv) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("failed to close session store", "error", err)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so the operator log goes to a file next to
	// the session database instead of stdout.
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logPath := filepath.Join(filepath.Dir(cfg.Session.Path), "jobdeck.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logFile = os.Stderr
	} else {
		defer logFile.Close()
	}
	logger := setupLogger(logFile, debug)

	store, err := session.NewStore(cfg.Session.Path)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	client := api.NewClient(cfg.API.BaseURL, httpClient, store)

	return tui.Run(tui.Deps{
		Auth:    client,
		Jobs:    client,
		Session: store,
		Logger:  logger,
	})
}
