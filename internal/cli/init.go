// Package cli consolidates the initialization shared by the command
// line entry point: env file, config, logging and the wiring of stores,
// API client and session manager.
package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"bilty/internal/api"
	"bilty/internal/config"
	"bilty/internal/entries"
	"bilty/internal/export"
	exportcsv "bilty/internal/export/csv"
	exportmem "bilty/internal/export/memory"
	exportsheets "bilty/internal/export/sheets"
	"bilty/internal/log"
	"bilty/internal/session"
	"bilty/internal/store"
)

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.Config{Component: log.ComponentApp})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// App is the wired application: stores, API client, session manager and
// list controller sharing one config.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	State   *store.State
	Client  *api.Client
	Session *session.Manager
	Entries *entries.Controller
}

// NewApp wires the application or exits with a logged error. Token
// writes go to both the SQLite state and the cookie mirror; reads
// prefer the local state.
func NewApp(logger *log.Logger, cfg *config.Config) *App {
	state, err := store.NewState(cfg.StateDBPath)
	if err != nil {
		logger.Error("failed to open state store", log.FieldError, err, "path", cfg.StateDBPath)
		os.Exit(1)
	}

	cookies, err := store.NewCookieStore(cfg.APIBaseURL, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to build cookie store", log.FieldError, err)
		os.Exit(1)
	}
	tokens := store.NewDual(state, cookies)

	client := api.New(api.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout, Jar: cookies.Jar()},
		Tokens:     tokens,
		Users:      state,
		Logger:     logger.WithComponent(log.ComponentAPI),
	})

	sess := session.NewManager(session.Config{
		Gateway: client,
		Tokens:  tokens,
		Users:   state,
		TTL:     cfg.UserCacheTTL,
		Logger:  logger.WithComponent(log.ComponentSession),
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		State:   state,
		Client:  client,
		Session: sess,
		Entries: entries.NewController(client, logger.WithComponent(log.ComponentEntries)),
	}
}

// ReportWriter builds the export backend the config selects.
func (a *App) ReportWriter(ctx context.Context) (export.ReportWriter, error) {
	switch a.Config.ExportBackend {
	case "sheets":
		return exportsheets.New(ctx, exportsheets.Config{
			SpreadsheetID: a.Config.GoogleSpreadsheetID,
			SheetName:     a.Config.GoogleSheetName,
		})
	case "memory":
		return exportmem.New(), nil
	default:
		return exportcsv.New(a.Config.ExportDir), nil
	}
}

// Close releases the state store.
func (a *App) Close() {
	if err := a.State.Close(); err != nil {
		a.Logger.Warn("close state store", log.FieldError, err)
	}
}
