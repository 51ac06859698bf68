// Package app wires the phone-side client core: config, logging, the token
// database, the backend API client, the auth manager and the note store.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/polyprep/polynotes/internal/client/api"
	"github.com/polyprep/polynotes/internal/client/auth"
	"github.com/polyprep/polynotes/internal/client/config"
	"github.com/polyprep/polynotes/internal/client/notes"
	"github.com/polyprep/polynotes/internal/client/repositories/snapshot"
	"github.com/polyprep/polynotes/internal/client/repositories/tokens"
	"github.com/polyprep/polynotes/internal/logging"
)

// SnapshotFileName is the well-known blob both processes share.
const SnapshotFileName = "notes.json"

// sessionDBFileName is per-process state and never shared.
const sessionDBFileName = "session.db"

// App owns the wired component graph and its shutdown.
type App struct {
	Config *config.Config
	Log    logging.Logger
	Auth   *auth.Manager
	Store  *notes.Store

	db *sql.DB
}

// New builds the component graph. The data directory is created if missing.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o770); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	tokenRepo, db, err := tokens.Open(ctx, filepath.Join(cfg.DataDir, sessionDBFileName))
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: log, db: db}

	// The API client reads the token lazily so it always sees the manager's
	// current session, including one restored after this wiring runs.
	apiClient := api.NewHTTPClient(cfg.BackendBaseURL, cfg.RequestTimeout, func() string {
		if a.Auth == nil {
			return ""
		}
		return a.Auth.AccessToken()
	}, log)

	a.Auth = auth.NewManager(cfg, apiClient, tokenRepo, log)

	snapRepo := snapshot.NewFileRepository(filepath.Join(cfg.DataDir, SnapshotFileName), log)
	a.Store = notes.NewStore(apiClient, snapRepo, log,
		notes.WithIntervals(cfg.FlushInterval, cfg.SweepInterval))

	return a, nil
}

// Run restores any previous session, loads the shared snapshot and drives
// the store's flush/sweep loop until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.Auth.Restore(ctx)
	a.Store.Load(ctx)

	s := a.Auth.Session()
	if s.IsAuthenticated() {
		a.Log.Info(ctx, "session restored", "user_id", s.UserID, "username", s.Username)
	} else {
		a.Log.Info(ctx, "no stored session, login required",
			"login_url", a.Auth.BeginLogin())
	}

	a.Store.Run(ctx)
	return nil
}

// Close releases the token database.
func (a *App) Close() error {
	return a.db.Close()
}
