// Package app wires configuration, storage, the catalog client, and
// the query cache together and boots the UI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/calebwray/portal/internal/catalog"
	"github.com/calebwray/portal/internal/config"
	"github.com/calebwray/portal/internal/favorites"
	"github.com/calebwray/portal/internal/logging"
	"github.com/calebwray/portal/internal/prefs"
	"github.com/calebwray/portal/internal/query"
	"github.com/calebwray/portal/internal/session"
	"github.com/calebwray/portal/internal/storage"
	"github.com/calebwray/portal/internal/ui"
)

// Options configure the portal application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/portal/prefs.toml
	// State restores a previous listing position, encoded as a query
	// string (e.g. "page=3&search=rick&sort=name&order=asc").
	State string
}

// Run boots the portal TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.Init(cfg.LogDir(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed, using defaults", "error", err)
	}

	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	client, err := catalog.NewClient(cfg.BaseURL,
		catalog.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		catalog.WithRateLimit(cfg.RatePerSecond),
	)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	cache := query.New(ctx)

	logger.Info("portal starting", "base_url", cfg.BaseURL, "data_dir", cfg.DataDir)

	uiOpts := ui.Options{
		Context:      ctx,
		Client:       client,
		Cache:        cache,
		Session:      session.New(store),
		Favorites:    favorites.New(store),
		Logger:       logger,
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
		InitialState: opts.State,
	}
	return ui.Run(uiOpts)
}
