package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/greekquiz/internal/catalog"
	"github.com/abhisek/greekquiz/internal/config"
	"github.com/abhisek/greekquiz/internal/selection"
	"github.com/abhisek/greekquiz/internal/session"
	"github.com/abhisek/greekquiz/internal/store"
)

// Options are the command-line overrides applied on top of the config.
type Options struct {
	ConfigPath string
	DBPath     string // overrides db.path and GREEKQUIZ_DB
}

// App bundles the dependencies of one CLI invocation.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Store      *store.Store
	Catalog    *catalog.Catalog
	Controller *session.Controller
}

// Open loads configuration, opens the store and builds the quiz controller.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.Log)

	cat, err := LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	dbPath, err := ResolveDBPath(opts.DBPath, cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)

	var sel *selection.Selector
	if cfg.Engine.Seed != 0 {
		sel = selection.NewSeeded(cfg.Engine.Seed)
	}

	ctl, err := session.New(ctx, session.Options{
		Catalog:  cat,
		KV:       st.KV(),
		Events:   st.EventRepo(),
		Selector: sel,
		Logger:   logger,
		Config:   engineConfig(cfg.Engine),
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("start session: %w", err)
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Store:      st,
		Catalog:    cat,
		Controller: ctl,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// LoadCatalog returns the configured catalog, or the built-in one when no
// path is set.
func LoadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadSheet(cfg.Path, cfg.Sheet)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Path, err)
	}
	return cat, nil
}

// ResolveDBPath returns the database path using the flag value (highest
// priority), then the configured path, then the default per-user location.
func ResolveDBPath(flag, configured string) (string, error) {
	for _, p := range []string{flag, configured} {
		if p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}

func engineConfig(e config.EngineConfig) session.Config {
	return session.Config{
		ReviewLength:    e.ReviewLength,
		BasicWordChance: e.BasicWordChance,
		FocusRatio:      e.FocusRatio,
	}
}
