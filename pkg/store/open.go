package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"tableflip.dev/moodlog/pkg/config"
)

// DatabaseFile is the sqlite file name under the configured path.
const DatabaseFile = "mood.db"

// Config is the subset of settings needed to open storage.
type Config interface {
	BasePath() string
	Driver() string
}

type openOptions struct {
	watchCtx context.Context
	logger   *slog.Logger
}

// Option customizes Open.
type Option func(*openOptions)

// WithExternalWatch republishes changes written by other processes until ctx
// is done. It has no effect on the memory driver.
func WithExternalWatch(ctx context.Context) Option {
	return func(o *openOptions) {
		o.watchCtx = ctx
	}
}

// WithLogger sets the logger used by the persistence layer.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// Open creates a Persistence for the configured driver. A nil cfg loads the
// configuration from file and environment.
func Open(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	o := &openOptions{}
	for _, opt := range opts {
		opt(o)
	}

	base := cfg.BasePath()
	var (
		table Table
		dir   string
		match func(string) bool
	)
	switch driver := strings.ToLower(cfg.Driver()); driver {
	case config.DriverSQLite, "":
		path := filepath.Join(base, DatabaseFile)
		s, err := OpenSQLite(context.Background(), path)
		if err != nil {
			return nil, err
		}
		table, dir = s, base
		match = func(name string) bool {
			return strings.HasPrefix(filepath.Base(name), DatabaseFile)
		}
	case config.DriverDiskv:
		d, err := OpenDiskv(base)
		if err != nil {
			return nil, err
		}
		table, dir = d, filepath.Join(base, entriesBucket)
	case config.DriverMemory:
		table = NewMemory()
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}

	p := New(table, o.logger)
	if o.watchCtx != nil && dir != "" {
		ctx, cancel := context.WithCancel(o.watchCtx)
		if err := WatchFiles(ctx, dir, match, p.Changes()); err != nil {
			cancel()
			p.Close()
			return nil, err
		}
		p.(*persistence).onClose(cancel)
	}
	return p, nil
}
