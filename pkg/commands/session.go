package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/config"
	"tableflip.dev/moodlog/pkg/logging"
	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/store"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

// session is everything one command invocation needs. Storage is opened once
// here and handed down; nothing below keeps a global handle.
type session struct {
	cfg         *config.Config
	logger      *slog.Logger
	persistence store.Persistence
	repo        app.Repository
	coord       *viewmodel.Coordinator
	moods       palette.Palette
	first       time.Weekday
}

// openSession loads config and storage. live sessions follow writes from
// other processes and roll the week over at midnight until ctx is done.
func openSession(ctx context.Context, live bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log)

	moods, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	first, err := cfg.FirstWeekday()
	if err != nil {
		return nil, err
	}

	opts := []store.Option{store.WithLogger(logger)}
	if live {
		opts = append(opts, store.WithExternalWatch(ctx))
	}
	p, err := store.Open(cfg, opts...)
	if err != nil {
		return nil, err
	}
	repo := &app.Service{Persistence: p}

	vmOpts := []viewmodel.Option{
		viewmodel.WithFirstWeekday(first),
		viewmodel.WithLogger(logger),
	}
	if live {
		vmOpts = append(vmOpts, viewmodel.WithRollover(time.Local))
	}

	return &session{
		cfg:         cfg,
		logger:      logger,
		persistence: p,
		repo:        repo,
		coord:       viewmodel.New(repo, vmOpts...),
		moods:       moods,
		first:       first,
	}, nil
}

func (s *session) printer(out io.Writer) *printers.PrettyPrint {
	return &printers.PrettyPrint{Moods: s.moods, Out: out}
}

// settle waits for queued writes and returns the first failure.
func (s *session) settle(ctx context.Context) error {
	if err := s.coord.Flush(ctx); err != nil {
		return err
	}
	select {
	case err := <-s.coord.Errors():
		return err
	default:
		return nil
	}
}

// Close applies pending writes, then releases storage.
func (s *session) Close() error {
	return errors.Join(s.coord.Close(), s.persistence.Close())
}
