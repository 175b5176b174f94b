// Package app is the repository layer between the coordinator and storage.
package app

import (
	"context"
	"errors"

	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/store"
)

// ErrNoPersistence is returned by a Service with nothing to delegate to.
var ErrNoPersistence = errors.New("app: no persistence configured")

// Repository is the data-access contract used by the coordinator, the CLI and
// the MCP tools. Live reads re-emit after every committed change.
type Repository interface {
	GetAll(ctx context.Context) <-chan store.Snapshot
	GetBetween(ctx context.Context, start, end string) <-chan store.Snapshot
	GetByID(ctx context.Context, id int64) (*entry.Entry, bool, error)
	Insert(ctx context.Context, e *entry.Entry) error
	Update(ctx context.Context, e *entry.Entry) error
	Delete(ctx context.Context, e *entry.Entry) error
}

// Service implements Repository by delegating to persistence.
// It adds no logic of its own so UIs and CLIs share one data path.
type Service struct {
	Persistence store.Persistence
}

var _ Repository = (*Service)(nil)

// GetAll streams every entry, newest first.
func (s *Service) GetAll(ctx context.Context) <-chan store.Snapshot {
	if s.Persistence == nil {
		return failed(ErrNoPersistence)
	}
	return s.Persistence.GetAll(ctx)
}

// GetBetween streams entries whose timestamp falls in [start, end].
func (s *Service) GetBetween(ctx context.Context, start, end string) <-chan store.Snapshot {
	if s.Persistence == nil {
		return failed(ErrNoPersistence)
	}
	return s.Persistence.GetBetween(ctx, start, end)
}

// GetByID reports false when the id is unknown.
func (s *Service) GetByID(ctx context.Context, id int64) (*entry.Entry, bool, error) {
	if s.Persistence == nil {
		return nil, false, ErrNoPersistence
	}
	return s.Persistence.GetByID(ctx, id)
}

func (s *Service) Insert(ctx context.Context, e *entry.Entry) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	return s.Persistence.Insert(ctx, e)
}

func (s *Service) Update(ctx context.Context, e *entry.Entry) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	return s.Persistence.Update(ctx, e)
}

func (s *Service) Delete(ctx context.Context, e *entry.Entry) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	return s.Persistence.Delete(ctx, e)
}

// First waits for the first snapshot of a live sequence.
func First(ctx context.Context, seq <-chan store.Snapshot) ([]*entry.Entry, error) {
	select {
	case snap, ok := <-seq:
		if !ok {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, errors.New("app: sequence closed")
		}
		return snap.Entries, snap.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func failed(err error) <-chan store.Snapshot {
	ch := make(chan store.Snapshot, 1)
	ch <- store.Snapshot{Err: err}
	close(ch)
	return ch
}
