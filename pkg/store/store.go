// Package store persists mood entries and turns table reads into live
// sequences that re-emit whenever the table changes.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"tableflip.dev/moodlog/pkg/entry"
)

var (
	// ErrConstraintViolation is returned when an insert reuses an existing id.
	ErrConstraintViolation = errors.New("store: constraint violation")

	// ErrStorageUnavailable wraps failures to open or reach the backing storage.
	ErrStorageUnavailable = errors.New("store: storage unavailable")
)

// Table is the raw storage contract. Reads are one-shot.
type Table interface {
	// ListAll returns every entry, newest id first.
	ListAll(ctx context.Context) ([]*entry.Entry, error)
	// ListBetween returns entries whose timestamp string sorts between start
	// and end inclusive, ascending by timestamp.
	ListBetween(ctx context.Context, start, end string) ([]*entry.Entry, error)
	// Get reports false when no entry has id.
	Get(ctx context.Context, id int64) (*entry.Entry, bool, error)
	Insert(ctx context.Context, e *entry.Entry) error
	// Update and Delete report whether a row was touched.
	Update(ctx context.Context, e *entry.Entry) (bool, error)
	Delete(ctx context.Context, e *entry.Entry) (bool, error)
	Close() error
}

// Snapshot is one emission of a live sequence. A snapshot carrying Err is the
// last one; the channel closes after it.
type Snapshot struct {
	Entries []*entry.Entry
	Err     error
}

// Persistence defines the persistence contract for mood entries.
type Persistence interface {
	GetAll(ctx context.Context) <-chan Snapshot
	GetBetween(ctx context.Context, start, end string) <-chan Snapshot
	GetByID(ctx context.Context, id int64) (*entry.Entry, bool, error)
	Insert(ctx context.Context, e *entry.Entry) error
	Update(ctx context.Context, e *entry.Entry) error
	Delete(ctx context.Context, e *entry.Entry) error
	Changes() *Notifier
	Close() error
}

// New wraps table with change notification. The returned Persistence owns
// table and closes it on Close.
func New(table Table, logger *slog.Logger) Persistence {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store")
	return &persistence{
		table:   table,
		changes: NewNotifier(logger),
		logger:  logger,
	}
}

type persistence struct {
	table   Table
	changes *Notifier
	logger  *slog.Logger

	mu      sync.Mutex
	closers []func()
	closed  bool
}

func (p *persistence) GetAll(ctx context.Context) <-chan Snapshot {
	return p.observe(ctx, p.table.ListAll)
}

func (p *persistence) GetBetween(ctx context.Context, start, end string) <-chan Snapshot {
	return p.observe(ctx, func(ctx context.Context) ([]*entry.Entry, error) {
		return p.table.ListBetween(ctx, start, end)
	})
}

func (p *persistence) GetByID(ctx context.Context, id int64) (*entry.Entry, bool, error) {
	return p.table.Get(ctx, id)
}

func (p *persistence) Insert(ctx context.Context, e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if err := p.table.Insert(ctx, e.Clone()); err != nil {
		return err
	}
	p.logger.Debug("inserted entry", "id", e.ID, "mood", e.Mood)
	p.changes.Publish()
	return nil
}

func (p *persistence) Update(ctx context.Context, e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	changed, err := p.table.Update(ctx, e.Clone())
	if err != nil {
		return err
	}
	if !changed {
		p.logger.Debug("update matched no entry", "id", e.ID)
		return nil
	}
	p.changes.Publish()
	return nil
}

func (p *persistence) Delete(ctx context.Context, e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	changed, err := p.table.Delete(ctx, e)
	if err != nil {
		return err
	}
	if !changed {
		p.logger.Debug("delete matched no entry", "id", e.ID)
		return nil
	}
	p.changes.Publish()
	return nil
}

func (p *persistence) Changes() *Notifier {
	return p.changes
}

// onClose registers cleanup run by Close before the table is closed.
func (p *persistence) onClose(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closers = append(p.closers, fn)
}

func (p *persistence) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	closers := p.closers
	p.closers = nil
	p.mu.Unlock()

	for _, fn := range closers {
		fn()
	}
	p.changes.Close()
	return p.table.Close()
}

// observe runs query once now and again after every change signal. Pending
// snapshots the consumer has not read yet are replaced by newer ones.
func (p *persistence) observe(ctx context.Context, query func(context.Context) ([]*entry.Entry, error)) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	signal := p.changes.Subscribe(ctx)

	go func() {
		defer close(out)
		for {
			entries, err := query(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				p.logger.Error("live query failed", "err", err)
			}

			select {
			case <-out:
			default:
			}
			out <- Snapshot{Entries: entries, Err: err}

			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signal:
				if !ok {
					return
				}
			}
		}
	}()

	return out
}
