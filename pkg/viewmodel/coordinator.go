// Package viewmodel holds UI-facing state for the mood journal: the entry
// list, the selected entry and the weekly mood summary, plus the write
// operations that change them.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/store"
	"tableflip.dev/moodlog/pkg/timeutil"
)

// ErrClosed is reported for operations issued after Close.
var ErrClosed = errors.New("viewmodel: coordinator closed")

// Aggregate is the per-mood count for the current week.
type Aggregate struct {
	Start  string
	End    string
	Counts map[string]int
	Err    error
}

// Week is the current weekly window.
type Week struct {
	Start time.Time
	End   time.Time
}

// Equal compares both bounds as instants.
func (w Week) Equal(o Week) bool {
	return w.Start.Equal(o.Start) && w.End.Equal(o.End)
}

// Strings formats the bounds with entry.Layout.
func (w Week) Strings() (string, string) {
	return entry.FormatTime(w.Start), entry.FormatTime(w.End)
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithFirstWeekday overrides the locale's first day of the week.
func WithFirstWeekday(d time.Weekday) Option {
	return func(c *Coordinator) {
		c.first = d
	}
}

// WithLogger sets the logger; write failures are logged at error level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRollover recomputes the week every midnight in loc so long-running
// sessions move on to the new week.
func WithRollover(loc *time.Location) Option {
	return func(c *Coordinator) {
		if loc == nil {
			loc = time.Local
		}
		c.rollover = loc
	}
}

// Coordinator exposes observable state and applies writes in the order they
// were issued, one at a time, off the caller's goroutine.
type Coordinator struct {
	repo     app.Repository
	clock    func() time.Time
	first    time.Weekday
	logger   *slog.Logger
	rollover *time.Location

	selection *State[*entry.Entry]
	week      *State[Week]

	queue  *writeQueue
	errs   chan error
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	cron   *cron.Cron

	idMu   sync.Mutex
	lastID int64

	closeOnce sync.Once
}

// New starts a Coordinator over repo.
func New(repo app.Repository, opts ...Option) *Coordinator {
	c := &Coordinator{
		repo:      repo,
		clock:     time.Now,
		first:     timeutil.FirstWeekday(timeutil.LocaleFromEnv()),
		logger:    slog.Default(),
		selection: NewState[*entry.Entry](nil),
		queue:     newWriteQueue(),
		errs:      make(chan error, 16),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "viewmodel")
	c.week = NewState(c.currentWeek())
	c.ctx, c.cancel = context.WithCancel(context.Background())

	go c.run()

	if c.rollover != nil {
		c.cron = cron.New(cron.WithLocation(c.rollover))
		if _, err := c.cron.AddFunc("@midnight", c.Refresh); err != nil {
			c.logger.Error("schedule week rollover", "err", err)
		} else {
			c.cron.Start()
		}
	}
	return c
}

func (c *Coordinator) currentWeek() Week {
	start, end := timeutil.WeekBounds(c.clock(), c.first)
	return Week{Start: start, End: end}
}

// Entries follows every stored entry, newest first.
func (c *Coordinator) Entries(ctx context.Context) <-chan store.Snapshot {
	return c.repo.GetAll(ctx)
}

// Selection is the entry chosen for detail or editing, nil when none.
func (c *Coordinator) Selection() *State[*entry.Entry] {
	return c.selection
}

// Week returns the current bounds formatted as stored timestamps.
func (c *Coordinator) Week() (string, string) {
	return c.week.Get().Strings()
}

// Refresh recomputes the week from the clock. Weekly aggregates re-query when
// the bounds moved.
func (c *Coordinator) Refresh() {
	next := c.currentWeek()
	if next.Equal(c.week.Get()) {
		return
	}
	start, end := next.Strings()
	c.logger.Debug("week bounds changed", "start", start, "end", end)
	c.week.Set(next)
}

// WeeklyAggregate follows mood counts for entries inside the current week.
// An error from the underlying sequence is delivered once and ends the
// stream.
func (c *Coordinator) WeeklyAggregate(ctx context.Context) <-chan Aggregate {
	out := make(chan Aggregate, 1)
	weeks := c.week.Watch(ctx)

	go func() {
		defer close(out)

		var (
			current     Week
			snapshots   <-chan store.Snapshot
			cancelInner context.CancelFunc = func() {}
		)
		defer func() { cancelInner() }()

		for {
			select {
			case <-ctx.Done():
				return
			case w, ok := <-weeks:
				if !ok {
					return
				}
				if snapshots != nil && w.Equal(current) {
					continue
				}
				cancelInner()
				current = w
				var inner context.Context
				inner, cancelInner = context.WithCancel(ctx)
				start, end := w.Strings()
				snapshots = c.repo.GetBetween(inner, start, end)
			case snap, ok := <-snapshots:
				if !ok {
					// a week change swaps snapshots before cancelling, so a
					// close here means the store shut down or ctx ended.
					return
				}
				start, end := current.Strings()
				agg := Aggregate{Start: start, End: end, Err: snap.Err}
				if snap.Err == nil {
					agg.Counts = app.GroupByMood(snap.Entries)
				}
				select {
				case <-out:
				default:
				}
				out <- agg
				if snap.Err != nil {
					return
				}
			}
		}
	}()

	return out
}

// AddEntry queues a new entry for mood stamped with the current time and
// returns it. Ids are strictly increasing within a Coordinator even when the
// clock repeats.
func (c *Coordinator) AddEntry(mood string) *entry.Entry {
	now := c.clock()
	e := entry.New(mood, now)
	e.ID = c.nextID(now)
	c.enqueue("insert", e, func(ctx context.Context) error {
		return c.repo.Insert(ctx, e)
	})
	return e.Clone()
}

// UpdateEntry queues a replacement of the stored row with e's id.
func (c *Coordinator) UpdateEntry(e *entry.Entry) {
	e = e.Clone()
	c.enqueue("update", e, func(ctx context.Context) error {
		return c.repo.Update(ctx, e)
	})
}

// DeleteEntry queues removal of the stored row with e's id.
func (c *Coordinator) DeleteEntry(e *entry.Entry) {
	e = e.Clone()
	c.enqueue("delete", e, func(ctx context.Context) error {
		return c.repo.Delete(ctx, e)
	})
}

// SelectEntry marks e as selected. No storage is touched.
func (c *Coordinator) SelectEntry(e *entry.Entry) {
	c.selection.Set(e.Clone())
}

// ClearSelection drops the selection. No storage is touched.
func (c *Coordinator) ClearSelection() {
	c.selection.Set(nil)
}

// Flush waits until every write queued before the call has been applied.
func (c *Coordinator) Flush(ctx context.Context) error {
	barrier := make(chan struct{})
	if !c.queue.push(write{name: "flush", barrier: barrier}) {
		return ErrClosed
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Errors delivers failed writes. Failures are not retried. Reports are dropped
// when nobody drains the channel. The channel is never closed.
func (c *Coordinator) Errors() <-chan error {
	return c.errs
}

// Close applies the writes already queued, then stops the writer and the
// rollover schedule.
func (c *Coordinator) Close() error {
	c.closeOnce.Do(func() {
		if c.cron != nil {
			<-c.cron.Stop().Done()
		}
		c.queue.close()
		<-c.done
		c.cancel()
	})
	return nil
}

func (c *Coordinator) nextID(now time.Time) int64 {
	c.idMu.Lock()
	defer c.idMu.Unlock()

	id := now.UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Coordinator) enqueue(name string, e *entry.Entry, run func(context.Context) error) {
	if c.queue.push(write{name: name, entry: e, run: run}) {
		return
	}
	c.fail(name, e, ErrClosed)
}

func (c *Coordinator) run() {
	defer close(c.done)
	for {
		w, ok := c.queue.next()
		if !ok {
			return
		}
		if w.barrier != nil {
			close(w.barrier)
			continue
		}
		if err := w.run(c.ctx); err != nil {
			c.fail(w.name, w.entry, err)
		}
	}
}

func (c *Coordinator) fail(name string, e *entry.Entry, err error) {
	var id int64
	if e != nil {
		id = e.ID
	}
	err = fmt.Errorf("%s entry %d: %w", name, id, err)
	c.logger.Error("write failed", "op", name, "id", id, "err", err)
	select {
	case c.errs <- err:
	default:
	}
}
