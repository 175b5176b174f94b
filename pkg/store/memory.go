package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tableflip.dev/moodlog/pkg/entry"
)

// Memory is a map-backed Table. Nothing survives Close.
type Memory struct {
	mu      sync.RWMutex
	entries map[int64]*entry.Entry
}

// NewMemory returns an empty in-memory table.
func NewMemory() *Memory {
	return &Memory{entries: make(map[int64]*entry.Entry)}
}

func (m *Memory) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		all = append(all, e.Clone())
	}
	sortNewestFirst(all)
	return all, nil
}

func (m *Memory) ListBetween(ctx context.Context, start, end string) ([]*entry.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*entry.Entry, 0)
	for _, e := range m.entries {
		if inRange(e, start, end) {
			all = append(all, e.Clone())
		}
	}
	sortByTimestamp(all)
	return all, nil
}

func (m *Memory) Get(ctx context.Context, id int64) (*entry.Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, false, nil
	}
	return e.Clone(), true, nil
}

func (m *Memory) Insert(ctx context.Context, e *entry.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries == nil {
		return fmt.Errorf("memory table closed: %w", ErrStorageUnavailable)
	}
	if _, ok := m.entries[e.ID]; ok {
		return fmt.Errorf("insert entry %d: %w", e.ID, ErrConstraintViolation)
	}
	m.entries[e.ID] = e.Clone()
	return nil
}

func (m *Memory) Update(ctx context.Context, e *entry.Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[e.ID]; !ok {
		return false, nil
	}
	m.entries[e.ID] = e.Clone()
	return true, nil
}

func (m *Memory) Delete(ctx context.Context, e *entry.Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[e.ID]; !ok {
		return false, nil
	}
	delete(m.entries, e.ID)
	return true, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// inRange compares timestamps as plain strings, the same way the sqlite
// table does.
func inRange(e *entry.Entry, start, end string) bool {
	return e.Timestamp >= start && e.Timestamp <= end
}

func sortNewestFirst(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
}

func sortByTimestamp(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left.Timestamp == right.Timestamp {
			return left.ID < right.ID
		}
		return left.Timestamp < right.Timestamp
	})
}
