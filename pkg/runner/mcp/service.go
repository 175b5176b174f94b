// Package mcp provides the Model Context Protocol server integration for the
// mood journal.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/runner/get"
	"tableflip.dev/moodlog/pkg/timeutil"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

// Service adapts Coordinator operations to transport-friendly values for the
// MCP server.
type Service struct {
	Coordinator *viewmodel.Coordinator
	Moods       palette.Palette
	Now         func() time.Time
}

// ErrEntryNotFound is returned when an entry cannot be located.
var ErrEntryNotFound = errors.New("entry not found")

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID         int64  `json:"id"`
	Mood       string `json:"mood"`
	Note       string `json:"note,omitempty"`
	Timestamp  string `json:"timestamp"`
	CreatedISO string `json:"created"`
	Known      bool   `json:"known"`
}

// WeeklyReportDTO is the current week's mood counts.
type WeeklyReportDTO struct {
	Start string          `json:"start"`
	End   string          `json:"end"`
	Rows  []app.ReportRow `json:"rows"`
	Total int             `json:"total"`
}

// UpdateEntryOptions names the fields to change. Nil leaves a field as is.
type UpdateEntryOptions struct {
	ID   int64
	Mood *string
	Note *string
}

// NewService builds a service over coord.
func NewService(coord *viewmodel.Coordinator, moods palette.Palette) *Service {
	if len(moods) == 0 {
		moods = palette.Palette(palette.Default())
	}
	return &Service{Coordinator: coord, Moods: moods, Now: time.Now}
}

func (s *Service) ready() error {
	if s.Coordinator == nil {
		return errors.New("coordinator is not configured")
	}
	return nil
}

// LogMood records mood now. mood may be a label, a short name or a position.
func (s *Service) LogMood(ctx context.Context, mood, note string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	m, err := s.Moods.ForAlias(mood)
	if err != nil {
		return EntryDTO{}, err
	}

	e := s.Coordinator.AddEntry(m.Label)
	if note = strings.TrimSpace(note); note != "" {
		e.Note = note
		s.Coordinator.UpdateEntry(e)
	}
	if err := s.settle(ctx); err != nil {
		return EntryDTO{}, err
	}
	return s.dto(e), nil
}

// ListEntries returns entries newest first. window limits to a look-back such
// as "1w"; limit caps the count when positive.
func (s *Service) ListEntries(ctx context.Context, window string, limit int) ([]EntryDTO, error) {
	all, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(window) != "" {
		d, _, err := timeutil.ParseWindow(window)
		if err != nil {
			return nil, err
		}
		all = get.Filter(all, s.Now().Add(-d))
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]EntryDTO, 0, len(all))
	for _, e := range all {
		out = append(out, s.dto(e))
	}
	return out, nil
}

// EntryByID fetches a single entry.
func (s *Service) EntryByID(ctx context.Context, id int64) (EntryDTO, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return EntryDTO{}, err
	}
	return s.dto(e), nil
}

// UpdateEntry changes the mood and/or note of an existing entry.
func (s *Service) UpdateEntry(ctx context.Context, opts UpdateEntryOptions) (EntryDTO, error) {
	e, err := s.find(ctx, opts.ID)
	if err != nil {
		return EntryDTO{}, err
	}
	if opts.Mood != nil {
		m, err := s.Moods.ForAlias(*opts.Mood)
		if err != nil {
			return EntryDTO{}, err
		}
		e.Mood = m.Label
	}
	if opts.Note != nil {
		e.Note = strings.TrimSpace(*opts.Note)
	}

	s.Coordinator.UpdateEntry(e)
	if err := s.settle(ctx); err != nil {
		return EntryDTO{}, err
	}
	return s.dto(e), nil
}

// DeleteEntry removes an entry. It reports whether the entry existed; a
// missing id is not an error.
func (s *Service) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	e, err := s.find(ctx, id)
	if errors.Is(err, ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.Coordinator.DeleteEntry(e)
	if err := s.settle(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// WeeklyReport returns the counts for the current week.
func (s *Service) WeeklyReport(ctx context.Context) (WeeklyReportDTO, error) {
	if err := s.ready(); err != nil {
		return WeeklyReportDTO{}, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	select {
	case <-ctx.Done():
		return WeeklyReportDTO{}, ctx.Err()
	case agg, ok := <-s.Coordinator.WeeklyAggregate(ctx):
		if !ok {
			return WeeklyReportDTO{}, errors.New("weekly aggregate closed")
		}
		if agg.Err != nil {
			return WeeklyReportDTO{}, agg.Err
		}
		rows := app.ReportRows(agg.Counts, s.Moods)
		return WeeklyReportDTO{Start: agg.Start, End: agg.End, Rows: rows, Total: app.Total(rows)}, nil
	}
}

// ListMoods returns the selectable moods in order.
func (s *Service) ListMoods() []palette.Mood {
	return append([]palette.Mood(nil), s.Moods...)
}

func (s *Service) entries(ctx context.Context) ([]*entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return app.First(ctx, s.Coordinator.Entries(ctx))
}

func (s *Service) find(ctx context.Context, id int64) (*entry.Entry, error) {
	all, err := s.entries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrEntryNotFound, id)
}

// settle waits for queued writes and surfaces the first failure.
func (s *Service) settle(ctx context.Context) error {
	if err := s.Coordinator.Flush(ctx); err != nil {
		return err
	}
	select {
	case err := <-s.Coordinator.Errors():
		return err
	default:
		return nil
	}
}

func (s *Service) dto(e *entry.Entry) EntryDTO {
	_, known := s.Moods.Lookup(e.Mood)
	return EntryDTO{
		ID:         e.ID,
		Mood:       e.Mood,
		Note:       e.Note,
		Timestamp:  e.Timestamp,
		CreatedISO: e.Created().Format(time.RFC3339),
		Known:      known,
	}
}

// ParseID accepts a decimal entry id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", raw)
	}
	return id, nil
}
