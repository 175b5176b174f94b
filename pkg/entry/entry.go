// Package entry defines the mood entry persisted by the journal.
package entry

import (
	"fmt"
	"time"
)

// Entry is one mood-logging record.
type Entry struct {
	// ID is assigned once at creation from the wall clock in milliseconds.
	ID        int64  `json:"id"`
	Mood      string `json:"mood"`
	Note      string `json:"note"`
	Timestamp string `json:"timestamp"`
}

// New builds an entry for mood created at now. The note starts empty.
func New(mood string, now time.Time) *Entry {
	return &Entry{
		ID:        now.UnixMilli(),
		Mood:      mood,
		Note:      "",
		Timestamp: FormatTime(now),
	}
}

// Created reports the creation instant encoded in the id.
func (e *Entry) Created() time.Time {
	return time.UnixMilli(e.ID)
}

// Clone returns a copy that shares nothing with e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Equal compares every field.
func (e *Entry) Equal(o *Entry) bool {
	if e == nil || o == nil {
		return e == o
	}
	return *e == *o
}

// Row returns the columns used by table printers.
func (e *Entry) Row() (string, string, string) {
	return e.Timestamp, e.Mood, e.Note
}

func (e *Entry) String() string {
	if e.Note == "" {
		return fmt.Sprintf("%s  %s", e.Timestamp, e.Mood)
	}
	return fmt.Sprintf("%s  %s  %s", e.Timestamp, e.Mood, e.Note)
}

// Clones copies a slice of entries.
func Clones(in []*Entry) []*Entry {
	if in == nil {
		return nil
	}
	out := make([]*Entry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
