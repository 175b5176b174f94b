package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/moodlog/pkg/entry"
)

type tableFactory func(t *testing.T) Table

func tableFactories() map[string]tableFactory {
	return map[string]tableFactory{
		"memory": func(t *testing.T) Table {
			return NewMemory()
		},
		"sqlite": func(t *testing.T) Table {
			s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), DatabaseFile))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
		"diskv": func(t *testing.T) Table {
			d, err := OpenDiskv(t.TempDir())
			require.NoError(t, err)
			return d
		},
	}
}

func forEachTable(t *testing.T, fn func(t *testing.T, table Table)) {
	for name, factory := range tableFactories() {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func TestTableInsertAndListAll(t *testing.T) {
	forEachTable(t, func(t *testing.T, table Table) {
		ctx := context.Background()
		first := &entry.Entry{ID: 1000, Mood: "Happy 😊", Timestamp: "01 Jan 2024, 10:00 AM"}
		second := &entry.Entry{ID: 2000, Mood: "Sad 😟", Note: "long day", Timestamp: "01 Jan 2024, 11:00 AM"}

		require.NoError(t, table.Insert(ctx, first))
		require.NoError(t, table.Insert(ctx, second))

		all, err := table.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, second, all[0])
		assert.Equal(t, first, all[1])
	})
}

func TestTableInsertDuplicateID(t *testing.T) {
	forEachTable(t, func(t *testing.T, table Table) {
		ctx := context.Background()
		e := &entry.Entry{ID: 42, Mood: "Calm 🙂", Timestamp: "05 Mar 2024, 09:15 AM"}
		require.NoError(t, table.Insert(ctx, e))

		err := table.Insert(ctx, &entry.Entry{ID: 42, Mood: "Sad 😟", Timestamp: "05 Mar 2024, 09:16 AM"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConstraintViolation), "got %v", err)

		got, ok, err := table.Get(ctx, 42)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Calm 🙂", got.Mood)
	})
}

func TestTableGetMissing(t *testing.T) {
	forEachTable(t, func(t *testing.T, table Table) {
		got, ok, err := table.Get(context.Background(), 999)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestTableUpdate(t *testing.T) {
	forEachTable(t, func(t *testing.T, table Table) {
		ctx := context.Background()
		e := &entry.Entry{ID: 7, Mood: "Neutral 😐", Timestamp: "10 Feb 2024, 08:00 PM"}
		require.NoError(t, table.Insert(ctx, e))

		edited := e.Clone()
		edited.Note = "actually fine"
		edited.Mood = "Happy 😊"
		changed, err := table.Update(ctx, edited)
		require.NoError(t, err)
		assert.True(t, changed)

		got, ok, err := table.Get(ctx, 7)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, edited, got)

		changed, err = table.Update(ctx, &entry.Entry{ID: 8, Mood: "Sad 😟"})
		require.NoError(t, err)
		assert.False(t, changed)

		_, ok, err = table.Get(ctx, 8)
		require.NoError(t, err)
		assert.False(t, ok, "update must not insert")
	})
}

func TestTableDelete(t *testing.T) {
	forEachTable(t, func(t *testing.T, table Table) {
		ctx := context.Background()
		e := &entry.Entry{ID: 11, Mood: "Anxious 😬", Timestamp: "10 Feb 2024, 08:00 PM"}
		require.NoError(t, table.Insert(ctx, e))

		changed, err := table.Delete(ctx, e)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = table.Delete(ctx, e)
		require.NoError(t, err)
		assert.False(t, changed)

		all, err := table.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestTableSignedIDsAreDistinct(t *testing.T) {
	forEachTable(t, func(t *testing.T, table Table) {
		ctx := context.Background()
		positive := &entry.Entry{ID: 5, Mood: "Happy 😊", Timestamp: "01 Jan 2024, 09:00 AM"}
		require.NoError(t, table.Insert(ctx, positive))

		got, ok, err := table.Get(ctx, -5)
		require.NoError(t, err)
		assert.False(t, ok, "got %+v for id -5", got)

		changed, err := table.Delete(ctx, &entry.Entry{ID: -5})
		require.NoError(t, err)
		assert.False(t, changed)
		_, ok, err = table.Get(ctx, 5)
		require.NoError(t, err)
		assert.True(t, ok, "deleting -5 removed 5")

		negative := &entry.Entry{ID: -5, Mood: "Sad 😟", Timestamp: "01 Jan 2024, 10:00 AM"}
		zero := &entry.Entry{ID: 0, Mood: "Calm 🙂", Timestamp: "01 Jan 2024, 11:00 AM"}
		require.NoError(t, table.Insert(ctx, negative))
		require.NoError(t, table.Insert(ctx, zero))

		got, ok, err = table.Get(ctx, -5)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, negative, got)

		all, err := table.ListAll(ctx)
		require.NoError(t, err)
		ids := make([]int64, 0, len(all))
		for _, e := range all {
			ids = append(ids, e.ID)
		}
		assert.ElementsMatch(t, []int64{5, 0, -5}, ids)
	})
}

func TestTableListBetweenComparesStrings(t *testing.T) {
	forEachTable(t, func(t *testing.T, table Table) {
		ctx := context.Background()
		entries := []*entry.Entry{
			{ID: 1, Mood: "Happy 😊", Timestamp: "03 Jun 2024, 09:00 AM"},
			{ID: 2, Mood: "Sad 😟", Timestamp: "01 Jun 2024, 09:00 AM"},
			{ID: 3, Mood: "Calm 🙂", Timestamp: "05 Jun 2024, 09:00 AM"},
			{ID: 4, Mood: "Calm 🙂", Timestamp: "03 Jun 2024, 09:00 AM"},
			// sorts inside the range as text even though it is a later month
			{ID: 5, Mood: "Neutral 😐", Timestamp: "02 Jul 2024, 09:00 AM"},
			{ID: 6, Mood: "Neutral 😐", Timestamp: "07 Jun 2024, 09:00 AM"},
		}
		for _, e := range entries {
			require.NoError(t, table.Insert(ctx, e))
		}

		got, err := table.ListBetween(ctx, "01 Jun 2024, 09:00 AM", "05 Jun 2024, 09:00 AM")
		require.NoError(t, err)

		ids := make([]int64, 0, len(got))
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []int64{2, 5, 1, 4, 3}, ids)
	})
}

func TestSQLiteReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DatabaseFile)

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Insert(ctx, &entry.Entry{ID: 5, Mood: "Happy 😊", Timestamp: "01 Jan 2024, 10:00 AM"}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Get(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", got.Note)
}
