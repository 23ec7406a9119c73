package journal_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/journal"
	"github.com/arloliu/strata/types"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func sqliteEntry(id string, startedAt time.Time) journal.Entry {
	return journal.Entry{
		ID:          id,
		Keyspace:    "app",
		Kind:        types.KindBound,
		Statement:   "UPDATE users SET name = ? WHERE id = ?",
		Consistency: types.Quorum,
		Idempotent:  true,
		Profile:     "writes",
		StartedAt:   startedAt,
		Duration:    5 * time.Millisecond,
	}
}

func TestSQLiteJournalRecordAndTail(t *testing.T) {
	j, err := journal.NewSQLiteJournal(openTestDB(t))
	require.NoError(t, err)
	defer j.Close()

	base := time.Now()
	for i := range 5 {
		entry := sqliteEntry(fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, j.Record(context.Background(), entry))
	}

	entries, err := j.Tail(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Oldest first within the tail window.
	require.Equal(t, "e2", entries[0].ID)
	require.Equal(t, "e3", entries[1].ID)
	require.Equal(t, "e4", entries[2].ID)
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	j, err := journal.NewSQLiteJournal(openTestDB(t))
	require.NoError(t, err)
	defer j.Close()

	started := time.Date(2025, 11, 3, 14, 22, 7, 123456000, time.UTC)
	in := journal.Entry{
		ID:          "round-trip",
		Keyspace:    "app",
		Kind:        types.KindBatch,
		Statement:   "BATCH (2 statements)",
		BatchSize:   2,
		Consistency: types.EachQuorum,
		Idempotent:  false,
		Profile:     "critical-writes",
		StartedAt:   started,
		Duration:    17 * time.Millisecond,
		Error:       "write timeout",
	}
	require.NoError(t, j.Record(context.Background(), in))

	entries, err := j.Tail(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	out := entries[0]
	require.Equal(t, in.ID, out.ID)
	require.Equal(t, in.Kind, out.Kind)
	require.Equal(t, in.BatchSize, out.BatchSize)
	require.Equal(t, in.Consistency, out.Consistency)
	require.Equal(t, in.Idempotent, out.Idempotent)
	require.Equal(t, in.Profile, out.Profile)
	require.True(t, in.StartedAt.Equal(out.StartedAt))
	require.Equal(t, in.Duration, out.Duration)
	require.Equal(t, in.Error, out.Error)
}

func TestSQLiteJournalDuplicateIDIsNoOp(t *testing.T) {
	j, err := journal.NewSQLiteJournal(openTestDB(t))
	require.NoError(t, err)
	defer j.Close()

	entry := sqliteEntry("dup", time.Now())
	require.NoError(t, j.Record(context.Background(), entry))

	entry.Statement = "changed"
	require.NoError(t, j.Record(context.Background(), entry))

	entries, err := j.Tail(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "UPDATE users SET name = ? WHERE id = ?", entries[0].Statement)
}

func TestSQLiteJournalClosed(t *testing.T) {
	j, err := journal.NewSQLiteJournal(openTestDB(t))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	err = j.Record(context.Background(), sqliteEntry("late", time.Now()))
	require.ErrorIs(t, err, types.ErrJournalClosed)

	_, err = j.Tail(context.Background(), 1)
	require.ErrorIs(t, err, types.ErrJournalClosed)

	require.NoError(t, j.Close())
}

func TestSQLiteJournalNilDB(t *testing.T) {
	_, err := journal.NewSQLiteJournal(nil)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := journal.OpenSQLite(path)
	require.NoError(t, err)

	require.NoError(t, j.Record(context.Background(), sqliteEntry("persisted", time.Now())))
	require.NoError(t, j.Close())

	// Reopen and verify the entry survived.
	j2, err := journal.OpenSQLite(path)
	require.NoError(t, err)
	defer j2.Close()

	entries, err := j2.Tail(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "persisted", entries[0].ID)
}
