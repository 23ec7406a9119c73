package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/arloliu/strata/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS strata_journal (
	id          TEXT PRIMARY KEY,
	keyspace    TEXT NOT NULL,
	kind        TEXT NOT NULL,
	statement   TEXT NOT NULL,
	batch_size  INTEGER NOT NULL,
	consistency INTEGER NOT NULL,
	idempotent  INTEGER NOT NULL,
	profile     TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	error       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_strata_journal_started_at ON strata_journal (started_at);
`

const sqliteInsert = `
INSERT OR IGNORE INTO strata_journal
	(id, keyspace, kind, statement, batch_size, consistency, idempotent, profile, started_at, duration_ns, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLiteJournal appends entries to a SQLite table, giving a single-node
// audit trail that survives restarts and can be queried with plain SQL.
//
// Inserts use the entry ID as primary key, so re-recording the same entry
// is a no-op.
type SQLiteJournal struct {
	db     *sql.DB
	ownsDB bool
	closed atomic.Bool
}

// Compile-time assertion that SQLiteJournal implements Recorder.
var _ Recorder = (*SQLiteJournal)(nil)

// NewSQLiteJournal wraps an open database handle and creates the journal
// table if it does not exist.
//
// The handle stays owned by the caller; Close does not close it.
//
// Parameters:
//   - db: An open *sql.DB backed by SQLite
//
// Returns:
//   - *SQLiteJournal: A new SQLite journal
//   - error: Schema creation failure
func NewSQLiteJournal(db *sql.DB) (*SQLiteJournal, error) {
	if db == nil {
		return nil, &types.InvalidArgumentError{Detail: "db must not be nil"}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("strata: failed to create journal table: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// OpenSQLite opens (or creates) a SQLite database file and wraps it as a
// journal. Close closes the database.
//
// The caller must import a driver registering the "sqlite3" name, such as
// github.com/mattn/go-sqlite3.
//
// Parameters:
//   - path: Database file path, created if missing
//
// Returns:
//   - *SQLiteJournal: A new SQLite journal owning the database handle
//   - error: Open or schema creation failure
func OpenSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("strata: failed to open journal database: %w", err)
	}

	j, err := NewSQLiteJournal(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	j.ownsDB = true

	return j, nil
}

// Record inserts one entry.
//
// Returns:
//   - error: nil on success, types.ErrJournalClosed after Close
func (j *SQLiteJournal) Record(ctx context.Context, entry Entry) error {
	if j.closed.Load() {
		return types.ErrJournalClosed
	}

	_, err := j.db.ExecContext(ctx, sqliteInsert,
		entry.ID,
		entry.Keyspace,
		string(entry.Kind),
		entry.Statement,
		entry.BatchSize,
		int(entry.Consistency),
		entry.Idempotent,
		entry.Profile,
		entry.StartedAt.UnixNano(),
		int64(entry.Duration),
		entry.Error,
	)
	if err != nil {
		return fmt.Errorf("strata: failed to insert journal entry: %w", err)
	}

	return nil
}

// Tail returns the most recent entries, oldest first.
//
// Parameters:
//   - ctx: Context bounding the query
//   - n: Maximum number of entries to return
//
// Returns:
//   - []Entry: Up to n entries ordered oldest to newest
//   - error: Query failure
func (j *SQLiteJournal) Tail(ctx context.Context, n int) ([]Entry, error) {
	if j.closed.Load() {
		return nil, types.ErrJournalClosed
	}

	rows, err := j.db.QueryContext(ctx, `
SELECT id, keyspace, kind, statement, batch_size, consistency, idempotent, profile, started_at, duration_ns, error
FROM strata_journal ORDER BY started_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("strata: failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			kind        string
			consistency int
			startedAt   int64
			durationNS  int64
		)
		err := rows.Scan(&e.ID, &e.Keyspace, &kind, &e.Statement, &e.BatchSize,
			&consistency, &e.Idempotent, &e.Profile, &startedAt, &durationNS, &e.Error)
		if err != nil {
			return nil, fmt.Errorf("strata: failed to scan journal entry: %w", err)
		}
		e.Kind = types.StatementKind(kind)
		e.Consistency = types.Consistency(consistency)
		e.StartedAt = time.Unix(0, startedAt)
		e.Duration = time.Duration(durationNS)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("strata: failed to iterate journal entries: %w", err)
	}

	// Flip newest-first query order to oldest-first.
	for i, jj := 0, len(entries)-1; i < jj; i, jj = i+1, jj-1 {
		entries[i], entries[jj] = entries[jj], entries[i]
	}

	return entries, nil
}

// Close marks the journal closed and, when the journal owns the database
// handle, closes it.
func (j *SQLiteJournal) Close() error {
	if !j.closed.CompareAndSwap(false, true) {
		return nil
	}
	if j.ownsDB {
		return j.db.Close()
	}

	return nil
}
