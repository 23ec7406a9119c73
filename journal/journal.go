package journal

import (
	"context"
	"time"

	"github.com/arloliu/strata/types"
)

// Entry is one recorded statement execution.
type Entry struct {
	// ID uniquely identifies the execution. Sinks may use it for
	// deduplication.
	ID string

	// Keyspace is the keyspace the session was scoped to, or empty.
	Keyspace string

	// Kind labels the statement shape that was executed.
	Kind types.StatementKind

	// Statement is the CQL text, or a summary for batches.
	Statement string

	// BatchSize is the number of statements in the batch, zero for
	// non-batch executions.
	BatchSize int

	// Consistency is the resolved consistency level the statement ran at.
	Consistency types.Consistency

	// Idempotent reports whether the statement was marked idempotent.
	Idempotent bool

	// Profile is the execution profile name applied, or empty.
	Profile string

	// StartedAt is when the session dispatched the statement.
	StartedAt time.Time

	// Duration is the time from dispatch to future completion.
	Duration time.Duration

	// Error is the failure text, empty when the execution succeeded.
	Error string
}

// Recorder is the sink a session writes journal entries to.
//
// Implementations must be safe for concurrent use. Record is called on
// future completion paths; it should return quickly and must not panic.
type Recorder interface {
	// Record appends one entry to the journal.
	Record(ctx context.Context, entry Entry) error

	// Close releases sink resources. Entries recorded after Close return
	// types.ErrJournalClosed.
	Close() error
}
