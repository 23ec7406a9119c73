// Package journal provides execution journal implementations for strata
// sessions.
//
// A session configured with a journal records one entry per completed
// statement execution: statement text, kind, resolved consistency, profile,
// timing, and the failure (if any). Recording happens on the future
// completion path after the outcome is already resolved, so journal latency
// and journal failures never affect callers.
//
// # Recorder Interface
//
// The interface a session writes to is minimal:
//
//	type Recorder interface {
//	    Record(ctx context.Context, entry Entry) error
//	    Close() error
//	}
//
// This allows different sink implementations (in-memory, NATS, SQLite,
// Kafka, etc.) while the session only needs record capability.
//
// # Memory Journal
//
// [MemoryJournal] keeps the most recent entries in a bounded ring,
// overwriting the oldest entry when full. It is suitable for tests and for
// in-process inspection of recent statements:
//
//	j := journal.NewMemoryJournal(journal.WithCapacity(4096))
//	session, _ := strata.NewSession(client, strata.WithJournal(j))
//	...
//	for _, e := range j.Entries() {
//	    fmt.Println(e.Statement, e.Duration)
//	}
//
// Entries are LOST on process restart. Use a durable sink for audit trails.
//
// # NATS JetStream Journal
//
// [NATSJournal] publishes entries to a NATS JetStream stream, giving a
// durable, externally consumable statement log. Entries are serialized with
// MessagePack and deduplicated by entry ID:
//
//	nc, _ := nats.Connect("nats://localhost:4222")
//	js, _ := jetstream.New(nc)
//	j, _ := journal.NewNATSJournal(js)
//
// The stream retains entries by age and size limits; consumers read the
// stream with ordinary JetStream consumers.
//
// # SQLite Journal
//
// [SQLiteJournal] appends entries to a local SQLite table, useful for
// single-node audit trails that survive restarts and can be queried with
// plain SQL:
//
//	j, _ := journal.OpenSQLite("/var/lib/myapp/journal.db")
//	defer j.Close()
package journal
