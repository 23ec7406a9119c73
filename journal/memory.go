package journal

import (
	"context"
	"sync"

	"github.com/arloliu/strata/types"
)

// MemoryJournal implements an in-memory journal over a bounded ring.
//
// When the ring is full the oldest entry is overwritten, so the journal
// always holds the most recent executions. Recording never blocks and never
// fails while the journal is open.
//
// # Durability Warning
//
// Entries are LOST on process restart. Use MemoryJournal for:
//   - Development and testing
//   - In-process inspection of recent statements
//
// For durable audit trails, use NATSJournal or SQLiteJournal.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type MemoryJournal struct {
	mu       sync.Mutex
	entries  []Entry
	head     int
	size     int
	capacity int
	dropped  uint64
	closed   bool
}

// Compile-time assertion that MemoryJournal implements Recorder.
var _ Recorder = (*MemoryJournal)(nil)

// MemoryJournalOption configures a MemoryJournal.
type MemoryJournalOption func(*MemoryJournal)

// WithCapacity sets the maximum number of retained entries.
//
// Parameters:
//   - n: Ring capacity (default: 1024)
//
// Returns:
//   - MemoryJournalOption: Configuration option
func WithCapacity(n int) MemoryJournalOption {
	return func(m *MemoryJournal) {
		m.capacity = n
	}
}

// NewMemoryJournal creates a new in-memory journal.
//
// Parameters:
//   - opts: Optional configuration options
//
// Returns:
//   - *MemoryJournal: A new memory journal
func NewMemoryJournal(opts ...MemoryJournalOption) *MemoryJournal {
	m := &MemoryJournal{capacity: 1024}
	for _, opt := range opts {
		opt(m)
	}
	if m.capacity < 1 {
		m.capacity = 1
	}
	m.entries = make([]Entry, m.capacity)

	return m
}

// Record appends one entry, overwriting the oldest when the ring is full.
//
// Returns:
//   - error: nil on success, types.ErrJournalClosed after Close
func (m *MemoryJournal) Record(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return types.ErrJournalClosed
	}

	if m.size == m.capacity {
		m.entries[m.head] = entry
		m.head = (m.head + 1) % m.capacity
		m.dropped++

		return nil
	}

	m.entries[(m.head+m.size)%m.capacity] = entry
	m.size++

	return nil
}

// Entries returns the retained entries from oldest to newest.
func (m *MemoryJournal) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, m.size)
	for i := range m.size {
		out[i] = m.entries[(m.head+i)%m.capacity]
	}

	return out
}

// Len returns the number of retained entries.
func (m *MemoryJournal) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.size
}

// Cap returns the ring capacity.
func (m *MemoryJournal) Cap() int {
	return m.capacity
}

// Dropped returns the number of entries overwritten since creation.
func (m *MemoryJournal) Dropped() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dropped
}

// Close marks the journal closed. Retained entries stay readable.
func (m *MemoryJournal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	return nil
}

// IsClosed reports whether Close has been called.
func (m *MemoryJournal) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}
