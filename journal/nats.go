package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/strata/types"
)

// NATSJournalConfig configures the NATS JetStream journal.
type NATSJournalConfig struct {
	// StreamName is the JetStream stream name for storing journal entries.
	// Default: "strata-journal"
	StreamName string

	// SubjectPrefix is the prefix for subjects. Entries are published to
	// "{SubjectPrefix}.{kind}" (e.g., "strata.journal.simple").
	// Default: "strata.journal"
	SubjectPrefix string

	// MaxAge is the maximum age of entries in the stream.
	// Default: 24 hours
	MaxAge time.Duration

	// MaxMsgs is the maximum number of entries in the stream.
	// Default: 1,000,000
	MaxMsgs int64

	// MaxBytes is the maximum total size of the stream in bytes.
	// Default: 1GB
	MaxBytes int64

	// Replicas is the number of stream replicas (for fault tolerance).
	// Default: 1 (use 3 for production clusters)
	Replicas int

	// PublishTimeout is the timeout for publishing entries.
	// Default: 5 seconds
	PublishTimeout time.Duration
}

// DefaultNATSJournalConfig returns the default configuration.
//
// Returns:
//   - NATSJournalConfig: Default configuration with reasonable defaults
func DefaultNATSJournalConfig() NATSJournalConfig {
	return NATSJournalConfig{
		StreamName:     "strata-journal",
		SubjectPrefix:  "strata.journal",
		MaxAge:         24 * time.Hour,
		MaxMsgs:        1_000_000,
		MaxBytes:       1 << 30, // 1GB
		Replicas:       1,
		PublishTimeout: 5 * time.Second,
	}
}

// NATSJournal implements a durable journal using NATS JetStream.
//
// Unlike MemoryJournal, entries persisted to JetStream survive process
// crashes and can be consumed by external readers. This is the recommended
// journal for production audit trails.
//
// The stream uses limits-based retention: entries age out by MaxAge,
// MaxMsgs, and MaxBytes rather than being consumed away, so any number of
// consumers can read the log independently.
type NATSJournal struct {
	js     jetstream.JetStream
	stream jetstream.Stream
	config NATSJournalConfig
	closed bool
	mu     sync.RWMutex
}

// Compile-time assertion that NATSJournal implements Recorder.
var _ Recorder = (*NATSJournal)(nil)

// NATSJournalOption configures a NATSJournal.
type NATSJournalOption func(*NATSJournalConfig)

// WithStreamName sets the JetStream stream name.
//
// Parameters:
//   - name: Stream name
//
// Returns:
//   - NATSJournalOption: Configuration option
func WithStreamName(name string) NATSJournalOption {
	return func(c *NATSJournalConfig) {
		c.StreamName = name
	}
}

// WithSubjectPrefix sets the subject prefix for journal entries.
//
// Parameters:
//   - prefix: Subject prefix
//
// Returns:
//   - NATSJournalOption: Configuration option
func WithSubjectPrefix(prefix string) NATSJournalOption {
	return func(c *NATSJournalConfig) {
		c.SubjectPrefix = prefix
	}
}

// WithMaxAge sets the maximum age of entries in the stream.
//
// Parameters:
//   - d: Maximum age duration
//
// Returns:
//   - NATSJournalOption: Configuration option
func WithMaxAge(d time.Duration) NATSJournalOption {
	return func(c *NATSJournalConfig) {
		c.MaxAge = d
	}
}

// WithMaxMsgs sets the maximum number of entries in the stream.
//
// Parameters:
//   - n: Maximum number of entries
//
// Returns:
//   - NATSJournalOption: Configuration option
func WithMaxMsgs(n int64) NATSJournalOption {
	return func(c *NATSJournalConfig) {
		c.MaxMsgs = n
	}
}

// WithMaxBytes sets the maximum total size of the stream.
//
// Parameters:
//   - n: Maximum bytes
//
// Returns:
//   - NATSJournalOption: Configuration option
func WithMaxBytes(n int64) NATSJournalOption {
	return func(c *NATSJournalConfig) {
		c.MaxBytes = n
	}
}

// WithReplicas sets the number of stream replicas.
//
// Parameters:
//   - n: Number of replicas (1 for dev, 3 for production)
//
// Returns:
//   - NATSJournalOption: Configuration option
func WithReplicas(n int) NATSJournalOption {
	return func(c *NATSJournalConfig) {
		c.Replicas = n
	}
}

// WithPublishTimeout sets the timeout for publishing entries.
//
// Parameters:
//   - d: Publish timeout duration
//
// Returns:
//   - NATSJournalOption: Configuration option
func WithPublishTimeout(d time.Duration) NATSJournalOption {
	return func(c *NATSJournalConfig) {
		c.PublishTimeout = d
	}
}

// NewNATSJournal creates a new NATS JetStream journal.
//
// This function creates or updates a JetStream stream for storing journal
// entries. The caller is responsible for creating the JetStream context from
// their NATS connection.
//
// Parameters:
//   - js: A JetStream context (created via jetstream.New(conn))
//   - opts: Optional configuration options
//
// Returns:
//   - *NATSJournal: A new NATS journal
//   - error: Error if stream creation fails
//
// Example:
//
//	nc, _ := nats.Connect("nats://localhost:4222")
//	js, _ := jetstream.New(nc)
//	j, _ := journal.NewNATSJournal(js)
func NewNATSJournal(js jetstream.JetStream, opts ...NATSJournalOption) (*NATSJournal, error) {
	if js == nil {
		return nil, errors.New("strata: JetStream context is nil")
	}

	config := DefaultNATSJournalConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Create or update the stream
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	streamConfig := jetstream.StreamConfig{
		Name:        config.StreamName,
		Description: "Strata session execution journal",
		Subjects:    []string{config.SubjectPrefix + ".*"}, // {prefix}.{kind}
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      config.MaxAge,
		MaxMsgs:     config.MaxMsgs,
		MaxBytes:    config.MaxBytes,
		Replicas:    config.Replicas,
		Storage:     jetstream.FileStorage,
		Discard:     jetstream.DiscardOld,
	}

	stream, err := js.CreateOrUpdateStream(ctx, streamConfig)
	if err != nil {
		return nil, fmt.Errorf("strata: failed to create/update stream: %w", err)
	}

	return &NATSJournal{
		js:     js,
		stream: stream,
		config: config,
	}, nil
}

// Record publishes one entry to the JetStream stream.
//
// The entry is published with subject "{prefix}.{kind}" and deduplicated by
// entry ID, so redelivery on publish retries cannot double-record.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - entry: The entry to record
//
// Returns:
//   - error: nil on success, error on publish failure
func (n *NATSJournal) Record(ctx context.Context, entry Entry) error {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()

		return types.ErrJournalClosed
	}
	n.mu.RUnlock()

	data := encodeEntry(entry)
	subject := fmt.Sprintf("%s.%s", n.config.SubjectPrefix, entry.Kind)

	pubCtx, cancel := context.WithTimeout(ctx, n.config.PublishTimeout)
	defer cancel()

	_, err := n.js.Publish(pubCtx, subject, data, jetstream.WithMsgID(entry.ID))
	if err != nil {
		return fmt.Errorf("strata: failed to publish journal entry: %w", err)
	}

	return nil
}

// Stream returns the underlying JetStream stream, useful for attaching
// consumers that read the journal.
func (n *NATSJournal) Stream() jetstream.Stream {
	return n.stream
}

// Close marks the journal closed. The stream and its entries are left
// intact for consumers.
func (n *NATSJournal) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true

	return nil
}
