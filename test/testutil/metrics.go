package testutil

import (
	"sync"

	"github.com/arloliu/strata/types"
)

// CaptureMetrics is a MetricsCollector that records counts for assertions.
//
// CaptureMetrics is safe for concurrent use.
type CaptureMetrics struct {
	mu sync.Mutex

	ExecuteTotal     map[types.StatementKind]int
	ExecuteErrors    map[types.StatementKind]int
	ExecuteDurations int
	PrepareTotal     int
	PrepareErrors    int
	PrepareDurations int
	ResolveErrors    int
	JournalRecorded  int
	JournalDropped   int
	JournalDepth     int
}

// Compile-time assertion that CaptureMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*CaptureMetrics)(nil)

// NewCaptureMetrics creates an empty capture collector.
func NewCaptureMetrics() *CaptureMetrics {
	return &CaptureMetrics{
		ExecuteTotal:  make(map[types.StatementKind]int),
		ExecuteErrors: make(map[types.StatementKind]int),
	}
}

// IncExecuteTotal records the metric.
func (c *CaptureMetrics) IncExecuteTotal(kind types.StatementKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ExecuteTotal[kind]++
}

// IncExecuteError records the metric.
func (c *CaptureMetrics) IncExecuteError(kind types.StatementKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ExecuteErrors[kind]++
}

// ObserveExecuteDuration records the metric.
func (c *CaptureMetrics) ObserveExecuteDuration(_ types.StatementKind, _ float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ExecuteDurations++
}

// IncPrepareTotal records the metric.
func (c *CaptureMetrics) IncPrepareTotal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PrepareTotal++
}

// IncPrepareError records the metric.
func (c *CaptureMetrics) IncPrepareError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PrepareErrors++
}

// ObservePrepareDuration records the metric.
func (c *CaptureMetrics) ObservePrepareDuration(_ float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PrepareDurations++
}

// IncResolveError records the metric.
func (c *CaptureMetrics) IncResolveError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ResolveErrors++
}

// IncJournalRecorded records the metric.
func (c *CaptureMetrics) IncJournalRecorded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.JournalRecorded++
}

// IncJournalDropped records the metric.
func (c *CaptureMetrics) IncJournalDropped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.JournalDropped++
}

// SetJournalQueueDepth records the metric.
func (c *CaptureMetrics) SetJournalQueueDepth(depth int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.JournalDepth = depth
}

// Executed returns the total execute count for the given kind.
func (c *CaptureMetrics) Executed(kind types.StatementKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ExecuteTotal[kind]
}

// Resolve returns the resolve-error count.
func (c *CaptureMetrics) Resolve() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ResolveErrors
}

// LogEntry is one captured log message.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// CaptureLogger is a Logger that records messages for assertions.
//
// CaptureLogger is safe for concurrent use.
type CaptureLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Compile-time assertion that CaptureLogger implements types.Logger.
var _ types.Logger = (*CaptureLogger)(nil)

// NewCaptureLogger creates an empty capture logger.
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

// Debug records the message.
func (l *CaptureLogger) Debug(msg string, args ...any) { l.append("debug", msg, args) }

// Info records the message.
func (l *CaptureLogger) Info(msg string, args ...any) { l.append("info", msg, args) }

// Warn records the message.
func (l *CaptureLogger) Warn(msg string, args ...any) { l.append("warn", msg, args) }

// Error records the message.
func (l *CaptureLogger) Error(msg string, args ...any) { l.append("error", msg, args) }

// Fatal records the message without terminating the process.
func (l *CaptureLogger) Fatal(msg string, args ...any) { l.append("fatal", msg, args) }

// Entries returns a copy of the captured messages, in order.
func (l *CaptureLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Contains reports whether any captured message equals msg.
func (l *CaptureLogger) Contains(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.Msg == msg {
			return true
		}
	}

	return false
}

func (l *CaptureLogger) append(level, msg string, args []any) {
	l.mu.Lock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
	l.mu.Unlock()
}
