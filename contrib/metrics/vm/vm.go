package vm

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/strata/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "strata"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time for optimal performance.
// Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	// Execution metrics, per statement kind
	executeTotalSimple    *metrics.Counter
	executeTotalBound     *metrics.Counter
	executeTotalBatch     *metrics.Counter
	executeErrorsSimple   *metrics.Counter
	executeErrorsBound    *metrics.Counter
	executeErrorsBatch    *metrics.Counter
	executeDurationSimple *metrics.Histogram
	executeDurationBound  *metrics.Histogram
	executeDurationBatch  *metrics.Histogram

	// Preparation metrics
	prepareTotal    *metrics.Counter
	prepareErrors   *metrics.Counter
	prepareDuration *metrics.Histogram

	// Resolution metrics
	resolveErrors *metrics.Counter

	// Journal metrics
	journalRecorded   *metrics.Counter
	journalDropped    *metrics.Counter
	journalQueueDepth atomic.Int64
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally.
// All metrics are pre-created at initialization for optimal performance.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	session, _ := strata.NewSession(client,
//	    strata.WithMetrics(collector),
//	)
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "strata",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	// Execution metrics
	c.executeTotalSimple = c.set.NewCounter(fmt.Sprintf(`%s_execute_total{kind="%s"}`, p, types.KindSimple))
	c.executeTotalBound = c.set.NewCounter(fmt.Sprintf(`%s_execute_total{kind="%s"}`, p, types.KindBound))
	c.executeTotalBatch = c.set.NewCounter(fmt.Sprintf(`%s_execute_total{kind="%s"}`, p, types.KindBatch))
	c.executeErrorsSimple = c.set.NewCounter(fmt.Sprintf(`%s_execute_errors_total{kind="%s"}`, p, types.KindSimple))
	c.executeErrorsBound = c.set.NewCounter(fmt.Sprintf(`%s_execute_errors_total{kind="%s"}`, p, types.KindBound))
	c.executeErrorsBatch = c.set.NewCounter(fmt.Sprintf(`%s_execute_errors_total{kind="%s"}`, p, types.KindBatch))
	c.executeDurationSimple = c.set.NewHistogram(fmt.Sprintf(`%s_execute_duration_seconds{kind="%s"}`, p, types.KindSimple))
	c.executeDurationBound = c.set.NewHistogram(fmt.Sprintf(`%s_execute_duration_seconds{kind="%s"}`, p, types.KindBound))
	c.executeDurationBatch = c.set.NewHistogram(fmt.Sprintf(`%s_execute_duration_seconds{kind="%s"}`, p, types.KindBatch))

	// Preparation metrics
	c.prepareTotal = c.set.NewCounter(fmt.Sprintf(`%s_prepare_total`, p))
	c.prepareErrors = c.set.NewCounter(fmt.Sprintf(`%s_prepare_errors_total`, p))
	c.prepareDuration = c.set.NewHistogram(fmt.Sprintf(`%s_prepare_duration_seconds`, p))

	// Resolution metrics
	c.resolveErrors = c.set.NewCounter(fmt.Sprintf(`%s_resolve_errors_total`, p))

	// Journal metrics - depth uses a gauge with a callback
	c.journalRecorded = c.set.NewCounter(fmt.Sprintf(`%s_journal_recorded_total`, p))
	c.journalDropped = c.set.NewCounter(fmt.Sprintf(`%s_journal_dropped_total`, p))
	c.set.NewGauge(fmt.Sprintf(`%s_journal_queue_depth`, p), func() float64 {
		return float64(c.journalQueueDepth.Load())
	})
}

// Set returns the underlying metrics set.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Statement Execution
// ----------------------

// IncExecuteTotal increments the executed-statement counter.
func (c *Collector) IncExecuteTotal(kind types.StatementKind) {
	switch kind {
	case types.KindSimple:
		c.executeTotalSimple.Inc()
	case types.KindBound:
		c.executeTotalBound.Inc()
	case types.KindBatch:
		c.executeTotalBatch.Inc()
	}
}

// IncExecuteError increments the failed-statement counter.
func (c *Collector) IncExecuteError(kind types.StatementKind) {
	switch kind {
	case types.KindSimple:
		c.executeErrorsSimple.Inc()
	case types.KindBound:
		c.executeErrorsBound.Inc()
	case types.KindBatch:
		c.executeErrorsBatch.Inc()
	}
}

// ObserveExecuteDuration records an execution duration in seconds.
func (c *Collector) ObserveExecuteDuration(kind types.StatementKind, seconds float64) {
	switch kind {
	case types.KindSimple:
		c.executeDurationSimple.Update(seconds)
	case types.KindBound:
		c.executeDurationBound.Update(seconds)
	case types.KindBatch:
		c.executeDurationBatch.Update(seconds)
	}
}

// ----------------------
// Statement Preparation
// ----------------------

// IncPrepareTotal increments the prepared-statement counter.
func (c *Collector) IncPrepareTotal() {
	c.prepareTotal.Inc()
}

// IncPrepareError increments the failed-preparation counter.
func (c *Collector) IncPrepareError() {
	c.prepareErrors.Inc()
}

// ObservePrepareDuration records a preparation duration in seconds.
func (c *Collector) ObservePrepareDuration(seconds float64) {
	c.prepareDuration.Update(seconds)
}

// ----------------------
// Options Resolution
// ----------------------

// IncResolveError increments the rejected-call counter.
func (c *Collector) IncResolveError() {
	c.resolveErrors.Inc()
}

// ----------------------
// Execution Journal
// ----------------------

// IncJournalRecorded increments the recorded-entry counter.
func (c *Collector) IncJournalRecorded() {
	c.journalRecorded.Inc()
}

// IncJournalDropped increments the dropped-entry counter.
func (c *Collector) IncJournalDropped() {
	c.journalDropped.Inc()
}

// SetJournalQueueDepth sets the current journal backlog gauge.
func (c *Collector) SetJournalQueueDepth(depth int) {
	c.journalQueueDepth.Store(int64(depth))
}
