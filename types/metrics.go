package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Execution-scoped methods accept a StatementKind parameter for labeling.
// Implementations should be thread-safe as methods may be called concurrently,
// and allocation-free where possible: every method sits on the execution hot
// path.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/arloliu/strata/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	session, _ := strata.NewSession(client,
//	    strata.WithMetrics(collector),
//	)
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Statement Execution
	// ----------------------

	// IncExecuteTotal increments the executed-statement counter.
	IncExecuteTotal(kind StatementKind)

	// IncExecuteError increments the failed-statement counter.
	IncExecuteError(kind StatementKind)

	// ObserveExecuteDuration records the time from dispatch to future
	// completion in seconds.
	ObserveExecuteDuration(kind StatementKind, seconds float64)

	// ----------------------
	// Statement Preparation
	// ----------------------

	// IncPrepareTotal increments the prepared-statement counter.
	IncPrepareTotal()

	// IncPrepareError increments the failed-preparation counter.
	IncPrepareError()

	// ObservePrepareDuration records a preparation duration in seconds.
	ObservePrepareDuration(seconds float64)

	// ----------------------
	// Options Resolution
	// ----------------------

	// IncResolveError increments when options resolution or statement
	// classification rejects a call before dispatch.
	IncResolveError()

	// ----------------------
	// Execution Journal
	// ----------------------

	// IncJournalRecorded increments when an execution is recorded to the
	// journal.
	IncJournalRecorded()

	// IncJournalDropped increments when a journal entry cannot be recorded.
	IncJournalDropped()

	// SetJournalQueueDepth sets the current journal backlog gauge.
	SetJournalQueueDepth(depth int)
}
