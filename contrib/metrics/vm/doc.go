// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "strata":
//
//	collector := vm.New()
//	session, _ := strata.NewSession(client,
//	    strata.WithMetrics(collector),
//	)
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// This produces metrics like:
//   - myapp_execute_total{kind="simple"}
//   - myapp_execute_duration_seconds{kind="batch"}
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer:
//
//	collector.WritePrometheus(w)
//
// # Metrics Provided
//
// Statement execution:
//   - {prefix}_execute_total{kind} - Counter of executed statements
//   - {prefix}_execute_errors_total{kind} - Counter of failed executions
//   - {prefix}_execute_duration_seconds{kind} - Histogram of execution latencies
//
// Statement preparation:
//   - {prefix}_prepare_total - Counter of prepared statements
//   - {prefix}_prepare_errors_total - Counter of failed preparations
//   - {prefix}_prepare_duration_seconds - Histogram of preparation latencies
//
// Options resolution:
//   - {prefix}_resolve_errors_total - Counter of calls rejected before dispatch
//
// Execution journal:
//   - {prefix}_journal_recorded_total - Counter of recorded journal entries
//   - {prefix}_journal_dropped_total - Counter of dropped journal entries
//   - {prefix}_journal_queue_depth - Gauge of the current journal backlog
//
// # Performance Notes
//
// This implementation pre-creates all metrics at initialization time
// using the NewXXX pattern (instead of GetOrCreateXXX) for optimal
// performance in hot paths, as recommended by the VictoriaMetrics documentation.
//
// The metrics are registered with a dedicated Set that is registered
// globally, allowing standard Prometheus scraping.
package vm
