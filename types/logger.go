package types

// Logger is a leveled, structured logger. Messages carry alternating
// key/value pairs in args, making the interface compatible with
// zap.SugaredLogger's *w methods and easy to back with slog.
//
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs fine-grained diagnostic information.
	Debug(msg string, args ...any)

	// Info logs normal operational events.
	Info(msg string, args ...any)

	// Warn logs recoverable anomalies.
	Warn(msg string, args ...any)

	// Error logs failures that need attention.
	Error(msg string, args ...any)

	// Fatal logs an unrecoverable failure. Implementations may terminate the
	// process.
	Fatal(msg string, args ...any)
}
