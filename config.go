package strata

import (
	"github.com/arloliu/strata/internal/logging"
	"github.com/arloliu/strata/internal/metrics"
	"github.com/arloliu/strata/journal"
	"github.com/arloliu/strata/profile"
	"github.com/arloliu/strata/types"
)

// JournalDroppedHandler is called when an execution journal entry cannot be
// recorded. This callback allows applications to handle potential audit-trail
// loss scenarios.
//
// Parameters:
//   - entry: The entry that could not be recorded
//   - err: The error from the record attempt
type JournalDroppedHandler func(entry journal.Entry, err error)

// SessionConfig holds configuration for a Session.
type SessionConfig struct {
	DefaultOptions   *types.ExecOptions
	Profiles         *profile.Registry
	Journal          journal.Recorder
	OnJournalDropped JournalDroppedHandler
	Metrics          MetricsCollector
	Logger           Logger

	// deferredProfiles collects WithProfile/WithProfiles registrations so
	// NewSession can surface registration errors.
	deferredProfiles []namedProfile
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
//
// Defaults:
//   - DefaultOptions: types.DefaultExecOptions()
//   - Profiles: an empty registry
//   - Journal: nil (executions are not recorded)
//   - Metrics/Logger: no-op implementations
//
// Returns:
//   - *SessionConfig: Configuration with default settings
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		DefaultOptions: types.DefaultExecOptions(),
		Profiles:       profile.NewRegistry(),
		Metrics:        metrics.NewNopMetrics(),
		Logger:         logging.NewNopLogger(),
	}
}

// Option configures a SessionConfig.
type Option func(*SessionConfig)

// WithDefaultOptions sets the session's base execution options. Every
// statement resolves against this base; profiles and per-call overrides are
// layered on top of it.
//
// Parameters:
//   - opts: The base options (nil keeps types.DefaultExecOptions())
//
// Returns:
//   - Option: Configuration option
func WithDefaultOptions(opts *types.ExecOptions) Option {
	return func(c *SessionConfig) {
		if opts != nil {
			c.DefaultOptions = opts
		}
	}
}

// WithProfileRegistry sets the execution profile registry. Use this to share
// one registry across sessions.
//
// Parameters:
//   - registry: The registry to resolve execution_profile names against
//
// Returns:
//   - Option: Configuration option
func WithProfileRegistry(registry *profile.Registry) Option {
	return func(c *SessionConfig) {
		if registry != nil {
			c.Profiles = registry
		}
	}
}

// WithProfile registers a single named execution profile.
//
// Registration errors (empty name, nil profile) surface from NewSession.
//
// Parameters:
//   - name: Profile name statements reference via the execution_profile key
//   - p: The profile attributes
//
// Returns:
//   - Option: Configuration option
func WithProfile(name string, p *types.Profile) Option {
	return func(c *SessionConfig) {
		c.deferredProfiles = append(c.deferredProfiles, namedProfile{name: name, profile: p})
	}
}

// WithProfiles registers a set of named execution profiles, such as the
// result of profile.LoadFile.
//
// Parameters:
//   - profiles: Profiles keyed by name
//
// Returns:
//   - Option: Configuration option
func WithProfiles(profiles map[string]*types.Profile) Option {
	return func(c *SessionConfig) {
		for name, p := range profiles {
			c.deferredProfiles = append(c.deferredProfiles, namedProfile{name: name, profile: p})
		}
	}
}

// WithJournal sets the execution journal recorder. Every completed execution
// and preparation is recorded to it.
//
// Parameters:
//   - recorder: The journal sink (e.g. journal.NewMemoryJournal())
//
// Returns:
//   - Option: Configuration option
func WithJournal(recorder journal.Recorder) Option {
	return func(c *SessionConfig) {
		c.Journal = recorder
	}
}

// WithOnJournalDropped sets the handler called when a journal entry cannot
// be recorded.
//
// Parameters:
//   - handler: Callback receiving the dropped entry and the record error
//
// Returns:
//   - Option: Configuration option
func WithOnJournalDropped(handler JournalDroppedHandler) Option {
	return func(c *SessionConfig) {
		c.OnJournalDropped = handler
	}
}

// WithMetrics sets the metrics collector.
//
// Parameters:
//   - collector: The metrics collector (e.g. contrib/metrics/vm)
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector MetricsCollector) Option {
	return func(c *SessionConfig) {
		c.Metrics = collector
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger Logger) Option {
	return func(c *SessionConfig) {
		c.Logger = logger
	}
}

// namedProfile is a profile registration deferred until NewSession, where
// registration errors can be returned.
type namedProfile struct {
	name    string
	profile *types.Profile
}
