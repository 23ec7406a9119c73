package strata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/internal/logging"
	"github.com/arloliu/strata/internal/metrics"
	"github.com/arloliu/strata/journal"
	"github.com/arloliu/strata/profile"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/types"
)

// Session is the query-execution front end of a cluster connection.
//
// It resolves per-call options against named execution profiles and its own
// defaults, classifies statements, and dispatches them to the collaborator
// client. Every operation returns a future; failures from resolution,
// classification, and execution all travel through the returned future, so
// callers have a single failure channel.
//
// # Thread Safety
//
// Session is safe for concurrent use from multiple goroutines. A session
// holds only immutable state (base options, profile registry, collaborator
// reference); every call works on freshly resolved, call-scoped values.
//
// # Lifecycle
//
// Create a session with NewSession() and release it with Close():
//
//	session, err := strata.NewSession(client)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close(ctx)
type Session struct {
	client   Client
	base     *types.ExecOptions
	profiles *profile.Registry
	journal  journal.Recorder
	onDrop   JournalDroppedHandler
	metrics  MetricsCollector
	logger   Logger
}

// NewSession creates a session over the given collaborator client.
//
// Parameters:
//   - client: The collaborator executing statements (required)
//   - opts: Optional configuration options
//
// Returns:
//   - *Session: A new session
//   - error: types.ErrNilClient if client is nil, or a profile
//     registration failure
func NewSession(client Client, opts ...Option) (*Session, error) {
	if client == nil {
		return nil, types.ErrNilClient
	}

	config := DefaultSessionConfig()
	for _, opt := range opts {
		opt(config)
	}

	// Ensure metrics is never nil
	if config.Metrics == nil {
		config.Metrics = metrics.NewNopMetrics()
	}

	// Ensure logger is never nil
	if config.Logger == nil {
		config.Logger = logging.NewNopLogger()
	}

	if config.DefaultOptions == nil {
		config.DefaultOptions = types.DefaultExecOptions()
	}
	if config.Profiles == nil {
		config.Profiles = profile.NewRegistry()
	}
	for _, np := range config.deferredProfiles {
		if err := config.Profiles.Register(np.name, np.profile); err != nil {
			return nil, fmt.Errorf("failed to register profile %q: %w", np.name, err)
		}
	}

	return &Session{
		client:   client,
		base:     config.DefaultOptions,
		profiles: config.Profiles,
		journal:  config.Journal,
		onDrop:   config.OnJournalDropped,
		metrics:  config.Metrics,
		logger:   config.Logger,
	}, nil
}

// Options returns the session's base execution options.
func (s *Session) Options() *types.ExecOptions {
	return s.base
}

// Profiles returns the session's execution profile registry.
func (s *Session) Profiles() *profile.Registry {
	return s.profiles
}

// Keyspace returns the keyspace the collaborator client is scoped to, or
// empty.
func (s *Session) Keyspace() string {
	return s.client.Keyspace()
}

// ExecuteAsync resolves options, classifies the statement, and dispatches it
// to the collaborator client.
//
// The statement may be raw CQL text, which is promoted to a simple statement
// carrying the resolved arguments, type hints, and idempotent flag, or a
// pre-built *stmt.Simple, *stmt.Bound, *stmt.Prepared, or *stmt.Batch. Any
// other value yields an already-failed future carrying an
// InvalidArgumentError; ExecuteAsync never panics and never returns a
// synchronous error.
//
// Parameters:
//   - ctx: Context bounding the execution
//   - statement: Raw CQL text or a pre-built statement
//   - opts: Optional per-call overrides, later maps winning
//
// Returns:
//   - *future.Future[types.Result]: Resolves to the execution result
func (s *Session) ExecuteAsync(ctx context.Context, statement any, opts ...OptionsMap) *future.Future[types.Result] {
	resolved, err := s.resolve(opts)
	if err != nil {
		return s.rejectExecute(statement, err)
	}

	target, err := s.classify(statement, resolved)
	if err != nil {
		return s.rejectExecute(statement, err)
	}

	start := time.Now()
	s.metrics.IncExecuteTotal(target.Kind())

	f := target.Accept(ctx, s.client, resolved)
	f.OnComplete(func(_ types.Result, err error) {
		s.observeExecute(ctx, target, resolved, start, err)
	})

	return f
}

// Execute is the blocking counterpart of ExecuteAsync. It surfaces the exact
// error value the future carries.
//
// Parameters:
//   - ctx: Context bounding the execution
//   - statement: Raw CQL text or a pre-built statement
//   - opts: Optional per-call overrides
//
// Returns:
//   - types.Result: The execution result
//   - error: The future's failure, or ctx.Err() if the wait was cut short
func (s *Session) Execute(ctx context.Context, statement any, opts ...OptionsMap) (types.Result, error) {
	return s.ExecuteAsync(ctx, statement, opts...).Get(ctx)
}

// PrepareAsync resolves options and prepares a statement on the collaborator
// client.
//
// Only raw CQL text and *stmt.Simple are preparable; bound, prepared, and
// batch statements yield an already-failed future carrying an
// InvalidArgumentError.
//
// Parameters:
//   - ctx: Context bounding the preparation
//   - statement: Raw CQL text or a *stmt.Simple
//   - opts: Optional per-call overrides
//
// Returns:
//   - *future.Future[*stmt.Prepared]: Resolves to the prepared handle
func (s *Session) PrepareAsync(ctx context.Context, statement any, opts ...OptionsMap) *future.Future[*stmt.Prepared] {
	resolved, err := s.resolve(opts)
	if err != nil {
		return s.rejectPrepare(err)
	}

	var text string
	switch v := statement.(type) {
	case string:
		text = v
	case *stmt.Simple:
		text = v.Text()
	default:
		return s.rejectPrepare(&types.InvalidArgumentError{
			Detail: fmt.Sprintf("cannot prepare %T, expected string or *stmt.Simple", statement),
		})
	}

	start := time.Now()
	s.metrics.IncPrepareTotal()

	f := s.client.Prepare(ctx, text, resolved)
	f.OnComplete(func(_ *stmt.Prepared, err error) {
		s.observePrepare(ctx, text, resolved, start, err)
	})

	return f
}

// Prepare is the blocking counterpart of PrepareAsync.
//
// Parameters:
//   - ctx: Context bounding the preparation
//   - statement: Raw CQL text or a *stmt.Simple
//   - opts: Optional per-call overrides
//
// Returns:
//   - *stmt.Prepared: The prepared handle
//   - error: The future's failure, or ctx.Err() if the wait was cut short
func (s *Session) Prepare(ctx context.Context, statement any, opts ...OptionsMap) (*stmt.Prepared, error) {
	return s.PrepareAsync(ctx, statement, opts...).Get(ctx)
}

// LoggedBatch creates a logged batch carrying the session's base options.
//
// When build is non-nil, the new batch is passed to it before being
// returned, so population can happen in a well-defined scope:
//
//	batch := session.LoggedBatch(func(b *stmt.Batch) {
//	    b.Add("INSERT INTO t (id) VALUES (?)", 1)
//	    b.Add("INSERT INTO t (id) VALUES (?)", 2)
//	})
//
// The batch is returned either way, populated or empty.
//
// Parameters:
//   - build: Optional population callback
//
// Returns:
//   - *stmt.Batch: The batch, ready for ExecuteAsync
func (s *Session) LoggedBatch(build func(*stmt.Batch)) *stmt.Batch {
	return s.newBatch(types.LoggedBatch, build)
}

// UnloggedBatch creates an unlogged batch carrying the session's base
// options. See LoggedBatch for the population callback semantics.
func (s *Session) UnloggedBatch(build func(*stmt.Batch)) *stmt.Batch {
	return s.newBatch(types.UnloggedBatch, build)
}

// CounterBatch creates a counter batch carrying the session's base options.
// See LoggedBatch for the population callback semantics.
func (s *Session) CounterBatch(build func(*stmt.Batch)) *stmt.Batch {
	return s.newBatch(types.CounterBatch, build)
}

func (s *Session) newBatch(kind types.BatchType, build func(*stmt.Batch)) *stmt.Batch {
	// Batches capture the session defaults, not any per-call resolution.
	b := stmt.NewBatch(kind, s.base)
	if build != nil {
		build(b)
	}

	return b
}

// CloseAsync closes the collaborator client and republishes its outcome.
//
// The returned future resolves to the session itself once the collaborator's
// close future resolves, enabling chaining; a close failure fails the
// returned future with the identical error value, unwrapped.
//
// Returns:
//   - *future.Future[*Session]: Resolves once the collaborator has closed
func (s *Session) CloseAsync() *future.Future[*Session] {
	p := future.NewPromise[*Session]()

	s.client.CloseAsync().OnComplete(func(_ struct{}, err error) {
		// The journal outlives in-flight completions only until the client is
		// down; a journal close failure never fails the session close.
		if s.journal != nil {
			if jerr := s.journal.Close(); jerr != nil {
				s.logger.Warn("journal close failed", "error", jerr)
			}
		}

		if err != nil {
			s.logger.Warn("session close failed", "error", err)
			p.Fail(err)

			return
		}
		s.logger.Debug("session closed")
		p.Fulfill(s)
	})

	return p.Future()
}

// Close is the blocking counterpart of CloseAsync.
//
// Parameters:
//   - ctx: Context bounding the wait
//
// Returns:
//   - error: The collaborator's close failure, or ctx.Err()
func (s *Session) Close(ctx context.Context) error {
	_, err := s.CloseAsync().Get(ctx)

	return err
}

// resolve merges the session defaults, the named execution profile, and the
// per-call overrides into one effective options value, lowest priority
// first. With no overrides it returns the session's base options unchanged
// and performs no profile lookup.
func (s *Session) resolve(opts []OptionsMap) (*types.ExecOptions, error) {
	layers := make([]*types.Profile, 0, 2*len(opts))
	for _, m := range opts {
		call, profileName, err := m.validate()
		if err != nil {
			return nil, err
		}
		if call == nil {
			continue
		}

		if profileName != "" {
			p, err := s.profiles.Lookup(profileName)
			if err != nil {
				return nil, err
			}
			// The named profile sits below the map's explicit keys, so a
			// caller-specified field always beats the profile's.
			layers = append(layers, p)
		}
		layers = append(layers, call)
	}

	if len(layers) == 0 {
		return s.base, nil
	}

	return s.base.Override(layers...), nil
}

// classify maps a statement value to the closed set of executable shapes.
// Raw text is promoted to a simple statement carrying the resolved
// arguments, type hints, and idempotent flag.
func (s *Session) classify(statement any, resolved *types.ExecOptions) (stmt.Statement, error) {
	switch v := statement.(type) {
	case string:
		simple := stmt.NewSimple(v, resolved.Arguments()...).
			WithIdempotent(resolved.Idempotent())
		if named := resolved.NamedArguments(); named != nil {
			simple = simple.WithNamedValues(named)
		}
		if hints := resolved.TypeHints(); hints != nil {
			simple = simple.WithTypeHints(hints...)
		}

		return simple, nil
	case *stmt.Simple:
		return v, nil
	case *stmt.Bound:
		return v, nil
	case *stmt.Prepared:
		// A bare handle executes with the arguments the options carry.
		if named := resolved.NamedArguments(); named != nil {
			return nil, &types.InvalidArgumentError{
				Detail: "prepared statements take positional arguments, bind named values explicitly",
			}
		}

		return v.Bind(resolved.Arguments()...), nil
	case *stmt.Batch:
		return v, nil
	default:
		return nil, &types.InvalidArgumentError{
			Detail: fmt.Sprintf("unsupported statement type %T", statement),
		}
	}
}

// rejectExecute funnels a resolution or classification failure into the
// uniform failure channel.
func (s *Session) rejectExecute(statement any, err error) *future.Future[types.Result] {
	s.metrics.IncResolveError()
	s.logger.Debug("execute rejected", "statement_type", fmt.Sprintf("%T", statement), "error", err)

	return future.Failed[types.Result](err)
}

func (s *Session) rejectPrepare(err error) *future.Future[*stmt.Prepared] {
	s.metrics.IncResolveError()
	s.logger.Debug("prepare rejected", "error", err)

	return future.Failed[*stmt.Prepared](err)
}

// observeExecute records metrics and the journal entry for one completed
// execution. It runs on the future's completion path.
func (s *Session) observeExecute(ctx context.Context, target stmt.Statement, resolved *types.ExecOptions, start time.Time, err error) {
	elapsed := time.Since(start)
	s.metrics.ObserveExecuteDuration(target.Kind(), elapsed.Seconds())
	if err != nil {
		s.metrics.IncExecuteError(target.Kind())
		s.logger.Debug("execute failed", "kind", string(target.Kind()), "error", err)
	}

	if s.journal == nil {
		return
	}

	entry := journal.Entry{
		ID:          uuid.NewString(),
		Keyspace:    s.client.Keyspace(),
		Kind:        target.Kind(),
		Consistency: resolved.Consistency(),
		Idempotent:  resolved.Idempotent(),
		Profile:     resolved.ProfileName(),
		StartedAt:   start,
		Duration:    elapsed,
	}
	switch v := target.(type) {
	case *stmt.Simple:
		entry.Statement = v.Text()
		entry.Idempotent = v.Idempotent()
	case *stmt.Bound:
		entry.Statement = v.Statement()
	case *stmt.Batch:
		entry.Statement = fmt.Sprintf("BATCH %s", v.BatchType())
		entry.BatchSize = v.Size()
	}
	if err != nil {
		entry.Error = err.Error()
	}

	s.record(ctx, entry)
}

// observePrepare records metrics and the journal entry for one completed
// preparation.
func (s *Session) observePrepare(ctx context.Context, text string, resolved *types.ExecOptions, start time.Time, err error) {
	elapsed := time.Since(start)
	s.metrics.ObservePrepareDuration(elapsed.Seconds())
	if err != nil {
		s.metrics.IncPrepareError()
		s.logger.Debug("prepare failed", "error", err)
	}

	if s.journal == nil {
		return
	}

	entry := journal.Entry{
		ID:          uuid.NewString(),
		Keyspace:    s.client.Keyspace(),
		Kind:        types.KindSimple,
		Statement:   text,
		Consistency: resolved.Consistency(),
		Profile:     resolved.ProfileName(),
		StartedAt:   start,
		Duration:    elapsed,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	s.record(ctx, entry)
}

func (s *Session) record(ctx context.Context, entry journal.Entry) {
	if err := s.journal.Record(ctx, entry); err != nil {
		s.metrics.IncJournalDropped()
		s.logger.Warn("journal entry dropped", "id", entry.ID, "error", err)
		if s.onDrop != nil {
			s.onDrop(entry, err)
		}

		return
	}
	s.metrics.IncJournalRecorded()
}
