// Package stmt defines the closed set of statement shapes a session can
// execute and the executor contract they dispatch into.
//
// The set is deliberately closed: Simple, Bound, and Batch implement
// Statement, Prepared produces Bound via Bind, and raw CQL text is promoted
// to Simple at the session boundary. Anything else is rejected there with an
// InvalidArgumentError surfaced through a failed future, never a panic.
package stmt

import (
	"context"
	"fmt"

	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/types"
)

// Executor is the slice of the collaborator client that statements dispatch
// into. Implementations must be safe for concurrent use and must never block
// the caller; results travel through the returned futures.
type Executor interface {
	// Query executes a simple textual statement.
	Query(ctx context.Context, s *Simple, opts *types.ExecOptions) *future.Future[types.Result]

	// Execute runs a bound prepared statement.
	Execute(ctx context.Context, b *Bound, opts *types.ExecOptions) *future.Future[types.Result]

	// Batch executes a batch atomically according to its kind.
	Batch(ctx context.Context, b *Batch, opts *types.ExecOptions) *future.Future[types.Result]
}

// Statement is implemented by every value an executor can run directly.
type Statement interface {
	// Accept dispatches the statement to the executor method matching its
	// concrete shape.
	Accept(ctx context.Context, e Executor, opts *types.ExecOptions) *future.Future[types.Result]

	// Kind labels the statement for metrics and journal entries.
	Kind() types.StatementKind
}

// Compile-time interface checks.
var (
	_ Statement = (*Simple)(nil)
	_ Statement = (*Bound)(nil)
	_ Statement = (*Batch)(nil)
)

// Simple is a textual CQL statement with optional bound values.
type Simple struct {
	text       string
	values     []any
	named      map[string]any
	typeHints  []string
	idempotent bool
}

// NewSimple creates a simple statement from CQL text and positional values.
//
// Parameters:
//   - text: CQL statement with ? placeholders
//   - values: Values to bind to placeholders
//
// Returns:
//   - *Simple: The statement
func NewSimple(text string, values ...any) *Simple {
	return &Simple{text: text, values: values}
}

// WithNamedValues replaces positional binding with name-to-value bindings.
func (s *Simple) WithNamedValues(values map[string]any) *Simple {
	s.named = values

	return s
}

// WithTypeHints attaches CQL type names guiding serialization of ambiguous
// values.
func (s *Simple) WithTypeHints(hints ...string) *Simple {
	s.typeHints = hints

	return s
}

// WithIdempotent marks the statement as safe to retry or speculatively
// execute.
func (s *Simple) WithIdempotent(idempotent bool) *Simple {
	s.idempotent = idempotent

	return s
}

// Text returns the CQL statement text.
func (s *Simple) Text() string { return s.text }

// Values returns the positional values to bind.
func (s *Simple) Values() []any { return s.values }

// NamedValues returns the name-to-value bindings, or nil.
func (s *Simple) NamedValues() map[string]any { return s.named }

// TypeHints returns the attached CQL type names, or nil.
func (s *Simple) TypeHints() []string { return s.typeHints }

// Idempotent reports whether the statement was marked idempotent.
func (s *Simple) Idempotent() bool { return s.idempotent }

// Accept dispatches the statement to Executor.Query.
func (s *Simple) Accept(ctx context.Context, e Executor, opts *types.ExecOptions) *future.Future[types.Result] {
	return e.Query(ctx, s, opts)
}

// Kind returns KindSimple.
func (s *Simple) Kind() types.StatementKind { return types.KindSimple }

// Prepared is a handle to a prepared statement, created by Session.Prepare
// or a collaborator client. Executing the handle directly binds the
// arguments carried by the resolved options; Bind creates an explicit Bound
// statement instead.
type Prepared struct {
	text string
}

// NewPrepared creates a prepared-statement handle for the given text.
// Collaborator clients call this from their Prepare implementations.
func NewPrepared(text string) *Prepared {
	return &Prepared{text: text}
}

// Statement returns the CQL text the handle was prepared from.
func (p *Prepared) Statement() string { return p.text }

// Bind creates a bound statement ready for execution.
//
// Parameters:
//   - values: Values bound to the prepared statement's placeholders
//
// Returns:
//   - *Bound: The bound statement
func (p *Prepared) Bind(values ...any) *Bound {
	return &Bound{prepared: p, values: values}
}

// Bound is a prepared statement with values bound for one execution.
type Bound struct {
	prepared *Prepared
	values   []any
}

// Prepared returns the handle this statement was bound from.
func (b *Bound) Prepared() *Prepared { return b.prepared }

// Statement returns the CQL text of the underlying prepared statement.
func (b *Bound) Statement() string { return b.prepared.Statement() }

// Values returns the bound values.
func (b *Bound) Values() []any { return b.values }

// Accept dispatches the statement to Executor.Execute.
func (b *Bound) Accept(ctx context.Context, e Executor, opts *types.ExecOptions) *future.Future[types.Result] {
	return e.Execute(ctx, b, opts)
}

// Kind returns KindBound.
func (b *Bound) Kind() types.StatementKind { return types.KindBound }

// Batch is an ordered collection of statements executed atomically according
// to its kind. Batches capture a snapshot of the session's base options at
// construction; execution layers profiles and per-call overrides over that
// snapshot.
//
// Batches are builders, not thread-safe values: populate a batch from one
// goroutine, then hand it to the session.
type Batch struct {
	kind    types.BatchType
	base    *types.ExecOptions
	entries []Statement
	err     error
}

// NewBatch creates an empty batch of the given kind.
//
// Parameters:
//   - kind: LoggedBatch, UnloggedBatch, or CounterBatch
//   - base: Options snapshot the batch executes from; may be nil
//
// Returns:
//   - *Batch: The empty batch
func NewBatch(kind types.BatchType, base *types.ExecOptions) *Batch {
	b := &Batch{kind: kind, base: base}
	if !kind.Valid() {
		b.err = types.ErrInvalidBatchType
	}

	return b
}

// Add appends a statement to the batch. Raw text is promoted to a simple
// statement with the given values; a Prepared is bound with the given
// values; a Simple or Bound with fresh values is rebound.
//
// An unsupported statement records an error on the batch instead of
// panicking; executing such a batch yields a failed future.
//
// Parameters:
//   - statement: Raw CQL text, *Simple, *Bound, or *Prepared
//   - values: Optional values to bind
//
// Returns:
//   - *Batch: The batch, for chaining
func (b *Batch) Add(statement any, values ...any) *Batch {
	switch s := statement.(type) {
	case string:
		b.entries = append(b.entries, NewSimple(s, values...))
	case *Simple:
		if len(values) > 0 {
			rebound := NewSimple(s.Text(), values...).WithIdempotent(s.Idempotent())
			if hints := s.TypeHints(); hints != nil {
				rebound = rebound.WithTypeHints(hints...)
			}
			b.entries = append(b.entries, rebound)
		} else {
			b.entries = append(b.entries, s)
		}
	case *Bound:
		if len(values) > 0 {
			b.entries = append(b.entries, s.Prepared().Bind(values...))
		} else {
			b.entries = append(b.entries, s)
		}
	case *Prepared:
		b.entries = append(b.entries, s.Bind(values...))
	default:
		if b.err == nil {
			b.err = &types.InvalidArgumentError{
				Detail: fmt.Sprintf("batch cannot contain %T", statement),
			}
		}
	}

	return b
}

// Size returns the number of statements in the batch.
func (b *Batch) Size() int { return len(b.entries) }

// Kind returns KindBatch.
//
// Use BatchType to inspect the batch execution mode.
func (b *Batch) Kind() types.StatementKind { return types.KindBatch }

// BatchType returns the batch execution mode.
func (b *Batch) BatchType() types.BatchType { return b.kind }

// Entries returns the statements added so far, in order.
func (b *Batch) Entries() []Statement { return b.entries }

// Options returns the options snapshot captured at construction, or nil.
func (b *Batch) Options() *types.ExecOptions { return b.base }

// Err returns the first builder error recorded by Add, or nil.
func (b *Batch) Err() error { return b.err }

// Accept dispatches the batch to Executor.Batch. A batch carrying a builder
// error dispatches nowhere and returns an already-failed future.
func (b *Batch) Accept(ctx context.Context, e Executor, opts *types.ExecOptions) *future.Future[types.Result] {
	if b.err != nil {
		return future.Failed[types.Result](b.err)
	}

	return e.Batch(ctx, b, opts)
}
