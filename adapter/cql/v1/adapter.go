// Package v1 provides an adapter for gocql v1 (github.com/gocql/gocql).
package v1

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/gocql/gocql"

	"github.com/arloliu/strata/adapter/cql"
	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/types"
)

// Client wraps a gocql v1 session as a strata collaborator.
type Client struct {
	session     *gocql.Session
	keyspace    string
	traceWriter io.Writer
	closed      atomic.Bool
}

// Compile-time interface check.
var _ cql.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTraceWriter sets the destination for query trace output. Statements
// executed with tracing enabled write their trace events to w.
//
// Without a trace writer, tracing requests are ignored.
func WithTraceWriter(w io.Writer) Option {
	return func(c *Client) {
		c.traceWriter = w
	}
}

// NewClient creates a strata client from an existing gocql session.
//
// This is useful for migrating existing gocql code to strata.
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Keyspace = "my_keyspace"
//	session, _ := cluster.CreateSession()
//	client := v1.NewClient(session, cluster.Keyspace)
//
// Parameters:
//   - session: A gocql.Session instance
//   - keyspace: Keyspace the session is scoped to; may be empty
//   - opts: Optional client settings
//
// Returns:
//   - *Client: An adapter implementing cql.Client
func NewClient(session *gocql.Session, keyspace string, opts ...Option) *Client {
	c := &Client{session: session, keyspace: keyspace}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Connect creates a gocql session from the cluster configuration and wraps
// it as a strata client.
//
// Parameters:
//   - cluster: gocql cluster configuration
//   - opts: Optional client settings
//
// Returns:
//   - *Client: An adapter implementing cql.Client
//   - error: Session creation failure
func Connect(cluster *gocql.ClusterConfig, opts ...Option) (*Client, error) {
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocql session: %w", err)
	}

	return NewClient(session, cluster.Keyspace, opts...), nil
}

// Query executes a simple textual statement.
func (c *Client) Query(ctx context.Context, s *stmt.Simple, opts *types.ExecOptions) *future.Future[types.Result] {
	if c.closed.Load() {
		return future.Failed[types.Result](types.ErrClientClosed)
	}
	if s.NamedValues() != nil {
		return future.Failed[types.Result](&types.InvalidArgumentError{
			Detail: "gocql v1 does not support named values",
		})
	}

	return c.runQuery(ctx, s.Text(), s.Values(), s.Idempotent(), opts)
}

// Execute runs a bound prepared statement.
//
// gocql prepares statements lazily and caches them per node, so execution
// goes through the same query path as simple statements; the handle exists
// to carry the statement text and its bound values.
func (c *Client) Execute(ctx context.Context, b *stmt.Bound, opts *types.ExecOptions) *future.Future[types.Result] {
	if c.closed.Load() {
		return future.Failed[types.Result](types.ErrClientClosed)
	}

	return c.runQuery(ctx, b.Statement(), b.Values(), opts.Idempotent(), opts)
}

// Batch executes a batch atomically according to its kind.
func (c *Client) Batch(ctx context.Context, b *stmt.Batch, opts *types.ExecOptions) *future.Future[types.Result] {
	if c.closed.Load() {
		return future.Failed[types.Result](types.ErrClientClosed)
	}
	if !b.BatchType().Valid() {
		return future.Failed[types.Result](types.ErrInvalidBatchType)
	}

	p := future.NewPromise[types.Result]()
	go func() {
		ctx, cancel := withTimeout(ctx, opts.RequestTimeout())
		defer cancel()

		batch := c.session.NewBatch(gocql.BatchType(b.BatchType())).WithContext(ctx)
		batch.SetConsistency(gocql.Consistency(opts.Consistency()))
		if sc := opts.SerialConsistency(); sc != 0 {
			batch.SerialConsistency(gocql.SerialConsistency(sc))
		}
		if payload := opts.Payload(); payload != nil {
			batch.CustomPayload = payload
		}

		for _, entry := range b.Entries() {
			switch e := entry.(type) {
			case *stmt.Simple:
				batch.Query(e.Text(), e.Values()...)
			case *stmt.Bound:
				batch.Query(e.Statement(), e.Values()...)
			default:
				p.Fail(&types.InvalidArgumentError{
					Detail: fmt.Sprintf("batch cannot contain %T", entry),
				})

				return
			}
		}

		if err := c.session.ExecuteBatch(batch); err != nil {
			p.Fail(err)
			return
		}
		p.Fulfill(cql.EmptyResult())
	}()

	return p.Future()
}

// Prepare creates a reusable prepared-statement handle.
//
// gocql v1 has no standalone prepare call; statements are prepared and
// cached per node on first execution. The handle resolves immediately and
// preparation happens on first use.
func (c *Client) Prepare(_ context.Context, statement string, _ *types.ExecOptions) *future.Future[*stmt.Prepared] {
	if c.closed.Load() {
		return future.Failed[*stmt.Prepared](types.ErrClientClosed)
	}
	if statement == "" {
		return future.Failed[*stmt.Prepared](&types.InvalidArgumentError{
			Detail: "statement must not be empty",
		})
	}

	return future.Fulfilled(stmt.NewPrepared(statement))
}

// CloseAsync releases the gocql session in the background. Calling it more
// than once returns an already-resolved future.
func (c *Client) CloseAsync() *future.Future[struct{}] {
	if !c.closed.CompareAndSwap(false, true) {
		return future.Fulfilled(struct{}{})
	}

	p := future.NewPromise[struct{}]()
	go func() {
		c.session.Close()
		p.Fulfill(struct{}{})
	}()

	return p.Future()
}

// Keyspace returns the keyspace the client is scoped to, or empty.
func (c *Client) Keyspace() string {
	return c.keyspace
}

// runQuery drains one result page on a worker goroutine.
func (c *Client) runQuery(ctx context.Context, text string, values []any, idempotent bool, opts *types.ExecOptions) *future.Future[types.Result] {
	p := future.NewPromise[types.Result]()
	go func() {
		ctx, cancel := withTimeout(ctx, opts.RequestTimeout())
		defer cancel()

		q := c.buildQuery(ctx, text, values, idempotent, opts)
		defer q.Release()

		res, err := drainIter(q.Iter())
		if err != nil {
			p.Fail(err)
			return
		}
		p.Fulfill(res)
	}()

	return p.Future()
}

// buildQuery applies resolved execution options to a gocql query.
func (c *Client) buildQuery(ctx context.Context, text string, values []any, idempotent bool, opts *types.ExecOptions) *gocql.Query {
	q := c.session.Query(text, values...).
		Consistency(gocql.Consistency(opts.Consistency())).
		PageSize(opts.PageSize()).
		Idempotent(idempotent)

	if sc := opts.SerialConsistency(); sc != 0 {
		q = q.SerialConsistency(gocql.SerialConsistency(sc))
	}
	if state := opts.PagingState(); state != nil {
		q = q.PageState(state)
	}
	if payload := opts.Payload(); payload != nil {
		q = q.CustomPayload(payload)
	}
	if opts.Trace() && c.traceWriter != nil {
		q = q.Trace(gocql.NewTraceWriter(c.session, c.traceWriter))
	}

	return q.WithContext(ctx)
}

// drainIter reads the current page of an iterator into a result.
func drainIter(iter *gocql.Iter) (types.Result, error) {
	var rows []types.Row
	for {
		row := make(types.Row)
		if !iter.MapScan(row) {
			break
		}
		rows = append(rows, row)
		if iter.WillSwitchPage() {
			break
		}
	}

	pagingState := iter.PageState()
	warnings := iter.Warnings()
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return cql.NewResult(rows, pagingState, warnings), nil
}
