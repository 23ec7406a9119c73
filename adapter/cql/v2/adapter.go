// Package v2 provides an adapter for gocql v2 (github.com/apache/cassandra-gocql-driver).
package v2

import (
	"context"
	"fmt"
	"sync/atomic"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

	"github.com/arloliu/strata/adapter/cql"
	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/types"
)

// Client wraps a gocql v2 session as a strata collaborator.
type Client struct {
	session  *gocql.Session
	keyspace string
	closed   atomic.Bool
}

// Compile-time interface check.
var _ cql.Client = (*Client)(nil)

// NewClient creates a strata client from an existing gocql v2 session.
//
// Parameters:
//   - session: A gocql.Session instance from the Apache driver
//   - keyspace: Keyspace the session is scoped to; may be empty
//
// Returns:
//   - *Client: An adapter implementing cql.Client
func NewClient(session *gocql.Session, keyspace string) *Client {
	return &Client{session: session, keyspace: keyspace}
}

// Connect creates a gocql session from the cluster configuration and wraps
// it as a strata client.
//
// Parameters:
//   - cluster: gocql cluster configuration
//
// Returns:
//   - *Client: An adapter implementing cql.Client
//   - error: Session creation failure
func Connect(cluster *gocql.ClusterConfig) (*Client, error) {
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocql session: %w", err)
	}

	return NewClient(session, cluster.Keyspace), nil
}

// Query executes a simple textual statement.
//
// Query tracing and custom payloads are not wired in this adapter; the v2
// driver reworked tracing around observers configured on the cluster.
func (c *Client) Query(ctx context.Context, s *stmt.Simple, opts *types.ExecOptions) *future.Future[types.Result] {
	if c.closed.Load() {
		return future.Failed[types.Result](types.ErrClientClosed)
	}
	if s.NamedValues() != nil {
		return future.Failed[types.Result](&types.InvalidArgumentError{
			Detail: "gocql v2 does not support named values",
		})
	}

	return c.runQuery(ctx, s.Text(), s.Values(), s.Idempotent(), opts)
}

// Execute runs a bound prepared statement.
//
// The driver prepares statements lazily and caches them per node, so
// execution goes through the same query path as simple statements.
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

		batch := c.session.Batch(gocql.BatchType(b.BatchType())).
			Consistency(gocql.Consistency(opts.Consistency()))
		if sc := opts.SerialConsistency(); sc != 0 {
			batch = batch.SerialConsistency(gocql.Consistency(sc))
		}

		for _, entry := range b.Entries() {
			switch e := entry.(type) {
			case *stmt.Simple:
				batch = batch.Query(e.Text(), e.Values()...)
			case *stmt.Bound:
				batch = batch.Query(e.Statement(), e.Values()...)
			default:
				p.Fail(&types.InvalidArgumentError{
					Detail: fmt.Sprintf("batch cannot contain %T", entry),
				})

				return
			}
		}

		if err := batch.ExecContext(ctx); err != nil {
			p.Fail(err)
			return
		}
		p.Fulfill(cql.EmptyResult())
	}()

	return p.Future()
}

// Prepare creates a reusable prepared-statement handle.
//
// The v2 driver has no standalone prepare call; statements are prepared and
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

		q := c.session.Query(text, values...).
			Consistency(gocql.Consistency(opts.Consistency())).
			PageSize(opts.PageSize()).
			Idempotent(idempotent)
		if sc := opts.SerialConsistency(); sc != 0 {
			q = q.SerialConsistency(gocql.Consistency(sc))
		}
		if state := opts.PagingState(); state != nil {
			q = q.PageState(state)
		}

		res, err := drainIter(q.IterContext(ctx))
		if err != nil {
			p.Fail(err)
			return
		}
		p.Fulfill(res)
	}()

	return p.Future()
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
