package testutil

import (
	"context"
	"sync"

	"github.com/arloliu/strata/adapter/cql"
	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/types"
)

// RowsResult builds a single-page result from the given rows.
func RowsResult(rows ...types.Row) types.Result {
	return cql.NewResult(rows, nil, nil)
}

// ClientCall records one dispatch the mock client received.
type ClientCall struct {
	// Method is "query", "execute", "batch", or "prepare".
	Method string
	// Statement is the dispatched statement value (nil for prepare).
	Statement any
	// Text is the CQL text passed to prepare, empty otherwise.
	Text string
	// Options is the resolved options the session passed.
	Options *types.ExecOptions
}

// MockClient is a scriptable collaborator client for unit tests.
//
// By default every operation succeeds: queries return QueryResult (an empty
// result unless set), prepares return a handle for the given text, and close
// resolves immediately. Set the *Err fields to fail the corresponding
// operations. All dispatches are recorded and retrievable via Calls.
//
// MockClient is safe for concurrent use.
type MockClient struct {
	mu    sync.Mutex
	calls []ClientCall

	// QueryResult is returned by Query, Execute, and Batch when the
	// corresponding error field is nil. Nil means an empty result.
	QueryResult types.Result

	// QueryErr, ExecuteErr, BatchErr, PrepareErr fail the corresponding
	// operation's future with the given error.
	QueryErr   error
	ExecuteErr error
	BatchErr   error
	PrepareErr error

	// CloseErr fails the close future.
	CloseErr error

	// KeyspaceName is returned by Keyspace.
	KeyspaceName string
}

// Compile-time assertion that MockClient implements cql.Client.
var _ cql.Client = (*MockClient)(nil)

// NewMockClient creates a mock client scoped to the given keyspace.
func NewMockClient(keyspace string) *MockClient {
	return &MockClient{KeyspaceName: keyspace}
}

// Query records the call and resolves per the scripted outcome.
func (m *MockClient) Query(_ context.Context, s *stmt.Simple, opts *types.ExecOptions) *future.Future[types.Result] {
	m.append(ClientCall{Method: "query", Statement: s, Options: opts})
	if m.QueryErr != nil {
		return future.Failed[types.Result](m.QueryErr)
	}

	return future.Fulfilled(m.result())
}

// Execute records the call and resolves per the scripted outcome.
func (m *MockClient) Execute(_ context.Context, b *stmt.Bound, opts *types.ExecOptions) *future.Future[types.Result] {
	m.append(ClientCall{Method: "execute", Statement: b, Options: opts})
	if m.ExecuteErr != nil {
		return future.Failed[types.Result](m.ExecuteErr)
	}

	return future.Fulfilled(m.result())
}

// Batch records the call and resolves per the scripted outcome.
func (m *MockClient) Batch(_ context.Context, b *stmt.Batch, opts *types.ExecOptions) *future.Future[types.Result] {
	m.append(ClientCall{Method: "batch", Statement: b, Options: opts})
	if m.BatchErr != nil {
		return future.Failed[types.Result](m.BatchErr)
	}

	return future.Fulfilled(m.result())
}

// Prepare records the call and resolves to a handle for the given text.
func (m *MockClient) Prepare(_ context.Context, statement string, opts *types.ExecOptions) *future.Future[*stmt.Prepared] {
	m.append(ClientCall{Method: "prepare", Text: statement, Options: opts})
	if m.PrepareErr != nil {
		return future.Failed[*stmt.Prepared](m.PrepareErr)
	}

	return future.Fulfilled(stmt.NewPrepared(statement))
}

// CloseAsync resolves per CloseErr.
func (m *MockClient) CloseAsync() *future.Future[struct{}] {
	if m.CloseErr != nil {
		return future.Failed[struct{}](m.CloseErr)
	}

	return future.Fulfilled(struct{}{})
}

// Keyspace returns KeyspaceName.
func (m *MockClient) Keyspace() string {
	return m.KeyspaceName
}

// Calls returns a copy of the recorded dispatches, in order.
func (m *MockClient) Calls() []ClientCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ClientCall, len(m.calls))
	copy(out, m.calls)

	return out
}

// LastCall returns the most recent dispatch, or a zero ClientCall when none
// happened.
func (m *MockClient) LastCall() ClientCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.calls) == 0 {
		return ClientCall{}
	}

	return m.calls[len(m.calls)-1]
}

// CallCount returns the number of recorded dispatches.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.calls)
}

func (m *MockClient) append(call ClientCall) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *MockClient) result() types.Result {
	if m.QueryResult != nil {
		return m.QueryResult
	}

	return cql.EmptyResult()
}

// PendingClient is a collaborator client whose futures resolve only when the
// test drives the promises, useful for exercising completion composition.
type PendingClient struct {
	MockClient

	// ClosePromise is resolved by the test to complete CloseAsync.
	ClosePromise *future.Promise[struct{}]
}

// NewPendingClient creates a client with an unresolved close future.
func NewPendingClient(keyspace string) *PendingClient {
	return &PendingClient{
		MockClient:   MockClient{KeyspaceName: keyspace},
		ClosePromise: future.NewPromise[struct{}](),
	}
}

// CloseAsync returns the future behind ClosePromise.
func (p *PendingClient) CloseAsync() *future.Future[struct{}] {
	return p.ClosePromise.Future()
}
