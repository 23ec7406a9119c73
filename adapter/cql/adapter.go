package cql

import (
	"context"

	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/types"
)

// Type aliases for convenience - re-export from types package.
type (
	BatchType   = types.BatchType
	Consistency = types.Consistency
	Result      = types.Result
	Row         = types.Row
)

// Re-export batch type constants for convenience.
const (
	LoggedBatch   = types.LoggedBatch
	UnloggedBatch = types.UnloggedBatch
	CounterBatch  = types.CounterBatch
)

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Client is the driver-facing collaborator a session executes through.
//
// This interface is implemented by adapters for gocql v1 and v2. The session
// resolves options and classifies statements; the client applies the resolved
// options to the underlying driver and carries results back through futures.
//
// All methods must be safe for concurrent use. Methods returning futures must
// never block the caller and must never panic on bad input; failures travel
// through the returned future.
type Client interface {
	stmt.Executor

	// Prepare creates a reusable prepared-statement handle for the given
	// CQL text.
	//
	// Parameters:
	//   - ctx: Context bounding the preparation
	//   - statement: CQL statement with ? placeholders
	//   - opts: Resolved execution options
	//
	// Returns:
	//   - *future.Future[*stmt.Prepared]: Resolves to the handle
	Prepare(ctx context.Context, statement string, opts *types.ExecOptions) *future.Future[*stmt.Prepared]

	// CloseAsync releases driver resources in the background.
	//
	// Returns:
	//   - *future.Future[struct{}]: Resolves once the driver has shut down
	CloseAsync() *future.Future[struct{}]

	// Keyspace returns the keyspace the client is scoped to, or empty.
	Keyspace() string
}

// rowsResult is the Result implementation shared by driver adapters.
type rowsResult struct {
	rows        []types.Row
	pagingState []byte
	warnings    []string
}

// NewResult assembles a result page from drained driver state.
//
// Parameters:
//   - rows: Rows of the current page
//   - pagingState: Token resuming iteration at the next page, or nil
//   - warnings: Server-issued warnings, or nil
//
// Returns:
//   - types.Result: The immutable result page
func NewResult(rows []types.Row, pagingState []byte, warnings []string) types.Result {
	return &rowsResult{rows: rows, pagingState: pagingState, warnings: warnings}
}

// EmptyResult returns a result with no rows, used for statements that do not
// produce a result set.
func EmptyResult() types.Result {
	return &rowsResult{}
}

func (r *rowsResult) Rows() []types.Row   { return r.rows }
func (r *rowsResult) PagingState() []byte { return r.pagingState }
func (r *rowsResult) Warnings() []string  { return r.warnings }

var _ types.Result = (*rowsResult)(nil)
