package v1_test

import (
	"context"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/adapter/cql"
	v1 "github.com/arloliu/strata/adapter/cql/v1" //nolint:revive // required for v1_test package
	"github.com/arloliu/strata/types"
)

// TestClientImplementsInterface verifies that v1.Client implements cql.Client.
func TestClientImplementsInterface(t *testing.T) {
	// This is a compile-time check
	var _ cql.Client = (*v1.Client)(nil)
}

// TestConsistencyConstants verifies consistency constants match gocql.
func TestConsistencyConstants(t *testing.T) {
	require.Equal(t, cql.Consistency(gocql.Any), cql.Any)
	require.Equal(t, cql.Consistency(gocql.One), cql.One)
	require.Equal(t, cql.Consistency(gocql.Two), cql.Two)
	require.Equal(t, cql.Consistency(gocql.Three), cql.Three)
	require.Equal(t, cql.Consistency(gocql.Quorum), cql.Quorum)
	require.Equal(t, cql.Consistency(gocql.All), cql.All)
	require.Equal(t, cql.Consistency(gocql.LocalQuorum), cql.LocalQuorum)
	require.Equal(t, cql.Consistency(gocql.EachQuorum), cql.EachQuorum)
	require.Equal(t, cql.Consistency(gocql.LocalOne), cql.LocalOne)
}

// TestBatchTypeConstants verifies batch type constants match gocql.
func TestBatchTypeConstants(t *testing.T) {
	require.Equal(t, cql.BatchType(gocql.LoggedBatch), cql.LoggedBatch)
	require.Equal(t, cql.BatchType(gocql.UnloggedBatch), cql.UnloggedBatch)
	require.Equal(t, cql.BatchType(gocql.CounterBatch), cql.CounterBatch)
}

// TestSerialConsistencyConstants verifies serial consistency values match
// gocql's serial consistency encoding.
func TestSerialConsistencyConstants(t *testing.T) {
	require.Equal(t, gocql.Serial, v1.ToGocqlSerialConsistency(cql.Serial))
	require.Equal(t, gocql.LocalSerial, v1.ToGocqlSerialConsistency(cql.LocalSerial))
}

// TestConversionRoundTrip verifies conversions preserve values both ways.
func TestConversionRoundTrip(t *testing.T) {
	require.Equal(t, cql.Quorum, v1.FromGocqlConsistency(v1.ToGocqlConsistency(cql.Quorum)))
	require.Equal(t, cql.CounterBatch, v1.FromGocqlBatchType(v1.ToGocqlBatchType(cql.CounterBatch)))
	require.Equal(t, cql.LocalSerial, v1.FromGocqlSerialConsistency(v1.ToGocqlSerialConsistency(cql.LocalSerial)))
}

// TestNewClientKeyspace verifies the keyspace is carried through.
func TestNewClientKeyspace(t *testing.T) {
	// Note: This creates a Client with a nil underlying gocql.Session.
	// In production, executing through it would panic, but the constructor
	// and accessors work without a live session.
	client := v1.NewClient(nil, "my_keyspace")
	require.NotNil(t, client)
	require.Equal(t, "my_keyspace", client.Keyspace())
}

// TestPrepareValidation verifies prepare rejects empty statements through a
// failed future.
func TestPrepareValidation(t *testing.T) {
	client := v1.NewClient(nil, "")

	f := client.Prepare(context.Background(), "", types.DefaultExecOptions())
	require.ErrorIs(t, f.Err(), types.ErrInvalidArgument)
}

// TestPrepareReturnsHandle verifies prepare resolves to a handle carrying
// the statement text.
func TestPrepareReturnsHandle(t *testing.T) {
	client := v1.NewClient(nil, "")

	f := client.Prepare(context.Background(), "SELECT * FROM users WHERE id = ?", types.DefaultExecOptions())
	prepared, err := f.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM users WHERE id = ?", prepared.Statement())
}

// The following tests require a real gocql.Session and are run as
// integration tests. See test/integration for those tests.
