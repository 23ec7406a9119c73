package integration_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	gocqlv2 "github.com/apache/cassandra-gocql-driver/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	strata "github.com/arloliu/strata"
	v2 "github.com/arloliu/strata/adapter/cql/v2"
	"github.com/arloliu/strata/stmt"
)

// newSessionV2 creates a strata session over the shared cluster through the
// Apache gocql v2 adapter. Each call opens its own driver session since the
// shared cluster session is a v1 session.
func newSessionV2(t *testing.T, opts ...strata.Option) *strata.Session {
	t.Helper()

	cc := requireCluster(t)

	cluster := gocqlv2.NewCluster(cc.Host)
	cluster.Keyspace = testKeyspace
	cluster.Consistency = gocqlv2.Quorum
	cluster.Timeout = 30 * time.Second

	client, err := v2.Connect(cluster)
	require.NoError(t, err)

	session, err := strata.NewSession(client, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close(context.Background())
	})

	return session
}

func TestCQLV2ExecuteRoundTrip(t *testing.T) {
	table := createTestTable(t, "kv_v2", kvTableSchema)
	session := newSessionV2(t)
	ctx := t.Context()

	_, err := session.Execute(ctx,
		fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table),
		strata.OptionsMap{"arguments": []any{7, "via-v2"}},
	)
	require.NoError(t, err)

	result, err := session.Execute(ctx,
		fmt.Sprintf("SELECT id, val FROM %s WHERE id = ?", table),
		strata.OptionsMap{"arguments": []any{7}},
	)
	require.NoError(t, err)

	rows := result.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "via-v2", rows[0]["val"])
}

func TestCQLV2PreparedAndBatch(t *testing.T) {
	table := createTestTable(t, "kv_v2_batch", kvTableSchema)
	session := newSessionV2(t)
	ctx := t.Context()

	prepared, err := session.Prepare(ctx, fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table))
	require.NoError(t, err)

	_, err = session.Execute(ctx, prepared.Bind(1, "prepared-v2"))
	require.NoError(t, err)

	batch := session.UnloggedBatch(func(b *stmt.Batch) {
		b.Add(fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table), 2, "batch-a")
		b.Add(fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table), 3, "batch-b")
	})

	_, err = session.Execute(ctx, batch)
	require.NoError(t, err)

	result, err := session.Execute(ctx, fmt.Sprintf("SELECT id FROM %s", table))
	require.NoError(t, err)
	assert.Len(t, result.Rows(), 3)
}

func TestCQLV2CloseComposition(t *testing.T) {
	cc := requireCluster(t)

	cluster := gocqlv2.NewCluster(cc.Host)
	cluster.Keyspace = testKeyspace
	cluster.Timeout = 30 * time.Second

	client, err := v2.Connect(cluster)
	require.NoError(t, err)

	session, err := strata.NewSession(client)
	require.NoError(t, err)

	closed, err := session.CloseAsync().Get(t.Context())
	require.NoError(t, err)
	assert.Same(t, session, closed)
}
