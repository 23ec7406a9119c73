package integration_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	strata "github.com/arloliu/strata"
	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/types"
)

func TestSessionExecuteRoundTrip(t *testing.T) {
	session := newSession(t)
	table := createTestTable(t, "kv_roundtrip", kvTableSchema)
	ctx := t.Context()

	_, err := session.Execute(ctx,
		fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table),
		strata.OptionsMap{"arguments": []any{1, "alpha"}},
	)
	require.NoError(t, err)

	result, err := session.Execute(ctx,
		fmt.Sprintf("SELECT id, val FROM %s WHERE id = ?", table),
		strata.OptionsMap{"arguments": []any{1}},
	)
	require.NoError(t, err)

	rows := result.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0]["id"])
	assert.Equal(t, "alpha", rows[0]["val"])
}

func TestSessionExecuteAsyncConcurrent(t *testing.T) {
	session := newSession(t)
	table := createTestTable(t, "kv_async", kvTableSchema)
	ctx := t.Context()

	const inserts = 20

	futures := make([]*future.Future[types.Result], 0, inserts)
	for i := 0; i < inserts; i++ {
		f := session.ExecuteAsync(ctx,
			fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table),
			strata.OptionsMap{"arguments": []any{i, fmt.Sprintf("v%d", i)}},
		)
		futures = append(futures, f)
	}
	for _, f := range futures {
		<-f.Ready()
		require.NoError(t, f.Err())
	}

	result, err := session.Execute(ctx, fmt.Sprintf("SELECT id FROM %s", table))
	require.NoError(t, err)
	assert.Len(t, result.Rows(), inserts)
}

func TestSessionPreparedStatements(t *testing.T) {
	session := newSession(t)
	table := createTestTable(t, "kv_prepared", kvTableSchema)
	ctx := t.Context()

	prepared, err := session.Prepare(ctx, fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table))
	require.NoError(t, err)

	// Explicitly bound execution
	_, err = session.Execute(ctx, prepared.Bind(1, "bound"))
	require.NoError(t, err)

	// Bare handle bound from options
	_, err = session.Execute(ctx, prepared, strata.OptionsMap{
		"arguments": []any{2, "from-options"},
	})
	require.NoError(t, err)

	result, err := session.Execute(ctx, fmt.Sprintf("SELECT id, val FROM %s", table))
	require.NoError(t, err)
	assert.Len(t, result.Rows(), 2)
}

func TestSessionBatchExecution(t *testing.T) {
	session := newSession(t)
	table := createTestTable(t, "kv_batch", kvTableSchema)
	ctx := t.Context()

	batch := session.LoggedBatch(func(b *stmt.Batch) {
		for i := 0; i < 5; i++ {
			b.Add(fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table), i, fmt.Sprintf("b%d", i))
		}
	})
	require.Equal(t, 5, batch.Size())

	_, err := session.Execute(ctx, batch)
	require.NoError(t, err)

	result, err := session.Execute(ctx, fmt.Sprintf("SELECT id FROM %s", table))
	require.NoError(t, err)
	assert.Len(t, result.Rows(), 5)
}

func TestSessionCounterBatch(t *testing.T) {
	session := newSession(t)
	table := createTestTable(t, "hits_counter", counterTableSchema)
	ctx := t.Context()

	batch := session.CounterBatch(func(b *stmt.Batch) {
		b.Add(fmt.Sprintf("UPDATE %s SET hits = hits + 1 WHERE id = ?", table), 1)
		b.Add(fmt.Sprintf("UPDATE %s SET hits = hits + 2 WHERE id = ?", table), 1)
	})

	_, err := session.Execute(ctx, batch)
	require.NoError(t, err)

	result, err := session.Execute(ctx,
		fmt.Sprintf("SELECT hits FROM %s WHERE id = ?", table),
		strata.OptionsMap{"arguments": []any{1}},
	)
	require.NoError(t, err)

	rows := result.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0]["hits"])
}

func TestSessionPaging(t *testing.T) {
	session := newSession(t)
	table := createTestTable(t, "kv_paging", kvTableSchema)
	ctx := t.Context()

	const total = 25

	for i := 0; i < total; i++ {
		_, err := session.Execute(ctx,
			fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table),
			strata.OptionsMap{"arguments": []any{i, "x"}},
		)
		require.NoError(t, err)
	}

	var (
		seen  int
		state []byte
		pages int
	)
	for {
		opts := strata.OptionsMap{"page_size": 10}
		if state != nil {
			opts["paging_state"] = state
		}

		result, err := session.Execute(ctx, fmt.Sprintf("SELECT id FROM %s", table), opts)
		require.NoError(t, err)

		seen += len(result.Rows())
		pages++

		state = result.PagingState()
		if len(state) == 0 {
			break
		}
	}

	assert.Equal(t, total, seen)
	assert.GreaterOrEqual(t, pages, 3, "25 rows at page size 10 span at least 3 pages")
}

func TestSessionProfileResolution(t *testing.T) {
	session := newSession(t,
		strata.WithProfile("analytics", types.NewProfile(
			types.WithConsistency(types.One),
			types.WithPageSize(5),
		)),
	)
	table := createTestTable(t, "kv_profile", kvTableSchema)
	ctx := t.Context()

	for i := 0; i < 12; i++ {
		_, err := session.Execute(ctx,
			fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table),
			strata.OptionsMap{"arguments": []any{i, "p"}},
		)
		require.NoError(t, err)
	}

	// The profile's page size caps the first page.
	result, err := session.Execute(ctx,
		fmt.Sprintf("SELECT id FROM %s", table),
		strata.OptionsMap{"execution_profile": "analytics"},
	)
	require.NoError(t, err)
	assert.Len(t, result.Rows(), 5)
	assert.NotEmpty(t, result.PagingState())

	// An explicit per-call page size beats the profile's.
	result, err = session.Execute(ctx,
		fmt.Sprintf("SELECT id FROM %s", table),
		strata.OptionsMap{"execution_profile": "analytics", "page_size": 20},
	)
	require.NoError(t, err)
	assert.Len(t, result.Rows(), 12)
}

func TestSessionUnknownProfileFailsBeforeDispatch(t *testing.T) {
	session := newSession(t)

	_, err := session.Execute(t.Context(), "SELECT release_version FROM system.local",
		strata.OptionsMap{"execution_profile": "missing"},
	)
	require.ErrorIs(t, err, types.ErrUnknownProfile)
}

func TestSessionKeyspace(t *testing.T) {
	session := newSession(t)
	assert.Equal(t, testKeyspace, session.Keyspace())
}
