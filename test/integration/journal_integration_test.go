package integration_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	strata "github.com/arloliu/strata"
	"github.com/arloliu/strata/journal"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/test/testutil"
	"github.com/arloliu/strata/types"
)

func TestSQLiteJournalRecordsExecutions(t *testing.T) {
	table := createTestTable(t, "kv_journal", kvTableSchema)
	ctx := t.Context()

	j, err := journal.OpenSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	session := newSession(t, strata.WithJournal(j))

	_, err = session.Execute(ctx,
		fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table),
		strata.OptionsMap{"arguments": []any{1, "journaled"}},
	)
	require.NoError(t, err)

	batch := session.UnloggedBatch(func(b *stmt.Batch) {
		b.Add(fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table), 2, "a")
		b.Add(fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table), 3, "b")
	})
	_, err = session.Execute(ctx, batch)
	require.NoError(t, err)

	// Journal writes happen on the completion callback and may trail the
	// blocking call slightly.
	var entries []journal.Entry
	require.Eventually(t, func() bool {
		entries, err = j.Tail(ctx, 10)

		return err == nil && len(entries) == 2
	}, 5*time.Second, 50*time.Millisecond)

	// Tail returns oldest first.
	assert.Equal(t, types.KindSimple, entries[0].Kind)
	assert.Contains(t, entries[0].Statement, "INSERT INTO "+table)
	assert.Equal(t, testKeyspace, entries[0].Keyspace)
	assert.NotEmpty(t, entries[0].ID)
	assert.Positive(t, entries[0].Duration)

	assert.Equal(t, types.KindBatch, entries[1].Kind)
	assert.Equal(t, 2, entries[1].BatchSize)
	assert.Empty(t, entries[1].Error)
}

func TestSQLiteJournalRecordsFailures(t *testing.T) {
	requireCluster(t)
	ctx := t.Context()

	j, err := journal.OpenSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	session := newSession(t, strata.WithJournal(j))

	_, err = session.Execute(ctx, "SELECT nope FROM table_that_does_not_exist")
	require.Error(t, err)

	require.Eventually(t, func() bool {
		entries, terr := j.Tail(ctx, 1)

		return terr == nil && len(entries) == 1 && entries[0].Error != ""
	}, 5*time.Second, 50*time.Millisecond)
}

func TestNATSJournalRecordsExecutions(t *testing.T) {
	table := createTestTable(t, "kv_nats", kvTableSchema)
	ctx := t.Context()

	js := testutil.StartEmbeddedNATS(t)

	j, err := journal.NewNATSJournal(js, journal.WithStreamName("STRATA_IT"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	session := newSession(t, strata.WithJournal(j))

	const inserts = 5
	for i := 0; i < inserts; i++ {
		_, err = session.Execute(ctx,
			fmt.Sprintf("INSERT INTO %s (id, val) VALUES (?, ?)", table),
			strata.OptionsMap{"arguments": []any{i, "n"}},
		)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		info, ierr := j.Stream().Info(ctx)

		return ierr == nil && info.State.Msgs == uint64(inserts)
	}, 5*time.Second, 50*time.Millisecond)

	// Entries land on per-kind subjects.
	consumer, err := j.Stream().CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		AckPolicy: jetstream.AckNonePolicy,
	})
	require.NoError(t, err)

	batch, err := consumer.Fetch(inserts, jetstream.FetchMaxWait(2*time.Second))
	require.NoError(t, err)

	var got int
	for msg := range batch.Messages() {
		assert.Contains(t, msg.Subject(), "simple")
		got++
	}
	assert.Equal(t, inserts, got)
}

func TestJournalDropHandlerOnClosedSink(t *testing.T) {
	requireCluster(t)
	ctx := t.Context()

	j := journal.NewMemoryJournal()
	require.NoError(t, j.Close())

	dropped := make(chan journal.Entry, 1)
	session := newSession(t,
		strata.WithJournal(j),
		strata.WithOnJournalDropped(func(entry journal.Entry, err error) {
			assert.ErrorIs(t, err, types.ErrJournalClosed)
			select {
			case dropped <- entry:
			default:
			}
		}),
	)

	_, err := session.Execute(ctx, "SELECT release_version FROM system.local")
	require.NoError(t, err)

	select {
	case entry := <-dropped:
		assert.Equal(t, types.KindSimple, entry.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("drop handler was not invoked")
	}
}
