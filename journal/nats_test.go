package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/strata/journal"
	"github.com/arloliu/strata/test/testutil"
	"github.com/arloliu/strata/types"
)

func TestNATSJournalNewWithNilJetStream(t *testing.T) {
	_, err := journal.NewNATSJournal(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JetStream context is nil")
}

func TestNATSJournalRecord(t *testing.T) {
	js := testutil.StartEmbeddedNATS(t)

	j, err := journal.NewNATSJournal(js,
		journal.WithStreamName("test-record"),
		journal.WithSubjectPrefix("test.journal"),
	)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()

	entry := journal.Entry{
		ID:          "entry-1",
		Keyspace:    "app",
		Kind:        types.KindSimple,
		Statement:   "INSERT INTO users (id, name) VALUES (?, ?)",
		Consistency: types.LocalQuorum,
		StartedAt:   time.Now(),
		Duration:    4 * time.Millisecond,
	}

	require.NoError(t, j.Record(ctx, entry))

	info, err := j.Stream().Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)
}

func TestNATSJournalDeduplicatesByID(t *testing.T) {
	js := testutil.StartEmbeddedNATS(t)

	j, err := journal.NewNATSJournal(js,
		journal.WithStreamName("test-dedup"),
		journal.WithSubjectPrefix("test.journal.dedup"),
	)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	entry := journal.Entry{
		ID:        "same-id",
		Kind:      types.KindBound,
		Statement: "UPDATE users SET name = ? WHERE id = ?",
		StartedAt: time.Now(),
	}

	require.NoError(t, j.Record(ctx, entry))
	require.NoError(t, j.Record(ctx, entry))

	info, err := j.Stream().Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)
}

func TestNATSJournalSubjectPerKind(t *testing.T) {
	js := testutil.StartEmbeddedNATS(t)

	j, err := journal.NewNATSJournal(js,
		journal.WithStreamName("test-subjects"),
		journal.WithSubjectPrefix("test.journal.kinds"),
	)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	kinds := []types.StatementKind{types.KindSimple, types.KindBound, types.KindBatch}
	for i, kind := range kinds {
		entry := journal.Entry{
			ID:        string(kind) + "-entry",
			Kind:      kind,
			Statement: "statement",
			StartedAt: time.Now().Add(time.Duration(i) * time.Millisecond),
		}
		require.NoError(t, j.Record(ctx, entry))
	}

	// Each kind lands on its own subject.
	consumer, err := j.Stream().CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: "test.journal.kinds.batch",
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	require.NoError(t, err)

	batch, err := consumer.Fetch(10, jetstream.FetchMaxWait(2*time.Second))
	require.NoError(t, err)

	count := 0
	for msg := range batch.Messages() {
		count++
		require.NoError(t, msg.Ack())
	}
	require.NoError(t, batch.Error())
	assert.Equal(t, 1, count)
}

func TestNATSJournalRecordAfterClose(t *testing.T) {
	js := testutil.StartEmbeddedNATS(t)

	j, err := journal.NewNATSJournal(js,
		journal.WithStreamName("test-closed"),
		journal.WithSubjectPrefix("test.journal.closed"),
	)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	err = j.Record(context.Background(), journal.Entry{ID: "late", Kind: types.KindSimple})
	require.ErrorIs(t, err, types.ErrJournalClosed)
}

func TestNATSJournalConfigDefaults(t *testing.T) {
	cfg := journal.DefaultNATSJournalConfig()

	assert.Equal(t, "strata-journal", cfg.StreamName)
	assert.Equal(t, "strata.journal", cfg.SubjectPrefix)
	assert.Equal(t, 24*time.Hour, cfg.MaxAge)
	assert.Equal(t, int64(1_000_000), cfg.MaxMsgs)
	assert.Equal(t, int64(1<<30), cfg.MaxBytes)
	assert.Equal(t, 1, cfg.Replicas)
	assert.Equal(t, 5*time.Second, cfg.PublishTimeout)
}
