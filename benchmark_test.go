package strata_test

import (
	"context"
	"sync/atomic"
	"testing"

	strata "github.com/arloliu/strata"
	"github.com/arloliu/strata/adapter/cql"
	"github.com/arloliu/strata/future"
	"github.com/arloliu/strata/journal"
	"github.com/arloliu/strata/stmt"
	"github.com/arloliu/strata/types"
)

// =============================================================================
// Benchmark Infrastructure
// =============================================================================

// benchClient is a zero-overhead collaborator for benchmarking. It measures
// only session overhead, not actual database operations.
type benchClient struct {
	queries atomic.Int64
}

func (c *benchClient) Query(_ context.Context, _ *stmt.Simple, _ *types.ExecOptions) *future.Future[types.Result] {
	c.queries.Add(1)

	return future.Fulfilled(cql.EmptyResult())
}

func (c *benchClient) Execute(_ context.Context, _ *stmt.Bound, _ *types.ExecOptions) *future.Future[types.Result] {
	return future.Fulfilled(cql.EmptyResult())
}

func (c *benchClient) Batch(_ context.Context, _ *stmt.Batch, _ *types.ExecOptions) *future.Future[types.Result] {
	return future.Fulfilled(cql.EmptyResult())
}

func (c *benchClient) Prepare(_ context.Context, statement string, _ *types.ExecOptions) *future.Future[*stmt.Prepared] {
	return future.Fulfilled(stmt.NewPrepared(statement))
}

func (c *benchClient) CloseAsync() *future.Future[struct{}] {
	return future.Fulfilled(struct{}{})
}

func (c *benchClient) Keyspace() string { return "bench" }

var _ cql.Client = (*benchClient)(nil)

func newBenchSession(b *testing.B, opts ...strata.Option) *strata.Session {
	b.Helper()

	session, err := strata.NewSession(&benchClient{}, opts...)
	if err != nil {
		b.Fatal(err)
	}

	return session
}

// =============================================================================
// Execution Path
// =============================================================================

func BenchmarkExecuteNoOverrides(b *testing.B) {
	session := newBenchSession(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.Execute(ctx, "SELECT release_version FROM system.local"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteWithOverrides(b *testing.B) {
	session := newBenchSession(b)
	ctx := context.Background()
	opts := strata.OptionsMap{
		"consistency": types.Quorum,
		"page_size":   100,
		"idempotent":  true,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.Execute(ctx, "SELECT release_version FROM system.local", opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteWithProfile(b *testing.B) {
	session := newBenchSession(b,
		strata.WithProfile("analytics", types.NewProfile(
			types.WithConsistency(types.One),
			types.WithPageSize(5000),
		)),
	)
	ctx := context.Background()
	opts := strata.OptionsMap{"execution_profile": "analytics"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.Execute(ctx, "SELECT release_version FROM system.local", opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecutePrebuiltStatement(b *testing.B) {
	session := newBenchSession(b)
	ctx := context.Background()
	statement := stmt.NewSimple("SELECT release_version FROM system.local")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.Execute(ctx, statement); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteWithJournal(b *testing.B) {
	session := newBenchSession(b,
		strata.WithJournal(journal.NewMemoryJournal(journal.WithCapacity(1024))),
	)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := session.Execute(ctx, "INSERT INTO t (id) VALUES (1)"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecuteParallel(b *testing.B) {
	session := newBenchSession(b,
		strata.WithProfile("fast", types.NewProfile(types.WithPageSize(10))),
	)
	opts := strata.OptionsMap{"execution_profile": "fast"}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := session.Execute(ctx, "SELECT 1", opts); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// =============================================================================
// Batch Building
// =============================================================================

func BenchmarkBatchBuild(b *testing.B) {
	session := newBenchSession(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batch := session.UnloggedBatch(func(batch *stmt.Batch) {
			for j := 0; j < 10; j++ {
				batch.Add("INSERT INTO t (id) VALUES (?)", j)
			}
		})
		if batch.Size() != 10 {
			b.Fatal("unexpected batch size")
		}
	}
}
