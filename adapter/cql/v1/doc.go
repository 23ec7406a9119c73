// Package v1 provides an adapter for gocql v1.x to work with the strata
// library.
//
// This adapter wraps a gocql session to implement the strata client
// contract: it applies resolved execution options to driver queries and
// batches and carries results back through futures.
//
// # Installation
//
// Import this package along with gocql v1.x:
//
//	import (
//	    "github.com/gocql/gocql"
//	    v1 "github.com/arloliu/strata/adapter/cql/v1"
//	)
//
// # Usage
//
// Create a gocql session and wrap it with the v1 adapter:
//
//	// Configure gocql cluster
//	cluster := gocql.NewCluster("127.0.0.1", "127.0.0.2")
//	cluster.Keyspace = "my_keyspace"
//	cluster.Consistency = gocql.Quorum
//
//	// Create session
//	gocqlSession, err := cluster.CreateSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wrap with strata adapter
//	client := v1.NewClient(gocqlSession, cluster.Keyspace)
//
//	// Use with strata session
//	session, err := strata.NewSession(client)
//
// Connect performs both steps when you start from a cluster configuration:
//
//	client, err := v1.Connect(cluster)
//
// # Query Tracing
//
// gocql reports trace events through an io.Writer. Configure one with
// WithTraceWriter to honor statements executed with tracing enabled:
//
//	client := v1.NewClient(gocqlSession, cluster.Keyspace,
//	    v1.WithTraceWriter(os.Stderr),
//	)
//
// Without a trace writer, tracing requests are ignored.
//
// # Type Conversions
//
// The adapter provides helper functions for converting between strata and
// gocql types:
//
//   - [ToGocqlConsistency]: Converts strata Consistency to gocql.Consistency
//   - [FromGocqlConsistency]: Converts gocql.Consistency to strata Consistency
//   - [ToGocqlBatchType]: Converts strata BatchType to gocql.BatchType
//   - [FromGocqlBatchType]: Converts gocql.BatchType to strata BatchType
//   - [ToGocqlSerialConsistency]: Converts strata Consistency to gocql.SerialConsistency
//   - [FromGocqlSerialConsistency]: Converts gocql.SerialConsistency to strata Consistency
//   - [UnwrapSession]: Returns the underlying gocql.Session
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching gocql's thread
// safety guarantees.
package v1
