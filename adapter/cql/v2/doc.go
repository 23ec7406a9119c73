// Package v2 provides an adapter for gocql v2 (github.com/apache/cassandra-gocql-driver).
//
// This adapter wraps the Apache Cassandra gocql driver v2 to implement the
// strata client contract.
//
// # Installation
//
// Import this package along with the Apache gocql driver:
//
//	import (
//	    gocql "github.com/apache/cassandra-gocql-driver/v2"
//	    v2 "github.com/arloliu/strata/adapter/cql/v2"
//	)
//
// # Usage
//
// Create a gocql session and wrap it with the v2 adapter:
//
//	cluster := gocql.NewCluster("127.0.0.1", "127.0.0.2")
//	cluster.Keyspace = "my_keyspace"
//
//	gocqlSession, err := cluster.CreateSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := v2.NewClient(gocqlSession, cluster.Keyspace)
//
//	session, err := strata.NewSession(client)
//
// # Differences from v1
//
// The v2 driver from Apache has some API differences:
//   - Serial consistency is a plain gocql.Consistency value
//   - Query builders return new values instead of mutating in place
//   - No query pooling, so there is no Release step
//
// Query tracing and custom payloads are not wired in this adapter; the v2
// driver reworked tracing around observers configured on the cluster.
// Statements executed with those options still run, the options are
// ignored.
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
//   - [ToGocqlSerialConsistency]: Converts strata Consistency to gocql serial consistency
//   - [UnwrapSession]: Returns the underlying gocql.Session
//
// # Thread Safety
//
// All adapter types are safe for concurrent use, matching gocql's thread
// safety guarantees.
package v2
