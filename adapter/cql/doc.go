// Package cql defines the collaborator contract between a strata session and
// CQL (Cassandra Query Language) database drivers.
//
// This package defines the Client interface that driver adapters implement,
// allowing strata to work with different versions of gocql or other CQL
// drivers.
//
// # Contract
//
// A Client receives classified statements together with fully resolved
// execution options and owns all driver interaction:
//
//   - Query: Executes a simple textual statement
//   - Execute: Runs a bound prepared statement
//   - Batch: Executes a batch atomically
//   - Prepare: Creates a reusable prepared-statement handle
//   - CloseAsync: Releases driver resources in the background
//
// Every operation resolves through a future; a client never raises
// synchronously and never blocks the session goroutine.
//
// # Adapters
//
// Driver-specific adapters are provided in subpackages:
//
//   - [github.com/arloliu/strata/adapter/cql/v1]: Adapter for gocql v1.x
//   - [github.com/arloliu/strata/adapter/cql/v2]: Adapter for apache/cassandra-gocql-driver v2.x
//
// # Usage
//
// Import the appropriate adapter for your gocql version:
//
//	import (
//	    "github.com/arloliu/strata"
//	    v1 "github.com/arloliu/strata/adapter/cql/v1"
//	    "github.com/gocql/gocql"
//	)
//
//	// Create gocql cluster and session
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Keyspace = "my_keyspace"
//	gocqlSession, _ := cluster.CreateSession()
//
//	// Wrap with strata adapter
//	client := v1.NewClient(gocqlSession, cluster.Keyspace)
//
//	// Use with strata session
//	session, _ := strata.NewSession(client)
package cql
