// Package integration_test provides end-to-end integration tests for the
// strata library.
//
// These tests verify session behavior with real database connections.
//
// # Running Integration Tests
//
// Integration tests are skipped by default when using -short flag:
//
//	go test -short ./...           # Skips integration tests
//	go test ./test/integration/... # Runs integration tests
//
// # CQL Tests
//
// CQL integration tests require Docker and use testcontainers to spin up
// a ScyllaDB or Cassandra instance (ScyllaDB preferred, Cassandra fallback
// when Linux AIO is exhausted). Set SKIP_INTEGRATION_TESTS=1 to skip them
// entirely, for example on CI runners without Docker.
//
// # Journal Tests
//
// Journal integration tests use an embedded NATS server with JetStream and
// SQLite files in the test's temp dir; they need no external services
// beyond the shared CQL container.
package integration_test
