// Package testutil provides test utilities and mock implementations for
// strata testing.
//
// This package provides mock implementations of strata interfaces for unit
// testing, as well as helper functions for integration tests.
//
// # Mock Implementations
//
//   - [MockClient]: Scriptable implementation of the collaborator Client
//   - [CaptureMetrics]: MetricsCollector recording counts for assertions
//   - [CaptureLogger]: Logger recording messages for assertions
//
// # Usage
//
// Create a mock client for testing sessions:
//
//	client := testutil.NewMockClient("app")
//	client.QueryResult = testutil.RowsResult(types.Row{"id": 1})
//
//	session, _ := strata.NewSession(client)
//	result, err := session.Execute(ctx, "SELECT * FROM users")
//
// # Integration Test Helpers
//
// For integration tests, helper functions are provided:
//
//   - StartEmbeddedNATS: Embedded NATS server with JetStream for journal tests
//   - StartCassandra / StartScyllaDB: Single test containers (require Docker)
//   - StartCQLCluster: Backend-agnostic cluster bootstrap for TestMain
package testutil
