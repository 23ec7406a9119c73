// Package strata provides a profile-layered, future-based session front end
// for Cassandra-compatible databases.
//
// Strata sits between application code and a driver adapter. It resolves
// per-call options against named execution profiles and session defaults,
// classifies statements, and dispatches them asynchronously, so every caller
// sees one uniform API and one uniform failure channel.
//
// # Key Features
//
//   - Layered Options: session defaults < execution profile < per-call overrides
//   - Execution Profiles: named, reusable option bundles, loadable from YAML
//   - Uniform Async Surface: every operation returns a future; every failure
//     travels through it
//   - Batch Builders: logged/unlogged/counter builders with scoped population
//   - Execution Journal: pluggable recording of completed executions to
//     memory, NATS JetStream, or SQLite
//   - Driver Agnostic: adapters for gocql v1 and the Apache gocql v2 driver
//
// # Basic Usage
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Keyspace = "app"
//	client, err := v1.Connect(cluster)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := strata.NewSession(client,
//	    strata.WithProfile("analytics", types.NewProfile(
//	        types.WithConsistency(types.One),
//	        types.WithPageSize(5000),
//	    )),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close(context.Background())
//
//	result, err := session.Execute(ctx, "SELECT * FROM events WHERE day = ?",
//	    strata.OptionsMap{
//	        "arguments":         []any{day},
//	        "execution_profile": "analytics",
//	    })
//
// # Option Resolution
//
// Per-call overrides are sparse maps. A named execution profile is layered
// between the session defaults and the rest of the map, so an explicit
// per-call key always wins over the profile:
//
//	// profile "analytics" sets page_size=5000
//	session.Execute(ctx, query, strata.OptionsMap{
//	    "execution_profile": "analytics",
//	    "page_size":         10, // beats the profile's 5000
//	})
//
// # Error Handling
//
// The asynchronous entry points never return synchronous errors and never
// panic on bad input; resolution and classification failures come back as
// already-failed futures. The blocking twins surface the identical error
// values.
//
// Sentinel errors for specific scenarios:
//
//   - types.ErrInvalidArgument: malformed options or unsupported statement value
//   - types.ErrUnknownProfile: execution_profile naming an unregistered profile
//   - types.ErrNilClient: NewSession called without a collaborator client
//   - types.ErrClientClosed: operation attempted on a closed client
//
// Check for sentinel errors using errors.Is:
//
//	if errors.Is(err, types.ErrUnknownProfile) {
//	    // Handle unregistered profile
//	}
//
// Detail-carrying wrappers (types.InvalidArgumentError,
// types.UnknownProfileError) are matched with errors.As. Errors produced by
// the collaborator client pass through futures untouched, so driver error
// types remain matchable.
//
// # Futures
//
// Asynchronous operations return *future.Future values. Block with Get,
// select on Ready, or register completion callbacks:
//
//	f := session.ExecuteAsync(ctx, "INSERT INTO t (id) VALUES (?)",
//	    strata.OptionsMap{"arguments": []any{1}})
//
//	f.OnComplete(func(_ types.Result, err error) {
//	    if err != nil {
//	        log.Printf("insert failed: %v", err)
//	    }
//	})
//
// Do not call the blocking twins from inside a completion callback; the
// callback runs on the resolving goroutine and would deadlock.
package strata
