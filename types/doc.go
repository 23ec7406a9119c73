// Package types provides shared types and error definitions for the strata library.
//
// This is a leaf package with zero strata imports to prevent import cycles.
// All packages in strata can safely import this package.
//
// # Types
//
// Consistency levels mirror gocql consistency levels for database operations:
//
//	const (
//	    Any         Consistency = 0x00
//	    One         Consistency = 0x01
//	    Two         Consistency = 0x02
//	    Three       Consistency = 0x03
//	    Quorum      Consistency = 0x04
//	    All         Consistency = 0x05
//	    LocalQuorum Consistency = 0x06
//	    EachQuorum  Consistency = 0x07
//	    Serial      Consistency = 0x08
//	    LocalSerial Consistency = 0x09
//	    LocalOne    Consistency = 0x0A
//	)
//
// BatchType selects the batch execution mode (logged, unlogged, counter) and
// mirrors the wire protocol values.
//
// # Execution Options
//
// ExecOptions is the immutable, fully resolved set of options one statement
// executes with. Profile is the sparse counterpart: a bundle of explicitly set
// fields layered over lower-priority options during resolution:
//
//	base := types.DefaultExecOptions()
//	analytics := types.NewProfile(
//	    types.WithConsistency(types.Quorum),
//	    types.WithPageSize(5000),
//	)
//	resolved := base.Override(analytics)
//
// # Errors
//
// Sentinel errors are provided for common failure scenarios:
//
//   - ErrInvalidArgument: A statement or option value the session cannot accept
//   - ErrUnknownProfile: An execution_profile name with no registered profile
//   - ErrNilClient: A nil collaborator client was provided
//   - ErrClientClosed: Operation attempted on a closed client
//   - ErrJournalClosed: Record attempted on a closed journal
//
// Check for sentinel errors using errors.Is; inspect details with errors.As on
// InvalidArgumentError and UnknownProfileError.
package types
