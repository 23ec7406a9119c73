package types

import (
	"errors"
	"fmt"
	"strings"
)

// Consistency represents a CQL consistency level.
// The numeric values mirror the native protocol and gocql's constants, so
// adapters can convert with a plain type conversion.
type Consistency uint16

// Consistency levels.
const (
	Any         Consistency = 0x00
	One         Consistency = 0x01
	Two         Consistency = 0x02
	Three       Consistency = 0x03
	Quorum      Consistency = 0x04
	All         Consistency = 0x05
	LocalQuorum Consistency = 0x06
	EachQuorum  Consistency = 0x07
	Serial      Consistency = 0x08
	LocalSerial Consistency = 0x09
	LocalOne    Consistency = 0x0A
)

// String returns the CQL name of the consistency level.
func (c Consistency) String() string {
	switch c {
	case Any:
		return "ANY"
	case One:
		return "ONE"
	case Two:
		return "TWO"
	case Three:
		return "THREE"
	case Quorum:
		return "QUORUM"
	case All:
		return "ALL"
	case LocalQuorum:
		return "LOCAL_QUORUM"
	case EachQuorum:
		return "EACH_QUORUM"
	case Serial:
		return "SERIAL"
	case LocalSerial:
		return "LOCAL_SERIAL"
	case LocalOne:
		return "LOCAL_ONE"
	}

	return fmt.Sprintf("UNKNOWN_CONS_0x%x", uint16(c))
}

// ParseConsistency converts a consistency name to its Consistency value.
// Matching is case-insensitive, so both "local_quorum" and "LOCAL_QUORUM"
// parse to LocalQuorum.
//
// Parameters:
//   - s: The consistency name to parse
//
// Returns:
//   - Consistency: The parsed level
//   - error: An InvalidArgumentError if the name is not recognized
func ParseConsistency(s string) (Consistency, error) {
	switch strings.ToUpper(s) {
	case "ANY":
		return Any, nil
	case "ONE":
		return One, nil
	case "TWO":
		return Two, nil
	case "THREE":
		return Three, nil
	case "QUORUM":
		return Quorum, nil
	case "ALL":
		return All, nil
	case "LOCAL_QUORUM":
		return LocalQuorum, nil
	case "EACH_QUORUM":
		return EachQuorum, nil
	case "SERIAL":
		return Serial, nil
	case "LOCAL_SERIAL":
		return LocalSerial, nil
	case "LOCAL_ONE":
		return LocalOne, nil
	}

	return Any, &InvalidArgumentError{Detail: fmt.Sprintf("unknown consistency %q", s)}
}

// BatchType represents the type of a CQL batch operation.
// The numeric values mirror the native protocol and gocql's constants.
type BatchType uint8

// Batch types.
const (
	// LoggedBatch provides atomicity guarantees through the batch log.
	LoggedBatch BatchType = 0
	// UnloggedBatch skips the batch log for better performance.
	UnloggedBatch BatchType = 1
	// CounterBatch is required for counter column updates.
	CounterBatch BatchType = 2
)

// String returns the name of the batch type.
func (b BatchType) String() string {
	switch b {
	case LoggedBatch:
		return "logged"
	case UnloggedBatch:
		return "unlogged"
	case CounterBatch:
		return "counter"
	}

	return fmt.Sprintf("unknown(%d)", uint8(b))
}

// Valid reports whether the batch type is one of the supported values.
func (b BatchType) Valid() bool {
	return b <= CounterBatch
}

// StatementKind labels the shape of a statement for metrics and journal
// entries.
type StatementKind string

// Statement kinds.
const (
	KindSimple StatementKind = "simple"
	KindBound  StatementKind = "bound"
	KindBatch  StatementKind = "batch"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// Result is one page of rows produced by the collaborator client.
//
// Accessors return internal references; callers must treat them as read-only.
type Result interface {
	// Rows returns the rows of the current page. Void results (writes, DDL)
	// return an empty slice.
	Rows() []Row

	// PagingState returns the token for requesting the next page, or nil when
	// this is the last page.
	PagingState() []byte

	// Warnings returns server warnings attached to the response.
	Warnings() []string
}

// Sentinel errors for common failure scenarios.
var (
	// ErrInvalidArgument indicates a statement or option value the session
	// cannot classify or resolve.
	ErrInvalidArgument = errors.New("strata: invalid argument")

	// ErrUnknownProfile indicates an execution_profile name that has no
	// registered profile.
	ErrUnknownProfile = errors.New("strata: unknown execution profile")

	// ErrNilClient indicates a nil collaborator client was provided.
	ErrNilClient = errors.New("strata: client is nil")

	// ErrClientClosed indicates an operation was attempted on a closed client.
	ErrClientClosed = errors.New("strata: client is closed")

	// ErrInvalidBatchType indicates an unsupported batch type value.
	ErrInvalidBatchType = errors.New("strata: invalid batch type")

	// ErrJournalClosed indicates a record was attempted on a closed journal.
	ErrJournalClosed = errors.New("strata: journal is closed")
)

// InvalidArgumentError reports a value the session rejected before dispatch,
// with detail on what was wrong. It matches ErrInvalidArgument via errors.Is.
type InvalidArgumentError struct {
	// Detail describes the offending value.
	Detail string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return "strata: invalid argument: " + e.Detail
}

// Unwrap returns the ErrInvalidArgument sentinel for errors.Is matching.
func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// UnknownProfileError reports an execution_profile option naming a profile
// that was never registered. It matches ErrUnknownProfile via errors.Is.
type UnknownProfileError struct {
	// Name is the profile name that failed to resolve.
	Name string
}

// Error implements the error interface.
func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("strata: unknown execution profile %q", e.Name)
}

// Unwrap returns the ErrUnknownProfile sentinel for errors.Is matching.
func (e *UnknownProfileError) Unwrap() error {
	return ErrUnknownProfile
}
