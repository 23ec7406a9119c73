package strata

import (
	"github.com/arloliu/strata/adapter/cql"
	"github.com/arloliu/strata/types"
)

// Type aliases for convenience - re-export from types package.
type (
	Consistency      = types.Consistency
	BatchType        = types.BatchType
	Result           = types.Result
	Row              = types.Row
	Profile          = types.Profile
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Client is the collaborator the session dispatches through. It is defined
// in adapter/cql and implemented by the gocql v1 and v2 adapters.
type Client = cql.Client

// Re-export consistency level constants for convenience.
const (
	Any         = types.Any
	One         = types.One
	Two         = types.Two
	Three       = types.Three
	Quorum      = types.Quorum
	All         = types.All
	LocalQuorum = types.LocalQuorum
	EachQuorum  = types.EachQuorum
	Serial      = types.Serial
	LocalSerial = types.LocalSerial
	LocalOne    = types.LocalOne
)

// Re-export batch type constants for convenience.
const (
	LoggedBatch   = types.LoggedBatch
	UnloggedBatch = types.UnloggedBatch
	CounterBatch  = types.CounterBatch
)
