package v1

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"github.com/arloliu/strata/adapter/cql"
)

// withTimeout bounds ctx when a positive timeout is set.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, d)
}

// ToGocqlConsistency converts a strata Consistency to gocql.Consistency.
//
// This is useful when you need to interact with the underlying gocql driver
// directly while using strata consistency constants.
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Consistency = v1.ToGocqlConsistency(cql.Quorum)
func ToGocqlConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlConsistency converts a gocql.Consistency to strata Consistency.
func FromGocqlConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// ToGocqlBatchType converts a strata BatchType to gocql.BatchType.
func ToGocqlBatchType(bt cql.BatchType) gocql.BatchType {
	return gocql.BatchType(bt)
}

// FromGocqlBatchType converts a gocql.BatchType to strata BatchType.
func FromGocqlBatchType(bt gocql.BatchType) cql.BatchType {
	return cql.BatchType(bt)
}

// ToGocqlSerialConsistency converts a strata Consistency to
// gocql.SerialConsistency.
//
// Valid inputs are Serial and LocalSerial.
func ToGocqlSerialConsistency(c cql.Consistency) gocql.SerialConsistency {
	return gocql.SerialConsistency(c)
}

// FromGocqlSerialConsistency converts a gocql.SerialConsistency to strata
// Consistency.
func FromGocqlSerialConsistency(c gocql.SerialConsistency) cql.Consistency {
	return cql.Consistency(c)
}

// UnwrapSession returns the underlying gocql.Session from a strata client.
//
// This is useful when you need direct access to the underlying gocql session
// for operations not exposed by the strata interface.
//
// Example:
//
//	gocqlSession := v1.UnwrapSession(client)
//	keyspaceMeta, _ := gocqlSession.KeyspaceMetadata("my_keyspace")
func UnwrapSession(c *Client) *gocql.Session {
	return c.session
}
