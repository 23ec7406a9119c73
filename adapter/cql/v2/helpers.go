package v2

import (
	"context"
	"time"

	gocql "github.com/apache/cassandra-gocql-driver/v2"

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
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	cluster.Consistency = v2.ToGocqlConsistency(cql.Quorum)
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
// gocql.Consistency.
//
// In gocql v2, serial consistency is represented as gocql.Consistency
// rather than a dedicated type. Valid inputs are Serial and LocalSerial.
func ToGocqlSerialConsistency(c cql.Consistency) gocql.Consistency {
	return gocql.Consistency(c)
}

// FromGocqlSerialConsistency converts a gocql.Consistency (used for serial)
// to strata Consistency.
func FromGocqlSerialConsistency(c gocql.Consistency) cql.Consistency {
	return cql.Consistency(c)
}

// UnwrapSession returns the underlying gocql.Session from a strata client.
func UnwrapSession(c *Client) *gocql.Session {
	return c.session
}
