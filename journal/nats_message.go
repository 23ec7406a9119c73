package journal

import (
	"fmt"
	"time"

	"github.com/tinylib/msgp/msgp"

	"github.com/arloliu/strata/types"
)

// Entries travel as MessagePack maps keyed by short field names, so
// consumers in other languages can decode them without a schema.
const (
	fieldID          = "id"
	fieldKeyspace    = "keyspace"
	fieldKind        = "kind"
	fieldStatement   = "statement"
	fieldBatchSize   = "batch_size"
	fieldConsistency = "consistency"
	fieldIdempotent  = "idempotent"
	fieldProfile     = "profile"
	fieldStartedAt   = "started_at"
	fieldDuration    = "duration"
	fieldError       = "error"
)

// encodeEntry serializes an entry to MessagePack.
func encodeEntry(e Entry) []byte {
	var buf []byte
	buf = msgp.AppendMapHeader(buf, 11)

	buf = msgp.AppendString(buf, fieldID)
	buf = msgp.AppendString(buf, e.ID)
	buf = msgp.AppendString(buf, fieldKeyspace)
	buf = msgp.AppendString(buf, e.Keyspace)
	buf = msgp.AppendString(buf, fieldKind)
	buf = msgp.AppendString(buf, string(e.Kind))
	buf = msgp.AppendString(buf, fieldStatement)
	buf = msgp.AppendString(buf, e.Statement)
	buf = msgp.AppendString(buf, fieldBatchSize)
	buf = msgp.AppendInt(buf, e.BatchSize)
	buf = msgp.AppendString(buf, fieldConsistency)
	buf = msgp.AppendUint16(buf, uint16(e.Consistency))
	buf = msgp.AppendString(buf, fieldIdempotent)
	buf = msgp.AppendBool(buf, e.Idempotent)
	buf = msgp.AppendString(buf, fieldProfile)
	buf = msgp.AppendString(buf, e.Profile)
	buf = msgp.AppendString(buf, fieldStartedAt)
	buf = msgp.AppendTime(buf, e.StartedAt)
	buf = msgp.AppendString(buf, fieldDuration)
	buf = msgp.AppendInt64(buf, int64(e.Duration))
	buf = msgp.AppendString(buf, fieldError)
	buf = msgp.AppendString(buf, e.Error)

	return buf
}

// decodeEntry parses an entry encoded by encodeEntry. Unknown fields are
// skipped, so decoders stay compatible with entries from newer writers.
func decodeEntry(data []byte) (Entry, error) {
	var e Entry

	sz, buf, err := msgp.ReadMapHeaderBytes(data)
	if err != nil {
		return Entry{}, fmt.Errorf("strata: failed to read entry header: %w", err)
	}

	for range sz {
		var key []byte
		key, buf, err = msgp.ReadMapKeyZC(buf)
		if err != nil {
			return Entry{}, fmt.Errorf("strata: failed to read entry key: %w", err)
		}

		switch string(key) {
		case fieldID:
			e.ID, buf, err = msgp.ReadStringBytes(buf)
		case fieldKeyspace:
			e.Keyspace, buf, err = msgp.ReadStringBytes(buf)
		case fieldKind:
			var kind string
			kind, buf, err = msgp.ReadStringBytes(buf)
			e.Kind = types.StatementKind(kind)
		case fieldStatement:
			e.Statement, buf, err = msgp.ReadStringBytes(buf)
		case fieldBatchSize:
			e.BatchSize, buf, err = msgp.ReadIntBytes(buf)
		case fieldConsistency:
			var c uint16
			c, buf, err = msgp.ReadUint16Bytes(buf)
			e.Consistency = types.Consistency(c)
		case fieldIdempotent:
			e.Idempotent, buf, err = msgp.ReadBoolBytes(buf)
		case fieldProfile:
			e.Profile, buf, err = msgp.ReadStringBytes(buf)
		case fieldStartedAt:
			e.StartedAt, buf, err = msgp.ReadTimeBytes(buf)
		case fieldDuration:
			var d int64
			d, buf, err = msgp.ReadInt64Bytes(buf)
			e.Duration = time.Duration(d)
		case fieldError:
			e.Error, buf, err = msgp.ReadStringBytes(buf)
		default:
			buf, err = msgp.Skip(buf)
		}
		if err != nil {
			return Entry{}, fmt.Errorf("strata: failed to decode entry field %q: %w", key, err)
		}
	}

	return e, nil
}
