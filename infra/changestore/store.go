// Package changestore persists change log entries. The domain emits
// entries through the changelog.Sink interface; stores additionally
// support sequence-ordered scans for recovery.
package changestore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"tickmatch/api/pb"
	"tickmatch/domain/changelog"
)

// Store is a durable, append-only change log keyed by sequence.
type Store interface {
	changelog.Sink

	// ScanFrom returns all entries with sequence >= from, in sequence
	// order.
	ScanFrom(from uint64) ([]*changelog.Entry, error)

	// LastSequence returns the highest stored sequence, 0 when empty.
	LastSequence() (uint64, error)

	Close() error
}

var ErrCorruptRecord = errors.New("changestore: corrupt record")

// encodeEntry frames a protobuf-encoded entry with a CRC32 checksum:
// [crc:4][payload].
func encodeEntry(e *changelog.Entry) ([]byte, error) {
	payload, err := pb.Marshal(toWire(e))
	if err != nil {
		return nil, fmt.Errorf("changestore: encode seq %d: %w", e.Sequence, err)
	}
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf[:4], crc32.ChecksumIEEE(payload))
	copy(buf[4:], payload)
	return buf, nil
}

func decodeEntry(b []byte) (*changelog.Entry, error) {
	if len(b) < 4 {
		return nil, ErrCorruptRecord
	}
	payload := b[4:]
	if crc32.ChecksumIEEE(payload) != binary.BigEndian.Uint32(b[:4]) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptRecord)
	}
	var w pb.ChangeLogEntry
	if err := pb.Unmarshal(payload, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return fromWire(&w), nil
}

func toWire(e *changelog.Entry) *pb.ChangeLogEntry {
	return &pb.ChangeLogEntry{
		EntityId:   e.EntityID,
		EntityType: e.EntityType,
		Kind:       uint32(e.Kind),
		Fields:     toWireFields(e.Fields),
		Changed:    toWireFields(e.Changed),
		Timestamp:  e.Timestamp,
		Sequence:   e.Sequence,
	}
}

func fromWire(w *pb.ChangeLogEntry) *changelog.Entry {
	return &changelog.Entry{
		EntityID:   w.EntityId,
		EntityType: w.EntityType,
		Kind:       changelog.Kind(w.Kind),
		Fields:     fromWireFields(w.Fields),
		Changed:    fromWireFields(w.Changed),
		Timestamp:  w.Timestamp,
		Sequence:   w.Sequence,
	}
}

func toWireFields(fs []changelog.FieldChange) []*pb.FieldChange {
	if len(fs) == 0 {
		return nil
	}
	out := make([]*pb.FieldChange, len(fs))
	for i, f := range fs {
		out[i] = &pb.FieldChange{Name: f.Name, OldValue: f.OldValue, NewValue: f.NewValue}
	}
	return out
}

func fromWireFields(ws []*pb.FieldChange) []changelog.FieldChange {
	if len(ws) == 0 {
		return nil
	}
	out := make([]changelog.FieldChange, len(ws))
	for i, w := range ws {
		out[i] = changelog.FieldChange{Name: w.Name, OldValue: w.OldValue, NewValue: w.NewValue}
	}
	return out
}
