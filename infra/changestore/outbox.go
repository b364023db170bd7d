package changestore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"tickmatch/domain/changelog"
)

// Outbox state machine: NEW on emit, SENT after a publish attempt,
// ACKED once the broker confirmed, FAILED when retries ran out.
type OutboxState uint8

const (
	OutboxNew OutboxState = iota
	OutboxSent
	OutboxAcked
	OutboxFailed
)

func (s OutboxState) String() string {
	switch s {
	case OutboxNew:
		return "NEW"
	case OutboxSent:
		return "SENT"
	case OutboxAcked:
		return "ACKED"
	case OutboxFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

type OutboxRecord struct {
	State       OutboxState
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

// binary encoding: [state:1][retries:4][lastAttempt:8][payload]
func encodeOutbox(r OutboxRecord) []byte {
	buf := make([]byte, 13+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[13:], r.Payload)
	return buf
}

func decodeOutbox(b []byte) (OutboxRecord, error) {
	if len(b) < 13 {
		return OutboxRecord{}, errors.New("invalid outbox record length")
	}
	rec := OutboxRecord{
		State:       OutboxState(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
	}
	if len(b) > 13 {
		rec.Payload = append([]byte(nil), b[13:]...)
	}
	return rec, nil
}

const outboxPrefix = "outbox/"

// Outbox is a pebble-backed publish queue keyed by change sequence.
// The writer inserts NEW records next to the log append; the
// broadcaster drains them towards the broker and advances their state,
// so a crash between append and publish is recoverable.
type Outbox struct {
	db *pebble.DB
}

func OpenOutbox(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("changestore: open outbox %s: %w", dir, err)
	}
	return &Outbox{db: db}, nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// PutNew inserts a pending publish for a change sequence.
func (o *Outbox) PutNew(seq uint64, payload []byte) error {
	rec := OutboxRecord{State: OutboxNew, Payload: payload}
	return o.db.Set(outboxKey(seq), encodeOutbox(rec), pebble.Sync)
}

// PutNewEntry frames a change entry with the store codec and inserts
// it as a pending publish.
func (o *Outbox) PutNewEntry(e *changelog.Entry) error {
	buf, err := encodeEntry(e)
	if err != nil {
		return err
	}
	return o.PutNew(e.Sequence, buf)
}

// DecodePayload turns an outbox payload back into the change entry it
// frames.
func DecodePayload(b []byte) (*changelog.Entry, error) {
	return decodeEntry(b)
}

// UpdateState advances a record after a send, ack or failure.
func (o *Outbox) UpdateState(seq uint64, state OutboxState, retries uint32) error {
	rec, err := o.Get(seq)
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries = retries
	rec.LastAttempt = time.Now().UnixNano()
	return o.db.Set(outboxKey(seq), encodeOutbox(rec), pebble.Sync)
}

// Delete removes an ACKED record.
func (o *Outbox) Delete(seq uint64) error {
	return o.db.Delete(outboxKey(seq), pebble.Sync)
}

func (o *Outbox) Get(seq uint64) (OutboxRecord, error) {
	val, closer, err := o.db.Get(outboxKey(seq))
	if err != nil {
		return OutboxRecord{}, err
	}
	defer closer.Close()
	return decodeOutbox(val)
}

// ScanByState visits records in the given state, in sequence order.
func (o *Outbox) ScanByState(state OutboxState, fn func(seq uint64, rec OutboxRecord) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(outboxPrefix),
		UpperBound: []byte(outboxPrefix + "~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeOutbox(iter.Value())
		if err != nil {
			return err
		}
		if rec.State != state {
			continue
		}
		seq, err := parseOutboxKey(iter.Key())
		if err != nil {
			return err
		}
		if err := fn(seq, rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

func outboxKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", outboxPrefix, seq))
}

func parseOutboxKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(b[len(outboxPrefix):]), "%d", &seq)
	return seq, err
}
