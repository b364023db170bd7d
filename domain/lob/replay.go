package lob

import (
	"fmt"
	"strconv"

	"tickmatch/domain/changelog"
)

// ReplayEvent applies one change log entry to the book.
//
//   - Created is idempotent: a live id is a no-op. Otherwise the order
//     is reconstructed from the entry's field map and inserted; an
//     unparseable or incomplete field map is a reconstruction error.
//     An omitted symbol defaults to the book's own, so minimal entries
//     carrying only price and qty replay cleanly.
//   - Updated against an absent id is silently dropped, so a log tail
//     can be replayed without its preceding snapshot. Against a live
//     id every changed field is applied, type-checked per field.
//   - Deleted removes the order if present.
//
// Any non-Deleted entry against an id whose stream already ended with
// Deleted fails with changelog.ErrCannotReplayOnDeleted.
//
// Callers must supply entries in non-decreasing sequence order; the
// book does not buffer or reorder.
func (b *Book) ReplayEvent(e *changelog.Entry) error {
	switch e.Kind {
	case changelog.Created:
		if b.replayDeleted(e.EntityID) {
			return changelog.ErrCannotReplayOnDeleted
		}
		if id, err := strconv.ParseUint(e.EntityID, 10, 64); err == nil {
			if _, live := b.index[id]; live {
				return nil
			}
		}
		o, err := OrderFromCreated(e)
		if err != nil {
			return &DeserializationError{Reason: err.Error()}
		}
		if o.Sym == "" {
			// Producers that track only the required fields omit the
			// symbol; the entry belongs to this book's stream.
			o.Sym = b.symbol
		}
		return b.AddOrder(o)

	case changelog.Updated:
		if b.replayDeleted(e.EntityID) {
			return changelog.ErrCannotReplayOnDeleted
		}
		id, err := strconv.ParseUint(e.EntityID, 10, 64)
		if err != nil {
			return &DeserializationError{Reason: "unparseable entity id " + e.EntityID}
		}
		o, ok := b.FindOrder(id)
		if !ok {
			// Tolerated: replaying a log tail without the snapshot that
			// carried this order.
			return nil
		}
		return o.ApplyChange(e)

	case changelog.Deleted:
		id, err := strconv.ParseUint(e.EntityID, 10, 64)
		if err != nil {
			return &DeserializationError{Reason: "unparseable entity id " + e.EntityID}
		}
		b.RemoveOrder(id)
		b.deleted[id] = struct{}{}
		return nil

	default:
		return &DeserializationError{Reason: fmt.Sprintf("unknown change kind %d", e.Kind)}
	}
}

func (b *Book) replayDeleted(entityID string) bool {
	id, err := strconv.ParseUint(entityID, 10, 64)
	if err != nil {
		return false
	}
	_, ok := b.deleted[id]
	return ok
}

// ReplayEvents applies entries sequentially and aborts on the first
// failure. Entries already applied are NOT rolled back: a failed batch
// leaves the book in a partial state and recovery must restart from a
// known-good snapshot.
func (b *Book) ReplayEvents(events []*changelog.Entry) error {
	for _, e := range events {
		if err := b.ReplayEvent(e); err != nil {
			return fmt.Errorf("replay seq %d (%s %s): %w", e.Sequence, e.Kind, e.EntityID, err)
		}
	}
	return nil
}

// ReplayFromSequence applies only entries with sequence >= from. Used
// after restoring a snapshot taken at from-1 so captured history is
// not reapplied.
func (b *Book) ReplayFromSequence(events []*changelog.Entry, from uint64) error {
	for _, e := range events {
		if e.Sequence < from {
			continue
		}
		if err := b.ReplayEvent(e); err != nil {
			return fmt.Errorf("replay seq %d (%s %s): %w", e.Sequence, e.Kind, e.EntityID, err)
		}
	}
	return nil
}
