package changelog

import "tickmatch/infra/sequence"

// Entity is the capability an entity type needs to take part in
// change tracking and replay.
type Entity interface {
	EntityID() string
	EntityType() string

	// Diff returns the field changes that turn prev into the receiver.
	// prev must be the same concrete type.
	Diff(prev Entity) []FieldChange

	// ApplyChange applies an Updated entry's changed fields to the live
	// entity, type-checked per field.
	ApplyChange(entry *Entry) error
}

// Tracker produces change log entries from entity mutations. It stamps
// entries with a timestamp provider and a monotonic sequencer; the
// owner of the entity serializes calls.
type Tracker struct {
	clock Clock
	seq   *sequence.Sequencer
}

func NewTracker(clock Clock, seq *sequence.Sequencer) *Tracker {
	return &Tracker{clock: clock, seq: seq}
}

// TrackCreated records the creation of an entity: every field of the
// new entity appears in the entry with an empty old value.
func (t *Tracker) TrackCreated(e Entity) *Entry {
	fields := e.Diff(nil)
	return NewCreated(e.EntityID(), e.EntityType(), fields, t.clock.Now(), t.seq.Next())
}

// TrackUpdated records a mutation as the diff from prev to curr. Returns
// ErrNoChanges when the states are identical.
func (t *Tracker) TrackUpdated(prev, curr Entity) (*Entry, error) {
	changed := curr.Diff(prev)
	if len(changed) == 0 {
		return nil, ErrNoChanges
	}
	return NewUpdated(curr.EntityID(), curr.EntityType(), changed, t.clock.Now(), t.seq.Next()), nil
}

// TrackDeleted records the removal of an entity.
func (t *Tracker) TrackDeleted(e Entity) *Entry {
	return NewDeleted(e.EntityID(), e.EntityType(), t.clock.Now(), t.seq.Next())
}

// Sequence returns the last sequence number issued by the tracker.
func (t *Tracker) Sequence() uint64 {
	return t.seq.Current()
}
