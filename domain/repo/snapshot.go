package repo

import "tickmatch/domain/changelog"

// Snapshot is a deep copy of repository state, tagged with the
// sequence of the last change it reflects.
type Snapshot[E changelog.Entity] struct {
	Timestamp uint64
	Sequence  uint64

	items   map[string]*row[E]
	deleted map[string]struct{}
}

// CreateSnapshot captures repository state at a sequence point. The
// snapshot stays independent of later mutations.
func (r *MemRepo[E]) CreateSnapshot(timestamp, seq uint64) *Snapshot[E] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make(map[string]*row[E], len(r.items))
	for id, rw := range r.items {
		items[id] = &row[E]{entity: r.clone(rw.entity), seq: rw.seq}
	}
	deleted := make(map[string]struct{}, len(r.deleted))
	for id := range r.deleted {
		deleted[id] = struct{}{}
	}
	return &Snapshot[E]{Timestamp: timestamp, Sequence: seq, items: items, deleted: deleted}
}

// RestoreFromSnapshot replaces repository state wholesale. The
// snapshot remains usable afterwards.
func (r *MemRepo[E]) RestoreFromSnapshot(s *Snapshot[E]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make(map[string]*row[E], len(s.items))
	for id, rw := range s.items {
		items[id] = &row[E]{entity: r.clone(rw.entity), seq: rw.seq}
	}
	deleted := make(map[string]struct{}, len(s.deleted))
	for id := range s.deleted {
		deleted[id] = struct{}{}
	}
	r.items = items
	r.deleted = deleted
	return nil
}
