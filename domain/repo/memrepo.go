// Package repo provides a generic in-memory repository with
// change-tracked mutations and a query surface suitable for admin and
// reporting paths. Mutations emit change entries through a
// changelog.Sink; the repository can be rebuilt from the same entries.
package repo

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"tickmatch/domain/changelog"
)

var (
	ErrAlreadyExists = errors.New("repo: entity already exists")
	ErrNotFound      = errors.New("repo: entity not found")
)

type row[E changelog.Entity] struct {
	entity E
	seq    uint64
}

// MemRepo keeps entities keyed by EntityID. Reads take clones so
// callers never alias repository state. Safe for concurrent use; the
// matching hot path does not go through it.
type MemRepo[E changelog.Entity] struct {
	mu      sync.RWMutex
	items   map[string]*row[E]
	deleted map[string]struct{}

	tracker *changelog.Tracker
	sink    changelog.Sink
	clone   func(E) E
	restore func(e *changelog.Entry) (E, error)
}

// NewMemRepo builds a repository. clone must produce an independent
// copy; restore rebuilds an entity from a Created entry during replay.
func NewMemRepo[E changelog.Entity](
	tracker *changelog.Tracker,
	sink changelog.Sink,
	clone func(E) E,
	restore func(e *changelog.Entry) (E, error),
) *MemRepo[E] {
	return &MemRepo[E]{
		items:   make(map[string]*row[E]),
		deleted: make(map[string]struct{}),
		tracker: tracker,
		sink:    sink,
		clone:   clone,
		restore: restore,
	}
}

// Save stores a new entity and emits a Created entry.
func (r *MemRepo[E]) Save(e E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := e.EntityID()
	if _, ok := r.items[id]; ok {
		return ErrAlreadyExists
	}
	entry := r.tracker.TrackCreated(e)
	if err := r.sink.Append(entry); err != nil {
		return err
	}
	r.items[id] = &row[E]{entity: r.clone(e), seq: entry.Sequence}
	delete(r.deleted, id)
	return nil
}

// Update replaces a stored entity and emits an Updated entry carrying
// only the fields that differ. A no-op diff emits nothing.
func (r *MemRepo[E]) Update(e E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := e.EntityID()
	prev, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	entry, err := r.tracker.TrackUpdated(prev.entity, e)
	if errors.Is(err, changelog.ErrNoChanges) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := r.sink.Append(entry); err != nil {
		return err
	}
	r.items[id] = &row[E]{entity: r.clone(e), seq: entry.Sequence}
	return nil
}

// Delete removes an entity and emits a Deleted entry. The id is
// remembered so replay can reject resurrection.
func (r *MemRepo[E]) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	entry := r.tracker.TrackDeleted(prev.entity)
	if err := r.sink.Append(entry); err != nil {
		return err
	}
	delete(r.items, id)
	r.deleted[id] = struct{}{}
	return nil
}

func (r *MemRepo[E]) FindByID(id string) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero E
	rw, ok := r.items[id]
	if !ok {
		return zero, false
	}
	return r.clone(rw.entity), true
}

// FindBySequence returns the entity whose latest change carries the
// given sequence.
func (r *MemRepo[E]) FindBySequence(seq uint64) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero E
	for _, rw := range r.items {
		if rw.seq == seq {
			return r.clone(rw.entity), true
		}
	}
	return zero, false
}

func (r *MemRepo[E]) FindOneBy(pred func(E) bool) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero E
	for _, rw := range r.sortedRows() {
		if pred(rw.entity) {
			return r.clone(rw.entity), true
		}
	}
	return zero, false
}

// FindAllBy returns matching entities ordered by latest-change
// sequence.
func (r *MemRepo[E]) FindAllBy(pred func(E) bool) []E {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []E
	for _, rw := range r.sortedRows() {
		if pred(rw.entity) {
			out = append(out, r.clone(rw.entity))
		}
	}
	return out
}

func (r *MemRepo[E]) FindAllByPaginated(pred func(E) bool, req PageRequest) PageResult[E] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*row[E]
	for _, rw := range r.sortedRows() {
		if pred(rw.entity) {
			matched = append(matched, rw)
		}
	}
	return r.page(matched, req)
}

// FindRangeBySequence returns entities whose latest-change sequence
// lies in [from, to], ordered by sequence.
func (r *MemRepo[E]) FindRangeBySequence(from, to uint64) []E {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []E
	for _, rw := range r.sortedRows() {
		if rw.seq < from || rw.seq > to {
			continue
		}
		out = append(out, r.clone(rw.entity))
	}
	return out
}

func (r *MemRepo[E]) FindRangeBySequencePaginated(from, to uint64, req PageRequest) PageResult[E] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*row[E]
	for _, rw := range r.sortedRows() {
		if rw.seq < from || rw.seq > to {
			continue
		}
		matched = append(matched, rw)
	}
	return r.page(matched, req)
}

// FindByCursor returns up to limit entities with latest-change
// sequence strictly greater than cursor, plus the cursor for the next
// call. A zero next cursor means the scan is exhausted.
func (r *MemRepo[E]) FindByCursor(cursor uint64, limit int) ([]E, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []E
	var next uint64
	for _, rw := range r.sortedRows() {
		if rw.seq <= cursor {
			continue
		}
		if limit > 0 && len(out) == limit {
			return out, next
		}
		out = append(out, r.clone(rw.entity))
		next = rw.seq
	}
	return out, 0
}

func (r *MemRepo[E]) Count() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint64(len(r.items))
}

func (r *MemRepo[E]) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok
}

// ReplayEvent applies one change entry without emitting anything.
// Created is idempotent for live ids, Updated on an absent entity is
// dropped, and no entry may target an id that was seen Deleted.
func (r *MemRepo[E]) ReplayEvent(e *changelog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replayLocked(e)
}

func (r *MemRepo[E]) replayLocked(e *changelog.Entry) error {
	id := e.EntityID
	if _, gone := r.deleted[id]; gone && e.Kind != changelog.Deleted {
		return changelog.ErrCannotReplayOnDeleted
	}
	switch e.Kind {
	case changelog.Created:
		if _, ok := r.items[id]; ok {
			return nil
		}
		ent, err := r.restore(e)
		if err != nil {
			return err
		}
		r.items[id] = &row[E]{entity: ent, seq: e.Sequence}
		return nil
	case changelog.Updated:
		rw, ok := r.items[id]
		if !ok {
			return nil
		}
		if err := rw.entity.ApplyChange(e); err != nil {
			return err
		}
		rw.seq = e.Sequence
		return nil
	case changelog.Deleted:
		delete(r.items, id)
		r.deleted[id] = struct{}{}
		return nil
	default:
		return fmt.Errorf("repo: unknown change kind %d", e.Kind)
	}
}

// ReplayEvents applies entries in order, stopping at the first failure
// without rolling back earlier ones.
func (r *MemRepo[E]) ReplayEvents(entries []*changelog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		if err := r.replayLocked(e); err != nil {
			return fmt.Errorf("replay seq %d (%s %s): %w", e.Sequence, e.Kind, e.EntityID, err)
		}
	}
	return nil
}

// ReplayFromSequence applies only entries at or past from. Used after
// a snapshot restore to replay the tail of the log.
func (r *MemRepo[E]) ReplayFromSequence(entries []*changelog.Entry, from uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		if e.Sequence < from {
			continue
		}
		if err := r.replayLocked(e); err != nil {
			return fmt.Errorf("replay seq %d (%s %s): %w", e.Sequence, e.Kind, e.EntityID, err)
		}
	}
	return nil
}

func (r *MemRepo[E]) sortedRows() []*row[E] {
	rows := make([]*row[E], 0, len(r.items))
	for _, rw := range r.items {
		rows = append(rows, rw)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	return rows
}

func (r *MemRepo[E]) page(rows []*row[E], req PageRequest) PageResult[E] {
	total := uint64(len(rows))
	off := req.Offset()
	if off > total {
		off = total
	}
	end := off + req.Limit()
	if end > total {
		end = total
	}
	out := make([]E, 0, end-off)
	for _, rw := range rows[off:end] {
		out = append(out, r.clone(rw.entity))
	}
	return NewPageResult(out, total, req)
}
