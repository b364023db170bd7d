package service

import (
	"fmt"
	"log/slog"

	"tickmatch/domain/lob"
	"tickmatch/infra/changestore"
	"tickmatch/infra/sequence"
	"tickmatch/snapshot"
)

// Recover rebuilds engine state before any traffic is accepted: load
// the newest snapshot, replay the log tail into the book, rebuild the
// read model from the full log, then position the sequencer after the
// last stored change. It runs to completion on the startup path; the
// outbox is drained separately by the broadcaster.
func Recover(
	book *lob.Book,
	queries QueryRepo,
	store changestore.Store,
	snapDir string,
	seq *sequence.Sequencer,
	log *slog.Logger,
) error {
	from := uint64(1)

	snap, err := snapshot.Load(snapDir)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil {
		if err := snapshot.Restore(snap, book); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		from = snap.Seq + 1
		log.Info("snapshot restored", "seq", snap.Seq, "orders", len(snap.Orders))
	}

	entries, err := store.ScanFrom(1)
	if err != nil {
		return fmt.Errorf("scan change log: %w", err)
	}

	if err := book.ReplayFromSequence(entries, from); err != nil {
		return fmt.Errorf("replay book: %w", err)
	}
	if queries != nil {
		for _, e := range entries {
			if err := queries.ReplayEvent(e); err != nil {
				return fmt.Errorf("replay read model seq %d: %w", e.Sequence, err)
			}
		}
	}

	last, err := store.LastSequence()
	if err != nil {
		return fmt.Errorf("last sequence: %w", err)
	}
	if snap != nil && snap.Seq > last {
		last = snap.Seq
	}
	seq.Reset(last)

	log.Info("recovery complete", "entries", len(entries), "last_seq", last, "orders", book.Len())
	return nil
}
