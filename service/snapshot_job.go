package service

import (
	"context"
	"time"

	"tickmatch/snapshot"
)

// StartSnapshotJob periodically writes sequence-stamped snapshots of
// the book and prunes old files. The write happens under the service
// lock so it captures a consistent state at one sequence point.
func (s *BookService) StartSnapshotJob(ctx context.Context, dir string, interval time.Duration, keep int) {
	w := &snapshot.Writer{Dir: dir}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.mu.Lock()
				seq := s.tracker.Sequence()
				err := w.Write(s.book, seq)
				s.mu.Unlock()
				if err != nil {
					s.log.Error("snapshot write failed", "seq", seq, "err", err)
					continue
				}
				s.log.Info("snapshot written", "seq", seq)
				if err := snapshot.Prune(dir, keep); err != nil {
					s.log.Error("snapshot prune failed", "err", err)
				}
			}
		}
	}()
}
