package sequence

import "sync/atomic"

// Sequencer issues strictly monotonic change log sequence numbers.
// It is deterministic and replay-safe: after recovery it resumes from
// the last replayed sequence.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer. Pass 0 for a fresh start, or the last
// replayed sequence after recovery.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

// Reset positions the sequencer. Only used after replay.
func (s *Sequencer) Reset(v uint64) {
	s.next.Store(v)
}
