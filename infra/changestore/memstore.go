package changestore

import (
	"sort"
	"sync"

	"tickmatch/domain/changelog"
)

// MemStore holds entries in memory. It runs every entry through the
// wire codec so tests exercise the same encoding as the durable store.
type MemStore struct {
	mu      sync.RWMutex
	records map[uint64][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[uint64][]byte)}
}

func (s *MemStore) Append(e *changelog.Entry) error {
	buf, err := encodeEntry(e)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[e.Sequence] = buf
	s.mu.Unlock()
	return nil
}

func (s *MemStore) ScanFrom(from uint64) ([]*changelog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seqs := make([]uint64, 0, len(s.records))
	for seq := range s.records {
		if seq >= from {
			seqs = append(seqs, seq)
		}
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })

	out := make([]*changelog.Entry, 0, len(seqs))
	for _, seq := range seqs {
		e, err := decodeEntry(s.records[seq])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *MemStore) LastSequence() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max uint64
	for seq := range s.records {
		if seq > max {
			max = seq
		}
	}
	return max, nil
}

func (s *MemStore) Close() error { return nil }
