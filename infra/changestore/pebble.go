package changestore

import (
	"fmt"

	"github.com/cockroachdb/pebble"

	"tickmatch/domain/changelog"
)

const logPrefix = "log/"

// PebbleStore persists change entries in a pebble keyspace under
// log/<sequence>. Zero-padded keys make lexicographic order equal
// sequence order, so recovery is a single range scan.
type PebbleStore struct {
	db *pebble.DB
}

func OpenPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("changestore: open %s: %w", dir, err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Append(e *changelog.Entry) error {
	buf, err := encodeEntry(e)
	if err != nil {
		return err
	}
	return s.db.Set(logKey(e.Sequence), buf, pebble.Sync)
}

func (s *PebbleStore) ScanFrom(from uint64) ([]*changelog.Entry, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: logKey(from),
		UpperBound: []byte(logPrefix + "~"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []*changelog.Entry
	for iter.First(); iter.Valid(); iter.Next() {
		e, err := decodeEntry(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", iter.Key(), err)
		}
		out = append(out, e)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PebbleStore) LastSequence() (uint64, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(logPrefix),
		UpperBound: []byte(logPrefix + "~"),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	e, err := decodeEntry(iter.Value())
	if err != nil {
		return 0, err
	}
	return e.Sequence, nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func logKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", logPrefix, seq))
}
