package changestore

import (
	"errors"
	"testing"

	"tickmatch/domain/changelog"
)

func entry(seq uint64, kind changelog.Kind) *changelog.Entry {
	e := &changelog.Entry{
		EntityID:   "1",
		EntityType: "order",
		Kind:       kind,
		Timestamp:  seq * 10,
		Sequence:   seq,
	}
	fields := []changelog.FieldChange{
		{Name: "price", NewValue: "100.50"},
		{Name: "qty", OldValue: "2", NewValue: "1"},
	}
	if kind == changelog.Created {
		e.Fields = fields
	} else if kind == changelog.Updated {
		e.Changed = fields
	}
	return e
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	pdb, err := OpenPebble(t.TempDir())
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { pdb.Close() })
	return map[string]Store{
		"mem":    NewMemStore(),
		"pebble": pdb,
	}
}

func TestStoreAppendScan(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for seq := uint64(1); seq <= 5; seq++ {
				kind := changelog.Created
				if seq%2 == 0 {
					kind = changelog.Updated
				}
				if err := s.Append(entry(seq, kind)); err != nil {
					t.Fatalf("append %d: %v", seq, err)
				}
			}

			got, err := s.ScanFrom(0)
			if err != nil {
				t.Fatalf("scan: %v", err)
			}
			if len(got) != 5 {
				t.Fatalf("scan returned %d entries, want 5", len(got))
			}
			for i, e := range got {
				if e.Sequence != uint64(i+1) {
					t.Fatalf("scan out of order at %d: seq %d", i, e.Sequence)
				}
			}
			if got[0].Kind != changelog.Created || len(got[0].Fields) != 2 {
				t.Fatalf("round trip lost fields: %+v", got[0])
			}
			if got[1].Kind != changelog.Updated || got[1].Changed[1].OldValue != "2" {
				t.Fatalf("round trip lost changed set: %+v", got[1])
			}

			tail, err := s.ScanFrom(4)
			if err != nil {
				t.Fatalf("tail scan: %v", err)
			}
			if len(tail) != 2 || tail[0].Sequence != 4 {
				t.Fatalf("tail scan from 4 returned %d entries", len(tail))
			}

			last, err := s.LastSequence()
			if err != nil || last != 5 {
				t.Fatalf("LastSequence = %d, %v; want 5", last, err)
			}
		})
	}
}

func TestStoreEmpty(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			last, err := s.LastSequence()
			if err != nil || last != 0 {
				t.Fatalf("LastSequence on empty = %d, %v", last, err)
			}
			got, err := s.ScanFrom(0)
			if err != nil || len(got) != 0 {
				t.Fatalf("ScanFrom on empty = %d entries, %v", len(got), err)
			}
		})
	}
}

func TestPebbleSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenPebble(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for seq := uint64(1); seq <= 3; seq++ {
		if err := s.Append(entry(seq, changelog.Created)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenPebble(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	last, err := reopened.LastSequence()
	if err != nil || last != 3 {
		t.Fatalf("LastSequence after reopen = %d, %v; want 3", last, err)
	}
}

func TestCodecRejectsCorruptRecord(t *testing.T) {
	buf, err := encodeEntry(entry(1, changelog.Created))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := decodeEntry(buf); err != nil {
		t.Fatalf("clean decode: %v", err)
	}

	buf[len(buf)-1] ^= 0xFF
	if _, err := decodeEntry(buf); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("corrupt decode: got %v, want ErrCorruptRecord", err)
	}

	if _, err := decodeEntry([]byte{1, 2}); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("short decode: got %v, want ErrCorruptRecord", err)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	ob, err := OpenOutbox(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer ob.Close()

	for seq := uint64(1); seq <= 3; seq++ {
		if err := ob.PutNew(seq, []byte{byte(seq)}); err != nil {
			t.Fatalf("put %d: %v", seq, err)
		}
	}

	var pending []uint64
	err = ob.ScanByState(OutboxNew, func(seq uint64, rec OutboxRecord) error {
		pending = append(pending, seq)
		if len(rec.Payload) != 1 || rec.Payload[0] != byte(seq) {
			t.Fatalf("payload for %d: %v", seq, rec.Payload)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("scan NEW: %v", err)
	}
	if len(pending) != 3 || pending[0] != 1 || pending[2] != 3 {
		t.Fatalf("pending = %v", pending)
	}

	if err := ob.UpdateState(2, OutboxSent, 1); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	rec, err := ob.Get(2)
	if err != nil || rec.State != OutboxSent || rec.Retries != 1 {
		t.Fatalf("after sent: %+v, %v", rec, err)
	}
	if rec.LastAttempt == 0 {
		t.Fatalf("sent record missing attempt time")
	}

	pending = pending[:0]
	if err := ob.ScanByState(OutboxNew, func(seq uint64, _ OutboxRecord) error {
		pending = append(pending, seq)
		return nil
	}); err != nil {
		t.Fatalf("rescan NEW: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending after sent = %v", pending)
	}

	if err := ob.UpdateState(2, OutboxAcked, 1); err != nil {
		t.Fatalf("mark acked: %v", err)
	}
	if err := ob.Delete(2); err != nil {
		t.Fatalf("delete acked: %v", err)
	}
	if _, err := ob.Get(2); err == nil {
		t.Fatalf("deleted record still readable")
	}
}
