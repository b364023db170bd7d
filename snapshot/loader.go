package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sort"

	"tickmatch/domain/lob"
)

// Load reads the newest snapshot in dir. A missing directory or an
// empty one is not an error; recovery then replays the full log.
func Load(dir string) (*Snapshot, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "snapshot-*.bin"))
	if err != nil || len(matches) == 0 {
		return nil, nil
	}
	sort.Strings(matches)

	f, err := os.Open(matches[len(matches)-1])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, &lob.DeserializationError{Reason: err.Error()}
	}
	return &s, nil
}

// Restore places the snapshot's orders into an empty book.
func Restore(s *Snapshot, book *lob.Book) error {
	if s.Symbol != book.Symbol() {
		return &lob.SymbolMismatchError{Expected: book.Symbol(), Actual: s.Symbol}
	}
	for _, e := range s.Orders {
		o := &lob.LimitOrder{
			ID:        e.ID,
			Sym:       e.Symbol,
			OrdSide:   lob.Side(e.Side),
			LimitPx:   lob.Price(e.Price),
			Qty:       lob.Quantity(e.Qty),
			Filled:    lob.Quantity(e.Filled),
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		}
		if err := book.AddOrder(o); err != nil {
			return err
		}
	}
	if s.HasLast {
		book.UpdateLastPrice(lob.Price(s.Last))
	}
	return nil
}

// Prune removes snapshot files older than the newest keep files.
func Prune(dir string, keep int) error {
	matches, err := filepath.Glob(filepath.Join(dir, "snapshot-*.bin"))
	if err != nil {
		return err
	}
	if keep < 1 {
		keep = 1
	}
	if len(matches) <= keep {
		return nil
	}
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-keep] {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
