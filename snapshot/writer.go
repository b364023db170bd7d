package snapshot

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tickmatch/domain/lob"
)

type Writer struct {
	Dir string
}

// Write captures the live orders of a book into a sequence-stamped
// snapshot file. The walk preserves arrival order, which is what time
// priority needs on rebuild.
func (w *Writer) Write(book *lob.Book, seq uint64) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return err
	}

	s := Snapshot{
		Symbol:   book.Symbol(),
		TickSize: int64(book.TickSize()),
		Seq:      seq,
		Created:  time.Now(),
		Orders:   make([]OrderEntry, 0, book.Len()),
	}
	if last, ok := book.LastPrice(); ok {
		s.HasLast = true
		s.Last = int64(last)
	}

	book.EachOrder(func(o lob.Order) bool {
		e := OrderEntry{
			ID:     o.OrderID(),
			Symbol: o.Symbol(),
			Side:   uint8(o.Side()),
			Price:  int64(o.Price()),
			Qty:    int64(o.Quantity()),
			Filled: int64(o.FilledQuantity()),
		}
		if lo, ok := o.(*lob.LimitOrder); ok {
			e.CreatedAt = lo.CreatedAt
			e.UpdatedAt = lo.UpdatedAt
		}
		s.Orders = append(s.Orders, e)
		return true
	})

	path := filepath.Join(w.Dir, fileName(seq))
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(&s); err != nil {
		f.Close()
		os.Remove(tmp)
		return &lob.SerializationError{Reason: err.Error()}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func fileName(seq uint64) string {
	return fmt.Sprintf("snapshot-%020d.bin", seq)
}
