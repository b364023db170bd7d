package service

import (
	"context"
	"log/slog"
	"testing"

	"tickmatch/domain/changelog"
	"tickmatch/domain/lob"
	"tickmatch/domain/repo"
	"tickmatch/infra/changestore"
	"tickmatch/infra/sequence"
	"tickmatch/snapshot"
)

func newBook(t *testing.T) *lob.Book {
	t.Helper()
	tick, _ := lob.ParsePrice("0.01")
	b, err := lob.NewBook("BTCUSDT", lob.Options{TickSize: tick, MaxTicks: 100_000, MaxOrders: 256})
	if err != nil {
		t.Fatalf("new book: %v", err)
	}
	return b
}

func newMirror() *repo.MemRepo[*lob.LimitOrder] {
	tracker := changelog.NewTracker(changelog.SystemClock{}, sequence.New(0))
	return repo.NewMemRepo(tracker, changelog.SinkFunc(func(*changelog.Entry) error { return nil }),
		func(o *lob.LimitOrder) *lob.LimitOrder { return o.Clone().(*lob.LimitOrder) },
		lob.OrderFromCreated)
}

func runTraffic(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	for _, o := range []*lob.LimitOrder{
		limit(1, lob.Buy, "100.00", "2"),
		limit(2, lob.Buy, "99.50", "1"),
		limit(3, lob.Sell, "101.00", "3"),
	} {
		if _, err := f.svc.PlaceOrder(ctx, o); err != nil {
			t.Fatalf("place %d: %v", o.ID, err)
		}
	}
	// Crossing sell consumes order 1 fully, order 2 partially.
	if _, err := f.svc.PlaceOrder(ctx, limit(4, lob.Sell, "99.50", "2.5")); err != nil {
		t.Fatalf("place taker: %v", err)
	}
	if err := f.svc.CancelOrder(ctx, 3); err != nil {
		t.Fatalf("cancel: %v", err)
	}
}

func assertRecovered(t *testing.T, f *fixture, book *lob.Book, mirror *repo.MemRepo[*lob.LimitOrder]) {
	t.Helper()

	if book.Len() != 1 {
		t.Fatalf("recovered book has %d orders, want 1", book.Len())
	}
	o, ok := book.FindOrder(2)
	if !ok {
		t.Fatalf("order 2 missing after recovery")
	}
	half, _ := lob.ParseQuantity("0.5")
	lo := o.(*lob.LimitOrder)
	if lo.Remaining() != half {
		t.Fatalf("order 2 remaining %v, want %v", lo.Remaining(), half)
	}
	if _, ok := book.FindOrder(1); ok {
		t.Fatalf("filled order 1 survived recovery")
	}
	if _, ok := book.FindOrder(3); ok {
		t.Fatalf("cancelled order 3 survived recovery")
	}

	if mirror.Count() != 1 || !mirror.Exists("2") {
		t.Fatalf("read model count %d", mirror.Count())
	}
}

func TestRecoverFromLogOnly(t *testing.T) {
	f := newFixture(t)
	runTraffic(t, f)

	book := newBook(t)
	mirror := newMirror()
	seq := sequence.New(0)
	if err := Recover(book, mirror, f.store, t.TempDir(), seq, slog.Default()); err != nil {
		t.Fatalf("recover: %v", err)
	}

	assertRecovered(t, f, book, mirror)
	if seq.Current() != f.seq.Current() {
		t.Fatalf("sequencer at %d, writer at %d", seq.Current(), f.seq.Current())
	}
}

func TestRecoverFromSnapshotAndTail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := t.TempDir()

	for _, o := range []*lob.LimitOrder{
		limit(1, lob.Buy, "100.00", "2"),
		limit(2, lob.Buy, "99.50", "1"),
		limit(3, lob.Sell, "101.00", "3"),
	} {
		if _, err := f.svc.PlaceOrder(ctx, o); err != nil {
			t.Fatalf("place %d: %v", o.ID, err)
		}
	}

	w := &snapshot.Writer{Dir: dir}
	f.svc.mu.Lock()
	err := w.Write(f.svc.book, f.svc.Sequence())
	f.svc.mu.Unlock()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if _, err := f.svc.PlaceOrder(ctx, limit(4, lob.Sell, "99.50", "2.5")); err != nil {
		t.Fatalf("place taker: %v", err)
	}
	if err := f.svc.CancelOrder(ctx, 3); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	book := newBook(t)
	mirror := newMirror()
	seq := sequence.New(0)
	if err := Recover(book, mirror, f.store, dir, seq, slog.Default()); err != nil {
		t.Fatalf("recover: %v", err)
	}

	assertRecovered(t, f, book, mirror)

	// Recovered state must behave like the original writer's.
	top := f.svc.TopOfBook()
	bid, hasBid := book.BestBid()
	if hasBid != top.HasBid || bid != top.Bid {
		t.Fatalf("best bid diverged: %v/%v vs %+v", bid, hasBid, top)
	}
}

func TestRecoverEmpty(t *testing.T) {
	book := newBook(t)
	seq := sequence.New(0)
	if err := Recover(book, nil, changestore.NewMemStore(), t.TempDir(), seq, slog.Default()); err != nil {
		t.Fatalf("recover empty: %v", err)
	}
	if book.Len() != 0 || seq.Current() != 0 {
		t.Fatalf("empty recovery mutated state")
	}
}
