package service

import (
	"context"
	"errors"
	"testing"

	"tickmatch/domain/changelog"
	"tickmatch/domain/lob"
	"tickmatch/domain/repo"
	"tickmatch/infra/changestore"
	"tickmatch/infra/sequence"
)

type capturePublisher struct {
	trades []Trade
}

func (p *capturePublisher) PublishTrades(_ context.Context, ts []Trade) error {
	p.trades = append(p.trades, ts...)
	return nil
}

type fixture struct {
	svc   *BookService
	store *changestore.MemStore
	repo  *repo.MemRepo[*lob.LimitOrder]
	pub   *capturePublisher
	seq   *sequence.Sequencer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tick, _ := lob.ParsePrice("0.01")
	book, err := lob.NewBook("BTCUSDT", lob.Options{TickSize: tick, MaxTicks: 100_000, MaxOrders: 256})
	if err != nil {
		t.Fatalf("new book: %v", err)
	}

	seq := sequence.New(0)
	tracker := changelog.NewTracker(changelog.SystemClock{}, seq)
	store := changestore.NewMemStore()

	readSeq := sequence.New(0)
	readTracker := changelog.NewTracker(changelog.SystemClock{}, readSeq)
	mirror := repo.NewMemRepo(readTracker, changelog.SinkFunc(func(*changelog.Entry) error { return nil }),
		func(o *lob.LimitOrder) *lob.LimitOrder { return o.Clone().(*lob.LimitOrder) },
		lob.OrderFromCreated)

	pub := &capturePublisher{}
	svc := NewBookService(book, tracker, store, BookServiceOptions{
		Queries: mirror,
		Trades:  pub,
	})
	return &fixture{svc: svc, store: store, repo: mirror, pub: pub, seq: seq}
}

func limit(id uint64, side lob.Side, price, qty string) *lob.LimitOrder {
	px, _ := lob.ParsePrice(price)
	q, _ := lob.ParseQuantity(qty)
	return &lob.LimitOrder{ID: id, Sym: "BTCUSDT", OrdSide: side, LimitPx: px, Qty: q}
}

func TestPlaceOrderRests(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.PlaceOrder(context.Background(), limit(1, lob.Buy, "100.00", "2"))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !res.Rested || res.Filled != 0 || len(res.Trades) != 0 {
		t.Fatalf("result %+v", res)
	}

	entries, _ := f.store.ScanFrom(0)
	if len(entries) != 1 || entries[0].Kind != changelog.Created {
		t.Fatalf("log entries %+v", entries)
	}
	if !f.repo.Exists("1") {
		t.Fatalf("read model missed the order")
	}
	if _, ok := f.svc.GetOrder(1); !ok {
		t.Fatalf("order not resting")
	}
}

func TestPlaceOrderMatchesFIFO(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, o := range []*lob.LimitOrder{
		limit(1, lob.Sell, "100.00", "1"),
		limit(2, lob.Sell, "100.00", "2"),
		limit(3, lob.Sell, "101.00", "1"),
	} {
		if _, err := f.svc.PlaceOrder(ctx, o); err != nil {
			t.Fatalf("seed %d: %v", o.ID, err)
		}
	}

	res, err := f.svc.PlaceOrder(ctx, limit(10, lob.Buy, "100.50", "2"))
	if err != nil {
		t.Fatalf("place taker: %v", err)
	}

	want, _ := lob.ParseQuantity("2")
	if res.Filled != want || res.Rested {
		t.Fatalf("result %+v", res)
	}
	if len(res.Trades) != 2 {
		t.Fatalf("got %d trades", len(res.Trades))
	}
	if res.Trades[0].MakerID != 1 || res.Trades[1].MakerID != 2 {
		t.Fatalf("fill order: %+v", res.Trades)
	}

	// Maker 1 fully consumed, maker 2 half left.
	if _, ok := f.svc.GetOrder(1); ok {
		t.Fatalf("maker 1 still resting")
	}
	m2, ok := f.svc.GetOrder(2)
	if !ok {
		t.Fatalf("maker 2 gone")
	}
	half, _ := lob.ParseQuantity("1")
	if m2.Remaining() != half {
		t.Fatalf("maker 2 remaining %v", m2.Remaining())
	}

	top := f.svc.TopOfBook()
	px, _ := lob.ParsePrice("100.00")
	if !top.HasLast || top.Last != px {
		t.Fatalf("last price %+v", top)
	}

	if len(f.pub.trades) != 2 {
		t.Fatalf("published %d trades", len(f.pub.trades))
	}

	// Read model saw the delete and the partial fill.
	if f.repo.Exists("1") {
		t.Fatalf("read model kept maker 1")
	}
	r2, _ := f.repo.FindByID("2")
	if r2.Remaining() != half {
		t.Fatalf("read model maker 2 remaining %v", r2.Remaining())
	}
}

func TestPlaceOrderPartialFillRests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.PlaceOrder(ctx, limit(1, lob.Sell, "100.00", "1")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	res, err := f.svc.PlaceOrder(ctx, limit(2, lob.Buy, "100.00", "3"))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !res.Rested {
		t.Fatalf("remainder did not rest: %+v", res)
	}
	o, ok := f.svc.GetOrder(2)
	if !ok {
		t.Fatalf("remainder missing")
	}
	rest, _ := lob.ParseQuantity("2")
	if o.Remaining() != rest {
		t.Fatalf("remainder %v, want %v", o.Remaining(), rest)
	}
}

func TestPlaceOrderValidationEmitsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.PlaceOrder(ctx, limit(1, lob.Buy, "100.00", "1")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := f.svc.PlaceOrder(ctx, limit(1, lob.Buy, "100.00", "1")); !errors.Is(err, lob.ErrOrderAlreadyExists) {
		t.Fatalf("duplicate: %v", err)
	}
	bad := limit(2, lob.Buy, "100.00", "1")
	bad.Sym = "ETHUSDT"
	if _, err := f.svc.PlaceOrder(ctx, bad); err == nil {
		t.Fatalf("symbol mismatch accepted")
	}

	entries, _ := f.store.ScanFrom(0)
	if len(entries) != 1 {
		t.Fatalf("rejected orders leaked %d entries", len(entries))
	}
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.PlaceOrder(ctx, limit(1, lob.Buy, "100.00", "1")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := f.svc.CancelOrder(ctx, 1); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := f.svc.GetOrder(1); ok {
		t.Fatalf("cancelled order still resting")
	}
	if err := f.svc.CancelOrder(ctx, 1); !errors.Is(err, lob.ErrOrderNotFound) {
		t.Fatalf("double cancel: %v", err)
	}

	entries, _ := f.store.ScanFrom(0)
	if last := entries[len(entries)-1]; last.Kind != changelog.Deleted {
		t.Fatalf("last entry %+v", last)
	}
	if f.repo.Exists("1") {
		t.Fatalf("read model kept cancelled order")
	}
}

func TestListOrdersAndChangesSince(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := uint64(1); i <= 5; i++ {
		if _, err := f.svc.PlaceOrder(ctx, limit(i, lob.Buy, "100.00", "1")); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	page := f.svc.ListOrders(repo.NewPageRequest(0, 3))
	if len(page.Content) != 3 || page.TotalElements != 5 {
		t.Fatalf("page %+v", page)
	}

	entries, err := f.svc.ChangesSince(2, 2)
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	if len(entries) != 2 || entries[0].Sequence != 3 {
		t.Fatalf("changes since 2: %+v", entries)
	}
}

func TestRepoSnapshotCapability(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.RepoSnapshot(100); err != nil {
		t.Fatalf("snapshot-capable repo: %v", err)
	}

	// A read model without the capability reports it.
	bare := &struct{ QueryRepo }{QueryRepo: f.repo}
	f.svc.queries = bare
	if _, err := f.svc.RepoSnapshot(100); !errors.Is(err, lob.ErrSnapshotNotSupported) {
		t.Fatalf("got %v, want ErrSnapshotNotSupported", err)
	}
}
