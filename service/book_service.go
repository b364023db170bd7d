package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"tickmatch/domain/changelog"
	"tickmatch/domain/lob"
	"tickmatch/domain/repo"
	"tickmatch/infra/changestore"
)

// Trade is one fill between an incoming order and a resting one.
type Trade struct {
	Symbol    string
	TakerID   uint64
	MakerID   uint64
	TakerSide lob.Side
	Price     lob.Price
	Qty       lob.Quantity
	Timestamp uint64
}

// TradePublisher pushes executed trades to the outside world. Publish
// failures are logged, never propagated into matching.
type TradePublisher interface {
	PublishTrades(ctx context.Context, trades []Trade) error
}

// QueryRepo is the read model the service keeps current by feeding it
// the same change entries it appends to the log.
type QueryRepo interface {
	ReplayEvent(e *changelog.Entry) error
	FindByID(id string) (*lob.LimitOrder, bool)
	FindAllByPaginated(pred func(*lob.LimitOrder) bool, req repo.PageRequest) repo.PageResult[*lob.LimitOrder]
	FindByCursor(cursor uint64, limit int) ([]*lob.LimitOrder, uint64)
	Count() uint64
}

// repoSnapshotter is the optional capability of read models that can
// capture their state in memory.
type repoSnapshotter interface {
	CreateSnapshot(timestamp, seq uint64) *repo.Snapshot[*lob.LimitOrder]
}

// PlaceResult reports what happened to an incoming order.
type PlaceResult struct {
	Trades []Trade
	Filled lob.Quantity
	Rested bool
}

// BookService is the only write entry point into the engine. It owns
// the single-writer book, stamps mutations into the change log, feeds
// the read model and hands trades to the publisher.
type BookService struct {
	mu sync.Mutex

	book    *lob.Book
	tracker *changelog.Tracker
	store   changestore.Store
	outbox  *changestore.Outbox
	queries QueryRepo
	trades  TradePublisher
	log     *slog.Logger
}

type BookServiceOptions struct {
	// Outbox, Queries and Trades are optional collaborators.
	Outbox  *changestore.Outbox
	Queries QueryRepo
	Trades  TradePublisher
	Logger  *slog.Logger
}

func NewBookService(book *lob.Book, tracker *changelog.Tracker, store changestore.Store, opts BookServiceOptions) *BookService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BookService{
		book:    book,
		tracker: tracker,
		store:   store,
		outbox:  opts.Outbox,
		queries: opts.Queries,
		trades:  opts.Trades,
		log:     logger.With("symbol", book.Symbol()),
	}
}

// PlaceOrder validates, matches against the opposite side, applies
// fills and rests any remainder. Validation failures leave the book
// untouched; once matching starts, applied fills stand even if
// resting the remainder fails.
func (s *BookService) PlaceOrder(ctx context.Context, o *lob.LimitOrder) (PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.book.Validate(o); err != nil {
		return PlaceResult{}, err
	}

	makers, remaining := s.book.MatchOrders(o.OrdSide, o.LimitPx, o.Remaining())

	var res PlaceResult
	toFill := o.Remaining() - remaining
	for _, m := range makers {
		if toFill <= 0 {
			break
		}
		maker := m.(*lob.LimitOrder)
		avail := maker.Remaining()
		take := min(avail, toFill)
		toFill -= take

		prev := maker.Clone()
		maker.Filled += take

		var entry *changelog.Entry
		if maker.Remaining() == 0 {
			s.book.RemoveOrder(maker.ID)
			entry = s.tracker.TrackDeleted(maker)
		} else {
			var err error
			entry, err = s.tracker.TrackUpdated(prev, maker)
			if err != nil {
				return res, err
			}
		}
		if err := s.emit(entry); err != nil {
			return res, err
		}

		o.Filled += take
		res.Trades = append(res.Trades, Trade{
			Symbol:    s.book.Symbol(),
			TakerID:   o.ID,
			MakerID:   maker.ID,
			TakerSide: o.OrdSide,
			Price:     maker.LimitPx,
			Qty:       take,
			Timestamp: entry.Timestamp,
		})
		s.book.UpdateLastPrice(maker.LimitPx)
	}
	res.Filled = o.Filled

	if o.Remaining() > 0 {
		if err := s.book.AddOrder(o); err != nil {
			return res, err
		}
		if err := s.emit(s.tracker.TrackCreated(o)); err != nil {
			return res, err
		}
		res.Rested = true
	}

	s.publish(ctx, res.Trades)
	return res, nil
}

// CancelOrder tombstones a resting order.
func (s *BookService) CancelOrder(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.book.FindOrder(id)
	if !ok {
		return lob.ErrOrderNotFound
	}
	s.book.RemoveOrder(id)
	return s.emit(s.tracker.TrackDeleted(o))
}

// GetOrder returns a copy of a live resting order.
func (s *BookService) GetOrder(id uint64) (*lob.LimitOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.book.FindOrder(id)
	if !ok {
		return nil, false
	}
	return o.Clone().(*lob.LimitOrder), true
}

// TopOfBook is a point-in-time view of best bid, best ask and last
// trade price.
type TopOfBook struct {
	Bid     lob.Price
	HasBid  bool
	Ask     lob.Price
	HasAsk  bool
	Last    lob.Price
	HasLast bool
}

func (s *BookService) TopOfBook() TopOfBook {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t TopOfBook
	t.Bid, t.HasBid = s.book.BestBid()
	t.Ask, t.HasAsk = s.book.BestAsk()
	t.Last, t.HasLast = s.book.LastPrice()
	return t
}

// DepthLevel is one aggregated price level of the depth view.
type DepthLevel struct {
	Price  lob.Price
	Qty    lob.Quantity
	Orders int
}

// Depth aggregates resting quantity per price level, best first, up
// to maxLevels per side. Not a hot path; it walks every live order.
func (s *BookService) Depth(maxLevels int) (bids, asks []DepthLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg := map[lob.Side]map[lob.Price]*DepthLevel{
		lob.Buy:  {},
		lob.Sell: {},
	}
	s.book.EachOrder(func(o lob.Order) bool {
		side := agg[o.Side()]
		lvl, ok := side[o.Price()]
		if !ok {
			lvl = &DepthLevel{Price: o.Price()}
			side[o.Price()] = lvl
		}
		lvl.Qty += o.Quantity() - o.FilledQuantity()
		lvl.Orders++
		return true
	})

	bids = sortLevels(agg[lob.Buy], false, maxLevels)
	asks = sortLevels(agg[lob.Sell], true, maxLevels)
	return bids, asks
}

func sortLevels(levels map[lob.Price]*DepthLevel, ascending bool, limit int) []DepthLevel {
	out := make([]DepthLevel, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, *lvl)
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ListOrders pages through the read model.
func (s *BookService) ListOrders(req repo.PageRequest) repo.PageResult[*lob.LimitOrder] {
	if s.queries == nil {
		return repo.PageResult[*lob.LimitOrder]{Page: req.Page, PageSize: req.Size}
	}
	return s.queries.FindAllByPaginated(func(*lob.LimitOrder) bool { return true }, req)
}

// ChangesSince returns change entries after the cursor, oldest first.
func (s *BookService) ChangesSince(cursor uint64, limit int) ([]*changelog.Entry, error) {
	entries, err := s.store.ScanFrom(cursor + 1)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// RepoSnapshot captures the read model state in memory. Read models
// without the capability yield ErrSnapshotNotSupported.
func (s *BookService) RepoSnapshot(timestamp uint64) (*repo.Snapshot[*lob.LimitOrder], error) {
	snap, ok := s.queries.(repoSnapshotter)
	if !ok {
		return nil, lob.ErrSnapshotNotSupported
	}
	return snap.CreateSnapshot(timestamp, s.tracker.Sequence()), nil
}

// Sequence is the last change sequence issued.
func (s *BookService) Sequence() uint64 {
	return s.tracker.Sequence()
}

func (s *BookService) emit(e *changelog.Entry) error {
	if err := s.store.Append(e); err != nil {
		return err
	}
	if s.outbox != nil {
		if err := s.outbox.PutNewEntry(e); err != nil {
			s.log.Error("outbox insert failed", "seq", e.Sequence, "err", err)
		}
	}
	if s.queries != nil {
		if err := s.queries.ReplayEvent(e); err != nil {
			s.log.Error("read model apply failed", "seq", e.Sequence, "err", err)
		}
	}
	return nil
}

func (s *BookService) publish(ctx context.Context, trades []Trade) {
	if s.trades == nil || len(trades) == 0 {
		return
	}
	if err := s.trades.PublishTrades(ctx, trades); err != nil {
		s.log.Error("trade publish failed", "count", len(trades), "err", err)
	}
}
