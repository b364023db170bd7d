package lob

// Book is a single-symbol, price-quantized limit order book.
//
// Book is single-writer by contract: one logical owner serializes all
// mutating calls. Nothing here is internally synchronized, no
// operation suspends or performs I/O, and every hot path call is
// O(1), O(log m) or O(k) depending on the configured backend.
type Book struct {
	symbol   string
	tickSize Price
	backend  BackendKind

	bids PriceIndex
	asks PriceIndex

	arena   *arena
	index   map[uint64]int32
	deleted map[uint64]struct{}

	bidMax    Price
	hasBidMax bool
	askMin    Price
	hasAskMin bool
	last      Price
	hasLast   bool
}

// Options configures a book. Zero values fall back to defaults.
type Options struct {
	// TickSize is the minimum price increment. Must be positive.
	TickSize Price
	// Backend selects the price index structure.
	Backend BackendKind
	// MaxTicks bounds the dense array window [0, MaxTicks). Ignored by
	// the hash and tree backends.
	MaxTicks int64
	// MaxOrders sizes the slot arena.
	MaxOrders int
}

const (
	defaultMaxTicks  = 30_000_000
	defaultMaxOrders = 10_000
)

// NewBook creates an empty book for one symbol. A non-positive tick
// size is rejected because the tick mapping would be undefined; all
// other order-level preconditions (positive quantity in particular)
// remain caller obligations.
func NewBook(symbol string, opts Options) (*Book, error) {
	if opts.TickSize <= 0 {
		return nil, ErrPriceOutOfRange
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = defaultMaxTicks
	}
	if opts.MaxOrders <= 0 {
		opts.MaxOrders = defaultMaxOrders
	}
	return &Book{
		symbol:   symbol,
		tickSize: opts.TickSize,
		backend:  opts.Backend,
		bids:     newPriceIndex(opts.Backend, opts.MaxTicks),
		asks:     newPriceIndex(opts.Backend, opts.MaxTicks),
		arena:    newArena(opts.MaxOrders),
		index:    make(map[uint64]int32, opts.MaxOrders),
		deleted:  make(map[uint64]struct{}),
	}, nil
}

func (b *Book) Symbol() string       { return b.symbol }
func (b *Book) TickSize() Price      { return b.tickSize }
func (b *Book) Backend() BackendKind { return b.backend }

// Len returns the number of live (non-tombstoned) orders.
func (b *Book) Len() int { return len(b.index) }

func (b *Book) side(s Side) PriceIndex {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// AddOrder rests an order in the book. Validation happens before any
// mutation: on error the book is untouched.
func (b *Book) AddOrder(o Order) error {
	if o.Symbol() != b.symbol {
		return &SymbolMismatchError{Expected: b.symbol, Actual: o.Symbol()}
	}
	id := o.OrderID()
	if _, ok := b.index[id]; ok {
		return ErrOrderAlreadyExists
	}
	tick := PriceToTick(o.Price(), b.tickSize)
	idx := b.side(o.Side())
	if tick < 0 || !idx.Contains(tick) {
		return ErrPriceOutOfRange
	}
	if b.arena.full() {
		return ErrCapacityExceeded
	}

	si := b.arena.alloc(o)
	b.index[id] = si
	delete(b.deleted, id)

	lvl := idx.Upsert(tick)
	if lvl.tail != noSlot {
		b.arena.at(lvl.tail).next = si
	}
	lvl.pushBack(si)

	b.noteInsert(o.Price(), o.Side())
	return nil
}

// Validate runs AddOrder's admission checks without mutating the
// book. The matching service calls it before walking the opposite
// side so a rejected order produces no fills.
func (b *Book) Validate(o Order) error {
	if o.Symbol() != b.symbol {
		return &SymbolMismatchError{Expected: b.symbol, Actual: o.Symbol()}
	}
	if _, ok := b.index[o.OrderID()]; ok {
		return ErrOrderAlreadyExists
	}
	tick := PriceToTick(o.Price(), b.tickSize)
	if tick < 0 || !b.side(o.Side()).Contains(tick) {
		return ErrPriceOutOfRange
	}
	return nil
}

// RemoveOrder tombstones an order in O(1). The FIFO chain is not
// relinked; matching skips tombstoned slots. Returns whether the id
// was live.
func (b *Book) RemoveOrder(id uint64) bool {
	si, ok := b.index[id]
	if !ok {
		return false
	}
	b.arena.tombstone(si)
	delete(b.index, id)
	b.deleted[id] = struct{}{}
	return true
}

// FindOrder returns the live order with the given id.
func (b *Book) FindOrder(id uint64) (Order, bool) {
	si, ok := b.index[id]
	if !ok {
		return nil, false
	}
	o := b.arena.at(si).order
	if o == nil {
		return nil, false
	}
	return o, true
}

// MatchOrders walks the opposite side's occupied levels from the best
// price toward limit (inclusive), consuming FIFO chains oldest first
// and skipping tombstones, until qty is exhausted or no eligible
// order remains. It never mutates book state: the caller applies
// fills and removals afterward, so arbitrary validation can happen
// between matching and application.
func (b *Book) MatchOrders(side Side, limit Price, qty Quantity) ([]Order, Quantity) {
	remaining := qty
	limitTick := PriceToTick(limit, b.tickSize)
	if limitTick < 0 {
		return nil, qty
	}

	var matched []Order
	walkLevel := func(_ int64, lvl *priceLevel) bool {
		for cur := lvl.head; cur != noSlot && remaining > 0; {
			s := b.arena.at(cur)
			if s.order != nil {
				avail := s.order.Quantity() - s.order.FilledQuantity()
				if avail > 0 {
					fill := min(avail, remaining)
					remaining -= fill
					matched = append(matched, s.order)
				}
			}
			cur = s.next
		}
		return remaining > 0
	}

	switch side {
	case Buy:
		// Incoming buy consumes asks from the lowest price up to limit.
		if !b.hasAskMin {
			return nil, qty
		}
		fromTick := PriceToTick(b.askMin, b.tickSize)
		if fromTick > limitTick {
			return nil, qty
		}
		b.asks.AscendRange(fromTick, limitTick, walkLevel)
	default:
		// Incoming sell consumes bids from the highest price down to limit.
		if !b.hasBidMax {
			return nil, qty
		}
		toTick := PriceToTick(b.bidMax, b.tickSize)
		if toTick < limitTick {
			return nil, qty
		}
		b.bids.DescendRange(limitTick, toTick, walkLevel)
	}
	return matched, remaining
}

// BestBid returns the cached best bid. The cache is maintained on
// insert only; after the best order is removed it can be stale, which
// matching tolerates (a stale best only widens the scan range).
func (b *Book) BestBid() (Price, bool) {
	return b.bidMax, b.hasBidMax
}

// BestAsk returns the cached best ask. Same staleness contract as
// BestBid.
func (b *Book) BestAsk() (Price, bool) {
	return b.askMin, b.hasAskMin
}

// LastPrice returns the last trade price recorded by the settlement
// caller via UpdateLastPrice.
func (b *Book) LastPrice() (Price, bool) {
	return b.last, b.hasLast
}

func (b *Book) UpdateLastPrice(p Price) {
	b.last = p
	b.hasLast = true
}

func (b *Book) noteInsert(p Price, s Side) {
	switch s {
	case Buy:
		if !b.hasBidMax || p > b.bidMax {
			b.bidMax = p
			b.hasBidMax = true
		}
	default:
		if !b.hasAskMin || p < b.askMin {
			b.askMin = p
			b.hasAskMin = true
		}
	}
}

// EachOrder visits every live order in arrival order. Used by
// snapshot writers and the gRPC depth query; not a hot path.
func (b *Book) EachOrder(fn func(Order) bool) {
	for i := range b.arena.slots {
		if o := b.arena.slots[i].order; o != nil {
			if !fn(o) {
				return
			}
		}
	}
}
