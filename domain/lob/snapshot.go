package lob

// Snapshot is a deep copy of a book's full state, consistent at a
// single sequence point. Creating one is O(state size); restoring is
// wholesale replacement, not incremental.
type Snapshot struct {
	Symbol    string
	TickSize  Price
	Backend   BackendKind
	Timestamp uint64
	Sequence  uint64

	bids    PriceIndex
	asks    PriceIndex
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

// CreateSnapshot captures the book state tagged with the given
// timestamp and change log sequence.
func (b *Book) CreateSnapshot(timestamp, sequence uint64) (*Snapshot, error) {
	s := &Snapshot{
		Symbol:    b.symbol,
		TickSize:  b.tickSize,
		Backend:   b.backend,
		Timestamp: timestamp,
		Sequence:  sequence,
		bids:      b.bids.Clone(),
		asks:      b.asks.Clone(),
		arena:     b.arena.clone(),
		index:     make(map[uint64]int32, len(b.index)),
		deleted:   make(map[uint64]struct{}, len(b.deleted)),
		bidMax:    b.bidMax,
		hasBidMax: b.hasBidMax,
		askMin:    b.askMin,
		hasAskMin: b.hasAskMin,
		last:      b.last,
		hasLast:   b.hasLast,
	}
	for id, si := range b.index {
		s.index[id] = si
	}
	for id := range b.deleted {
		s.deleted[id] = struct{}{}
	}
	return s, nil
}

// RestoreFromSnapshot replaces the book state wholesale with the
// snapshot's. The snapshot stays usable afterwards: state is deep
// copied in, not aliased.
func (b *Book) RestoreFromSnapshot(s *Snapshot) error {
	if s.Symbol != b.symbol {
		return &SymbolMismatchError{Expected: b.symbol, Actual: s.Symbol}
	}
	b.tickSize = s.TickSize
	b.backend = s.Backend
	b.bids = s.bids.Clone()
	b.asks = s.asks.Clone()
	b.arena = s.arena.clone()
	b.index = make(map[uint64]int32, len(s.index))
	for id, si := range s.index {
		b.index[id] = si
	}
	b.deleted = make(map[uint64]struct{}, len(s.deleted))
	for id := range s.deleted {
		b.deleted[id] = struct{}{}
	}
	b.bidMax, b.hasBidMax = s.bidMax, s.hasBidMax
	b.askMin, b.hasAskMin = s.askMin, s.hasAskMin
	b.last, b.hasLast = s.last, s.hasLast
	return nil
}
