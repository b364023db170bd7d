package lob

import (
	"fmt"
	"sort"
)

// BackendKind selects the price index structure backing one side of a
// book. All backends satisfy the same contract; the matching walk is
// written once against PriceIndex.
type BackendKind uint8

const (
	// DenseArray indexes levels by tick in a bounded pre-allocated
	// window: O(1) access, direct index walks, fixed price range.
	DenseArray BackendKind = iota
	// HashMap keys levels by tick in a map: O(1) expected access,
	// unbounded range, range scans collect and sort occupied ticks.
	HashMap
	// RBTree keys levels by tick in a red-black tree: O(log m) access,
	// unbounded range, native ordered range iteration.
	RBTree
)

func (k BackendKind) String() string {
	switch k {
	case DenseArray:
		return "dense"
	case HashMap:
		return "hash"
	case RBTree:
		return "rbtree"
	default:
		return "unknown"
	}
}

// ParseBackend converts the configuration rendering back to a
// BackendKind.
func ParseBackend(s string) (BackendKind, error) {
	switch s {
	case "dense", "":
		return DenseArray, nil
	case "hash":
		return HashMap, nil
	case "rbtree":
		return RBTree, nil
	default:
		return DenseArray, fmt.Errorf("unknown backend %q", s)
	}
}

// PriceIndex maps quantized ticks to price levels for one book side.
// Range iteration visits only levels with a non-empty chain head, in
// tick order, and stops early when fn returns false.
type PriceIndex interface {
	// Contains reports whether the tick is representable.
	Contains(tick int64) bool
	// Get returns the level at tick, or nil when none was created.
	Get(tick int64) *priceLevel
	// Upsert returns the level at tick, creating it if needed. The
	// caller must have checked Contains.
	Upsert(tick int64) *priceLevel
	// AscendRange visits occupied levels with from <= tick <= to in
	// ascending tick order.
	AscendRange(from, to int64, fn func(tick int64, lvl *priceLevel) bool)
	// DescendRange visits occupied levels with from <= tick <= to in
	// descending tick order.
	DescendRange(from, to int64, fn func(tick int64, lvl *priceLevel) bool)
	// Clone returns an independent deep copy for snapshots.
	Clone() PriceIndex
}

func newPriceIndex(kind BackendKind, maxTicks int64) PriceIndex {
	switch kind {
	case HashMap:
		return newHashIndex()
	case RBTree:
		return newTreeIndex()
	default:
		return newDenseIndex(maxTicks)
	}
}

// ---- dense array backend ----

type denseIndex struct {
	levels []priceLevel
}

func newDenseIndex(maxTicks int64) *denseIndex {
	levels := make([]priceLevel, maxTicks)
	for i := range levels {
		levels[i] = newPriceLevel()
	}
	return &denseIndex{levels: levels}
}

func (d *denseIndex) Contains(tick int64) bool {
	return tick >= 0 && tick < int64(len(d.levels))
}

func (d *denseIndex) Get(tick int64) *priceLevel {
	if !d.Contains(tick) {
		return nil
	}
	return &d.levels[tick]
}

func (d *denseIndex) Upsert(tick int64) *priceLevel {
	return &d.levels[tick]
}

func (d *denseIndex) AscendRange(from, to int64, fn func(int64, *priceLevel) bool) {
	from = max(from, 0)
	to = min(to, int64(len(d.levels))-1)
	for t := from; t <= to; t++ {
		if d.levels[t].head == noSlot {
			continue
		}
		if !fn(t, &d.levels[t]) {
			return
		}
	}
}

func (d *denseIndex) DescendRange(from, to int64, fn func(int64, *priceLevel) bool) {
	from = max(from, 0)
	to = min(to, int64(len(d.levels))-1)
	for t := to; t >= from; t-- {
		if d.levels[t].head == noSlot {
			continue
		}
		if !fn(t, &d.levels[t]) {
			return
		}
	}
}

func (d *denseIndex) Clone() PriceIndex {
	cp := &denseIndex{levels: make([]priceLevel, len(d.levels))}
	copy(cp.levels, d.levels)
	return cp
}

// ---- hash map backend ----

type hashIndex struct {
	levels map[int64]*priceLevel
}

func newHashIndex() *hashIndex {
	return &hashIndex{levels: make(map[int64]*priceLevel)}
}

func (h *hashIndex) Contains(tick int64) bool {
	return tick >= 0
}

func (h *hashIndex) Get(tick int64) *priceLevel {
	return h.levels[tick]
}

func (h *hashIndex) Upsert(tick int64) *priceLevel {
	if lvl, ok := h.levels[tick]; ok {
		return lvl
	}
	lvl := newPriceLevel()
	h.levels[tick] = &lvl
	return h.levels[tick]
}

// occupiedIn collects and sorts the occupied ticks in [from, to].
// O(m log m) per match walk; the price of unbounded O(1) inserts.
func (h *hashIndex) occupiedIn(from, to int64) []int64 {
	ticks := make([]int64, 0, 16)
	for t, lvl := range h.levels {
		if t >= from && t <= to && lvl.head != noSlot {
			ticks = append(ticks, t)
		}
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })
	return ticks
}

func (h *hashIndex) AscendRange(from, to int64, fn func(int64, *priceLevel) bool) {
	for _, t := range h.occupiedIn(from, to) {
		if !fn(t, h.levels[t]) {
			return
		}
	}
}

func (h *hashIndex) DescendRange(from, to int64, fn func(int64, *priceLevel) bool) {
	ticks := h.occupiedIn(from, to)
	for i := len(ticks) - 1; i >= 0; i-- {
		if !fn(ticks[i], h.levels[ticks[i]]) {
			return
		}
	}
}

func (h *hashIndex) Clone() PriceIndex {
	cp := newHashIndex()
	for t, lvl := range h.levels {
		l := *lvl
		cp.levels[t] = &l
	}
	return cp
}
