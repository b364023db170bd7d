package lob

import (
	"math/rand"
	"testing"
)

// occupy rests one slot index at the tick so range walks see the level.
func occupy(idx PriceIndex, tick int64, slot int32) {
	lvl := idx.Upsert(tick)
	lvl.pushBack(slot)
}

func TestIndexRangeOrdering(t *testing.T) {
	makers := map[string]func() PriceIndex{
		"dense":  func() PriceIndex { return newDenseIndex(1_000) },
		"hash":   func() PriceIndex { return newHashIndex() },
		"rbtree": func() PriceIndex { return newTreeIndex() },
	}
	ticks := []int64{500, 3, 999, 42, 7, 314, 0}

	for name, mk := range makers {
		t.Run(name, func(t *testing.T) {
			idx := mk()
			for i, tick := range ticks {
				occupy(idx, tick, int32(i))
			}

			var asc []int64
			idx.AscendRange(0, 999, func(tick int64, _ *priceLevel) bool {
				asc = append(asc, tick)
				return true
			})
			if len(asc) != len(ticks) {
				t.Fatalf("ascend visited %d levels, want %d", len(asc), len(ticks))
			}
			for i := 1; i < len(asc); i++ {
				if asc[i-1] >= asc[i] {
					t.Fatalf("ascend out of order: %v", asc)
				}
			}

			var desc []int64
			idx.DescendRange(0, 999, func(tick int64, _ *priceLevel) bool {
				desc = append(desc, tick)
				return true
			})
			for i := 1; i < len(desc); i++ {
				if desc[i-1] <= desc[i] {
					t.Fatalf("descend out of order: %v", desc)
				}
			}
		})
	}
}

func TestIndexRangeBounds(t *testing.T) {
	idx := newTreeIndex()
	for _, tick := range []int64{10, 20, 30, 40} {
		occupy(idx, tick, 0)
	}
	var seen []int64
	idx.AscendRange(15, 35, func(tick int64, _ *priceLevel) bool {
		seen = append(seen, tick)
		return true
	})
	if len(seen) != 2 || seen[0] != 20 || seen[1] != 30 {
		t.Fatalf("range [15,35] visited %v, want [20 30]", seen)
	}

	// Early stop.
	count := 0
	idx.AscendRange(0, 100, func(int64, *priceLevel) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("early stop visited %d levels, want 1", count)
	}
}

func TestIndexSkipsEmptyLevels(t *testing.T) {
	idx := newHashIndex()
	idx.Upsert(5) // created but never occupied
	occupy(idx, 9, 0)

	var seen []int64
	idx.AscendRange(0, 100, func(tick int64, _ *priceLevel) bool {
		seen = append(seen, tick)
		return true
	})
	if len(seen) != 1 || seen[0] != 9 {
		t.Fatalf("empty level not skipped: %v", seen)
	}
}

func TestTreeIndexRandomized(t *testing.T) {
	idx := newTreeIndex()
	rng := rand.New(rand.NewSource(1))
	inserted := make(map[int64]bool)
	for i := 0; i < 2_000; i++ {
		tick := int64(rng.Intn(100_000))
		occupy(idx, tick, int32(i))
		inserted[tick] = true
	}

	prev := int64(-1)
	count := 0
	idx.AscendRange(0, 100_000, func(tick int64, _ *priceLevel) bool {
		if tick <= prev {
			t.Fatalf("tree order violated at %d after %d", tick, prev)
		}
		if !inserted[tick] {
			t.Fatalf("tree produced tick %d that was never inserted", tick)
		}
		prev = tick
		count++
		return true
	})
	if count != len(inserted) {
		t.Fatalf("tree visited %d distinct ticks, want %d", count, len(inserted))
	}
}

func TestIndexClone(t *testing.T) {
	for _, kind := range backends {
		t.Run(kind.String(), func(t *testing.T) {
			idx := newPriceIndex(kind, 1_000)
			occupy(idx, 10, 1)

			cp := idx.Clone()
			occupy(idx, 20, 2) // mutate original after clone

			var seen []int64
			cp.AscendRange(0, 999, func(tick int64, _ *priceLevel) bool {
				seen = append(seen, tick)
				return true
			})
			if len(seen) != 1 || seen[0] != 10 {
				t.Fatalf("clone not independent: %v", seen)
			}
		})
	}
}
