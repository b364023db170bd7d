package lob

// slot is one arena entry: the order value plus the intrusive next
// index forming a price level's FIFO chain. A nil order marks a
// tombstone; the next link survives tombstoning so chain walks stay
// valid without relinking.
type slot struct {
	order Order
	next  int32
}

// arena is a flat, pre-sized order store addressed by integer index.
// It owns the order values exclusively; price levels and the order
// index hold only indices into it. Slots are append-only during
// normal operation and tombstoned slots are never reclaimed, so
// sustained cancel/replace churn consumes capacity until a rebuild.
type arena struct {
	slots []slot
	cap   int
}

func newArena(capacity int) *arena {
	return &arena{slots: make([]slot, 0, capacity), cap: capacity}
}

func (a *arena) full() bool {
	return len(a.slots) >= a.cap
}

// alloc appends an order and returns its slot index. The caller must
// have checked full() first.
func (a *arena) alloc(o Order) int32 {
	a.slots = append(a.slots, slot{order: o, next: noSlot})
	return int32(len(a.slots) - 1)
}

func (a *arena) at(idx int32) *slot {
	return &a.slots[idx]
}

// tombstone marks a slot empty in O(1) without unlinking it from its
// chain.
func (a *arena) tombstone(idx int32) {
	a.slots[idx].order = nil
}

func (a *arena) clone() *arena {
	cp := &arena{slots: make([]slot, len(a.slots), a.cap), cap: a.cap}
	for i, s := range a.slots {
		cp.slots[i].next = s.next
		if s.order != nil {
			cp.slots[i].order = s.order.Clone()
		}
	}
	return cp
}
