package lob

// noSlot marks an empty chain end in a price level or arena slot.
const noSlot int32 = -1

// priceLevel holds the FIFO chain of arena slot indices resting at one
// (tick, side). The level owns only indices; order values live in the
// arena. Tombstoned members stay linked and are skipped by readers, so
// a level is logically empty once every member is tombstoned.
type priceLevel struct {
	head int32
	tail int32
}

func newPriceLevel() priceLevel {
	return priceLevel{head: noSlot, tail: noSlot}
}

// pushBack appends a slot index to the chain tail. The caller links
// the previous tail's next pointer in the arena.
func (l *priceLevel) pushBack(idx int32) {
	if l.head == noSlot {
		l.head = idx
	}
	l.tail = idx
}
