// Package snapshot persists point-in-time book state to disk with gob
// encoding. Files are stamped with the change sequence they capture;
// recovery loads the newest one and replays the log tail after it.
package snapshot

import "time"

type Snapshot struct {
	Symbol   string
	TickSize int64
	Seq      uint64
	Created  time.Time

	HasLast bool
	Last    int64

	Orders []OrderEntry
}

// OrderEntry is a flat rendering of one resting order. Entries keep
// book arrival order so a rebuilt book preserves time priority.
type OrderEntry struct {
	ID        uint64
	Symbol    string
	Side      uint8
	Price     int64
	Qty       int64
	Filled    int64
	CreatedAt uint64
	UpdatedAt uint64
}
