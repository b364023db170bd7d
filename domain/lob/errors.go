package lob

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderAlreadyExists reports a duplicate id on a live add.
	ErrOrderAlreadyExists = errors.New("lob: order already exists")

	// ErrOrderNotFound reports an operation against an unknown id.
	ErrOrderNotFound = errors.New("lob: order not found")

	// ErrPriceOutOfRange reports a price not representable on the tick
	// grid, or an invalid tick size.
	ErrPriceOutOfRange = errors.New("lob: price out of range")

	// ErrCapacityExceeded reports an exhausted slot arena. The book
	// needs a resize/rebuild before it accepts further adds.
	ErrCapacityExceeded = errors.New("lob: capacity exceeded")

	// ErrSnapshotNotSupported reports a backend without snapshot
	// capability.
	ErrSnapshotNotSupported = errors.New("lob: snapshot not supported")
)

// SymbolMismatchError reports a cross-symbol operation against a
// single-symbol book.
type SymbolMismatchError struct {
	Expected string
	Actual   string
}

func (e *SymbolMismatchError) Error() string {
	return fmt.Sprintf("lob: symbol mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// SerializationError reports a snapshot/replay encode failure.
type SerializationError struct {
	Reason string
}

func (e *SerializationError) Error() string {
	return "lob: serialization failed: " + e.Reason
}

// DeserializationError reports a snapshot/replay decode or entity
// reconstruction failure.
type DeserializationError struct {
	Reason string
}

func (e *DeserializationError) Error() string {
	return "lob: deserialization failed: " + e.Reason
}
