package lob

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price and Quantity are fixed-point values scaled by 1e6. All hot
// path arithmetic stays in int64; decimal conversion happens only at
// the boundary (config, change log field values).
type Price int64

type Quantity int64

const fpScale = 6

// ParsePrice converts a decimal string ("100.005") to a fixed-point
// Price, truncating below micro precision.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return Price(d.Shift(fpScale).IntPart()), nil
}

// ParseQuantity converts a decimal string to a fixed-point Quantity.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse quantity %q: %w", s, err)
	}
	return Quantity(d.Shift(fpScale).IntPart()), nil
}

func (p Price) String() string {
	return decimal.New(int64(p), -fpScale).String()
}

func (q Quantity) String() string {
	return decimal.New(int64(q), -fpScale).String()
}

// PriceToTick quantizes a price onto the tick grid by truncation:
// tick = floor(price / tickSize). The mapping is deterministic and
// lossy. A negative result means the price is not representable.
func PriceToTick(p, tickSize Price) int64 {
	if tickSize <= 0 {
		return -1
	}
	if p < 0 {
		return -1
	}
	return int64(p / tickSize)
}

// TickToPrice maps a tick back to the lowest price on that tick.
func TickToPrice(tick int64, tickSize Price) Price {
	return Price(tick) * tickSize
}
