package lob

import (
	"fmt"
	"strconv"

	"tickmatch/domain/changelog"
)

type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// ParseSide converts the change log rendering back to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return Buy, fmt.Errorf("unknown side %q", s)
	}
}

// Order is the capability contract the book requires from resting
// orders. Orders are produced by an upstream acceptance layer; the
// book only reads the contract and, for replay, applies tracked field
// changes through the changelog.Entity capability.
type Order interface {
	changelog.Entity

	OrderID() uint64
	Price() Price
	Quantity() Quantity
	FilledQuantity() Quantity
	Side() Side
	Symbol() string

	// Clone returns an independent deep copy, used by snapshots.
	Clone() Order
}

// LimitOrder is the concrete resting order used by the engine.
type LimitOrder struct {
	ID        uint64
	Sym       string
	OrdSide   Side
	LimitPx   Price
	Qty       Quantity
	Filled    Quantity
	CreatedAt uint64
	UpdatedAt uint64
}

func (o *LimitOrder) OrderID() uint64          { return o.ID }
func (o *LimitOrder) Price() Price             { return o.LimitPx }
func (o *LimitOrder) Quantity() Quantity       { return o.Qty }
func (o *LimitOrder) FilledQuantity() Quantity { return o.Filled }
func (o *LimitOrder) Side() Side               { return o.OrdSide }
func (o *LimitOrder) Symbol() string           { return o.Sym }

// Remaining is the unfilled quantity still resting in the book.
func (o *LimitOrder) Remaining() Quantity { return o.Qty - o.Filled }

func (o *LimitOrder) Clone() Order {
	cp := *o
	return &cp
}

// ---- changelog.Entity ----

const orderEntityType = "order"

func (o *LimitOrder) EntityID() string   { return strconv.FormatUint(o.ID, 10) }
func (o *LimitOrder) EntityType() string { return orderEntityType }

// Diff returns the field changes turning prev into o. A nil prev
// yields the full field map for a Created entry.
func (o *LimitOrder) Diff(prev changelog.Entity) []changelog.FieldChange {
	var p *LimitOrder
	if prev != nil {
		p, _ = prev.(*LimitOrder)
	}
	var out []changelog.FieldChange
	add := func(name, oldV, newV string) {
		if p == nil || oldV != newV {
			out = append(out, changelog.FieldChange{Name: name, OldValue: oldV, NewValue: newV})
		}
	}
	if p == nil {
		add("id", "", strconv.FormatUint(o.ID, 10))
		add("symbol", "", o.Sym)
		add("side", "", o.OrdSide.String())
		add("price", "", o.LimitPx.String())
		add("qty", "", o.Qty.String())
		add("filled", "", o.Filled.String())
		return out
	}
	add("symbol", p.Sym, o.Sym)
	add("side", p.OrdSide.String(), o.OrdSide.String())
	add("price", p.LimitPx.String(), o.LimitPx.String())
	add("qty", p.Qty.String(), o.Qty.String())
	add("filled", p.Filled.String(), o.Filled.String())
	return out
}

// ApplyChange applies an Updated entry's changed fields, type-checked
// per field. Unknown field names are skipped so streams produced by a
// newer schema still replay.
func (o *LimitOrder) ApplyChange(entry *changelog.Entry) error {
	if entry.EntityID != o.EntityID() {
		return &changelog.FieldError{Field: "id", Reason: "entry targets entity " + entry.EntityID}
	}
	for _, f := range entry.Changed {
		switch f.Name {
		case "symbol":
			o.Sym = f.NewValue
		case "side":
			side, err := ParseSide(f.NewValue)
			if err != nil {
				return &changelog.FieldError{Field: "side", Reason: err.Error()}
			}
			o.OrdSide = side
		case "price":
			px, err := ParsePrice(f.NewValue)
			if err != nil {
				return &changelog.FieldError{Field: "price", Reason: err.Error()}
			}
			o.LimitPx = px
		case "qty":
			q, err := ParseQuantity(f.NewValue)
			if err != nil {
				return &changelog.FieldError{Field: "qty", Reason: err.Error()}
			}
			o.Qty = q
		case "filled":
			q, err := ParseQuantity(f.NewValue)
			if err != nil {
				return &changelog.FieldError{Field: "filled", Reason: err.Error()}
			}
			o.Filled = q
		}
	}
	o.UpdatedAt = entry.Timestamp
	return nil
}

// OrderFromCreated reconstructs an order from a Created entry. The id
// comes from the entity stream; price and qty are required fields,
// symbol, side and filled fall back to zero values when the producer
// did not track them.
func OrderFromCreated(e *changelog.Entry) (*LimitOrder, error) {
	id, err := strconv.ParseUint(e.EntityID, 10, 64)
	if err != nil {
		return nil, &changelog.FieldError{Field: "id", Reason: "unparseable entity id " + e.EntityID}
	}
	o := &LimitOrder{ID: id, CreatedAt: e.Timestamp, UpdatedAt: e.Timestamp}

	px, ok := e.Field("price")
	if !ok {
		return nil, &changelog.FieldError{Field: "price", Reason: "missing required field"}
	}
	if o.LimitPx, err = ParsePrice(px.NewValue); err != nil {
		return nil, &changelog.FieldError{Field: "price", Reason: err.Error()}
	}

	qty, ok := e.Field("qty")
	if !ok {
		return nil, &changelog.FieldError{Field: "qty", Reason: "missing required field"}
	}
	if o.Qty, err = ParseQuantity(qty.NewValue); err != nil {
		return nil, &changelog.FieldError{Field: "qty", Reason: err.Error()}
	}

	if f, ok := e.Field("symbol"); ok {
		o.Sym = f.NewValue
	}
	if f, ok := e.Field("side"); ok {
		if o.OrdSide, err = ParseSide(f.NewValue); err != nil {
			return nil, &changelog.FieldError{Field: "side", Reason: err.Error()}
		}
	}
	if f, ok := e.Field("filled"); ok {
		if o.Filled, err = ParseQuantity(f.NewValue); err != nil {
			return nil, &changelog.FieldError{Field: "filled", Reason: err.Error()}
		}
	}
	return o, nil
}
