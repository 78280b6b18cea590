package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Orders reference products by id; price changes
// after an order is placed do not rewrite that order, because the charged
// amount is fixed at checkout-session time.
type Product struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Description string
	Price       decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceCents returns the price in minor currency units, the form the
// payment gateway expects for line items.
func (p *Product) PriceCents() int64 {
	return p.Price.Mul(decimal.NewFromInt(100)).IntPart()
}

// Voucher is a single-use entitlement token. IsActive means unredeemed.
type Voucher struct {
	ID        uuid.UUID
	Number    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Redeem flips the voucher to used. A voucher redeems exactly once.
func (v *Voucher) Redeem() error {
	if !v.IsActive {
		return NewVoucherAlreadyUsedError()
	}
	v.IsActive = false
	v.UpdatedAt = time.Now()
	return nil
}
