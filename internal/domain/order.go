// Package domain encodes the order, catalog and ledger entities and their
// state rules.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the current state of an order in its lifecycle
type OrderStatus int16

const (
	StatusWaitingPayment OrderStatus = iota + 1
	StatusPaid
	StatusCanceled
	StatusRefunded
)

func (s OrderStatus) String() string {
	switch s {
	case StatusWaitingPayment:
		return "WAITING_PAYMENT"
	case StatusPaid:
		return "PAID"
	case StatusCanceled:
		return "CANCELED"
	case StatusRefunded:
		return "REFUNDED"
	default:
		return "UNKNOWN"
	}
}

// Gateway identifies which external payment processor an order was charged
// through.
type Gateway int16

const (
	GatewayStripe Gateway = 1
)

type Order struct {
	ID        uuid.UUID
	Number    string
	UserID    string
	ProductID uuid.UUID
	VoucherID *uuid.UUID
	Status    OrderStatus

	// ExternalReference holds the gateway charge id once the order is
	// paid. Nil until then.
	ExternalReference *string
	Gateway           Gateway

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewOrder(userID string, productID uuid.UUID, voucherID *uuid.UUID) (*Order, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if productID == uuid.Nil {
		return nil, errors.New("product ID is required")
	}

	now := time.Now()
	return &Order{
		ID:        uuid.New(),
		Number:    newOrderNumber(),
		UserID:    userID,
		ProductID: productID,
		VoucherID: voucherID,
		Status:    StatusWaitingPayment,
		Gateway:   GatewayStripe,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// newOrderNumber produces the fixed-width human-facing order code.
func newOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// CanBePaid reports whether the order is still waiting for payment, with a
// status-specific conflict otherwise. The payment gateway is only consulted
// for orders that pass this check.
func (o *Order) CanBePaid() error {
	switch o.Status {
	case StatusWaitingPayment:
		return nil
	case StatusPaid:
		return NewConflictingStateError("order is already paid")
	case StatusCanceled:
		return NewConflictingStateError("order is already canceled and cannot be paid")
	case StatusRefunded:
		return NewConflictingStateError("order is already refunded and cannot be paid")
	default:
		return NewConflictingStateError("order cannot be paid")
	}
}

// MarkPaid transitions the order to paid and records the gateway charge id.
func (o *Order) MarkPaid(externalReference string) error {
	if err := o.CanBePaid(); err != nil {
		return err
	}
	o.Status = StatusPaid
	o.ExternalReference = &externalReference
	o.touch()
	return nil
}

// MarkCanceled transitions the order to canceled. Only orders still waiting
// for payment can be canceled.
func (o *Order) MarkCanceled() error {
	switch o.Status {
	case StatusWaitingPayment:
	case StatusCanceled:
		return NewConflictingStateError("order is already canceled")
	case StatusPaid:
		return NewConflictingStateError("order is already paid and cannot be canceled")
	case StatusRefunded:
		return NewConflictingStateError("order is already refunded and cannot be canceled")
	default:
		return NewConflictingStateError("order cannot be canceled")
	}
	o.Status = StatusCanceled
	o.touch()
	return nil
}

// MarkRefunded transitions the order to refunded. Only paid orders can be
// refunded.
func (o *Order) MarkRefunded() error {
	switch o.Status {
	case StatusPaid:
	case StatusRefunded:
		return NewConflictingStateError("order is already refunded")
	case StatusCanceled:
		return NewConflictingStateError("order is already canceled and cannot be refunded")
	case StatusWaitingPayment:
		return NewConflictingStateError("order has not been paid and cannot be refunded")
	default:
		return NewConflictingStateError("order cannot be refunded")
	}
	o.Status = StatusRefunded
	o.touch()
	return nil
}

// IsTerminal reports whether no further transitions exist for the order.
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case StatusCanceled, StatusRefunded:
		return true
	default:
		return false
	}
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
}
