package domain

import "time"

// OrderStatus is the closed set of states an order moves through. Values are
// persisted as integers, so the numeric codes are part of the schema.
type OrderStatus int16

const (
	StatusOrdered OrderStatus = iota + 1
	StatusPaidAndBeingProcessed
	StatusBlocked
	StatusSent
)

// String returns the human-readable status name.
func (s OrderStatus) String() string {
	switch s {
	case StatusOrdered:
		return "ordered"
	case StatusPaidAndBeingProcessed:
		return "paid and being processed"
	case StatusBlocked:
		return "blocked"
	case StatusSent:
		return "sent"
	default:
		return "unknown"
	}
}

// CanTransitionTo reports whether the status change is allowed. Orders move
// forward only; Blocked is a holding state entered from and resolved back to
// PaidAndBeingProcessed, and Sent is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusOrdered:
		return next == StatusPaidAndBeingProcessed
	case StatusPaidAndBeingProcessed:
		return next == StatusBlocked || next == StatusSent
	case StatusBlocked:
		return next == StatusPaidAndBeingProcessed
	default:
		return false
	}
}

// Order is one placed purchase as a whole. (OrdererID, PurchaseDate) is
// unique; creation perturbs the timestamp on collision.
type Order struct {
	ID                  int64       `json:"id"`
	OrdererID           int64       `json:"ordererId"`
	PurchaseDate        time.Time   `json:"purchaseDate"`
	Status              OrderStatus `json:"-"`
	StatusText          string      `json:"status"`
	StatusClarification string      `json:"statusClarification,omitempty"`
}

// IsMadeBy reports whether the order belongs to the given user.
func (o *Order) IsMadeBy(userID int64) bool {
	return o.OrdererID == userID
}

// OrderItem is the immutable per-album snapshot taken from a cart line when
// the order is created. One row per album per order.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	AlbumID   int64 `json:"albumId"`
	Quantity  int   `json:"quantity"`
	AddressID int64 `json:"addressId"`
}
