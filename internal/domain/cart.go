package domain

import "time"

// Cart line quantity limits. A quantity of zero is not stored; the caller
// routes it to removal instead.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 99
)

// CartLine is one (user, album) entry awaiting checkout. The delivery address
// stays nil until the address step of the checkout wizard assigns one.
type CartLine struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	AlbumID   int64     `json:"albumId"`
	Quantity  int       `json:"quantity"`
	AddressID *int64    `json:"addressId,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}
