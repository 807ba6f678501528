package domain

import "time"

// Payment records one verified successful payment callback. At most one
// payment exists per order, and its presence is the sole source of truth for
// "is this order paid".
type Payment struct {
	ID              int64     `json:"id"`
	OrderID         int64     `json:"orderId"`
	Amount          Cents     `json:"-"`
	TransactionDate time.Time `json:"transactionDate"`
	ReferenceCode   string    `json:"referenceCode"`
	Clarification   string    `json:"clarification,omitempty"`
}
