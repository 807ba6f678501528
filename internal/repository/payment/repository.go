package payment

import (
	"context"

	"albumizer/internal/domain"
)

type CreatePaymentInput struct {
	OrderID       int64
	Amount        domain.Cents
	ReferenceCode string
	Clarification string
}

type Repository interface {
	// Create inserts the payment for an order. A payment already existing for
	// the order fails with ErrAlreadyPaid; at most one payment per order.
	Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	GetByOrder(ctx context.Context, orderID int64) (*domain.Payment, error)
}
