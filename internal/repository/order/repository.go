package order

import (
	"context"

	"albumizer/internal/domain"
)

type OrderItemInput struct {
	AlbumID   int64
	Quantity  int
	AddressID int64
}

type CreateOrderInput struct {
	OrdererID int64
	Items     []OrderItemInput
}

type Repository interface {
	// Create inserts the order and its items and clears the orderer's cart in
	// one transaction: either everything happens or nothing does.
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByOrderer(ctx context.Context, ordererID int64) ([]domain.Order, error)
	ItemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, clarification string) error
}
