package address

import (
	"context"

	"albumizer/internal/domain"
)

type CreateAddressInput struct {
	OwnerID int64
	Line1   string
	Line2   string
	ZipCode string
	City    string
	State   string
	Country string
}

type Repository interface {
	Create(ctx context.Context, in CreateAddressInput) (*domain.Address, error)
	GetByID(ctx context.Context, id int64) (*domain.Address, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Address, error)
}
