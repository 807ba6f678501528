package cart

import (
	"context"

	"albumizer/internal/domain"
)

type AddLineInput struct {
	UserID   int64
	AlbumID  int64
	Quantity int
}

type Repository interface {
	// Add inserts a new cart line. A line for the same (user, album) already
	// existing fails with ErrDuplicateItem; re-adding never merges.
	Add(ctx context.Context, in AddLineInput) (*domain.CartLine, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, albumID int64, quantity int) error
	SetAddress(ctx context.Context, userID, albumID, addressID int64) error
	Remove(ctx context.Context, userID, albumID int64) error
	RemoveAll(ctx context.Context, userID int64) error
}
