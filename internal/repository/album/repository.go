package album

import (
	"context"

	"albumizer/internal/domain"
)

type CreateAlbumInput struct {
	OwnerID     int64
	Title       string
	Description string
	IsPublic    bool
}

type Repository interface {
	Create(ctx context.Context, in CreateAlbumInput) (*domain.Album, error)
	GetByID(ctx context.Context, id int64) (*domain.Album, error)
	LatestPublic(ctx context.Context, limit int) ([]domain.Album, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Album, error)
	AddPage(ctx context.Context, albumID int64, pageNumber int, layoutID string) error
}
