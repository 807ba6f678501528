package album

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"albumizer/internal/domain"
	"albumizer/internal/repository/pgerr"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const albumColumns = `
a.id, a.owner_id, a.title, a.description, a.is_public, a.created_at,
(SELECT COUNT(*) FROM pages p WHERE p.album_id = a.id) AS page_count
`

func (r *postgresRepo) Create(ctx context.Context, in CreateAlbumInput) (*domain.Album, error) {
	if err := domain.ValidateAlbumTitle(in.Title); err != nil {
		return nil, err
	}

	const q = `
INSERT INTO albums (owner_id, title, description, is_public)
VALUES ($1, $2, $3, $4)
RETURNING id, owner_id, title, description, is_public, created_at
`
	var a domain.Album
	err := r.pool.QueryRow(ctx, q, in.OwnerID, in.Title, in.Description, in.IsPublic).Scan(
		&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.IsPublic, &a.CreatedAt,
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "albums_owner_id_title_key") {
			return nil, fmt.Errorf("album %q: %w", in.Title, domain.ErrDuplicateAlbumTitle)
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Album, error) {
	q := `SELECT ` + albumColumns + ` FROM albums a WHERE a.id = $1`

	var a domain.Album
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.IsPublic, &a.CreatedAt, &a.PageCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlbumNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) LatestPublic(ctx context.Context, limit int) ([]domain.Album, error) {
	q := `
SELECT ` + albumColumns + `
FROM albums a
WHERE a.is_public
ORDER BY a.created_at DESC
LIMIT $1
`
	return r.fetchAlbums(ctx, q, limit)
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Album, error) {
	q := `
SELECT ` + albumColumns + `
FROM albums a
WHERE a.owner_id = $1
ORDER BY a.title
`
	return r.fetchAlbums(ctx, q, ownerID)
}

func (r *postgresRepo) AddPage(ctx context.Context, albumID int64, pageNumber int, layoutID string) error {
	const q = `
INSERT INTO pages (album_id, page_number, layout_id)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, q, albumID, pageNumber, layoutID)
	return err
}

func (r *postgresRepo) fetchAlbums(ctx context.Context, q string, args ...interface{}) ([]domain.Album, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []domain.Album
	for rows.Next() {
		var a domain.Album
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.Title, &a.Description, &a.IsPublic, &a.CreatedAt, &a.PageCount,
		); err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}
