package cart

import (
	"context"

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

func (r *postgresRepo) Add(ctx context.Context, in AddLineInput) (*domain.CartLine, error) {
	const q = `
INSERT INTO cart_lines (user_id, album_id, quantity)
VALUES ($1, $2, $3)
RETURNING id, user_id, album_id, quantity, address_id, added_at
`
	var line domain.CartLine
	err := r.pool.QueryRow(ctx, q, in.UserID, in.AlbumID, in.Quantity).Scan(
		&line.ID, &line.UserID, &line.AlbumID, &line.Quantity, &line.AddressID, &line.AddedAt,
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "cart_lines_user_id_album_id_key") {
			return nil, domain.ErrDuplicateItem
		}
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	const q = `
SELECT id, user_id, album_id, quantity, address_id, added_at
FROM cart_lines
WHERE user_id = $1
ORDER BY user_id, album_id
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID, &line.UserID, &line.AlbumID, &line.Quantity, &line.AddressID, &line.AddedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, userID, albumID int64, quantity int) error {
	const q = `
UPDATE cart_lines
SET quantity = $1
WHERE user_id = $2 AND album_id = $3
`
	cmd, err := r.pool.Exec(ctx, q, quantity, userID, albumID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

func (r *postgresRepo) SetAddress(ctx context.Context, userID, albumID, addressID int64) error {
	const q = `
UPDATE cart_lines
SET address_id = $1
WHERE user_id = $2 AND album_id = $3
`
	cmd, err := r.pool.Exec(ctx, q, addressID, userID, albumID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, albumID int64) error {
	const q = `
DELETE FROM cart_lines
WHERE user_id = $1 AND album_id = $2
`
	cmd, err := r.pool.Exec(ctx, q, userID, albumID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveAll(ctx context.Context, userID int64) error {
	const q = `
DELETE FROM cart_lines
WHERE user_id = $1
`
	_, err := r.pool.Exec(ctx, q, userID)
	return err
}
