package address

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"albumizer/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateAddressInput) (*domain.Address, error) {
	const q = `
INSERT INTO addresses (owner_id, line1, line2, zip_code, city, state, country)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, owner_id, line1, line2, zip_code, city, state, country
`
	var a domain.Address
	err := r.pool.QueryRow(ctx, q,
		in.OwnerID, in.Line1, in.Line2, in.ZipCode, in.City, in.State, in.Country,
	).Scan(&a.ID, &a.OwnerID, &a.Line1, &a.Line2, &a.ZipCode, &a.City, &a.State, &a.Country)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	const q = `
SELECT id, owner_id, line1, line2, zip_code, city, state, country
FROM addresses
WHERE id = $1
`
	var a domain.Address
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.OwnerID, &a.Line1, &a.Line2, &a.ZipCode, &a.City, &a.State, &a.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Address, error) {
	const q = `
SELECT id, owner_id, line1, line2, zip_code, city, state, country
FROM addresses
WHERE owner_id = $1
ORDER BY owner_id, line1
`
	rows, err := r.pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.Line1, &a.Line2, &a.ZipCode, &a.City, &a.State, &a.Country,
		); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}
