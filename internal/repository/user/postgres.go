package user

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

func (r *postgresRepo) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	const q = `
INSERT INTO users (username, password_hash)
VALUES ($1, $2)
ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
RETURNING id, username, password_hash, created_at
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, in.Username, in.PasswordHash).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = $1
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
