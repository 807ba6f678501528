package payment

import (
	"context"
	"errors"

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

func (r *postgresRepo) Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error) {
	const q = `
INSERT INTO payments (order_id, amount_cents, reference_code, clarification)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, amount_cents, transaction_date, reference_code, clarification
`
	var p domain.Payment
	err := r.pool.QueryRow(ctx, q, in.OrderID, in.Amount, in.ReferenceCode, in.Clarification).Scan(
		&p.ID, &p.OrderID, &p.Amount, &p.TransactionDate, &p.ReferenceCode, &p.Clarification,
	)
	if err != nil {
		if pgerr.IsUniqueViolation(err, "payments_order_id_key") {
			return nil, domain.ErrAlreadyPaid
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetByOrder(ctx context.Context, orderID int64) (*domain.Payment, error) {
	const q = `
SELECT id, order_id, amount_cents, transaction_date, reference_code, clarification
FROM payments
WHERE order_id = $1
`
	var p domain.Payment
	err := r.pool.QueryRow(ctx, q, orderID).Scan(
		&p.ID, &p.OrderID, &p.Amount, &p.TransactionDate, &p.ReferenceCode, &p.Clarification,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}
