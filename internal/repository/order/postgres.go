package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"albumizer/internal/domain"
	"albumizer/internal/repository/pgerr"
)

// maxTimestampPerturbations bounds the retry loop for purchase-date
// collisions. (orderer, purchase_date) is a database unique key, so two
// orders created within the clock granularity must not share a timestamp.
const maxTimestampPerturbations = 100

type postgresRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool, now: time.Now}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ord, err := r.insertOrder(ctx, tx, in.OrdererID)
	if err != nil {
		return nil, err
	}

	const itemQuery = `
INSERT INTO order_items (order_id, album_id, quantity, address_id)
VALUES ($1, $2, $3, $4)
`
	for _, item := range in.Items {
		if _, err := tx.Exec(ctx, itemQuery, ord.ID, item.AlbumID, item.Quantity, item.AddressID); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, in.OrdererID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ord, nil
}

// insertOrder inserts the order row, perturbing the purchase timestamp by a
// millisecond per attempt until it no longer collides with an existing
// (orderer, purchase_date) pair. Each attempt runs inside a savepoint: a
// unique violation would otherwise abort the surrounding transaction.
func (r *postgresRepo) insertOrder(ctx context.Context, tx pgx.Tx, ordererID int64) (*domain.Order, error) {
	const q = `
INSERT INTO orders (orderer_id, purchase_date, status)
VALUES ($1, $2, $3)
RETURNING id, orderer_id, purchase_date, status, status_clarification
`
	purchaseDate := r.now().UTC()
	for attempt := 0; attempt < maxTimestampPerturbations; attempt++ {
		nested, err := tx.Begin(ctx)
		if err != nil {
			return nil, err
		}

		var ord domain.Order
		err = nested.QueryRow(ctx, q, ordererID, purchaseDate, domain.StatusOrdered).Scan(
			&ord.ID, &ord.OrdererID, &ord.PurchaseDate, &ord.Status, &ord.StatusClarification,
		)
		if err == nil {
			if err := nested.Commit(ctx); err != nil {
				return nil, err
			}
			ord.StatusText = ord.Status.String()
			return &ord, nil
		}

		if rbErr := nested.Rollback(ctx); rbErr != nil {
			return nil, rbErr
		}
		if !pgerr.IsUniqueViolation(err, "orders_orderer_id_purchase_date_key") {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		purchaseDate = purchaseDate.Add(time.Millisecond)
	}
	return nil, fmt.Errorf("insert order: could not find a free purchase timestamp")
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT id, orderer_id, purchase_date, status, status_clarification
FROM orders
WHERE id = $1
`
	var ord domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&ord.ID, &ord.OrdererID, &ord.PurchaseDate, &ord.Status, &ord.StatusClarification,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	ord.StatusText = ord.Status.String()
	return &ord, nil
}

func (r *postgresRepo) ListByOrderer(ctx context.Context, ordererID int64) ([]domain.Order, error) {
	const q = `
SELECT id, orderer_id, purchase_date, status, status_clarification
FROM orders
WHERE orderer_id = $1
ORDER BY orderer_id, purchase_date
`
	rows, err := r.pool.Query(ctx, q, ordererID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var ord domain.Order
		if err := rows.Scan(
			&ord.ID, &ord.OrdererID, &ord.PurchaseDate, &ord.Status, &ord.StatusClarification,
		); err != nil {
			return nil, err
		}
		ord.StatusText = ord.Status.String()
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) ItemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const q = `
SELECT id, order_id, album_id, quantity, address_id
FROM order_items
WHERE order_id = $1
ORDER BY order_id, album_id
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.AlbumID, &item.Quantity, &item.AddressID,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, clarification string) error {
	const q = `
UPDATE orders
SET status = $1, status_clarification = $2
WHERE id = $3
`
	cmd, err := r.pool.Exec(ctx, q, status, clarification, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
