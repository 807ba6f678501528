package album

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"albumizer/internal/domain"
	"albumizer/internal/migrate"
)

func TestPostgres_CreateRejectsDuplicateTitlePerOwner(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	ownerID := insertUser(ctx, t, pool, "lisa")
	otherID := insertUser(ctx, t, pool, "antero")

	repo := NewPostgres(pool)
	if _, err := repo.Create(ctx, CreateAlbumInput{OwnerID: ownerID, Title: "Holiday Memories"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := repo.Create(ctx, CreateAlbumInput{OwnerID: ownerID, Title: "Holiday Memories"})
	if !errors.Is(err, domain.ErrDuplicateAlbumTitle) {
		t.Fatalf("duplicate title error = %v, want ErrDuplicateAlbumTitle", err)
	}

	// the same title under another owner is fine
	if _, err := repo.Create(ctx, CreateAlbumInput{OwnerID: otherID, Title: "Holiday Memories"}); err != nil {
		t.Fatalf("Create for other owner: %v", err)
	}
}

func insertUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, username string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, 'x') RETURNING id`, username,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert user %s: %v", username, err)
	}
	return id
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	const q = `TRUNCATE payments, order_items, orders, cart_lines, pages, addresses, albums, users RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(ctx, q); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
