package favorite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestRepository_Integration connects to a real PostgreSQL via DATABASE_URL
// and verifies the composite-key semantics: duplicate inserts surface
// ErrAlreadyExists and deletes are idempotent.
func TestRepository_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is empty; set it to a live PostgreSQL to run integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	defer pool.Close()

	if !tableExists(ctx, t, pool, "favorites") || !tableExists(ctx, t, pool, "properties") {
		t.Skip("database schema missing; apply migrations/ against $DATABASE_URL first")
	}

	var propertyID string
	if err := pool.QueryRow(ctx,
		`INSERT INTO properties (title, operation, type) VALUES ($1, 'venta', 'casa') RETURNING id`,
		fmt.Sprintf("Casa integracion %d", time.Now().UnixNano())).Scan(&propertyID); err != nil {
		t.Fatalf("seed property: %v", err)
	}
	userID := "9a3f2b44-6a7e-4f6e-8b1d-2f9e3c4d5a61"

	t.Cleanup(func() {
		ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel2()
		pool.Exec(ctx2, `DELETE FROM favorites WHERE property_id = $1`, propertyID)
		pool.Exec(ctx2, `DELETE FROM properties WHERE id = $1`, propertyID)
	})

	repo := NewRepository(pool)

	if err := repo.Insert(ctx, userID, propertyID); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := repo.Insert(ctx, userID, propertyID); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate insert err = %v, want ErrAlreadyExists", err)
	}

	present, err := repo.Exists(ctx, userID, propertyID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !present {
		t.Fatal("row missing after insert")
	}

	rows, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].PropertyID != propertyID {
		t.Fatalf("listing = %v, want the single inserted row", rows)
	}

	if err := repo.Delete(ctx, userID, propertyID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting an absent row is not an error.
	if err := repo.Delete(ctx, userID, propertyID); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}

	present, err = repo.Exists(ctx, userID, propertyID)
	if err != nil {
		t.Fatalf("exists after delete: %v", err)
	}
	if present {
		t.Fatal("row remains after delete")
	}
}

func tableExists(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string) bool {
	t.Helper()
	var exists bool
	if err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
		name).Scan(&exists); err != nil {
		t.Fatalf("check table %s: %v", name, err)
	}
	return exists
}
