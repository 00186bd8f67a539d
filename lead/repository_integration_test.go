package lead

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
// and verifies the insert path, the foreign-key sentinel and the paged listing.
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

	var exists bool
	if err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'leads')`).Scan(&exists); err != nil {
		t.Fatalf("check schema: %v", err)
	}
	if !exists {
		t.Skip("database schema missing; apply migrations/ against $DATABASE_URL first")
	}

	var propertyID string
	if err := pool.QueryRow(ctx,
		`INSERT INTO properties (title, operation, type) VALUES ($1, 'venta', 'casa') RETURNING id`,
		fmt.Sprintf("Casa consultas %d", time.Now().UnixNano())).Scan(&propertyID); err != nil {
		t.Fatalf("seed property: %v", err)
	}

	t.Cleanup(func() {
		ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel2()
		pool.Exec(ctx2, `DELETE FROM leads WHERE property_id = $1`, propertyID)
		pool.Exec(ctx2, `DELETE FROM properties WHERE id = $1`, propertyID)
	})

	repo := NewRepository(pool)

	created, err := repo.Create(ctx, Lead{
		PropertyID: &propertyID,
		Name:       "Ana Gomez",
		Phone:      "+54 383 4123456",
		Message:    "Quisiera coordinar una visita el fin de semana.",
	})
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("created lead missing generated fields: %+v", created)
	}

	missing := "11111111-1111-4111-8111-111111111111"
	if _, err := repo.Create(ctx, Lead{
		PropertyID: &missing,
		Name:       "Ana Gomez",
		Message:    "Consulta sobre una propiedad inexistente.",
	}); !errors.Is(err, ErrPropertyVanished) {
		t.Fatalf("missing property err = %v, want ErrPropertyVanished", err)
	}

	// Duplicate submissions are distinct rows, never deduplicated.
	if _, err := repo.Create(ctx, Lead{
		PropertyID: &propertyID,
		Name:       "Ana Gomez",
		Phone:      "+54 383 4123456",
		Message:    "Quisiera coordinar una visita el fin de semana.",
	}); err != nil {
		t.Fatalf("duplicate submission: %v", err)
	}

	rows, total, err := repo.List(ctx, ListFilters{PropertyID: propertyID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("listing = %d rows (total %d), want 2", len(rows), total)
	}
}
