package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPropertyVanished signals the referenced property disappeared between the
// existence check and the insert.
var ErrPropertyVanished = errors.New("lead: referenced property no longer exists")

// Store abstracts lead persistence for the service.
type Store interface {
	Create(ctx context.Context, l Lead) (Lead, error)
	List(ctx context.Context, filters ListFilters) ([]Lead, int, error)
}

// Repository is the pgx-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a lead row. Duplicate submissions create duplicate rows;
// the funnel has no idempotency by design.
func (r *Repository) Create(ctx context.Context, l Lead) (Lead, error) {
	const insertSQL = `
		INSERT INTO leads (property_id, name, phone, email, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, property_id, name, phone, email, message, created_at
	`

	var stored Lead
	err := r.pool.QueryRow(ctx, insertSQL, l.PropertyID, l.Name, l.Phone, l.Email, l.Message).
		Scan(&stored.ID, &stored.PropertyID, &stored.Name, &stored.Phone, &stored.Email, &stored.Message, &stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Lead{}, ErrPropertyVanished
		}
		return Lead{}, fmt.Errorf("lead: insert: %w", err)
	}

	return stored, nil
}

// List fetches a page of leads, newest first, plus the unpaged total.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Lead, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	clause := ""
	args := []any{}
	if filters.PropertyID != "" {
		args = append(args, filters.PropertyID)
		clause = " WHERE property_id = $1"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("lead: count: %w", err)
	}

	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)
	query := fmt.Sprintf(`
		SELECT id, property_id, name, phone, email, message, created_at
		FROM leads%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, clause, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("lead: list: %w", err)
	}
	defer rows.Close()

	leads := []Lead{}
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.PropertyID, &l.Name, &l.Phone, &l.Email, &l.Message, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("lead: scan: %w", err)
		}
		leads = append(leads, l)
	}

	return leads, total, rows.Err()
}
