package favorite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrAlreadyExists signals the (user, property) pair was already present when
// inserting. Concurrent double-toggles converge through it.
var ErrAlreadyExists = errors.New("favorite: already exists")

// Favorite is an existence-only bookmark keyed by (user, property).
type Favorite struct {
	UserID     string
	PropertyID string
	CreatedAt  time.Time
}

// Store abstracts favorite persistence for the service.
type Store interface {
	Exists(ctx context.Context, userID, propertyID string) (bool, error)
	Insert(ctx context.Context, userID, propertyID string) error
	Delete(ctx context.Context, userID, propertyID string) error
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}

// Repository is the pgx-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Exists reports whether the pair is present.
func (r *Repository) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("favorite: exists: %w", err)
	}
	return exists, nil
}

// Insert adds the pair. The composite primary key guarantees at most one row
// per pair; a unique violation maps to ErrAlreadyExists.
func (r *Repository) Insert(ctx context.Context, userID, propertyID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (user_id, property_id) VALUES ($1, $2)`,
		userID, propertyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("favorite: insert: %w", err)
	}
	return nil
}

// Delete removes the pair. Deleting an absent pair is not an error; the final
// state is what matters.
func (r *Repository) Delete(ctx context.Context, userID, propertyID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID)
	if err != nil {
		return fmt.Errorf("favorite: delete: %w", err)
	}
	return nil
}

// ListByUser returns the user's bookmarks, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, property_id, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("favorite: list: %w", err)
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.UserID, &f.PropertyID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("favorite: scan: %w", err)
		}
		favorites = append(favorites, f)
	}

	return favorites, rows.Err()
}
