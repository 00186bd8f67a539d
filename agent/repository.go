package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals the requested agent does not exist.
var ErrNotFound = errors.New("agent: not found")

// Agent is a listing agent referenced by properties and developments. Its
// email is the ownership key: a caller owns a resource when the resource's
// linked agent carries the caller's email.
type Agent struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}

// Directory provides the agent lookups ownership checks need.
type Directory interface {
	GetByID(ctx context.Context, id string) (Agent, error)
	GetByEmail(ctx context.Context, email string) (Agent, error)
	List(ctx context.Context, limit int) ([]Agent, error)
}

// Repository is the pgx-backed Directory implementation.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID fetches an agent by primary key.
func (r *Repository) GetByID(ctx context.Context, id string) (Agent, error) {
	const query = `
		SELECT id, name, phone, email, created_at
		FROM agents
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "query by id")
}

// GetByEmail fetches an agent by email, the server-side ownership key.
func (r *Repository) GetByEmail(ctx context.Context, email string) (Agent, error) {
	const query = `
		SELECT id, name, phone, email, created_at
		FROM agents
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email), "query by email")
}

// List fetches up to limit agents ordered by name.
func (r *Repository) List(ctx context.Context, limit int) ([]Agent, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	const query = `
		SELECT id, name, phone, email, created_at
		FROM agents
		ORDER BY name ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("agent: list: %w", err)
	}
	defer rows.Close()

	agents := []Agent{}
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Phone, &a.Email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("agent: scan: %w", err)
		}
		agents = append(agents, a)
	}

	return agents, rows.Err()
}

func (r *Repository) scanOne(row pgx.Row, op string) (Agent, error) {
	var a Agent
	err := row.Scan(&a.ID, &a.Name, &a.Phone, &a.Email, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agent{}, ErrNotFound
		}
		return Agent{}, fmt.Errorf("agent: %s: %w", op, err)
	}
	return a, nil
}
