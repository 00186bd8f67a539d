package development

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals the requested development does not exist.
var ErrNotFound = errors.New("development: not found")

const developmentColumns = `
	id, title, description, status, address, city, province, amenities,
	progress, hero_image_url, lat, lng, agent_id, created_at, updated_at
`

// Store abstracts development persistence for the service.
type Store interface {
	Create(ctx context.Context, d Development) (Development, error)
	GetByID(ctx context.Context, id string) (Development, error)
	List(ctx context.Context, filters ListFilters) ([]Development, int, error)
	Update(ctx context.Context, d Development) (Development, error)
	UpdateProgress(ctx context.Context, id string, progress int, status Status) (Development, error)
	Delete(ctx context.Context, id string) error
}

// Repository is the pgx-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a development and returns the stored row.
func (r *Repository) Create(ctx context.Context, d Development) (Development, error) {
	query := `
		INSERT INTO developments
			(title, description, status, address, city, province, amenities,
			 progress, hero_image_url, lat, lng, agent_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING ` + developmentColumns

	stored, err := scanDevelopment(r.pool.QueryRow(ctx, query,
		d.Title, d.Description, d.Status, d.Address, d.City, d.Province, d.Amenities,
		d.Progress, d.HeroImageURL, d.Lat, d.Lng, d.AgentID,
	))
	if err != nil {
		return Development{}, fmt.Errorf("development: insert: %w", err)
	}
	return stored, nil
}

// GetByID fetches a development by primary key.
func (r *Repository) GetByID(ctx context.Context, id string) (Development, error) {
	query := `SELECT ` + developmentColumns + ` FROM developments WHERE id = $1`

	d, err := scanDevelopment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Development{}, ErrNotFound
		}
		return Development{}, fmt.Errorf("development: query by id: %w", err)
	}
	return d, nil
}

// List fetches a page of developments, optionally filtered by status.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Development, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	clause := ""
	args := []any{}
	if filters.Status != "" {
		args = append(args, filters.Status)
		clause = " WHERE status = $1"
	}

	countQuery := `SELECT COUNT(*) FROM developments` + clause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("development: count: %w", err)
	}

	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)
	query := fmt.Sprintf(`SELECT %s FROM developments%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		developmentColumns, clause, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("development: list: %w", err)
	}
	defer rows.Close()

	developments := []Development{}
	for rows.Next() {
		d, err := scanDevelopment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("development: scan: %w", err)
		}
		developments = append(developments, d)
	}

	return developments, total, rows.Err()
}

// Update writes the full row; the service applied the patch beforehand.
func (r *Repository) Update(ctx context.Context, d Development) (Development, error) {
	query := `
		UPDATE developments
		SET title=$2, description=$3, status=$4, address=$5, city=$6, province=$7,
		    amenities=$8, progress=$9, hero_image_url=$10, lat=$11, lng=$12,
		    agent_id=$13, updated_at=now()
		WHERE id=$1
		RETURNING ` + developmentColumns

	stored, err := scanDevelopment(r.pool.QueryRow(ctx, query,
		d.ID, d.Title, d.Description, d.Status, d.Address, d.City, d.Province,
		d.Amenities, d.Progress, d.HeroImageURL, d.Lat, d.Lng, d.AgentID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Development{}, ErrNotFound
		}
		return Development{}, fmt.Errorf("development: update: %w", err)
	}
	return stored, nil
}

// UpdateProgress writes progress and its derived status in one statement so
// the invariant cannot be observed half-applied.
func (r *Repository) UpdateProgress(ctx context.Context, id string, progress int, status Status) (Development, error) {
	query := `
		UPDATE developments
		SET progress=$2, status=$3, updated_at=now()
		WHERE id=$1
		RETURNING ` + developmentColumns

	stored, err := scanDevelopment(r.pool.QueryRow(ctx, query, id, progress, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Development{}, ErrNotFound
		}
		return Development{}, fmt.Errorf("development: update progress: %w", err)
	}
	return stored, nil
}

// Delete removes a development row. Hard delete, no tombstone.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM developments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("development: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDevelopment(row pgx.Row) (Development, error) {
	var d Development
	err := row.Scan(
		&d.ID, &d.Title, &d.Description, &d.Status, &d.Address, &d.City, &d.Province,
		&d.Amenities, &d.Progress, &d.HeroImageURL, &d.Lat, &d.Lng, &d.AgentID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}
