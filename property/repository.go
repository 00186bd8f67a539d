package property

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals the requested property does not exist.
var ErrNotFound = errors.New("property: not found")

const propertyColumns = `
	id, title, description, operation, type, price_usd, price_ars,
	address, city, province, rooms, bathrooms, area_m2, covered_area_m2,
	featured, lat, lng, agent_id, created_at, updated_at
`

// Store abstracts property persistence for services.
type Store interface {
	GetByID(ctx context.Context, id string) (Property, error)
	List(ctx context.Context, filters ListFilters) ([]Property, int, error)
	Exists(ctx context.Context, id string) (bool, error)
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

// GetByID fetches a property with its images, ordered for display.
func (r *Repository) GetByID(ctx context.Context, id string) (Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, ErrNotFound
		}
		return Property{}, fmt.Errorf("property: query by id: %w", err)
	}

	const imagesSQL = `
		SELECT id, property_id, url, alt, ordering
		FROM images
		WHERE property_id = $1
		ORDER BY ordering ASC
	`
	rows, err := r.pool.Query(ctx, imagesSQL, id)
	if err != nil {
		return Property{}, fmt.Errorf("property: query images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.URL, &img.Alt, &img.Ordering); err != nil {
			return Property{}, fmt.Errorf("property: scan image: %w", err)
		}
		p.Images = append(p.Images, img)
	}

	return p, rows.Err()
}

// List fetches a filtered page of properties plus the unpaged total.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Property, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	where := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Operation != "" {
		where = append(where, "operation = "+arg(filters.Operation))
	}
	if filters.Type != "" {
		where = append(where, "type = "+arg(filters.Type))
	}
	if filters.Featured != nil {
		where = append(where, "featured = "+arg(*filters.Featured))
	}
	if filters.City != "" {
		where = append(where, "city = "+arg(filters.City))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	countArgs := make([]any, len(args))
	copy(countArgs, args)

	query := `SELECT ` + propertyColumns + ` FROM properties` + clause +
		` ORDER BY featured DESC, created_at DESC LIMIT ` + arg(filters.PageSize) +
		` OFFSET ` + arg((filters.Page-1)*filters.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("property: list: %w", err)
	}
	defer rows.Close()

	properties := []Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("property: scan: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM properties` + clause
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("property: count: %w", err)
	}

	return properties, total, nil
}

// Exists reports whether the property id resolves to a row.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("property: exists: %w", err)
	}
	return exists, nil
}

// Delete removes a property row. The delete is hard; images cascade in the
// schema.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("property: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Operation, &p.Type, &p.PriceUSD, &p.PriceARS,
		&p.Address, &p.City, &p.Province, &p.Rooms, &p.Bathrooms, &p.AreaM2, &p.CoveredAreaM2,
		&p.Featured, &p.Lat, &p.Lng, &p.AgentID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
