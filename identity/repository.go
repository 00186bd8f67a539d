package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrProfileNotFound signals that the identity has no profile row.
var ErrProfileNotFound = errors.New("identity: profile not found")

// PGProfileStore implements ProfileStore backed by PostgreSQL.
type PGProfileStore struct {
	pool *pgxpool.Pool
}

// NewProfileStore creates a PostgreSQL-backed profile store.
func NewProfileStore(pool *pgxpool.Pool) *PGProfileStore {
	return &PGProfileStore{pool: pool}
}

// GetProfile retrieves the profile row for a user id.
func (s *PGProfileStore) GetProfile(ctx context.Context, userID string) (Profile, error) {
	const selectSQL = `
		SELECT user_id, name, role, created_at
		FROM profiles
		WHERE user_id = $1
	`

	var p Profile
	err := s.pool.QueryRow(ctx, selectSQL, userID).Scan(&p.UserID, &p.Name, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("identity: get profile: %w", err)
	}

	return p, nil
}

// UpsertProfile inserts or updates a profile row, keyed by user_id.
func (s *PGProfileStore) UpsertProfile(ctx context.Context, profile Profile) (Profile, error) {
	const upsertSQL = `
		INSERT INTO profiles (user_id, name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
		RETURNING user_id, name, role, created_at
	`

	var p Profile
	err := s.pool.QueryRow(ctx, upsertSQL, profile.UserID, profile.Name, profile.Role).
		Scan(&p.UserID, &p.Name, &p.Role, &p.CreatedAt)
	if err != nil {
		return Profile{}, fmt.Errorf("identity: upsert profile: %w", err)
	}

	return p, nil
}

// AdminExists reports whether any admin profile row exists.
func (s *PGProfileStore) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE role = 'admin')`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("identity: admin exists: %w", err)
	}
	return exists, nil
}
