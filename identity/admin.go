package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAdminExists signals the one-time admin claim was already used.
	ErrAdminExists = errors.New("identity: admin profile already exists")
	// ErrRoleChangeForbidden signals a non-admin tried to assign roles.
	ErrRoleChangeForbidden = errors.New("identity: role change requires admin")
	// ErrInvalidRole signals an unknown role value in a role assignment.
	ErrInvalidRole = errors.New("identity: invalid role")
	// ErrInvalidUserID signals a malformed target user id in a role
	// assignment.
	ErrInvalidUserID = errors.New("identity: invalid user id")
)

// Manager handles the privileged profile mutations: the first-admin claim and
// role assignment. Roles are never self-escalated through any other path.
type Manager struct {
	store ProfileStore
}

// NewManager builds a Manager using the provided profile store.
func NewManager(store ProfileStore) *Manager {
	return &Manager{store: store}
}

// ClaimAdmin grants the admin role to the caller iff no admin profile exists
// yet. Every later attempt fails with ErrAdminExists regardless of caller.
func (m *Manager) ClaimAdmin(ctx context.Context, caller Session, name string) (Profile, error) {
	if caller.Identity.Anonymous() {
		return Profile{}, ErrRoleChangeForbidden
	}

	exists, err := m.store.AdminExists(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("identity: claim admin: %w", err)
	}
	if exists {
		return Profile{}, ErrAdminExists
	}

	return m.store.UpsertProfile(ctx, Profile{
		UserID: caller.Identity.ID,
		Name:   name,
		Role:   RoleAdmin,
	})
}

// SetRole assigns a role to a target user. Only admins may call it.
func (m *Manager) SetRole(ctx context.Context, caller Session, targetUserID string, role Role, name string) (Profile, error) {
	if caller.Role != RoleAdmin {
		return Profile{}, ErrRoleChangeForbidden
	}
	if !role.Valid() {
		return Profile{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	// User ids are uuids; a malformed target must never reach the uuid
	// column as a cast error.
	if uuid.Validate(targetUserID) != nil {
		return Profile{}, fmt.Errorf("%w: %q", ErrInvalidUserID, targetUserID)
	}

	return m.store.UpsertProfile(ctx, Profile{
		UserID: targetUserID,
		Name:   name,
		Role:   role,
	})
}
