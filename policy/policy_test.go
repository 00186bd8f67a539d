package policy

import (
	"errors"
	"testing"

	"propflow/identity"
)

const (
	ownerEmail = "marta@inmobiliaria.ar"
	otherEmail = "leo@inmobiliaria.ar"
)

func session(role identity.Role) identity.Session {
	switch role {
	case identity.RoleAnonymous:
		return identity.AnonymousSession()
	default:
		return identity.Session{
			Identity: identity.Identity{ID: "id-" + string(role), Email: ownerEmail},
			Role:     role,
		}
	}
}

// TestDecide_Total walks the full truth table and asserts a defined outcome
// for every (role, action, resource-ownership) triple. Expected values:
// "allow", "unauthenticated", "forbidden".
func TestDecide_Total(t *testing.T) {
	roles := []identity.Role{identity.RoleAnonymous, identity.RoleUser, identity.RoleAgent, identity.RoleAdmin}
	actions := []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

	resources := map[string]Resource{
		"development-owned":    {Kind: KindDevelopment, OwnerEmail: ownerEmail},
		"development-nonowned": {Kind: KindDevelopment, OwnerEmail: otherEmail},
		"development-orphan":   {Kind: KindDevelopment},
		"property-owned":       {Kind: KindProperty, OwnerEmail: ownerEmail},
		"property-nonowned":    {Kind: KindProperty, OwnerEmail: otherEmail},
		"lead":                 {Kind: KindLead},
		"favorite":             {Kind: KindFavorite},
	}

	expect := map[identity.Role]map[string]map[Action]string{
		identity.RoleAnonymous: {
			"development-owned":    {ActionCreate: "unauthenticated", ActionRead: "allow", ActionUpdate: "unauthenticated", ActionDelete: "unauthenticated"},
			"development-nonowned": {ActionCreate: "unauthenticated", ActionRead: "allow", ActionUpdate: "unauthenticated", ActionDelete: "unauthenticated"},
			"development-orphan":   {ActionCreate: "unauthenticated", ActionRead: "allow", ActionUpdate: "unauthenticated", ActionDelete: "unauthenticated"},
			"property-owned":       {ActionCreate: "unauthenticated", ActionRead: "allow", ActionUpdate: "unauthenticated", ActionDelete: "unauthenticated"},
			"property-nonowned":    {ActionCreate: "unauthenticated", ActionRead: "allow", ActionUpdate: "unauthenticated", ActionDelete: "unauthenticated"},
			"lead":                 {ActionCreate: "allow", ActionRead: "unauthenticated", ActionUpdate: "unauthenticated", ActionDelete: "unauthenticated"},
			"favorite":             {ActionCreate: "unauthenticated", ActionRead: "unauthenticated", ActionUpdate: "unauthenticated", ActionDelete: "unauthenticated"},
		},
		identity.RoleUser: {
			"development-owned":    {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"development-nonowned": {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"development-orphan":   {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"property-owned":       {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"property-nonowned":    {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"lead":                 {ActionCreate: "allow", ActionRead: "forbidden", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"favorite":             {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
		},
		identity.RoleAgent: {
			"development-owned":    {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
			"development-nonowned": {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"development-orphan":   {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"property-owned":       {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
			"property-nonowned":    {ActionCreate: "forbidden", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"lead":                 {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"favorite":             {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
		},
		identity.RoleAdmin: {
			"development-owned":    {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
			"development-nonowned": {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
			"development-orphan":   {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
			"property-owned":       {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
			"property-nonowned":    {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
			"lead":                 {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "forbidden", ActionDelete: "forbidden"},
			"favorite":             {ActionCreate: "allow", ActionRead: "allow", ActionUpdate: "allow", ActionDelete: "allow"},
		},
	}

	for _, role := range roles {
		for name, res := range resources {
			for _, action := range actions {
				want, ok := expect[role][name][action]
				if !ok {
					t.Fatalf("truth table incomplete: %s/%s/%s", role, name, action)
				}

				got := classify(Decide(session(role), action, res))
				if got != want {
					t.Errorf("%s %s %s: expected %s, got %s", role, action, name, want, got)
				}
			}
		}
	}
}

func TestDecide_UnknownRoleDefaultsToDeny(t *testing.T) {
	sess := identity.Session{
		Identity: identity.Identity{ID: "id-x", Email: ownerEmail},
		Role:     identity.Role("superuser"),
	}
	err := Decide(sess, ActionDelete, Resource{Kind: KindDevelopment, OwnerEmail: ownerEmail})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected default deny for unknown role, got %v", err)
	}
}

func TestDecide_OwnershipUsesServerResolvedEmail(t *testing.T) {
	agent := identity.Session{
		Identity: identity.Identity{ID: "id-agent", Email: otherEmail},
		Role:     identity.RoleAgent,
	}

	err := Decide(agent, ActionUpdate, Resource{Kind: KindDevelopment, OwnerEmail: ownerEmail})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner agent, got %v", err)
	}
}

func classify(err error) string {
	switch {
	case err == nil:
		return "allow"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "undefined"
	}
}
