// Package policy centralizes the allow/deny rules every mutation must pass.
// The decision is total: every (role, action, resource) triple maps to an
// explicit outcome, and nothing reaches storage without an Allow.
package policy

import (
	"errors"
	"fmt"

	"propflow/identity"
)

var (
	// ErrUnauthenticated denies callers with no resolvable identity.
	ErrUnauthenticated = errors.New("policy: not authorized")
	// ErrForbidden denies resolved identities lacking permission.
	ErrForbidden = errors.New("policy: access denied")
)

// Action is the operation being attempted on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind names the resource class a decision is about.
type Kind string

const (
	KindProperty    Kind = "property"
	KindDevelopment Kind = "development"
	KindLead        Kind = "lead"
	KindFavorite    Kind = "favorite"
)

// Resource describes the target of a decision. OwnerEmail is the email of the
// Agent row linked to the resource, loaded server-side — never a
// client-supplied value. Empty means the resource has no linked agent.
type Resource struct {
	Kind       Kind
	OwnerEmail string
}

// Deny wraps ErrForbidden with a reason for the caller.
func Deny(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// Decide returns nil to allow, ErrUnauthenticated or an ErrForbidden-wrapped
// reason to deny. The switch over Role is exhaustive with a default-deny arm
// so an unhandled role can never fall through to storage.
func Decide(sess identity.Session, action Action, res Resource) error {
	// Lead creation is the public funnel: open to everyone, anonymous included.
	if res.Kind == KindLead && action == ActionCreate {
		return nil
	}

	// Listings are public reads.
	if (res.Kind == KindProperty || res.Kind == KindDevelopment) && action == ActionRead {
		return nil
	}

	if sess.Identity.Anonymous() {
		return ErrUnauthenticated
	}

	switch sess.Role {
	case identity.RoleAdmin:
		if res.Kind == KindLead && (action == ActionUpdate || action == ActionDelete) {
			// Leads are append-only for every role.
			return Deny("leads are append-only")
		}
		return nil

	case identity.RoleAgent:
		switch res.Kind {
		case KindProperty, KindDevelopment:
			// Mutations require ownership of the linked agent row.
			if res.OwnerEmail != "" && res.OwnerEmail == sess.Identity.Email {
				return nil
			}
			return Deny("not owner")
		case KindLead:
			if action == ActionRead {
				// Agents see all leads, not only their own properties'.
				// Deliberate coarse grain carried over from the source system.
				return nil
			}
			return Deny("leads are append-only")
		case KindFavorite:
			// Favorites are always scoped to the caller's own user id.
			return nil
		}
		return Deny("access denied")

	case identity.RoleUser:
		if res.Kind == KindFavorite {
			return nil
		}
		return Deny("access denied")

	case identity.RoleAnonymous:
		return ErrUnauthenticated

	default:
		return Deny("access denied")
	}
}
