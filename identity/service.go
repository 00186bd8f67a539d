package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrPolicyLookupFailed signals an infrastructure failure while resolving the
// caller's role. It must never be collapsed into "no profile / default user":
// masking a storage outage as an authorization decision would hand every
// caller the lowest role silently.
var ErrPolicyLookupFailed = errors.New("identity: role lookup failed")

// ProfileStore abstracts profile persistence for the resolver.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpsertProfile(ctx context.Context, profile Profile) (Profile, error)
	AdminExists(ctx context.Context) (bool, error)
}

// Resolver turns session tokens into identities and identities into roles.
type Resolver struct {
	secret []byte
	store  ProfileStore
}

// NewResolver creates a resolver verifying tokens with the given HS256 secret.
func NewResolver(secret string, store ProfileStore) *Resolver {
	return &Resolver{secret: []byte(secret), store: store}
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Resolve parses and verifies a session token. A missing, malformed or
// expired token resolves to the anonymous identity; Resolve never errors.
func (r *Resolver) Resolve(tokenString string) Identity {
	if tokenString == "" {
		return Identity{}
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("identity: unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return Identity{}
	}

	return Identity{ID: claims.Subject, Email: claims.Email}
}

// ResolveRole looks up the role for a resolved identity. A missing profile
// row defaults to the lowest privilege, RoleUser, never to an elevated role.
// A lookup failure propagates as ErrPolicyLookupFailed.
func (r *Resolver) ResolveRole(ctx context.Context, ident Identity) (Role, error) {
	if ident.Anonymous() {
		return RoleAnonymous, nil
	}

	profile, err := r.store.GetProfile(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return RoleUser, nil
		}
		return RoleAnonymous, fmt.Errorf("%w: %v", ErrPolicyLookupFailed, err)
	}

	if !profile.Role.Valid() {
		// A corrupt role value in storage also fails to the lowest privilege.
		return RoleUser, nil
	}
	return profile.Role, nil
}

// ResolveSession combines Resolve and ResolveRole for the HTTP middleware.
func (r *Resolver) ResolveSession(ctx context.Context, tokenString string) (Session, error) {
	ident := r.Resolve(tokenString)
	role, err := r.ResolveRole(ctx, ident)
	if err != nil {
		return Session{}, err
	}
	return Session{Identity: ident, Role: role}, nil
}
