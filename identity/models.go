package identity

import "time"

// Role is the coarse permission level attached to a profile. The set is
// closed; every authorization decision switches exhaustively over it.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAgent     Role = "agent"
	RoleUser      Role = "user"
	RoleAnonymous Role = "anonymous"
)

// Valid reports whether r is one of the storable roles. RoleAnonymous is a
// resolver-side state, never written to a profile row.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	}
	return false
}

// Identity is the authenticated caller as resolved from a session token.
// The zero value means no caller (anonymous).
type Identity struct {
	ID    string
	Email string
}

// Anonymous reports whether the identity is the unauthenticated caller.
func (i Identity) Anonymous() bool {
	return i.ID == ""
}

// Session bundles a resolved identity with its resolved role. The anonymous
// session carries the zero Identity and RoleAnonymous.
type Session struct {
	Identity Identity
	Role     Role
}

// AnonymousSession is the session given to callers with no resolvable token.
func AnonymousSession() Session {
	return Session{Role: RoleAnonymous}
}

// Profile mirrors the profiles table. One row per identity, created lazily by
// the admin-setup flow or a migration seed.
type Profile struct {
	UserID    string
	Name      string
	Role      Role
	CreatedAt time.Time
}
