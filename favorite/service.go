package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"propflow/identity"
	"propflow/policy"
	"propflow/revalidate"
)

// ToggleResult reports which way a toggle went.
type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// ErrPropertyNotFound signals a toggle referenced a missing property.
var ErrPropertyNotFound = errors.New("favorite: property not found")

// PropertyChecker is the existence check the toggle needs.
type PropertyChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service implements the favorite toggle and listing, always scoped to the
// caller's own identity. A client-supplied user id never reaches storage.
type Service struct {
	store      Store
	properties PropertyChecker
	signal     revalidate.Signal
}

// NewService builds a Service. A nil signal disables announcements.
func NewService(store Store, properties PropertyChecker, signal revalidate.Signal) *Service {
	if signal == nil {
		signal = revalidate.Nop{}
	}
	return &Service{store: store, properties: properties, signal: signal}
}

// Toggle flips the caller's bookmark for a property: present becomes absent
// and vice versa. The check-then-act pair may race with itself; the composite
// key makes concurrent toggles converge instead of erroring or duplicating.
func (s *Service) Toggle(ctx context.Context, sess identity.Session, propertyID string) (ToggleResult, error) {
	if err := policy.Decide(sess, policy.ActionUpdate, policy.Resource{Kind: policy.KindFavorite}); err != nil {
		return "", err
	}

	// A malformed id can match no property and must never reach the uuid
	// column as a cast error.
	if uuid.Validate(propertyID) != nil {
		return "", ErrPropertyNotFound
	}

	exists, err := s.properties.Exists(ctx, propertyID)
	if err != nil {
		return "", fmt.Errorf("favorite: check property: %w", err)
	}
	if !exists {
		return "", ErrPropertyNotFound
	}

	userID := sess.Identity.ID

	present, err := s.store.Exists(ctx, userID, propertyID)
	if err != nil {
		return "", err
	}

	var result ToggleResult
	if present {
		if err := s.store.Delete(ctx, userID, propertyID); err != nil {
			return "", err
		}
		result = ToggleRemoved
	} else {
		err := s.store.Insert(ctx, userID, propertyID)
		if err != nil && !errors.Is(err, ErrAlreadyExists) {
			return "", err
		}
		// A concurrent toggle winning the insert race still leaves the pair
		// present, which is the state this call wanted.
		result = ToggleAdded
	}

	s.signal.Invalidate(ctx, revalidate.FavoritePaths())
	return result, nil
}

// List returns the caller's own bookmarks.
func (s *Service) List(ctx context.Context, sess identity.Session) ([]Favorite, error) {
	if err := policy.Decide(sess, policy.ActionRead, policy.Resource{Kind: policy.KindFavorite}); err != nil {
		return nil, err
	}
	return s.store.ListByUser(ctx, sess.Identity.ID)
}
