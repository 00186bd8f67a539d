package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"propflow/identity"
	"propflow/policy"
	"propflow/revalidate"
	"propflow/validate"
)

// ErrPropertyNotFound signals a lead referenced a property that does not
// exist. Nothing is written when it fires.
var ErrPropertyNotFound = errors.New("lead: property not found")

// PropertyChecker is the existence check the funnel needs from the property
// package.
type PropertyChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service implements the public lead funnel and the role-gated listing.
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

// Create stores a validated lead. No authentication required: this is the
// public funnel. A referenced property must exist before anything is written.
func (s *Service) Create(ctx context.Context, in validate.LeadInput) (Lead, error) {
	if err := policy.Decide(identity.AnonymousSession(), policy.ActionCreate, policy.Resource{Kind: policy.KindLead}); err != nil {
		return Lead{}, err
	}

	if in.PropertyID != nil && *in.PropertyID != "" {
		exists, err := s.properties.Exists(ctx, *in.PropertyID)
		if err != nil {
			return Lead{}, fmt.Errorf("lead: check property: %w", err)
		}
		if !exists {
			return Lead{}, ErrPropertyNotFound
		}
	}

	l, err := s.store.Create(ctx, Lead{
		PropertyID: in.PropertyID,
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Message:    in.Message,
	})
	if err != nil {
		if errors.Is(err, ErrPropertyVanished) {
			return Lead{}, ErrPropertyNotFound
		}
		return Lead{}, err
	}

	s.signal.Invalidate(ctx, revalidate.LeadPaths())
	return l, nil
}

// List returns a page of leads for admin and agent callers. Agents see all
// leads, not only those tied to their own properties.
func (s *Service) List(ctx context.Context, sess identity.Session, filters ListFilters) ([]Lead, int, error) {
	if err := policy.Decide(sess, policy.ActionRead, policy.Resource{Kind: policy.KindLead}); err != nil {
		return nil, 0, err
	}
	// A malformed property filter matches nothing rather than reaching the
	// uuid column as a cast error.
	if filters.PropertyID != "" && uuid.Validate(filters.PropertyID) != nil {
		return nil, 0, nil
	}
	return s.store.List(ctx, filters)
}
