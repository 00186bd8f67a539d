package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"propflow/agent"
	"propflow/identity"
	"propflow/policy"
	"propflow/revalidate"
)

// Service exposes the public reads and the single property mutation in scope,
// the hard delete.
type Service struct {
	store  Store
	agents agent.Directory
	signal revalidate.Signal
}

// NewService builds a Service. A nil signal disables announcements.
func NewService(store Store, agents agent.Directory, signal revalidate.Signal) *Service {
	if signal == nil {
		signal = revalidate.Nop{}
	}
	return &Service{store: store, agents: agents, signal: signal}
}

// Get returns a property with its images.
func (s *Service) Get(ctx context.Context, id string) (Property, error) {
	// Ids are uuids; a malformed one can match nothing and must never reach
	// the uuid column as a cast error.
	if uuid.Validate(id) != nil {
		return Property{}, ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

// List returns a filtered page of properties and the unpaged total.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Property, int, error) {
	return s.store.List(ctx, filters)
}

// Delete removes a property after the ownership check. Admins may delete any
// property; agents only their own.
func (s *Service) Delete(ctx context.Context, sess identity.Session, id string) error {
	if uuid.Validate(id) != nil {
		return ErrNotFound
	}

	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ownerEmail, err := s.ownerEmail(ctx, p.AgentID)
	if err != nil {
		return err
	}

	if err := policy.Decide(sess, policy.ActionDelete, policy.Resource{
		Kind:       policy.KindProperty,
		OwnerEmail: ownerEmail,
	}); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.signal.Invalidate(ctx, revalidate.PropertyPaths(id))
	return nil
}

// ownerEmail resolves the resource's linked agent row server-side. A missing
// link means no agent owns the resource.
func (s *Service) ownerEmail(ctx context.Context, agentID *string) (string, error) {
	if agentID == nil || *agentID == "" {
		return "", nil
	}

	a, err := s.agents.GetByID(ctx, *agentID)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("property: resolve owner: %w", err)
	}
	return a.Email, nil
}
