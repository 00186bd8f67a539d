package development

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"propflow/agent"
	"propflow/identity"
	"propflow/policy"
	"propflow/revalidate"
	"propflow/validate"
)

// ErrInvalidRange rejects progress values outside [0,100]. Out-of-range input
// is refused, never clamped.
var ErrInvalidRange = errors.New("development: progress must be between 0 and 100")

// Service implements the development mutations with their ownership checks
// and post-write revalidation announcements.
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

// Get returns a development by id.
func (s *Service) Get(ctx context.Context, id string) (Development, error) {
	// Ids are uuids; a malformed one can match nothing and must never reach
	// the uuid column as a cast error.
	if uuid.Validate(id) != nil {
		return Development{}, ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

// List returns a page of developments plus the unpaged total.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Development, int, error) {
	return s.store.List(ctx, filters)
}

// Create stores a new development. Agents always become the owner of what
// they create; only admins may assign an arbitrary agent. Status is derived
// from progress, never taken from the payload.
func (s *Service) Create(ctx context.Context, sess identity.Session, in validate.DevelopmentInput) (Development, error) {
	res := policy.Resource{Kind: policy.KindDevelopment}
	agentID := in.AgentID

	if sess.Role == identity.RoleAgent {
		a, err := s.callerAgent(ctx, sess)
		if err != nil {
			return Development{}, err
		}
		if a != nil {
			res.OwnerEmail = a.Email
			agentID = &a.ID
		}
	}

	if err := policy.Decide(sess, policy.ActionCreate, res); err != nil {
		return Development{}, err
	}

	if agentID != nil && *agentID != "" && sess.Role == identity.RoleAdmin {
		if _, err := s.agents.GetByID(ctx, *agentID); err != nil {
			return Development{}, err
		}
	}

	progress := 0
	if in.Progress != nil {
		progress = *in.Progress
	}

	d, err := s.store.Create(ctx, Development{
		Title:        in.Title,
		Description:  in.Description,
		Status:       StatusForProgress(progress),
		Address:      in.Address,
		City:         in.City,
		Province:     in.Province,
		Amenities:    in.Amenities,
		Progress:     progress,
		HeroImageURL: in.HeroImageURL,
		Lat:          in.Lat,
		Lng:          in.Lng,
		AgentID:      agentID,
	})
	if err != nil {
		return Development{}, err
	}

	s.signal.Invalidate(ctx, revalidate.DevelopmentPaths(d.ID))
	return d, nil
}

// Update applies a partial update. Absent fields are left untouched. A patch
// carrying progress also rewrites the derived status.
func (s *Service) Update(ctx context.Context, sess identity.Session, id string, patch validate.DevelopmentPatch) (Development, error) {
	existing, err := s.authorizeMutation(ctx, sess, policy.ActionUpdate, id)
	if err != nil {
		return Development{}, err
	}

	applyPatch(&existing, patch)

	d, err := s.store.Update(ctx, existing)
	if err != nil {
		return Development{}, err
	}

	s.signal.Invalidate(ctx, revalidate.DevelopmentPaths(d.ID))
	return d, nil
}

// UpdateProgress writes a new progress value together with its derived
// status. Values outside [0,100] fail with ErrInvalidRange.
func (s *Service) UpdateProgress(ctx context.Context, sess identity.Session, id string, progress int) (Development, error) {
	if progress < 0 || progress > 100 {
		return Development{}, fmt.Errorf("%w: got %d", ErrInvalidRange, progress)
	}

	if _, err := s.authorizeMutation(ctx, sess, policy.ActionUpdate, id); err != nil {
		return Development{}, err
	}

	d, err := s.store.UpdateProgress(ctx, id, progress, StatusForProgress(progress))
	if err != nil {
		return Development{}, err
	}

	s.signal.Invalidate(ctx, revalidate.DevelopmentPaths(d.ID))
	return d, nil
}

// Delete removes a development after the ownership check.
func (s *Service) Delete(ctx context.Context, sess identity.Session, id string) error {
	if _, err := s.authorizeMutation(ctx, sess, policy.ActionDelete, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.signal.Invalidate(ctx, revalidate.DevelopmentPaths(id))
	return nil
}

// authorizeMutation loads the target, resolves its linked agent server-side
// and runs the policy. Existence is checked before authorization so a
// well-authorized caller gets NotFound for a missing id.
func (s *Service) authorizeMutation(ctx context.Context, sess identity.Session, action policy.Action, id string) (Development, error) {
	if uuid.Validate(id) != nil {
		return Development{}, ErrNotFound
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Development{}, err
	}

	ownerEmail := ""
	if existing.AgentID != nil && *existing.AgentID != "" {
		a, err := s.agents.GetByID(ctx, *existing.AgentID)
		if err != nil && !errors.Is(err, agent.ErrNotFound) {
			return Development{}, fmt.Errorf("development: resolve owner: %w", err)
		}
		if err == nil {
			ownerEmail = a.Email
		}
	}

	if err := policy.Decide(sess, action, policy.Resource{
		Kind:       policy.KindDevelopment,
		OwnerEmail: ownerEmail,
	}); err != nil {
		return Development{}, err
	}

	return existing, nil
}

// callerAgent resolves the agent row matching the caller's email, or nil when
// none exists.
func (s *Service) callerAgent(ctx context.Context, sess identity.Session) (*agent.Agent, error) {
	a, err := s.agents.GetByEmail(ctx, sess.Identity.Email)
	if err != nil {
		if errors.Is(err, agent.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("development: resolve caller agent: %w", err)
	}
	return &a, nil
}

func applyPatch(d *Development, patch validate.DevelopmentPatch) {
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Status != nil {
		d.Status = Status(*patch.Status)
	}
	if patch.Address != nil {
		d.Address = *patch.Address
	}
	if patch.City != nil {
		d.City = *patch.City
	}
	if patch.Province != nil {
		d.Province = *patch.Province
	}
	if patch.Amenities != nil {
		d.Amenities = *patch.Amenities
	}
	if patch.HeroImageURL != nil {
		d.HeroImageURL = *patch.HeroImageURL
	}
	if patch.Lat != nil {
		d.Lat = patch.Lat
	}
	if patch.Lng != nil {
		d.Lng = patch.Lng
	}
	if patch.AgentID != nil {
		d.AgentID = patch.AgentID
	}
	if patch.Progress != nil {
		// Progress in a patch carries its derived status with it; a
		// client-supplied status never survives a progress change.
		d.Progress = *patch.Progress
		d.Status = StatusForProgress(*patch.Progress)
	}
}
