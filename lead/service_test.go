package lead

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"propflow/identity"
	"propflow/policy"
	"propflow/validate"

	"github.com/google/uuid"
)

func newTestService(existingProperty string) (*Service, *fakeStore) {
	store := newFakeStore()
	checker := &fakePropertyChecker{existing: map[string]bool{}}
	if existingProperty != "" {
		checker.existing[existingProperty] = true
	}
	return NewService(store, checker, nil), store
}

func TestCreate_AnonymousSucceeds(t *testing.T) {
	propertyID := uuid.NewString()
	svc, store := newTestService(propertyID)

	in, err := validate.Lead(validate.LeadInput{
		PropertyID: &propertyID,
		Name:       "Ana Gomez",
		Email:      "ana@example.com",
		Message:    "Interesada en la propiedad, podrían contactarme",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	l, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.ID == "" {
		t.Fatal("expected generated id")
	}
	if l.CreatedAt.IsZero() {
		t.Fatal("expected generated timestamp")
	}
	if l.Name != "Ana Gomez" || l.Email != "ana@example.com" {
		t.Fatalf("stored lead mismatch: %+v", l)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected one row, got %d", len(store.rows))
	}
}

func TestCreate_GeneralInquiryWithoutProperty(t *testing.T) {
	svc, _ := newTestService("")

	in, err := validate.Lead(validate.LeadInput{
		Name:    "Leo Diaz",
		Phone:   "+54 383 4111111",
		Message: "Consulta general sobre tasaciones",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreate_UnknownPropertyWritesNothing(t *testing.T) {
	svc, store := newTestService("")
	missing := uuid.NewString()

	in, err := validate.Lead(validate.LeadInput{
		PropertyID: &missing,
		Name:       "Ana Gomez",
		Email:      "ana@example.com",
		Message:    "Interesada en la propiedad, podrían contactarme",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	_, err = svc.Create(context.Background(), in)
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("expected no rows written, got %d", len(store.rows))
	}
}

func TestCreate_DuplicatesAllowed(t *testing.T) {
	svc, store := newTestService("")

	in, _ := validate.Lead(validate.LeadInput{
		Name:    "Ana Gomez",
		Email:   "ana@example.com",
		Message: "Interesada en la propiedad, podrían contactarme",
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if len(store.rows) != 3 {
		t.Fatalf("duplicate submissions must create duplicate rows, got %d", len(store.rows))
	}
}

func TestList_RoleGated(t *testing.T) {
	svc, _ := newTestService("")
	ctx := context.Background()
	filters := ListFilters{}

	if _, _, err := svc.List(ctx, identity.AnonymousSession(), filters); !errors.Is(err, policy.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for anonymous, got %v", err)
	}

	user := identity.Session{Identity: identity.Identity{ID: "u1", Email: "u@x.com"}, Role: identity.RoleUser}
	if _, _, err := svc.List(ctx, user, filters); !errors.Is(err, policy.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user, got %v", err)
	}

	agent := identity.Session{Identity: identity.Identity{ID: "a1", Email: "a@x.com"}, Role: identity.RoleAgent}
	if _, _, err := svc.List(ctx, agent, filters); err != nil {
		t.Fatalf("agent listing: %v", err)
	}

	admin := identity.Session{Identity: identity.Identity{ID: "ad1", Email: "ad@x.com"}, Role: identity.RoleAdmin}
	if _, _, err := svc.List(ctx, admin, filters); err != nil {
		t.Fatalf("admin listing: %v", err)
	}
}

func TestList_MalformedPropertyFilterMatchesNothing(t *testing.T) {
	svc, store := newTestService("")
	ctx := context.Background()
	admin := identity.Session{Identity: identity.Identity{ID: "ad1", Email: "ad@x.com"}, Role: identity.RoleAdmin}

	rows, total, err := svc.List(ctx, admin, ListFilters{PropertyID: "not-a-uuid"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 || total != 0 {
		t.Fatalf("expected empty result, got %d rows (total %d)", len(rows), total)
	}
	if store.listCalls != 0 {
		t.Fatalf("storage saw %d list queries with a malformed filter", store.listCalls)
	}
}

type fakeStore struct {
	rows      []Lead
	nextID    int
	listCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) Create(ctx context.Context, l Lead) (Lead, error) {
	l.ID = fmt.Sprintf("lead-%d", f.nextID)
	f.nextID++
	l.CreatedAt = time.Now().UTC()
	f.rows = append(f.rows, l)
	return l, nil
}

func (f *fakeStore) List(ctx context.Context, filters ListFilters) ([]Lead, int, error) {
	f.listCalls++
	return f.rows, len(f.rows), nil
}

type fakePropertyChecker struct {
	existing map[string]bool
}

func (f *fakePropertyChecker) Exists(ctx context.Context, id string) (bool, error) {
	return f.existing[id], nil
}
