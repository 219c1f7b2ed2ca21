// Package child provides the child registry: CRUD over the saved child
// profiles, persisted as one document in the store.
package child

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/hrygo/parentcopilot/server/internal/errors"
	"github.com/hrygo/parentcopilot/store"
)

// Service defines the child registry.
// Callers validate input with Validate before Add and Update; the registry
// itself does not re-validate.
type Service interface {
	// Add assigns a new id to child, appends it and persists the list.
	Add(ctx context.Context, create *store.Child) *store.Child

	// Update merges the set fields into the matching child.
	// It reports false, and changes nothing, if id is unknown.
	Update(ctx context.Context, id string, update *store.UpdateChild) (*store.Child, bool)

	// Remove deletes the matching child. Unknown ids are ignored.
	Remove(ctx context.Context, id string) bool

	// Get returns the child with id.
	Get(ctx context.Context, id string) (*store.Child, bool)

	// List returns all children in insertion order.
	List(ctx context.Context) []*store.Child
}

type service struct {
	store *store.Store

	mu       sync.RWMutex
	children []store.Child
}

// NewService loads the saved children and returns the registry.
func NewService(ctx context.Context, st *store.Store) Service {
	return &service{
		store:    st,
		children: store.Load(ctx, st, store.KeyChildren, []store.Child{}),
	}
}

func (s *service) Add(ctx context.Context, create *store.Child) *store.Child {
	s.mu.Lock()
	defer s.mu.Unlock()

	child := *create
	child.ID = uuid.New().String()
	s.children = append(s.children, child)
	s.persist(ctx)

	return &child
}

func (s *service) Update(ctx context.Context, id string, update *store.UpdateChild) (*store.Child, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.children {
		if s.children[i].ID == id {
			update.Apply(&s.children[i])
			s.persist(ctx)
			child := s.children[i]
			return &child, true
		}
	}
	return nil, false
}

func (s *service) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.children {
		if s.children[i].ID == id {
			s.children = append(s.children[:i], s.children[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

func (s *service) Get(_ context.Context, id string) (*store.Child, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.children {
		if c.ID == id {
			child := c
			return &child, true
		}
	}
	return nil, false
}

func (s *service) List(_ context.Context) []*store.Child {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*store.Child, 0, len(s.children))
	for _, c := range s.children {
		child := c
		list = append(list, &child)
	}
	return list
}

// persist must be called with mu held.
func (s *service) persist(ctx context.Context) {
	if err := store.Save(ctx, s.store, store.KeyChildren, s.children); err != nil {
		slog.Warn("failed to persist children, keeping in-memory state", "error", err)
	}
}

// Validate checks a child profile before it is added.
func Validate(c *store.Child) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.InvalidField("name", "name is required")
	}
	if c.Age < store.MinChildAge || c.Age > store.MaxChildAge {
		return apperrors.InvalidField("age", "age must be between 0 and 18")
	}
	if c.Gender != "" && !c.Gender.IsValid() {
		return apperrors.InvalidField("gender", "gender must be male or female")
	}
	if c.ParentingMethod != "" && !c.ParentingMethod.IsValid() {
		return apperrors.InvalidField("parentingMethod", "unknown parenting method")
	}
	return nil
}

// ValidateUpdate checks the fields set on an update.
func ValidateUpdate(u *store.UpdateChild) error {
	probe := store.Child{Name: "-"}
	u.Apply(&probe)
	return Validate(&probe)
}
