// Package session holds the in-progress wizard working document.
package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/parentcopilot/store"
)

// State owns the current session. The persisted copy omits the conversation
// history, which only lives for the duration of the response loop.
type State struct {
	store *store.Store
	now   func() time.Time

	mu      sync.RWMutex
	current *store.Session
}

// NewState restores the saved session, if any.
func NewState(ctx context.Context, st *store.Store) *State {
	return &State{
		store:   st,
		now:     time.Now,
		current: store.Load[*store.Session](ctx, st, store.KeySession, nil),
	}
}

// WithClock replaces the time source used for StartedAt.
func (s *State) WithClock(now func() time.Time) *State {
	s.now = now
	return s
}

// Start discards any current session and begins an empty one.
func (s *State) Start(ctx context.Context) *store.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &store.Session{
		ID:        shortuuid.New(),
		StartedAt: s.now(),
	}
	s.persist(ctx)
	return clone(s.current)
}

// Current returns a copy of the current session, or nil.
func (s *State) Current() *store.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.current)
}

// Update applies fn to the current session and persists the result.
// It reports false when there is no session, or when sessionID is set and no
// longer names the current session.
func (s *State) Update(ctx context.Context, sessionID string, fn func(*store.Session)) (*store.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || (sessionID != "" && s.current.ID != sessionID) {
		return nil, false
	}
	fn(s.current)
	s.persist(ctx)
	return clone(s.current), true
}

// Clear discards the current session.
func (s *State) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Delete(ctx, store.KeySession); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
	}
}

// persist must be called with mu held.
func (s *State) persist(ctx context.Context) {
	if err := store.Save(ctx, s.store, store.KeySession, s.current); err != nil {
		slog.Warn("failed to persist session, keeping in-memory state", "session_id", s.current.ID, "error", err)
	}
}

func clone(src *store.Session) *store.Session {
	if src == nil {
		return nil
	}
	dst := *src
	if src.Context != nil {
		ctx := *src.Context
		dst.Context = &ctx
	}
	dst.Clarifications = slices.Clone(src.Clarifications)
	dst.ConversationHistory = slices.Clone(src.ConversationHistory)
	return &dst
}
