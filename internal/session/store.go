// Package session holds the authenticated identity and layout preference for
// one browser session. The Store is the single source of truth consulted by
// every handler that needs to know who is logged in and what role they have;
// a persistence port keeps the state durable across restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
)

// ErrNotFound is returned by a Persister when no snapshot exists for an ID.
var ErrNotFound = errors.New("session snapshot not found")

// Snapshot is the persisted session state. IsAuthenticated is true iff User
// is set; SidebarCollapsed is a layout preference independent of
// authentication. The JSON form round-trips exactly.
type Snapshot struct {
	User             *auth.User `json:"user"`
	IsAuthenticated  bool       `json:"is_authenticated"`
	SidebarCollapsed bool       `json:"sidebar_collapsed"`
}

// Persister stores snapshots durably, keyed by session ID.
type Persister interface {
	Save(ctx context.Context, id string, snap Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// Store owns one session's state. Mutations persist on success; reads are
// served from memory. Safe for concurrent use: ToggleSidebar is a
// read-modify-write and is guarded accordingly.
type Store struct {
	mu        sync.Mutex
	id        string
	snap      Snapshot
	persister Persister
}

// NewStore creates a store for the given session ID, rehydrating any
// previously persisted snapshot. A missing snapshot starts the store empty.
func NewStore(ctx context.Context, id string, p Persister) (*Store, error) {
	if id == "" {
		return nil, errors.New("session id is required")
	}
	if p == nil {
		return nil, errors.New("persister is required")
	}
	s := &Store{id: id, persister: p}
	snap, err := p.Load(ctx, id)
	switch {
	case err == nil:
		s.snap = snap
	case errors.Is(err, ErrNotFound):
		// Fresh session.
	default:
		return nil, fmt.Errorf("rehydrate session: %w", err)
	}
	return s, nil
}

// ID returns the session identifier this store persists under.
func (s *Store) ID() string { return s.id }

// User returns the current user, or nil when unauthenticated.
func (s *Store) User() *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.User == nil {
		return nil
	}
	u := *s.snap.User
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.IsAuthenticated
}

// SidebarCollapsed returns the layout preference.
func (s *Store) SidebarCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.SidebarCollapsed
}

// Snapshot returns a copy of the full session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// Login sets the current user unconditionally. The user record is trusted as
// given; no validation happens here.
func (s *Store) Login(ctx context.Context, user auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.User = &user
	s.snap.IsAuthenticated = true
	return s.persist(ctx)
}

// Logout clears the current user. Idempotent: logging out twice is a no-op in
// effect. The sidebar preference survives.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.User = nil
	s.snap.IsAuthenticated = false
	return s.persist(ctx)
}

// ToggleSidebar flips the sidebar preference.
func (s *Store) ToggleSidebar(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SidebarCollapsed = !s.snap.SidebarCollapsed
	return s.persist(ctx)
}

// SetSidebarCollapsed sets the sidebar preference explicitly; used by
// overlay-dismiss interactions on small viewports.
func (s *Store) SetSidebarCollapsed(ctx context.Context, collapsed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SidebarCollapsed = collapsed
	return s.persist(ctx)
}

// persist writes the current snapshot. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.id, s.snap); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
