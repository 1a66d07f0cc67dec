package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
	"github.com/pulsepoint/pulsepoint-api/internal/ports"
	"github.com/pulsepoint/pulsepoint-api/internal/session"
)

// DefaultSessionTTL bounds how long a login cookie stays valid.
const DefaultSessionTTL = 24 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier   ports.CredentialVerifier
	Snapshots  session.Persister
	SessionTTL time.Duration
}

// AuthService orchestrates login, logout, and session access. Each browser
// session is identified by an opaque cookie value; its state lives in a
// session.Store backed by the snapshot persister.
type AuthService struct {
	verifier  ports.CredentialVerifier
	snapshots session.Persister
	ttl       time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		verifier:  opts.Verifier,
		snapshots: opts.Snapshots,
		ttl:       ttl,
	}
}

// SessionTTL returns the configured session lifetime, used for cookie expiry.
func (s *AuthService) SessionTTL() time.Duration { return s.ttl }

// Login verifies credentials against the given session's store and records
// the identity there. When sessionID is empty a new session is minted. The
// returned Session carries the cookie value and expiry for the handler.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (*domainauth.Session, error) {
	user, err := s.verifier.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if sessionID == "" {
		sessionID = generateSessionID()
	}

	store, err := s.Resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if loginErr := store.Login(ctx, *user); loginErr != nil {
		return nil, loginErr
	}

	return &domainauth.Session{
		ID:        sessionID,
		User:      *user,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// LoginUser records an already-authenticated identity (e.g. straight after
// signup) without a second credential check.
func (s *AuthService) LoginUser(ctx context.Context, sessionID string, user domainauth.User) (*domainauth.Session, error) {
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	store, err := s.Resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if loginErr := store.Login(ctx, user); loginErr != nil {
		return nil, loginErr
	}
	return &domainauth.Session{
		ID:        sessionID,
		User:      user,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Logout clears the identity on the session. The sidebar preference survives
// so the layout doesn't jump on the login screen. Idempotent: a missing or
// already-anonymous session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	store, err := s.Resume(ctx, sessionID)
	if err != nil {
		return err
	}
	return store.Logout(ctx)
}

// Resume loads the session store for an existing session, or an empty one
// when no snapshot is persisted yet.
func (s *AuthService) Resume(ctx context.Context, sessionID string) (*session.Store, error) {
	store, err := session.NewStore(ctx, sessionID, s.snapshots)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	return store, nil
}

// RequireUser returns the authenticated identity on the session, or an
// unauthorized error when the session is anonymous.
func (s *AuthService) RequireUser(ctx context.Context, sessionID string) (*domainauth.User, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	store, err := s.Resume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user := store.User()
	if user == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	return user, nil
}

// NewSessionID mints an identifier for an anonymous session cookie.
func (s *AuthService) NewSessionID() string { return generateSessionID() }

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
