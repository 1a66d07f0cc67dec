package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/session"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, sessionID, email, password string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Resume(ctx context.Context, sessionID string) (*session.Store, error)
	RequireUser(ctx context.Context, sessionID string) (*domainauth.User, error)
	NewSessionID() string
	SessionTTL() time.Duration
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential login.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	// Reuse the visitor's anonymous session so preferences entered before
	// login (sidebar state) carry over.
	sessionID := sessionIDFromCookie(r)

	sess, err := h.Svc.Login(r.Context(), sessionID, req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, r, sess.ID)
	WriteJSON(w, http.StatusOK, sessionResponse(sess.User, true))
}

// Logout clears the server-side identity and the session cookie.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := sessionIDFromCookie(r); sessionID != "" {
		if err := h.Svc.Logout(r.Context(), sessionID); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}

	// The cookie stays so the sidebar preference survives into the next
	// visit; only the server-side identity is cleared.
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Session reports the current authentication state.
// GET /auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromCookie(r)
	if sessionID == "" {
		WriteJSON(w, http.StatusOK, anonymousSessionResponse())
		return
	}

	store, err := h.Svc.Resume(r.Context(), sessionID)
	if err != nil {
		h.logger().WarnContext(r.Context(), "session resume failed", "error", err)
		WriteJSON(w, http.StatusOK, anonymousSessionResponse())
		return
	}

	snap := store.Snapshot()
	resp := map[string]any{
		"authenticated":     snap.IsAuthenticated,
		"sidebar_collapsed": snap.SidebarCollapsed,
	}
	if snap.User != nil {
		resp["user"] = snap.User
	}
	WriteJSON(w, http.StatusOK, resp)
}

func sessionResponse(user domainauth.User, authenticated bool) map[string]any {
	return map[string]any{
		"authenticated": authenticated,
		"user":          user,
	}
}

func anonymousSessionResponse() map[string]any {
	return map[string]any{
		"authenticated":     false,
		"sidebar_collapsed": false,
	}
}

// sessionIDFromCookie returns the session cookie value or empty string.
func sessionIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie stores the session identifier in a secure HTTP-only cookie.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   int(h.Svc.SessionTTL() / time.Second),
		SameSite: http.SameSiteLaxMode,
	})
}
