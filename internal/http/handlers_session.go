package httpx

import (
	"net/http"

	"github.com/pulsepoint/pulsepoint-api/internal/session"
)

// SessionHandlers provides HTTP handlers for session preference operations.
// Preferences work for anonymous sessions too; a cookie is minted on first use.
type SessionHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
}

// ToggleSidebar flips the sidebar preference.
// POST /api/session/sidebar/toggle.
func (h *SessionHandlers) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	store, err := h.resumeOrCreate(w, r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if err := store.ToggleSidebar(r.Context()); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"sidebar_collapsed": store.SidebarCollapsed()})
}

type sidebarRequest struct {
	Collapsed bool `json:"collapsed"`
}

// SetSidebar sets the sidebar preference explicitly.
// PUT /api/session/sidebar.
func (h *SessionHandlers) SetSidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	store, err := h.resumeOrCreate(w, r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if err := store.SetSidebarCollapsed(r.Context(), req.Collapsed); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"sidebar_collapsed": store.SidebarCollapsed()})
}

// resumeOrCreate loads the session store for the request's cookie, minting a
// new session (and setting the cookie) when none exists yet.
func (h *SessionHandlers) resumeOrCreate(w http.ResponseWriter, r *http.Request) (*session.Store, error) {
	sessionID := sessionIDFromCookie(r)
	if sessionID == "" {
		sessionID = h.Svc.NewSessionID()
		authHandlers := &AuthHandlers{Svc: h.Svc, CookieDomain: h.CookieDomain}
		authHandlers.setSessionCookie(w, r, sessionID)
	}
	return h.Svc.Resume(r.Context(), sessionID)
}
