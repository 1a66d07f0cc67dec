package httpx

import (
	"errors"
	"net/http"

	"github.com/pulsepoint/pulsepoint-api/internal/service"
	"github.com/pulsepoint/pulsepoint-api/internal/wizard"
)

// SignupHandlers provides HTTP handlers for account registration. The payload
// mirrors the registration wizard: a category plus the assembled field map,
// validated with the same rules the step-by-step flow enforces.
type SignupHandlers struct {
	Accounts *service.AccountService
	Auth     *service.AuthService
	// CookieDomain scopes the session cookie set after registration.
	CookieDomain string
}

type signupRequest struct {
	Category wizard.Category   `json:"category"`
	Fields   map[string]string `json:"fields"`
}

// Signup handles registration for both personas.
// POST /api/signup.
func (h *SignupHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Category != wizard.CategoryDonorSignup && req.Category != wizard.CategoryHospitalSignup {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_category",
			Err:     errors.New("category must be donor_signup or hospital_signup"),
		})
		return
	}

	if err := wizard.ValidateFields(req.Category, req.Fields); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
		return
	}

	// Carry the visitor's anonymous session forward so the new identity
	// lands on it; mint one otherwise.
	sessionID := sessionIDFromCookie(r)
	if sessionID == "" {
		sessionID = h.Auth.NewSessionID()
	}

	submitter := &service.SignupSubmitter{
		Accounts:  h.Accounts,
		Auth:      h.Auth,
		SessionID: sessionID,
	}
	if err := submitter.Submit(r.Context(), req.Category, req.Fields); err != nil {
		WriteAppError(w, err)
		return
	}

	user, err := h.Auth.RequireUser(r.Context(), sessionID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	authHandlers := &AuthHandlers{Svc: h.Auth, CookieDomain: h.CookieDomain}
	authHandlers.setSessionCookie(w, r, sessionID)
	WriteJSON(w, http.StatusCreated, sessionResponse(*user, true))
}
