package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	"github.com/pulsepoint/pulsepoint-api/internal/service"
)

// RequestHandlers provides HTTP handlers for blood request operations.
type RequestHandlers struct {
	Svc *service.RequestService
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Create posts a new blood request for the authenticated hospital.
// POST /api/requests.
func (h *RequestHandlers) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil || !user.IsHospital() {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("only hospital accounts can post requests"),
		})
		return
	}

	var in model.PostRequestInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	// The posting hospital is always the session identity.
	in.HospitalID = user.ID

	req, err := h.Svc.Post(r.Context(), &in)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, req)
}

// List returns blood requests. Donors see active requests; hospitals see
// their own full history unless they ask for the active board.
// GET /api/requests.
func (h *RequestHandlers) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	opts := parseRequestListOptions(r)

	if user != nil && user.IsHospital() && r.URL.Query().Get("scope") != "active" {
		hospitalID := user.ID
		opts.HospitalID = &hospitalID
		requests, err := h.Svc.List(r.Context(), opts)
		if err != nil {
			WriteAppError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, listResponse(requests))
		return
	}

	requests, err := h.Svc.ListActive(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, listResponse(requests))
}

// Get returns one blood request.
// GET /api/requests/{id}.
func (h *RequestHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("request id is required")})
		return
	}

	req, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, req)
}

// Cancel withdraws a request posted by the authenticated hospital.
// DELETE /api/requests/{id}.
func (h *RequestHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Svc.Cancel)
}

// Fulfill marks a request posted by the authenticated hospital as satisfied.
// POST /api/requests/{id}/fulfill.
func (h *RequestHandlers) Fulfill(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.Svc.Fulfill)
}

func (h *RequestHandlers) updateStatus(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id, hospitalID string) error,
) {
	user := GetUserFromContext(r.Context())
	if user == nil || !user.IsHospital() {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("only the posting hospital can change a request"),
		})
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("request id is required")})
		return
	}

	if err := op(r.Context(), id, user.ID); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// parseRequestListOptions reads paging, filter, and sort parameters.
func parseRequestListOptions(r *http.Request) model.RequestsListOptions {
	q := r.URL.Query()
	opts := model.RequestsListOptions{}
	opts.Limit, opts.Offset = ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts.Sort, opts.Dir = ParseSortParam(q, "sort", "dir")

	if search := q.Get("q"); search != "" {
		opts.Q = &search
	}
	if bt, ok := model.ParseBloodType(q.Get("blood_type")); ok {
		opts.BloodType = &bt
	}
	if urgency, ok := model.ParseUrgency(q.Get("urgency")); ok {
		opts.Urgency = &urgency
	}
	if status := model.RequestStatus(q.Get("status")); status.Valid() {
		opts.Status = &status
	}
	return opts
}

func listResponse[T any](items []T) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{"items": items, "count": len(items)}
}
