package httpx

import (
	"errors"
	"net/http"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	"github.com/pulsepoint/pulsepoint-api/internal/service"
)

// DonorHandlers provides HTTP handlers for the donor directory.
type DonorHandlers struct {
	Svc *service.DonorService
}

// List returns directory entries matching the query.
// GET /api/donors.
func (h *DonorHandlers) List(w http.ResponseWriter, r *http.Request) {
	donors, err := h.Svc.List(r.Context(), parseDonorListOptions(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, listResponse(donors))
}

// Create registers a walk-in donor entered by hospital staff.
// POST /api/donors.
func (h *DonorHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateDonorRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	donor, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, donor)
}

// Get returns one directory entry.
// GET /api/donors/{id}.
func (h *DonorHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("donor id is required")})
		return
	}

	donor, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, donor)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

// SetAvailability flips whether a donor shows as reachable.
// PUT /api/donors/{id}/availability.
func (h *DonorHandlers) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("donor id is required")})
		return
	}

	var req availabilityRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	// Hospital staff manage the whole directory; a donor may only flip the
	// entry linked to their own account.
	user := GetUserFromContext(r.Context())
	if user == nil {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}
	if !user.IsHospital() {
		donor, err := h.Svc.GetByID(r.Context(), id)
		if err != nil {
			WriteAppError(w, err)
			return
		}
		if donor.AccountID == nil || *donor.AccountID != user.ID {
			WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "insufficient_permissions", Err: errors.New("insufficient permissions")})
			return
		}
	}

	if err := h.Svc.SetAvailability(r.Context(), id, req.Available); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// parseDonorListOptions reads paging, filter, and sort parameters.
func parseDonorListOptions(r *http.Request) model.DonorsListOptions {
	q := r.URL.Query()
	opts := model.DonorsListOptions{}
	opts.Limit, opts.Offset = ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts.Sort, opts.Dir = ParseSortParam(q, "sort", "dir")

	if search := q.Get("q"); search != "" {
		opts.Q = &search
	}
	if bt, ok := model.ParseBloodType(q.Get("blood_type")); ok {
		opts.BloodType = &bt
	}
	if state := q.Get("state"); state != "" {
		opts.State = &state
	}
	switch q.Get("available") {
	case StrTrue:
		v := true
		opts.Available = &v
	case StrFalse:
		v := false
		opts.Available = &v
	}
	return opts
}
