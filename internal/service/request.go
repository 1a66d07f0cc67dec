package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pulsepoint/pulsepoint-api/internal/core"
	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
	"github.com/pulsepoint/pulsepoint-api/internal/ports"
)

// RequestServiceOptions groups dependencies for RequestService.
type RequestServiceOptions struct {
	Requests core.BloodRequestRepository
	// Notifiers receive urgent requests. Optional; nil disables broadcast.
	Notifiers []ports.Notifier
	Logger    *slog.Logger
}

// RequestService handles posting and lifecycle of blood requests.
type RequestService struct {
	requests  core.BloodRequestRepository
	notifiers []ports.Notifier
	logger    *slog.Logger
}

// NewRequestService constructs a new RequestService.
func NewRequestService(opts RequestServiceOptions) *RequestService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestService{
		requests:  opts.Requests,
		notifiers: opts.Notifiers,
		logger:    logger,
	}
}

// Post stores a new request and, for critical and high urgency, broadcasts it
// to subscribed notifiers. Broadcast failures are logged, not surfaced: the
// request is already persisted and dashboards will still show it.
func (s *RequestService) Post(ctx context.Context, in *model.PostRequestInput) (*model.BloodRequest, error) {
	if in == nil {
		return nil, apperrors.Validation("post request input is required")
	}
	if err := in.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid blood request")
	}

	req, err := s.requests.Create(ctx, in)
	if err != nil {
		if errors.Is(err, data.ErrUnknownHospital) {
			return nil, apperrors.ValidationField("hospital_id", "hospital account not found")
		}
		return nil, fmt.Errorf("create blood request: %w", err)
	}

	if req.Urgency.Broadcastable() {
		s.broadcast(ctx, req)
	}

	return req, nil
}

// ListActive returns active requests for donor dashboards.
func (s *RequestService) ListActive(ctx context.Context, opts model.RequestsListOptions) ([]*model.BloodRequest, error) {
	status := model.RequestStatusActive
	opts.Status = &status
	return s.requests.List(ctx, normalizeRequestListOptions(opts))
}

// List returns requests without forcing a status filter; hospital dashboards
// use it to show their full history.
func (s *RequestService) List(ctx context.Context, opts model.RequestsListOptions) ([]*model.BloodRequest, error) {
	return s.requests.List(ctx, normalizeRequestListOptions(opts))
}

// GetByID retrieves a request.
func (s *RequestService) GetByID(ctx context.Context, id string) (*model.BloodRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrRequestNotFound) {
			return nil, apperrors.NotFound("blood request not found")
		}
		return nil, err
	}
	return req, nil
}

// Cancel withdraws an active request. Only the posting hospital can cancel.
func (s *RequestService) Cancel(ctx context.Context, id, hospitalID string) error {
	return s.setStatus(ctx, id, hospitalID, model.RequestStatusCancelled)
}

// Fulfill marks a request as satisfied. Only the posting hospital can do so.
func (s *RequestService) Fulfill(ctx context.Context, id, hospitalID string) error {
	return s.setStatus(ctx, id, hospitalID, model.RequestStatusFulfilled)
}

func (s *RequestService) setStatus(ctx context.Context, id, hospitalID string, status model.RequestStatus) error {
	ok, err := s.requests.UpdateStatus(ctx, core.UpdateRequestStatusParams{
		ID:         id,
		HospitalID: hospitalID,
		Status:     status,
	})
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("blood request not found")
	}
	return nil
}

func (s *RequestService) broadcast(ctx context.Context, req *model.BloodRequest) {
	// Sinks are independent; one slow or failing endpoint must not delay the
	// others.
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range s.notifiers {
		g.Go(func() error {
			if err := n.Notify(gctx, req); err != nil {
				s.logger.WarnContext(ctx, "blood request broadcast failed",
					"request_id", req.ID,
					"urgency", string(req.Urgency),
					"error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	if len(s.notifiers) > 0 {
		s.logger.InfoContext(ctx, "broadcast urgent blood request",
			"request_id", req.ID,
			"blood_type", string(req.BloodType),
			"urgency", string(req.Urgency),
			"notifiers", len(s.notifiers))
	}
}

func normalizeRequestListOptions(opts model.RequestsListOptions) model.RequestsListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
