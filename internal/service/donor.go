package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pulsepoint/pulsepoint-api/internal/core"
	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
)

// DonorServiceOptions groups dependencies for DonorService.
type DonorServiceOptions struct {
	Donors core.DonorRepository
}

// DonorService exposes the donor directory to hospital dashboards.
type DonorService struct {
	donors core.DonorRepository
}

// NewDonorService constructs a new DonorService.
func NewDonorService(opts DonorServiceOptions) *DonorService {
	return &DonorService{donors: opts.Donors}
}

// List returns donors matching the options.
func (s *DonorService) List(ctx context.Context, opts model.DonorsListOptions) ([]*model.Donor, error) {
	return s.donors.List(ctx, normalizeDonorListOptions(opts))
}

// Create registers a walk-in donor entered by hospital staff.
func (s *DonorService) Create(ctx context.Context, req *model.CreateDonorRequest) (*model.Donor, error) {
	if req == nil {
		return nil, apperrors.Validation("create donor request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid donor record")
	}
	donor, err := s.donors.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create donor: %w", err)
	}
	return donor, nil
}

// GetByID retrieves a donor directory entry.
func (s *DonorService) GetByID(ctx context.Context, id string) (*model.Donor, error) {
	donor, err := s.donors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrDonorNotFound) {
			return nil, apperrors.NotFound("donor not found")
		}
		return nil, err
	}
	return donor, nil
}

// SetAvailability marks a donor reachable or unreachable for new requests.
func (s *DonorService) SetAvailability(ctx context.Context, id string, available bool) error {
	ok, err := s.donors.SetAvailability(ctx, id, available)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("donor not found")
	}
	return nil
}

func normalizeDonorListOptions(opts model.DonorsListOptions) model.DonorsListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
