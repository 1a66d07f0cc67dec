package core

import (
	"context"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// AccountRepository defines the interface for account credential and profile storage.
type AccountRepository interface {
	// CreateDonor stores a donor account plus its donor directory entry.
	CreateDonor(ctx context.Context, signup *model.DonorSignup, passwordHash string) (*model.Account, error)
	// CreateHospital stores a hospital account and facility profile.
	CreateHospital(ctx context.Context, signup *model.HospitalSignup, passwordHash string) (*model.Account, error)
	// GetByEmail finds an account of either persona by email.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	// GetByID finds an account of either persona by ID.
	GetByID(ctx context.Context, id string) (*model.Account, error)
	// EmailTaken reports whether either persona already uses the email.
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// DonorRepository defines the interface for the donor directory.
type DonorRepository interface {
	Create(ctx context.Context, req *model.CreateDonorRequest) (*model.Donor, error)
	GetByID(ctx context.Context, id string) (*model.Donor, error)
	List(ctx context.Context, opts model.DonorsListOptions) ([]*model.Donor, error)
	// SetAvailability flips whether the donor shows as reachable for new requests.
	SetAvailability(ctx context.Context, id string, available bool) (bool, error)
}

// BloodRequestRepository defines the interface for posted blood requests.
type BloodRequestRepository interface {
	Create(ctx context.Context, in *model.PostRequestInput) (*model.BloodRequest, error)
	GetByID(ctx context.Context, id string) (*model.BloodRequest, error)
	List(ctx context.Context, opts model.RequestsListOptions) ([]*model.BloodRequest, error)
	// UpdateStatus moves a request through its lifecycle. Returns false when
	// the request does not exist or does not belong to the hospital.
	UpdateStatus(ctx context.Context, params UpdateRequestStatusParams) (bool, error)
}

// UpdateRequestStatusParams groups parameters for UpdateStatus to keep param count ≤3.
type UpdateRequestStatusParams struct {
	ID         string
	HospitalID string
	Status     model.RequestStatus
}
