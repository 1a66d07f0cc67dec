// Package mocks provides mock implementations for testing the service layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// our repository interfaces. The mocks are generated using go:generate
// directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockAccountRepository(ctrl)
//	mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(acct, nil)
package mocks

// Generate mock for AccountRepository interface from internal/core package.
// This creates MockAccountRepository with methods:
// CreateDonor, CreateHospital, EmailTaken, GetByEmail, GetByID
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=account_repository_mock.go github.com/pulsepoint/pulsepoint-api/internal/core AccountRepository

// Generate mock for DonorRepository interface from internal/core package.
// This creates MockDonorRepository with methods:
// Create, GetByID, List, SetAvailability
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=donor_repository_mock.go github.com/pulsepoint/pulsepoint-api/internal/core DonorRepository

// Generate mock for BloodRequestRepository interface from internal/core package.
// This creates MockBloodRequestRepository with methods:
// Create, GetByID, List, UpdateStatus
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=blood_request_repository_mock.go github.com/pulsepoint/pulsepoint-api/internal/core BloodRequestRepository
