// Package devseed populates a development database with accounts, donors,
// and blood requests so dashboards have data to show on first boot.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
	"github.com/pulsepoint/pulsepoint-api/internal/service"
)

// DevPassword is the shared password for all seeded accounts.
const DevPassword = "password123"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB       *sql.DB
	accounts *service.AccountService
	donors   *service.DonorService
	requests *service.RequestService
	repo     *data.AccountRepo
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	accountRepo := data.NewAccountRepo(db)
	accountService := service.NewAccountService(service.AccountServiceOptions{
		Accounts: accountRepo,
		// Dev-only accounts; low cost keeps seeding fast.
		HashCost: bcrypt.MinCost,
	})

	donorService := service.NewDonorService(service.DonorServiceOptions{
		Donors: data.NewDonorRepo(db),
	})

	requestService := service.NewRequestService(service.RequestServiceOptions{
		Requests: data.NewBloodRequestRepo(db),
	})

	return Services{
		DB:       db,
		accounts: accountService,
		donors:   donorService,
		requests: requestService,
		repo:     accountRepo,
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Seeding is idempotent: accounts that already exist are skipped, and requests
// are only inserted on a fresh database.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	hospitalIDs := map[string]string{}

	failures += seedHospitals(ctx, svcs, logger, hospitalIDs)
	failures += seedDonorAccounts(ctx, svcs, logger)
	failures += seedDonorDirectory(ctx, svcs, logger)
	failures += seedRequests(ctx, svcs, logger, hospitalIDs)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedHospitals(
	ctx context.Context,
	svcs Services,
	logger *slog.Logger,
	hospitalIDs map[string]string,
) int {
	failures := 0
	for _, signup := range hospitalSignups() {
		user, err := svcs.accounts.SignupHospital(ctx, signup)
		if err != nil {
			if apperrors.IsConflict(err) {
				if id, lookupErr := accountIDByEmail(ctx, svcs, signup.Email); lookupErr == nil {
					hospitalIDs[signup.Email] = id
				}
				logInfo(ctx, logger, "hospital account already exists", "email", signup.Email)
				continue
			}
			logError(ctx, logger, "failed to create hospital account", "email", signup.Email, "error", err)
			failures++
			continue
		}
		hospitalIDs[signup.Email] = user.ID
		logInfo(ctx, logger, "created hospital account", "email", signup.Email, "name", signup.HospitalName)
	}
	return failures
}

func seedDonorAccounts(ctx context.Context, svcs Services, logger *slog.Logger) int {
	failures := 0
	for _, signup := range donorSignups() {
		_, err := svcs.accounts.SignupDonor(ctx, signup)
		if err != nil {
			if apperrors.IsConflict(err) {
				logInfo(ctx, logger, "donor account already exists", "email", signup.Email)
				continue
			}
			logError(ctx, logger, "failed to create donor account", "email", signup.Email, "error", err)
			failures++
			continue
		}
		logInfo(ctx, logger, "created donor account", "email", signup.Email)
	}
	return failures
}

func seedDonorDirectory(ctx context.Context, svcs Services, logger *slog.Logger) int {
	existing, err := svcs.donors.List(ctx, model.DonorsListOptions{Limit: 1})
	if err != nil {
		logError(ctx, logger, "failed to check donor directory", "error", err)
		return 1
	}
	if len(existing) > 0 {
		logInfo(ctx, logger, "donor directory already seeded")
		return 0
	}

	failures := 0
	for _, req := range walkInDonors() {
		if _, createErr := svcs.donors.Create(ctx, req); createErr != nil {
			logError(ctx, logger, "failed to create donor record",
				"name", req.FirstName+" "+req.LastName, "error", createErr)
			failures++
			continue
		}
		logInfo(ctx, logger, "created donor record", "name", req.FirstName+" "+req.LastName)
	}
	return failures
}

func seedRequests(
	ctx context.Context,
	svcs Services,
	logger *slog.Logger,
	hospitalIDs map[string]string,
) int {
	existing, err := svcs.requests.ListActive(ctx, model.RequestsListOptions{Limit: 1})
	if err != nil {
		logError(ctx, logger, "failed to check blood requests", "error", err)
		return 1
	}
	if len(existing) > 0 {
		logInfo(ctx, logger, "blood requests already seeded")
		return 0
	}

	failures := 0
	for _, in := range bloodRequests(hospitalIDs) {
		if in.HospitalID == "" {
			// Hospital account seeding failed; already counted there.
			continue
		}
		if _, postErr := svcs.requests.Post(ctx, in); postErr != nil {
			logError(ctx, logger, "failed to create blood request",
				"blood_type", in.BloodType, "error", postErr)
			failures++
			continue
		}
		logInfo(ctx, logger, "created blood request",
			"blood_type", in.BloodType, "urgency", in.Urgency)
	}
	return failures
}

func accountIDByEmail(ctx context.Context, svcs Services, email string) (string, error) {
	account, err := svcs.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return account.ID, nil
}

func hospitalSignups() []*model.HospitalSignup {
	return []*model.HospitalSignup{
		{
			HospitalName:       "Lagos University Teaching Hospital",
			ContactPerson:      "Adaeze Okafor",
			Position:           "Blood Bank Coordinator",
			Email:              "bloodbank@luth.example",
			Phone:              "+234-801-555-1001",
			Type:               model.HospitalTypeTeaching,
			RegistrationNumber: "REG-LUTH-001",
			LicenseNumber:      "LIC-2024-1001",
			EmergencyLine:      "+234-801-555-1911",
			State:              "Lagos",
			City:               "Idi-Araba",
			Address:            "Ishaga Road, Idi-Araba",
			Password:           DevPassword,
		},
		{
			HospitalName:       "National Hospital Abuja",
			ContactPerson:      "Ibrahim Musa",
			Position:           "Haematology Lead",
			Email:              "haematology@nha.example",
			Phone:              "+234-802-555-2001",
			Type:               model.HospitalTypeGeneral,
			RegistrationNumber: "REG-NHA-002",
			LicenseNumber:      "LIC-2024-2001",
			EmergencyLine:      "+234-802-555-2911",
			State:              "FCT",
			City:               "Abuja",
			Address:            "Plot 132 Central District",
			Password:           DevPassword,
		},
		{
			HospitalName:       "LifeSpring Blood Bank",
			ContactPerson:      "Chiamaka Eze",
			Position:           "Operations Manager",
			Email:              "ops@lifespring.example",
			Phone:              "+234-803-555-3001",
			Type:               model.HospitalTypeBloodBank,
			RegistrationNumber: "REG-LSB-003",
			LicenseNumber:      "LIC-2024-3001",
			EmergencyLine:      "+234-803-555-3911",
			State:              "Rivers",
			City:               "Port Harcourt",
			Address:            "14 Aba Road",
			Password:           DevPassword,
		},
	}
}

func donorSignups() []*model.DonorSignup {
	return []*model.DonorSignup{
		{
			FirstName:        "Tunde",
			LastName:         "Bakare",
			Email:            "tunde.bakare@example.com",
			Phone:            "+234-805-555-4001",
			DateOfBirth:      time.Date(1992, 3, 14, 0, 0, 0, 0, time.UTC),
			Gender:           "male",
			BloodType:        model.BloodONeg,
			State:            "Lagos",
			City:             "Ikeja",
			Address:          "23 Allen Avenue",
			EmergencyContact: "+234-805-555-4002",
			Password:         DevPassword,
		},
		{
			FirstName:         "Ngozi",
			LastName:          "Adichie",
			Email:             "ngozi.adichie@example.com",
			Phone:             "+234-806-555-5001",
			DateOfBirth:       time.Date(1988, 11, 2, 0, 0, 0, 0, time.UTC),
			Gender:            "female",
			BloodType:         model.BloodAPos,
			State:             "Enugu",
			City:              "Enugu",
			Address:           "7 Ogui Road",
			EmergencyContact:  "+234-806-555-5002",
			MedicalConditions: "none",
			Password:          DevPassword,
		},
	}
}

func walkInDonors() []*model.CreateDonorRequest {
	return []*model.CreateDonorRequest{
		{
			FirstName: "Emeka",
			LastName:  "Obi",
			Email:     "emeka.obi@example.com",
			Phone:     "+234-807-555-6001",
			BloodType: model.BloodBPos,
			State:     "Lagos",
			City:      "Surulere",
			Address:   "11 Bode Thomas Street",
		},
		{
			FirstName: "Funke",
			LastName:  "Ajayi",
			Phone:     "+234-808-555-7001",
			BloodType: model.BloodONeg,
			State:     "Oyo",
			City:      "Ibadan",
			Address:   "4 Ring Road",
		},
		{
			FirstName: "Suleiman",
			LastName:  "Bello",
			Email:     "suleiman.bello@example.com",
			Phone:     "+234-809-555-8001",
			BloodType: model.BloodABNeg,
			State:     "Kano",
			City:      "Kano",
			Address:   "29 Zoo Road",
		},
	}
}

func bloodRequests(hospitalIDs map[string]string) []*model.PostRequestInput {
	now := time.Now().UTC()
	return []*model.PostRequestInput{
		{
			HospitalID:       hospitalIDs["bloodbank@luth.example"],
			BloodType:        model.BloodONeg,
			Quantity:         4,
			QuantityUnit:     "pints",
			Urgency:          model.UrgencyCritical,
			Deadline:         now.Add(2 * time.Hour),
			MedicalCondition: "post-partum haemorrhage",
			Location:         "Lagos University Teaching Hospital",
			ContactPerson:    "Adaeze Okafor",
			ContactPhone:     "+234-801-555-1001",
			ContactEmail:     "bloodbank@luth.example",
			Notes:            "O- preferred; O+ acceptable for one unit",
		},
		{
			HospitalID:       hospitalIDs["haematology@nha.example"],
			BloodType:        model.BloodAPos,
			Quantity:         2,
			QuantityUnit:     "pints",
			Urgency:          model.UrgencyHigh,
			Deadline:         now.Add(6 * time.Hour),
			MedicalCondition: "scheduled cardiac surgery",
			Location:         "National Hospital Abuja",
			ContactPerson:    "Ibrahim Musa",
			ContactPhone:     "+234-802-555-2001",
			ContactEmail:     "haematology@nha.example",
		},
		{
			HospitalID:       hospitalIDs["ops@lifespring.example"],
			BloodType:        model.BloodBPos,
			Quantity:         6,
			QuantityUnit:     "pints",
			Urgency:          model.UrgencyLow,
			Deadline:         now.Add(72 * time.Hour),
			MedicalCondition: "stock replenishment",
			Location:         "LifeSpring Blood Bank",
			ContactPerson:    "Chiamaka Eze",
			ContactPhone:     "+234-803-555-3001",
			ContactEmail:     "ops@lifespring.example",
		},
	}
}

func logInfo(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.InfoContext(ctx, msg, args...)
	}
}

func logError(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.ErrorContext(ctx, msg, args...)
	}
}
