package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
	"github.com/pulsepoint/pulsepoint-api/internal/wizard"
)

// SignupSubmitter bridges the signup wizard to account creation. On success
// the new identity is logged into the caller's session, matching the web
// client's straight-to-dashboard behavior after registration.
type SignupSubmitter struct {
	Accounts *AccountService
	Auth     *AuthService
	// SessionID is the browser session the new identity is recorded on.
	SessionID string
}

// Submit implements wizard.Submitter for the two signup categories.
func (s *SignupSubmitter) Submit(ctx context.Context, category wizard.Category, fields map[string]string) error {
	var user *auth.User
	var err error

	switch category {
	case wizard.CategoryDonorSignup:
		signup, buildErr := buildDonorSignup(fields)
		if buildErr != nil {
			return buildErr
		}
		user, err = s.Accounts.SignupDonor(ctx, signup)
	case wizard.CategoryHospitalSignup:
		signup, buildErr := buildHospitalSignup(fields)
		if buildErr != nil {
			return buildErr
		}
		user, err = s.Accounts.SignupHospital(ctx, signup)
	default:
		return fmt.Errorf("unsupported signup category %q", category)
	}
	if err != nil {
		return err
	}

	if s.Auth != nil && s.SessionID != "" {
		if _, loginErr := s.Auth.LoginUser(ctx, s.SessionID, *user); loginErr != nil {
			return fmt.Errorf("login after signup: %w", loginErr)
		}
	}
	return nil
}

// RequestSubmitter bridges the request wizard to request posting. HospitalID
// comes from the authenticated session, never from form fields.
type RequestSubmitter struct {
	Requests   *RequestService
	HospitalID string
}

// Submit implements wizard.Submitter for the blood request category.
func (s *RequestSubmitter) Submit(ctx context.Context, category wizard.Category, fields map[string]string) error {
	if category != wizard.CategoryBloodRequest {
		return fmt.Errorf("unsupported request category %q", category)
	}
	in, err := buildRequestInput(fields, s.HospitalID)
	if err != nil {
		return err
	}
	_, err = s.Requests.Post(ctx, in)
	return err
}

func buildDonorSignup(fields map[string]string) (*model.DonorSignup, error) {
	bt, ok := model.ParseBloodType(fields[wizard.FieldBloodType])
	if !ok {
		return nil, apperrors.ValidationField(wizard.FieldBloodType, "unknown blood type")
	}
	dob, err := wizard.ParseDate(fields[wizard.FieldDateOfBirth])
	if err != nil {
		return nil, apperrors.ValidationField(wizard.FieldDateOfBirth, "unrecognized date of birth")
	}

	return &model.DonorSignup{
		FirstName:         strings.TrimSpace(fields[wizard.FieldFirstName]),
		LastName:          strings.TrimSpace(fields[wizard.FieldLastName]),
		Email:             strings.TrimSpace(fields[wizard.FieldEmail]),
		Phone:             strings.TrimSpace(fields[wizard.FieldPhone]),
		DateOfBirth:       dob,
		Gender:            strings.TrimSpace(fields[wizard.FieldGender]),
		BloodType:         bt,
		State:             strings.TrimSpace(fields[wizard.FieldState]),
		City:              strings.TrimSpace(fields[wizard.FieldCity]),
		Address:           strings.TrimSpace(fields[wizard.FieldAddress]),
		EmergencyContact:  strings.TrimSpace(fields[wizard.FieldEmergencyContact]),
		MedicalConditions: strings.TrimSpace(fields[wizard.FieldMedicalConditions]),
		Password:          fields[wizard.FieldPassword],
	}, nil
}

func buildHospitalSignup(fields map[string]string) (*model.HospitalSignup, error) {
	return &model.HospitalSignup{
		HospitalName:       strings.TrimSpace(fields[wizard.FieldHospitalName]),
		ContactPerson:      strings.TrimSpace(fields[wizard.FieldContactPerson]),
		Position:           strings.TrimSpace(fields[wizard.FieldPosition]),
		Email:              strings.TrimSpace(fields[wizard.FieldEmail]),
		Phone:              strings.TrimSpace(fields[wizard.FieldPhone]),
		Type:               model.HospitalType(strings.TrimSpace(fields[wizard.FieldHospitalType])),
		RegistrationNumber: strings.TrimSpace(fields[wizard.FieldRegistrationNumber]),
		LicenseNumber:      strings.TrimSpace(fields[wizard.FieldLicenseNumber]),
		EmergencyLine:      strings.TrimSpace(fields[wizard.FieldEmergencyLine]),
		State:              strings.TrimSpace(fields[wizard.FieldState]),
		City:               strings.TrimSpace(fields[wizard.FieldCity]),
		Address:            strings.TrimSpace(fields[wizard.FieldAddress]),
		Password:           fields[wizard.FieldPassword],
	}, nil
}

func buildRequestInput(fields map[string]string, hospitalID string) (*model.PostRequestInput, error) {
	bt, ok := model.ParseBloodType(fields[wizard.FieldBloodType])
	if !ok {
		return nil, apperrors.ValidationField(wizard.FieldBloodType, "unknown blood type")
	}
	urgency, ok := model.ParseUrgency(fields[wizard.FieldUrgency])
	if !ok {
		return nil, apperrors.ValidationField(wizard.FieldUrgency, "unknown urgency level")
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(fields[wizard.FieldQuantity]))
	if err != nil {
		return nil, apperrors.ValidationField(wizard.FieldQuantity, "quantity must be a whole number")
	}
	deadline, err := wizard.ParseDeadline(fields[wizard.FieldDeadline])
	if err != nil {
		return nil, apperrors.ValidationField(wizard.FieldDeadline, "unrecognized deadline")
	}

	notes := strings.TrimSpace(fields[wizard.FieldAdditionalNotes])

	return &model.PostRequestInput{
		HospitalID:       hospitalID,
		BloodType:        bt,
		Quantity:         quantity,
		QuantityUnit:     strings.TrimSpace(fields[wizard.FieldQuantityUnit]),
		Urgency:          urgency,
		Deadline:         deadline,
		MedicalCondition: strings.TrimSpace(fields[wizard.FieldMedicalCondition]),
		Location:         strings.TrimSpace(fields[wizard.FieldLocation]),
		ContactPerson:    strings.TrimSpace(fields[wizard.FieldContactPerson]),
		ContactPhone:     strings.TrimSpace(fields[wizard.FieldContactPhone]),
		ContactEmail:     strings.TrimSpace(fields[wizard.FieldContactEmail]),
		Notes:            notes,
	}, nil
}
