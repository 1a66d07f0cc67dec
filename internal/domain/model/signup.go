package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Signup payloads are a tagged union per persona rather than one flat record
// with optional fields, so "which fields matter" is checkable at compile time.

// DonorSignup carries the assembled donor registration form.
type DonorSignup struct {
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	DateOfBirth      time.Time `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	BloodType        BloodType `json:"blood_type"`
	State            string    `json:"state"`
	City             string    `json:"city"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergency_contact"`
	// MedicalConditions is optional free text from the registration form.
	MedicalConditions string `json:"medical_conditions,omitempty"`
	Password          string `json:"password"`
}

// Validate checks required fields for donor registration.
func (s *DonorSignup) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(s.LastName) == "" {
		return errors.New("last name is required")
	}
	if err := validateEmail(s.Email); err != nil {
		return err
	}
	if strings.TrimSpace(s.Phone) == "" {
		return errors.New("phone is required")
	}
	if s.DateOfBirth.IsZero() {
		return errors.New("date of birth is required")
	}
	if strings.TrimSpace(s.Gender) == "" {
		return errors.New("gender is required")
	}
	if !s.BloodType.Valid() {
		return errors.New("blood type is invalid")
	}
	if strings.TrimSpace(s.State) == "" {
		return errors.New("state is required")
	}
	if strings.TrimSpace(s.City) == "" {
		return errors.New("city is required")
	}
	if strings.TrimSpace(s.Address) == "" {
		return errors.New("address is required")
	}
	if strings.TrimSpace(s.EmergencyContact) == "" {
		return errors.New("emergency contact is required")
	}
	if s.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// HospitalSignup carries the assembled hospital registration form.
type HospitalSignup struct {
	HospitalName       string       `json:"hospital_name"`
	ContactPerson      string       `json:"contact_person"`
	Position           string       `json:"position"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	Type               HospitalType `json:"type"`
	RegistrationNumber string       `json:"registration_number"`
	LicenseNumber      string       `json:"license_number"`
	EmergencyLine      string       `json:"emergency_line"`
	State              string       `json:"state"`
	City               string       `json:"city"`
	Address            string       `json:"address"`
	Password           string       `json:"password"`
}

// Validate checks required fields for hospital registration.
func (s *HospitalSignup) Validate() error {
	if strings.TrimSpace(s.HospitalName) == "" {
		return errors.New("hospital name is required")
	}
	if strings.TrimSpace(s.ContactPerson) == "" {
		return errors.New("contact person is required")
	}
	if strings.TrimSpace(s.Position) == "" {
		return errors.New("position is required")
	}
	if err := validateEmail(s.Email); err != nil {
		return err
	}
	if strings.TrimSpace(s.Phone) == "" {
		return errors.New("phone is required")
	}
	if strings.TrimSpace(string(s.Type)) == "" {
		return errors.New("hospital type is required")
	}
	if strings.TrimSpace(s.RegistrationNumber) == "" {
		return errors.New("registration number is required")
	}
	if strings.TrimSpace(s.LicenseNumber) == "" {
		return errors.New("license number is required")
	}
	if strings.TrimSpace(s.EmergencyLine) == "" {
		return errors.New("emergency line is required")
	}
	if strings.TrimSpace(s.State) == "" {
		return errors.New("state is required")
	}
	if strings.TrimSpace(s.City) == "" {
		return errors.New("city is required")
	}
	if strings.TrimSpace(s.Address) == "" {
		return errors.New("address is required")
	}
	if s.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email is invalid")
	}
	return nil
}
