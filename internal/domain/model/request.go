package model

import (
	"errors"
	"strings"
	"time"
)

// RequestStatus tracks the lifecycle of a posted blood request.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusExpired   RequestStatus = "expired"
)

// Valid reports whether the status is a supported lifecycle state.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusActive, RequestStatusFulfilled, RequestStatusCancelled, RequestStatusExpired:
		return true
	default:
		return false
	}
}

// BloodRequest is a hospital's call for blood of a given type and quantity.
type BloodRequest struct {
	ID               string        `json:"id"                db:"id"`
	HospitalID       string        `json:"hospital_id"       db:"hospital_id"`
	BloodType        BloodType     `json:"blood_type"        db:"blood_type"`
	Quantity         int           `json:"quantity"          db:"quantity"`
	QuantityUnit     string        `json:"quantity_unit"     db:"quantity_unit"`
	Urgency          Urgency       `json:"urgency"           db:"urgency"`
	Deadline         time.Time     `json:"deadline"          db:"deadline"`
	MedicalCondition string        `json:"medical_condition" db:"medical_condition"`
	Location         string        `json:"location"          db:"location"`
	ContactPerson    string        `json:"contact_person"    db:"contact_person"`
	ContactPhone     string        `json:"contact_phone"     db:"contact_phone"`
	ContactEmail     string        `json:"contact_email"     db:"contact_email"`
	Notes            string        `json:"notes,omitempty"   db:"notes"`
	Status           RequestStatus `json:"status"            db:"status"`
	CreatedAt        time.Time     `json:"created_at"        db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"        db:"updated_at"`
}

// PostRequestInput carries parameters for posting a blood request.
// Deadline is accepted as-is when parseable; past deadlines are allowed so
// hospitals can backfill records.
type PostRequestInput struct {
	HospitalID       string    `json:"hospital_id"`
	BloodType        BloodType `json:"blood_type"`
	Quantity         int       `json:"quantity"`
	QuantityUnit     string    `json:"quantity_unit"`
	Urgency          Urgency   `json:"urgency"`
	Deadline         time.Time `json:"deadline"`
	MedicalCondition string    `json:"medical_condition"`
	Location         string    `json:"location"`
	ContactPerson    string    `json:"contact_person"`
	ContactPhone     string    `json:"contact_phone"`
	ContactEmail     string    `json:"contact_email"`
	Notes            string    `json:"notes,omitempty"`
}

// Validate checks required fields and value ranges for a new request.
func (in *PostRequestInput) Validate() error {
	if strings.TrimSpace(in.HospitalID) == "" {
		return errors.New("hospital id is required")
	}
	if !in.BloodType.Valid() {
		return errors.New("blood type is invalid")
	}
	if in.Quantity <= 0 {
		return errors.New("quantity must be a positive integer")
	}
	if strings.TrimSpace(in.QuantityUnit) == "" {
		return errors.New("quantity unit is required")
	}
	if !in.Urgency.Valid() {
		return errors.New("urgency is invalid")
	}
	if in.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	if strings.TrimSpace(in.MedicalCondition) == "" {
		return errors.New("medical condition is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return errors.New("location is required")
	}
	if strings.TrimSpace(in.ContactPerson) == "" {
		return errors.New("contact person is required")
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return errors.New("contact phone is required")
	}
	if strings.TrimSpace(in.ContactEmail) == "" {
		return errors.New("contact email is required")
	}
	return nil
}

// RequestsListOptions controls paging and filtering for request dashboards.
// Notes:
// - Q matches medical condition, location, and contact person via ILIKE.
// - BloodType, Urgency, Status, and HospitalID match exactly.
// - Sort supports: "created_at", "deadline", "urgency".
type RequestsListOptions struct {
	Limit      int
	Offset     int
	Q          *string
	BloodType  *BloodType
	Urgency    *Urgency
	Status     *RequestStatus
	HospitalID *string
	Sort       string
	Dir        string
}
