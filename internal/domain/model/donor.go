package model

import (
	"errors"
	"strings"
	"time"
)

// Donor is a directory entry visible to hospital dashboards. Rows come either
// from donor self-registration or from hospital staff entering a walk-in.
type Donor struct {
	ID               string     `json:"id"                     db:"id"`
	AccountID        *string    `json:"account_id,omitempty"   db:"account_id"`
	FirstName        string     `json:"first_name"             db:"first_name"`
	LastName         string     `json:"last_name"              db:"last_name"`
	Email            string     `json:"email"                  db:"email"`
	Phone            string     `json:"phone"                  db:"phone"`
	BloodType        BloodType  `json:"blood_type"             db:"blood_type"`
	State            string     `json:"state"                  db:"state"`
	City             string     `json:"city"                   db:"city"`
	Address          string     `json:"address"                db:"address"`
	EmergencyContact string     `json:"emergency_contact"      db:"emergency_contact"`
	LastDonation     *time.Time `json:"last_donation,omitempty" db:"last_donation"`
	Available        bool       `json:"available"              db:"available"`
	CreatedAt        time.Time  `json:"created_at"             db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"             db:"updated_at"`
}

// DisplayName returns the donor's full name for dashboards and notifications.
func (d Donor) DisplayName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// CreateDonorRequest carries parameters for a hospital-entered donor record.
type CreateDonorRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	BloodType BloodType `json:"blood_type"`
	State     string    `json:"state"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
}

// Validate checks required fields for a donor directory entry.
func (r *CreateDonorRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return errors.New("last name is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return errors.New("phone is required")
	}
	if !r.BloodType.Valid() {
		return errors.New("blood type is invalid")
	}
	return nil
}

// DonorsListOptions controls paging and filtering for the donor directory.
// Notes:
// - Q matches first/last name and email via ILIKE substring.
// - BloodType and State match exactly.
// - Sort supports: "created_at", "last_name", "blood_type".
// - Dir supports: "asc", "desc" (case-insensitive; normalized internally).
type DonorsListOptions struct {
	Limit     int
	Offset    int
	Q         *string
	BloodType *BloodType
	State     *string
	Available *bool
	Sort      string
	Dir       string
}
