package model

import "time"

// HospitalType categorizes registered facilities.
type HospitalType string

const (
	HospitalTypeGeneral    HospitalType = "general"
	HospitalTypeTeaching   HospitalType = "teaching"
	HospitalTypeSpecialist HospitalType = "specialist"
	HospitalTypeClinic     HospitalType = "clinic"
	HospitalTypeBloodBank  HospitalType = "blood_bank"
)

// Hospital is a registered facility account profile.
type Hospital struct {
	ID                 string       `json:"id"                  db:"id"`
	Name               string       `json:"name"                db:"name"`
	ContactPerson      string       `json:"contact_person"      db:"contact_person"`
	Position           string       `json:"position"            db:"position"`
	Email              string       `json:"email"               db:"email"`
	Phone              string       `json:"phone"               db:"phone"`
	Type               HospitalType `json:"type"                db:"type"`
	RegistrationNumber string       `json:"registration_number" db:"registration_number"`
	LicenseNumber      string       `json:"license_number"      db:"license_number"`
	EmergencyLine      string       `json:"emergency_line"      db:"emergency_line"`
	State              string       `json:"state"               db:"state"`
	City               string       `json:"city"                db:"city"`
	Address            string       `json:"address"             db:"address"`
	CreatedAt          time.Time    `json:"created_at"          db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"          db:"updated_at"`
}
