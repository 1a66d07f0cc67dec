package model

import (
	"time"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
)

// Account is a credentialed login record for either persona. PasswordHash is
// a bcrypt hash and never leaves the service layer.
type Account struct {
	ID           string    `json:"id"            db:"id"`
	Email        string    `json:"email"         db:"email"`
	PasswordHash string    `json:"-"             db:"password_hash"`
	Role         auth.Role `json:"role"          db:"role"`
	DisplayName  string    `json:"display_name"  db:"display_name"`
	AvatarURL    string    `json:"avatar_url"    db:"avatar_url"`
	BloodType    BloodType `json:"blood_type"    db:"blood_type"`
	HospitalName string    `json:"hospital_name" db:"hospital_name"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}

// User converts the account to the identity carried by sessions.
func (a Account) User() auth.User {
	return auth.User{
		ID:           a.ID,
		Email:        a.Email,
		DisplayName:  a.DisplayName,
		AvatarURL:    a.AvatarURL,
		Role:         a.Role,
		BloodType:    string(a.BloodType),
		HospitalName: a.HospitalName,
	}
}
