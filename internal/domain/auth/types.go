// Package auth contains domain-level types for identity and sessions.
// It is pure and free of transport/adapter concerns.
package auth

import "time"

// Role distinguishes the two account personas served by the platform.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleDonor    Role = "donor"
	RoleHospital Role = "hospital"
)

// Valid reports whether the role is one of the supported personas.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleHospital:
		return true
	default:
		return false
	}
}

// User is the authenticated identity carried by a session.
// BloodType is set only for donors; HospitalName only for hospitals.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Role         Role   `json:"role"`
	BloodType    string `json:"blood_type,omitempty"`
	HospitalName string `json:"hospital_name,omitempty"`
}

// IsDonor reports whether the user is a donor account.
func (u User) IsDonor() bool { return u.Role == RoleDonor }

// IsHospital reports whether the user is a hospital account.
func (u User) IsHospital() bool { return u.Role == RoleHospital }

// Session is the server-side record persisted for an authenticated browser.
// ID is an opaque session identifier (random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
