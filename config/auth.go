package config

import "time"

// AuthConfig groups session and password hashing configuration.
type AuthConfig struct {
	// SessionTTL bounds how long a login stays valid. Each session save
	// slides the expiry forward.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// BcryptCost overrides the password hashing cost. Zero uses the
	// bcrypt default; development can lower it for faster signups.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	// bcrypt rejects costs above 31; clamp rather than fail at first signup.
	if a.BcryptCost < 0 {
		a.BcryptCost = 0
	}
	if a.BcryptCost > 31 {
		a.BcryptCost = 31
	}
}
