// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/service and internal/adapters.
package ports

import (
	"context"

	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
)

// CredentialVerifier authenticates an email/password pair and returns the
// identity carried by sessions.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, email, password string) (*domainauth.User, error)
}

// Notifier pushes a notification payload to an external channel. Used to fan
// out urgent blood requests to subscribed endpoints.
type Notifier interface {
	Notify(ctx context.Context, payload any) error
}
