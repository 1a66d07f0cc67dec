// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"sync"

	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
	"github.com/pulsepoint/pulsepoint-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialVerifier = (*StaticVerifier)(nil)
	_ ports.Notifier           = (*RecordingNotifier)(nil)
)

// StaticVerifier accepts a fixed set of email/password pairs.
type StaticVerifier struct {
	// Users maps email to password and identity.
	Users map[string]Credential

	// AuthenticateFunc overrides the default behavior when set.
	AuthenticateFunc func(ctx context.Context, email, password string) (*domainauth.User, error)
}

// Credential pairs a password with the identity it unlocks.
type Credential struct {
	Password string
	User     domainauth.User
}

// NewStaticVerifier creates a verifier with one donor and one hospital login.
func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{
		Users: map[string]Credential{
			"donor@example.com": {
				Password: "donor-password",
				User: domainauth.User{
					ID:          "donor-1",
					Email:       "donor@example.com",
					DisplayName: "Test Donor",
					Role:        domainauth.RoleDonor,
					BloodType:   "O+",
				},
			},
			"hospital@example.com": {
				Password: "hospital-password",
				User: domainauth.User{
					ID:           "hospital-1",
					Email:        "hospital@example.com",
					DisplayName:  "Test Hospital",
					Role:         domainauth.RoleHospital,
					HospitalName: "Test Hospital",
				},
			},
		},
	}
}

// Authenticate checks the pair against the static table.
func (v *StaticVerifier) Authenticate(ctx context.Context, email, password string) (*domainauth.User, error) {
	if v.AuthenticateFunc != nil {
		return v.AuthenticateFunc(ctx, email, password)
	}
	cred, ok := v.Users[email]
	if !ok || cred.Password != password {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	u := cred.User
	return &u, nil
}

// RecordingNotifier captures notified payloads for assertions.
type RecordingNotifier struct {
	mu       sync.Mutex
	payloads []any

	// Err, when set, is returned from Notify after recording.
	Err error
}

// Notify records the payload.
func (n *RecordingNotifier) Notify(_ context.Context, payload any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
	return n.Err
}

// Payloads returns a copy of everything notified so far.
func (n *RecordingNotifier) Payloads() []any {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]any, len(n.payloads))
	copy(out, n.payloads)
	return out
}
