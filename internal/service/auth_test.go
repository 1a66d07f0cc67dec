package service

import (
	"context"
	"testing"

	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	apperrors "github.com/pulsepoint/pulsepoint-api/internal/errors"
	mocksauth "github.com/pulsepoint/pulsepoint-api/internal/mocks/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, session.Persister) {
	persister := session.NewMemoryPersister()
	svc := NewAuthService(AuthServiceOptions{
		Verifier:  mocksauth.NewStaticVerifier(),
		Snapshots: persister,
	})
	return svc, persister
}

func TestAuthService_Login(t *testing.T) {
	svc, persister := newAuthService()
	ctx := context.Background()

	sess, err := svc.Login(ctx, "", "donor@example.com", "donor-password")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "donor-1", sess.User.ID)
	assert.Equal(t, auth.RoleDonor, sess.User.Role)

	// the identity is persisted under the minted session ID
	snap, err := persister.Load(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, snap.User)
	assert.Equal(t, "donor-1", snap.User.ID)
	assert.True(t, snap.IsAuthenticated)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), "", "donor@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Login_ReusesSessionID(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	id := svc.NewSessionID()
	sess, err := svc.Login(ctx, id, "hospital@example.com", "hospital-password")
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID)
	assert.Equal(t, auth.RoleHospital, sess.User.Role)
}

func TestAuthService_Login_KeepsSidebarPreference(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	// anonymous visitor collapses the sidebar before logging in
	id := svc.NewSessionID()
	store, err := svc.Resume(ctx, id)
	require.NoError(t, err)
	require.NoError(t, store.ToggleSidebar(ctx))

	_, err = svc.Login(ctx, id, "donor@example.com", "donor-password")
	require.NoError(t, err)

	store, err = svc.Resume(ctx, id)
	require.NoError(t, err)
	assert.True(t, store.SidebarCollapsed())
	assert.True(t, store.IsAuthenticated())
}

func TestAuthService_LoginUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user := auth.User{ID: "acct-9", Email: "new@example.com", Role: auth.RoleDonor}
	sess, err := svc.LoginUser(ctx, "", user)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	got, err := svc.RequireUser(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "acct-9", got.ID)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	sess, err := svc.Login(ctx, "", "donor@example.com", "donor-password")
	require.NoError(t, err)

	store, err := svc.Resume(ctx, sess.ID)
	require.NoError(t, err)
	require.NoError(t, store.ToggleSidebar(ctx))

	require.NoError(t, svc.Logout(ctx, sess.ID))

	store, err = svc.Resume(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	// layout preference survives the logout
	assert.True(t, store.SidebarCollapsed())
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	// never seen, never logged in
	assert.NoError(t, svc.Logout(ctx, "unknown-session"))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAuthService_RequireUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.RequireUser(ctx, "")
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = svc.RequireUser(ctx, svc.NewSessionID())
	assert.True(t, apperrors.IsUnauthorized(err))

	sess, err := svc.Login(ctx, "", "hospital@example.com", "hospital-password")
	require.NoError(t, err)

	user, err := svc.RequireUser(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, user.IsHospital())
}

func TestAuthService_SessionTTLDefault(t *testing.T) {
	svc, _ := newAuthService()
	assert.Equal(t, DefaultSessionTTL, svc.SessionTTL())
}
