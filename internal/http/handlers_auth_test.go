package httpx

import (
	"net/http"
	"testing"

	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func seedAccount(t *testing.T, f *routerFixture, email, password string) *model.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	acct := &model.Account{
		ID:           "acct-1",
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleDonor,
		DisplayName:  "Ada Okafor",
		BloodType:    model.BloodOPos,
	}
	f.accounts.EXPECT().GetByEmail(gomock.Any(), email).Return(acct, nil).AnyTimes()
	return acct
}

func TestLogin(t *testing.T) {
	f := newRouterFixture(t)
	seedAccount(t, f, "ada@example.com", "opensesame")

	rec := f.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "opensesame",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["authenticated"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "acct-1", user["id"])
	assert.Equal(t, string(auth.RoleDonor), user["role"])

	cookie := sessionCookieFrom(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// the cookie resolves back to the identity
	rec = f.doJSON(t, http.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["authenticated"])
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newRouterFixture(t)
	seedAccount(t, f, "ada@example.com", "opensesame")

	rec := f.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newRouterFixture(t)
	f.accounts.EXPECT().
		GetByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, data.ErrAccountNotFound)

	rec := f.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/auth/login", map[string]any{
		"email":      "ada@example.com",
		"password":   "x",
		"unexpected": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody(t, rec)["error"])
}

func TestLogout_PreservesSidebarPreference(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.loginAs(t, donorUser())

	rec := f.doJSON(t, http.MethodPost, "/api/session/sidebar/toggle", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.doJSON(t, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.doJSON(t, http.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["authenticated"])
	assert.Nil(t, body["user"])
	assert.Equal(t, true, body["sidebar_collapsed"])
}

func TestLogout_WithoutSession(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_Anonymous(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.doJSON(t, http.MethodGet, "/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["authenticated"])
	assert.Equal(t, false, body["sidebar_collapsed"])
}
