package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/mocks"
	"github.com/pulsepoint/pulsepoint-api/internal/service"
	"github.com/pulsepoint/pulsepoint-api/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// routerFixture wires the router against mock repositories and an in-memory
// session persister.
type routerFixture struct {
	accounts *mocks.MockAccountRepository
	donors   *mocks.MockDonorRepository
	requests *mocks.MockBloodRequestRepository

	authSvc *service.AuthService
	handler http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	accounts := mocks.NewMockAccountRepository(ctrl)
	donors := mocks.NewMockDonorRepository(ctrl)
	requests := mocks.NewMockBloodRequestRepository(ctrl)

	// Signup tests drive the duplicate path through the create calls, so the
	// pre-check always passes here.
	accounts.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	accountSvc := service.NewAccountService(service.AccountServiceOptions{
		Accounts: accounts,
		HashCost: bcrypt.MinCost,
	})
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Verifier:  accountSvc,
		Snapshots: session.NewMemoryPersister(),
	})
	donorSvc := service.NewDonorService(service.DonorServiceOptions{Donors: donors})
	requestSvc := service.NewRequestService(service.RequestServiceOptions{
		Requests: requests,
		Logger:   discardLogger(),
	})

	handler := NewRouter(RouterServices{
		Accounts: accountSvc,
		Auth:     authSvc,
		Donors:   donorSvc,
		Requests: requestSvc,
		Logger:   discardLogger(),
	})

	return &routerFixture{
		accounts: accounts,
		donors:   donors,
		requests: requests,
		authSvc:  authSvc,
		handler:  handler,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// loginAs records an identity on a fresh session and returns the cookie to
// attach to requests.
func (f *routerFixture) loginAs(t *testing.T, user domainauth.User) *http.Cookie {
	t.Helper()
	sess, err := f.authSvc.LoginUser(context.Background(), "", user)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookieName, Value: sess.ID}
}

func hospitalUser() domainauth.User {
	return domainauth.User{
		ID:           "hosp-1",
		Email:        "hospital@example.com",
		DisplayName:  "St. Mary Hospital",
		Role:         domainauth.RoleHospital,
		HospitalName: "St. Mary Hospital",
	}
}

func donorUser() domainauth.User {
	return domainauth.User{
		ID:          "donor-1",
		Email:       "donor@example.com",
		DisplayName: "Ada Okafor",
		Role:        domainauth.RoleDonor,
		BloodType:   "O+",
	}
}

// doJSON performs a request with an optional JSON body and cookies.
func (f *routerFixture) doJSON(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// sessionCookieFrom pulls the session cookie out of a response.
func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}
