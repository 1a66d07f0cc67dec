// Package httpx provides the JSON API surface for the blood donation
// coordination platform: registration, sessions, the donor directory, and
// blood request posting.
package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
	"github.com/pulsepoint/pulsepoint-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Accounts *service.AccountService
	Auth     *service.AuthService
	Donors   *service.DonorService
	Requests *service.RequestService

	CookieDomain string
	Logger       *slog.Logger // Logger for request and handler errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	signupHandlers := &SignupHandlers{
		Accounts:     services.Accounts,
		Auth:         services.Auth,
		CookieDomain: services.CookieDomain,
	}
	sessionHandlers := &SessionHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
	}
	donorHandlers := &DonorHandlers{Svc: services.Donors}
	requestHandlers := &RequestHandlers{Svc: services.Requests}

	requireAuth := RequireAuth(services.Auth)
	requireHospital := RequireRole(services.Auth, domainauth.RoleHospital)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.HandleFunc("POST /auth/login", authHandlers.Login)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/session", authHandlers.Session)

	mux.HandleFunc("POST /api/signup", signupHandlers.Signup)

	mux.HandleFunc("POST /api/session/sidebar/toggle", sessionHandlers.ToggleSidebar)
	mux.HandleFunc("PUT /api/session/sidebar", sessionHandlers.SetSidebar)

	mux.Handle("GET /api/requests", OptionalAuth(services.Auth)(http.HandlerFunc(requestHandlers.List)))
	mux.Handle("GET /api/requests/{id}", requireAuth(http.HandlerFunc(requestHandlers.Get)))
	mux.Handle("POST /api/requests", requireHospital(http.HandlerFunc(requestHandlers.Create)))
	mux.Handle("DELETE /api/requests/{id}", requireHospital(http.HandlerFunc(requestHandlers.Cancel)))
	mux.Handle("POST /api/requests/{id}/fulfill", requireHospital(http.HandlerFunc(requestHandlers.Fulfill)))

	mux.Handle("GET /api/donors", requireHospital(http.HandlerFunc(donorHandlers.List)))
	mux.Handle("GET /api/donors/{id}", requireHospital(http.HandlerFunc(donorHandlers.Get)))
	mux.Handle("POST /api/donors", requireHospital(http.HandlerFunc(donorHandlers.Create)))
	// the handler enforces ownership: donors may only flip their own entry
	mux.Handle("PUT /api/donors/{id}/availability", requireAuth(http.HandlerFunc(donorHandlers.SetAvailability)))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}
