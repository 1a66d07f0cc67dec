package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/pulsepoint/pulsepoint-api/config"
	redisadapter "github.com/pulsepoint/pulsepoint-api/internal/adapters/redis"
	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/ports"
	"github.com/pulsepoint/pulsepoint-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Accounts *service.AccountService
	Auth     *service.AuthService
	Donors   *service.DonorService
	Requests *service.RequestService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	AccountRepo      *data.AccountRepo
	DonorRepo        *data.DonorRepo
	BloodRequestRepo *data.BloodRequestRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		AccountRepo:      data.NewAccountRepo(db),
		DonorRepo:        data.NewDonorRepo(db),
		BloodRequestRepo: data.NewBloodRequestRepo(db),
	}
}

// buildNotifiers creates a webhook notifier per configured endpoint.
// A misconfigured endpoint is logged and skipped rather than failing startup.
func buildNotifiers(cfg config.WebhookConfig, logger *slog.Logger) []ports.Notifier {
	if len(cfg.URLs) == 0 {
		return nil
	}

	notifiers := make([]ports.Notifier, 0, len(cfg.URLs))
	for _, u := range cfg.URLs {
		notifier, err := service.NewWebhookNotifier(service.WebhookNotifierOptions{
			URL:      u,
			BodyExpr: cfg.BodyExpr,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			logger.Error("skipping webhook endpoint", "url", u, "error", err)
			continue
		}
		notifiers = append(notifiers, notifier)
	}
	return notifiers
}

// BuildServices wires repositories and services from the given dependencies.
func BuildServices(deps ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB)

	accounts := service.NewAccountService(service.AccountServiceOptions{
		Accounts: repos.AccountRepo,
		HashCost: cfg.Auth.BcryptCost,
	})

	snapshots := redisadapter.NewSnapshotStoreWithTTL(deps.RedisClient, cfg.Auth.SessionTTL)
	auth := service.NewAuthService(service.AuthServiceOptions{
		Verifier:   accounts,
		Snapshots:  snapshots,
		SessionTTL: cfg.Auth.SessionTTL,
	})

	donors := service.NewDonorService(service.DonorServiceOptions{
		Donors: repos.DonorRepo,
	})

	requests := service.NewRequestService(service.RequestServiceOptions{
		Requests:  repos.BloodRequestRepo,
		Notifiers: buildNotifiers(cfg.Webhooks, logger),
		Logger:    logger,
	})

	return ServiceContainer{
		Accounts: accounts,
		Auth:     auth,
		Donors:   donors,
		Requests: requests,
	}
}
