package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/furnikart/api/internal/backend"
	"github.com/furnikart/api/internal/domain"
	"github.com/furnikart/api/internal/platform/config"
	"github.com/furnikart/api/internal/platform/session"
	"github.com/furnikart/api/internal/services"
)

// Services bundles the service-layer contracts that handlers rely upon. Concrete implementations
// are assembled via dependency injection in NewContainer.
type Services struct {
	Catalog  services.CatalogService
	Cart     services.CartService
	Auth     services.AuthService
	Checkout services.CheckoutService
}

// Container wires the session manager, backend client and services for runtime use.
type Container struct {
	Config   config.Config
	Sessions *session.Manager
	Backend  backend.Client
	Services Services
}

// NewContainer constructs the runtime dependencies. Tests can supply their own
// backend through the override.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	return newContainer(ctx, cfg, logger, nil)
}

// NewContainerWithBackend constructs the runtime dependencies around the
// provided backend client.
func NewContainerWithBackend(ctx context.Context, cfg config.Config, logger *zap.Logger, client backend.Client) (*Container, error) {
	return newContainer(ctx, cfg, logger, client)
}

func newContainer(ctx context.Context, cfg config.Config, logger *zap.Logger, client backend.Client) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sessions, err := session.NewManager(session.ManagerDeps{
		Secret:     cfg.Session.TokenSecret,
		TokenTTL:   cfg.Session.TokenTTL,
		CookieName: cfg.Session.CookieName,
		Clock:      time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("build session manager: %w", err)
	}

	if client == nil {
		client = backend.NewSimulator(backend.SimulatorDeps{
			TokenIssuer: func(user domain.User) (string, error) {
				return sessions.Issue(user)
			},
			Clock:           time.Now,
			LatencyScale:    cfg.Backend.LatencyScale,
			LatencyScaleSet: true,
		})
	}

	catalogSvc, err := services.NewCatalogService(services.CatalogServiceDeps{
		Backend: client,
		Locale:  cfg.Catalog.Locale,
		Logger:  serviceLogger(logger.Named("catalog")),
	})
	if err != nil {
		return nil, fmt.Errorf("build catalog service: %w", err)
	}

	cartSvc, err := services.NewCartService(services.CartServiceDeps{
		Logger: serviceLogger(logger.Named("cart")),
	})
	if err != nil {
		return nil, fmt.Errorf("build cart service: %w", err)
	}

	authSvc, err := services.NewAuthService(services.AuthServiceDeps{
		Backend: client,
		Logger:  serviceLogger(logger.Named("auth")),
	})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}

	checkoutSvc, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Backend: client,
		Cart:    cartSvc,
		Logger:  serviceLogger(logger.Named("checkout")),
	})
	if err != nil {
		return nil, fmt.Errorf("build checkout service: %w", err)
	}

	return &Container{
		Config:   cfg,
		Sessions: sessions,
		Backend:  client,
		Services: Services{
			Catalog:  catalogSvc,
			Cart:     cartSvc,
			Auth:     authSvc,
			Checkout: checkoutSvc,
		},
	}, nil
}

func serviceLogger(logger *zap.Logger) func(context.Context, string, map[string]any) {
	return func(_ context.Context, event string, fields map[string]any) {
		zFields := make([]zap.Field, 0, len(fields)+1)
		zFields = append(zFields, zap.String("event", event))
		for k, v := range fields {
			zFields = append(zFields, zap.Any(k, v))
		}
		logger.Debug("service log", zFields...)
	}
}
