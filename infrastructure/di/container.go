// Package di wires the application together. Construction is explicit
// and ordered: config, logger, metrics, the three cache stores, the
// Supabase repositories, then the services and HTTP router on top.
package di

import (
	"fmt"

	"go.uber.org/zap"

	"kusina-backend/application/services"
	"kusina-backend/infrastructure/cache"
	"kusina-backend/infrastructure/config"
	"kusina-backend/infrastructure/persistence/supabase"
	"kusina-backend/interfaces/http/rest"
	"kusina-backend/pkg/auth"
	"kusina-backend/pkg/notify"
	"kusina-backend/pkg/observability"
)

// Container holds every constructed component. The HTTP router is the
// consumer-facing entry point; the rest is exposed for shutdown and
// tests.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Collector *observability.Collector

	StaticStore  *cache.Store
	DynamicStore *cache.Store
	UserStore    *cache.Store
	CacheRouter  *cache.Router
	Notifier     *notify.Notifier

	Catalog       *services.CatalogService
	Dashboard     *services.DashboardService
	Verifications *services.VerificationService

	Router *rest.Router
}

// InitializeContainer builds the full application graph from config.
func InitializeContainer(cfg *config.Config) (*Container, error) {
	logger, err := provideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	var collector *observability.Collector
	var metrics cache.Metrics = cache.NoopMetrics{}
	if cfg.EnableMetrics {
		collector = observability.NewCollector("kusina")
		metrics = observability.NewCacheMetrics(collector)
	}

	// One store per volatility class. Reference data lives long, list
	// views medium, per-cook profiles shortest relative to their churn.
	static := cache.NewStore("static", cfg.StaticCacheSize, cfg.StaticCacheTTL, cache.WithMetrics(metrics))
	dynamic := cache.NewStore("dynamic", cfg.DynamicCacheSize, cfg.DynamicCacheTTL, cache.WithMetrics(metrics))
	user := cache.NewStore("user", cfg.UserCacheSize, cfg.UserCacheTTL, cache.WithMetrics(metrics))

	cacheRouter := services.NewInvalidationRouter(logger, static, dynamic, user)
	notifier := notify.New()

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, logger)
	if err != nil {
		return nil, fmt.Errorf("build supabase client: %w", err)
	}

	ingredients := supabase.NewIngredientRepository(client)
	meals := supabase.NewMealRepository(client)
	condiments := supabase.NewCondimentRepository(client)
	tags := supabase.NewDietaryTagRepository(client)
	activities := supabase.NewActivityRepository(client)
	verifications := supabase.NewVerificationRepository(client)
	stats := supabase.NewStatsRepository(client)

	catalogSvc := services.NewCatalogService(ingredients, meals, condiments, tags, activities, static, cacheRouter, notifier, logger)
	dashboardSvc := services.NewDashboardService(stats, activities, dynamic, cacheRouter, logger)
	verificationSvc := services.NewVerificationService(verifications, activities, dynamic, user, cacheRouter, notifier, logger)

	var verifier *auth.Verifier
	if cfg.SupabaseJWTSecret != "" {
		verifier = auth.NewVerifier(cfg.SupabaseJWTSecret)
	}

	router := rest.NewRouter(cfg, catalogSvc, dashboardSvc, verificationSvc, cacheRouter, notifier, verifier, collector, logger)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Collector:     collector,
		StaticStore:   static,
		DynamicStore:  dynamic,
		UserStore:     user,
		CacheRouter:   cacheRouter,
		Notifier:      notifier,
		Catalog:       catalogSvc,
		Dashboard:     dashboardSvc,
		Verifications: verificationSvc,
		Router:        router,
	}, nil
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
