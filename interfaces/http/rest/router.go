// Package rest assembles the HTTP surface of the admin API.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kusina-backend/application/services"
	"kusina-backend/infrastructure/cache"
	"kusina-backend/infrastructure/config"
	"kusina-backend/interfaces/http/rest/handlers"
	"kusina-backend/interfaces/http/rest/middleware"
	"kusina-backend/pkg/auth"
	"kusina-backend/pkg/notify"
	"kusina-backend/pkg/observability"
)

// Router creates and configures the HTTP router.
type Router struct {
	cfg           *config.Config
	catalog       *services.CatalogService
	dashboard     *services.DashboardService
	verifications *services.VerificationService
	cacheRouter   *cache.Router
	notifier      *notify.Notifier
	verifier      *auth.Verifier
	collector     *observability.Collector
	logger        *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(
	cfg *config.Config,
	catalog *services.CatalogService,
	dashboard *services.DashboardService,
	verifications *services.VerificationService,
	cacheRouter *cache.Router,
	notifier *notify.Notifier,
	verifier *auth.Verifier,
	collector *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:           cfg,
		catalog:       catalog,
		dashboard:     dashboard,
		verifications: verifications,
		cacheRouter:   cacheRouter,
		notifier:      notifier,
		verifier:      verifier,
		collector:     collector,
		logger:        logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.pinggangpinoy.ph"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
			rt.collector.Registry(),
			promhttp.HandlerOpts{},
		))
	}

	writeLimiter := auth.NewTokenBucketLimiter(rt.cfg.WriteBurst, rt.cfg.WriteRefillRate)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.verifier, rt.logger))

		ingredientHandler := handlers.NewIngredientHandler(rt.catalog, rt.logger)
		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredientHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter, middleware.RateLimit(writeLimiter))
				r.Post("/", ingredientHandler.Create)
				r.Put("/{id}", ingredientHandler.Update)
				r.Delete("/{id}", ingredientHandler.Archive)
			})
		})

		mealHandler := handlers.NewMealHandler(rt.catalog, rt.logger)
		r.Route("/meals", func(r chi.Router) {
			r.Get("/", mealHandler.List)
			r.Get("/{id}", mealHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter, middleware.RateLimit(writeLimiter))
				r.Post("/", mealHandler.Create)
				r.Put("/{id}", mealHandler.Update)
				r.Delete("/{id}", mealHandler.Archive)
			})
		})

		condimentHandler := handlers.NewCondimentHandler(rt.catalog, rt.logger)
		r.Route("/condiments", func(r chi.Router) {
			r.Get("/", condimentHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter, middleware.RateLimit(writeLimiter))
				r.Post("/", condimentHandler.Create)
				r.Put("/{id}", condimentHandler.Update)
				r.Delete("/{id}", condimentHandler.Archive)
			})
		})

		r.Route("/dietary-tags", func(r chi.Router) {
			r.Get("/", condimentHandler.ListTags)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter, middleware.RateLimit(writeLimiter))
				r.Post("/", condimentHandler.CreateTag)
				r.Delete("/{id}", condimentHandler.DeleteTag)
			})
		})

		dashboardHandler := handlers.NewDashboardHandler(rt.dashboard, rt.logger)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/activities", dashboardHandler.Activities)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter, middleware.RateLimit(writeLimiter))
				r.Post("/activities", dashboardHandler.LogActivity)
			})
		})

		verificationHandler := handlers.NewVerificationHandler(rt.verifications, rt.logger)
		r.Route("/verifications", func(r chi.Router) {
			r.Get("/pending", verificationHandler.ListPending)
			r.Get("/cooks/{cookID}", verificationHandler.CookProfile)
			r.Post("/", verificationHandler.Request)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireReviewer, middleware.RateLimit(writeLimiter))
				r.Post("/{id}/review", verificationHandler.Review)
			})
		})

		cacheHandler := handlers.NewCacheHandler(rt.cacheRouter, rt.notifier, rt.logger)
		r.Get("/events", cacheHandler.Events)
		r.Route("/debug/cache", func(r chi.Router) {
			r.Get("/", cacheHandler.Stats)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter)
				r.Delete("/", cacheHandler.Clear)
				r.Post("/refresh", cacheHandler.Refresh)
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
