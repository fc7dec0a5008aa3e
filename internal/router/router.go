package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mamba-kebabs/ordering/internal/config"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/enum"
	"github.com/mamba-kebabs/ordering/internal/handler"
	"github.com/mamba-kebabs/ordering/internal/metrics"
	mw "github.com/mamba-kebabs/ordering/internal/middleware"
	"github.com/mamba-kebabs/ordering/internal/web"
	"github.com/mamba-kebabs/ordering/internal/ws"
	"go.uber.org/zap"
)

// Deps are the long-lived collaborators the routes are built from.
type Deps struct {
	Queries     *database.Queries
	Checkout    handler.Checkouter
	Webhooks    handler.WebhookParser
	Events      handler.EventHandler
	AdminSecret handler.PasswordVerifier
	Hub         *ws.Hub

	// Optional. A nil limiter leaves the route unthrottled.
	CheckoutLimiter *mw.RateLimiter
	LoginLimiter    *mw.RateLimiter

	Logger *zap.Logger
}

// New creates a Chi router with all application routes wired up.
// Admin order routes require a kitchen token; everything else is public.
func New(cfg *config.Config, d Deps) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(d.Logger))
	r.Use(mw.Metrics)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", ws.ServeWS(d.Hub, cfg.JWTSecret, enum.TopicOrders, enum.RoleKitchen, d.Logger))

	menuHandler := handler.NewMenuHandler(d.Queries, d.Logger)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout, cfg.PublicBaseURL, d.Logger)
	webhookHandler := handler.NewWebhookHandler(d.Webhooks, d.Events, d.Logger)
	orderHandler := handler.NewOrderHandler(d.Queries, d.Logger)
	adminAuthHandler := handler.NewAdminAuthHandler(d.AdminSecret, cfg.JWTSecret, cfg.AdminSessionTTL, d.Logger)

	r.Route("/api", func(r chi.Router) {
		menuHandler.RegisterRoutes(r)
		webhookHandler.RegisterRoutes(r)
		orderHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			if d.CheckoutLimiter != nil {
				r.Use(d.CheckoutLimiter.Handler)
			}
			checkoutHandler.RegisterRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.LoginLimiter != nil {
					r.Use(d.LoginLimiter.Handler)
				}
				adminAuthHandler.RegisterRoutes(r)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(mw.Authenticate(cfg.JWTSecret))
				r.Use(mw.RequireRole(enum.RoleKitchen))
				orderHandler.RegisterRoutes(r)
			})
		})
	})

	// HTML pages
	web.NewHandler(d.Queries, d.Queries, d.Logger).RegisterRoutes(r)

	d.Logger.Debug("router initialized")
	return r
}
