package routes

import (
	"github.com/emmyxjay/contentFlow-New/internal/auth"
	"github.com/emmyxjay/contentFlow-New/internal/handlers"
	"github.com/emmyxjay/contentFlow-New/internal/metrics"
	"github.com/emmyxjay/contentFlow-New/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
)

type Options struct {
	Tokens      *auth.TokenManager
	Metrics     *metrics.Metrics
	AuthLimiter *middleware.IPRateLimiter
}

func Register(app *fiber.App, h *handlers.Handler, opts Options, logger *zap.Logger) {
	app.Get("/healthz", handlers.Health)
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	// public generation gateway
	gen := app.Group("/api")
	gen.Post("/generate", h.Generate)
	gen.Post("/ideas", h.GenerateIdeas)

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	if opts.AuthLimiter != nil {
		authGroup.Use(opts.AuthLimiter.Handler())
	}
	authGroup.Post("/signup", h.Signup)
	authGroup.Post("/login", h.Login)

	// Registered after the auth routes so signup and login stay public.
	protected := v1.Group("", middleware.RequireAuth(opts.Tokens, logger))

	protected.Get("/me", h.Me)
	protected.Get("/workspace", h.GetWorkspace)
	protected.Put("/workspace/onboarding", h.Onboarding)

	protected.Get("/ideas", h.ListIdeas)
	protected.Post("/ideas", h.CreateIdea)
	protected.Post("/ideas/generate", h.GenerateAndSaveIdeas)
	protected.Delete("/ideas/:id", h.DeleteIdea)

	protected.Get("/content", h.ListContent)
	protected.Post("/content", h.CreateContent)
	protected.Get("/content/:id", h.GetContent)
	protected.Patch("/content/:id", h.UpdateContent)
	protected.Put("/content/:id/status", h.SetContentStatus)
	protected.Delete("/content/:id", h.DeleteContent)

	protected.Get("/calendar", h.CalendarMonth)
	protected.Get("/calendar/day", h.CalendarDay)

	protected.Get("/media", h.ListMedia)
	protected.Post("/media", h.CreateMedia)
	protected.Get("/media/:id/url", h.GetMediaURL)
	protected.Delete("/media/:id", h.DeleteMedia)

	protected.Get("/analytics", h.ListAnalytics)
	protected.Post("/analytics", h.RecordAnalytics)
	protected.Get("/analytics/summary", h.AnalyticsSummary)
	protected.Get("/dashboard", h.Dashboard)
}
