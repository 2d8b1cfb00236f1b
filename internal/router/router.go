package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/fpams-go-api/internal/config"
	"github.com/noah-isme/fpams-go-api/internal/handler"
	"github.com/noah-isme/fpams-go-api/internal/middleware"
	"github.com/noah-isme/fpams-go-api/internal/models"
	"github.com/noah-isme/fpams-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ActivityHandler      *handler.ActivityHandler
	TeachingScoreHandler *handler.TeachingScoreHandler
	ValidationHandler    *handler.ValidationHandler
	AuditHandler         *handler.AuditHandler
	AnalyticsHandler     *handler.AnalyticsHandler
	ExamResultHandler    *handler.ExamResultHandler
	UploadHandler        *handler.UploadHandler
	JWTMiddleware        fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ActivityHandler != nil {
		activities := app.Group("/api/v1/activities", jwtMiddleware)
		deps.ActivityHandler.Register(activities)
	}

	if deps.TeachingScoreHandler != nil {
		scores := app.Group("/api/v1/teaching-scores", jwtMiddleware)
		deps.TeachingScoreHandler.Register(scores)
	}

	// Transitions are guarded per-action inside the service; the route gate
	// only excludes roles with no validation duties at all.
	if deps.ValidationHandler != nil {
		workflow := app.Group("/api/v1/workflow",
			jwtMiddleware,
			middleware.RequireRole(
				models.RoleHOD,
				models.RolePrincipal,
				models.RoleExamCell,
				models.RoleCounsellingCoordinator,
				models.RoleRnDCoordinator,
			),
			middleware.RateLimit("workflow", 30, time.Minute),
		)
		deps.ValidationHandler.Register(workflow)
	}

	if deps.AuditHandler != nil {
		audit := app.Group("/api/v1/audit-logs",
			jwtMiddleware,
			middleware.RequireRole(
				models.RoleSuperAdmin,
				models.RolePrincipal,
				models.RoleHOD,
				models.RoleIQAC,
			),
		)
		deps.AuditHandler.Register(audit)
	}

	if deps.AnalyticsHandler != nil {
		analytics := app.Group("/api/v1/analytics", jwtMiddleware)
		deps.AnalyticsHandler.Register(analytics)
	}

	if deps.ExamResultHandler != nil {
		examResults := app.Group("/api/v1/exam-results", jwtMiddleware)
		deps.ExamResultHandler.Register(examResults)
	}

	if deps.UploadHandler != nil {
		uploads := app.Group("/api/v1/uploads",
			jwtMiddleware,
			middleware.RateLimit("uploads", 10, time.Minute),
		)
		deps.UploadHandler.Register(uploads)
	}
}
