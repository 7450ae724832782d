package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/observability"
)

// Operation names used as keys in RoutePolicies.
const (
	OpAuthMe        = "auth.me"
	OpAuthAdminOnly = "auth.adminOnly"
	OpAuthLogout    = "auth.logout"
)

// RoutePolicies lists the roles each protected operation requires. An empty
// set admits any authenticated identity.
var RoutePolicies = map[string][]domain.RoleName{
	OpAuthMe:        {},
	OpAuthAdminOnly: {domain.RoleAdmin},
	OpAuthLogout:    {},
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   *LoginRateLimiter
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	if cfg.LoginLimiter != nil {
		authGroup.Post("/login", cfg.LoginLimiter.Handler(), cfg.Auth.Login)
	} else {
		authGroup.Post("/login", cfg.Auth.Login)
	}
	authGroup.Get("/me", protect(cfg, OpAuthMe, cfg.Auth.Me)...)
	authGroup.Get("/admin-only", protect(cfg, OpAuthAdminOnly, cfg.Auth.AdminOnly)...)
	authGroup.Post("/logout", protect(cfg, OpAuthLogout, cfg.Auth.Logout)...)

	userGroup := app.Group("/user")
	userGroup.Post("/", cfg.Users.Create)
	userGroup.Get("/", cfg.Users.List)
	userGroup.Get("/search", cfg.Users.Search)
	userGroup.Get("/list", cfg.Users.Page)
}

func protect(cfg RouteConfig, op string, handler fiber.Handler) []fiber.Handler {
	return []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRoles(RoutePolicies[op]...), handler}
}
