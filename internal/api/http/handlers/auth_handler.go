package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	auth       *service.AuthService
	metrics    *observability.Metrics
	cookieName string
	production bool
	ttl        time.Duration
}

// AuthHandlerConfig configures the session cookie.
type AuthHandlerConfig struct {
	CookieName string
	Production bool
	TTL        time.Duration
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, metrics *observability.Metrics, cfg AuthHandlerConfig) *AuthHandler {
	if cfg.CookieName == "" {
		cfg.CookieName = auth.DefaultCookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &AuthHandler{
		auth:       authService,
		metrics:    metrics,
		cookieName: cfg.CookieName,
		production: cfg.Production,
		ttl:        cfg.TTL,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	res, err := h.auth.Login(c.UserContext(), req.Password, req.Email, req.Phone)
	if err != nil {
		return err
	}
	if !res.Success {
		h.metrics.RecordLogin(string(res.Error.Code))
		return loginFailure(res.Error)
	}
	h.metrics.RecordLogin("success")

	c.Cookie(h.sessionCookie(res.Data.Token, int(h.ttl.Seconds()), res.Data.ExpiresAt))
	return c.JSON(dto.MessageResponse{Success: true, Message: res.Message})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	return c.JSON(identity)
}

// AdminOnly handles GET /auth/admin-only.
func (h *AuthHandler) AdminOnly(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	return c.JSON(fiber.Map{"message": "Welcome Admin", "user": identity})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	if err := h.auth.Logout(c.UserContext(), claims); err != nil {
		return err
	}
	c.Cookie(h.sessionCookie("", 0, time.Unix(0, 0)))
	return c.JSON(dto.MessageResponse{Success: true, Message: "Logout successful"})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int, expires time.Time) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.production {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	}
}

func loginFailure(opErr *service.OpError) error {
	switch opErr.Code {
	case service.ErrUserNotFound:
		return apperrors.NewNotFound("User", nil)
	case service.ErrMissingCredentials, service.ErrMissingIdentifier:
		return apperrors.NewUnauthorized("Email or phone must be provided")
	default:
		return apperrors.NewUnauthorized("Unauthorized")
	}
}
