package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const (
	identityKey = "auth_identity"
	claimsKey   = "auth_claims"

	// DefaultCookieName carries the session token.
	DefaultCookieName = "auth_token"
)

// UserLookup loads the current record for a token subject.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// RevocationChecker reports whether a token id was revoked before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware validates session cookies and loads identities.
type AuthMiddleware struct {
	tokens      *TokenManager
	users       UserLookup
	revocations RevocationChecker
	cookieName  string
	logger      *zap.Logger
}

// NewAuthMiddleware constructs middleware. revocations may be nil.
func NewAuthMiddleware(tokens *TokenManager, users UserLookup, revocations RevocationChecker, cookieName string, logger *zap.Logger) *AuthMiddleware {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		tokens:      tokens,
		users:       users,
		revocations: revocations,
		cookieName:  cookieName,
		logger:      logger,
	}
}

// CookieName returns the cookie the middleware reads.
func (m *AuthMiddleware) CookieName() string {
	return m.cookieName
}

// Handle resolves the session cookie to an identity for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	claims, err := m.tokens.Verify(raw)
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err), zap.String("request_id", requestID(c)))
		return apperrors.NewUnauthorized("Unauthorized")
	}

	ctx := c.UserContext()
	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return apperrors.NewUnauthorized("Unauthorized")
		}
	}

	m.logger.Info("validating session token",
		zap.String("user_id", claims.UserID()),
		zap.String("request_id", requestID(c)))

	user, err := m.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		return apperrors.NewInternalError(err)
	}
	if _, ok := domain.ParseRoleName(string(user.Role.Name)); !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	c.Locals(identityKey, user.Identity())
	c.Locals(claimsKey, claims)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// ClaimsFromContext retrieves the verified token claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok
}

func requestID(c *fiber.Ctx) string {
	return string(c.Response().Header.Peek(fiber.HeaderXRequestID))
}
