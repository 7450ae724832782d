package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
)

const (
	msgLoginSuccessful    = "Login successful"
	msgMissingCredentials = "Email or phone must be provided"
)

// CredentialFinder resolves an account by either login channel.
type CredentialFinder interface {
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
}

// TokenRevoker records tokens that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// LoginData is returned on a successful login.
type LoginData struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService coordinates credential validation and session issuance.
type AuthService struct {
	users       CredentialFinder
	revocations TokenRevoker
	dispatcher  events.Dispatcher
	hasher      *auth.Hasher
	tokens      *auth.TokenManager
	ttl         time.Duration
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    CredentialFinder
	Revocations TokenRevoker
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, tokens *auth.TokenManager, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.Revocations,
		dispatcher:  deps.Dispatcher,
		hasher:      auth.NewHasher(cfg.BcryptCost),
		tokens:      tokens,
		ttl:         cfg.AccessTokenTTL(),
		logger:      logger,
	}
}

// ValidateUser checks a password against the account matching email or phone.
// Expected failures are reported in the result; the error is reserved for
// store faults.
func (s *AuthService) ValidateUser(ctx context.Context, password, email, phone string) (Result[domain.Identity], error) {
	email, phone = strings.TrimSpace(email), strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return Fail[domain.Identity](ErrMissingCredentials, msgMissingCredentials), nil
	}

	user, err := s.users.FindByEmailOrPhone(ctx, email, phone)
	if errors.Is(err, repository.ErrNotFound) {
		s.publish(ctx, events.New(events.EventLoginFailed, "", events.LoginFailedPayload{
			Email: email, Phone: phone, Reason: string(ErrUserNotFound),
		}))
		return Fail[domain.Identity](ErrUserNotFound, "User not found"), nil
	}
	if err != nil {
		return Result[domain.Identity]{}, fmt.Errorf("find credentials: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.publish(ctx, events.New(events.EventLoginFailed, user.ID, events.LoginFailedPayload{
			Email: email, Phone: phone, Reason: string(ErrInvalidPassword),
		}))
		return Fail[domain.Identity](ErrInvalidPassword, "Invalid password"), nil
	}

	return Succeed(msgLoginSuccessful, user.Identity()), nil
}

// Login validates credentials and issues a session token for the identity.
func (s *AuthService) Login(ctx context.Context, password, email, phone string) (Result[LoginData], error) {
	validated, err := s.ValidateUser(ctx, password, email, phone)
	if err != nil {
		return Result[LoginData]{}, err
	}
	if !validated.Success {
		return Result[LoginData]{Error: validated.Error}, nil
	}

	identity := validated.Data
	token, expiresAt, err := s.tokens.Issue(auth.NewClaims(identity), s.ttl)
	if err != nil {
		return Result[LoginData]{}, fmt.Errorf("issue token: %w", err)
	}

	s.publish(ctx, events.New(events.EventLoginSucceeded, identity.ID, events.LoginSucceededPayload{
		Email:     identity.Email,
		Role:      string(identity.Role.Name),
		ExpiresAt: expiresAt,
	}))
	return Succeed(msgLoginSuccessful, LoginData{Token: token, ExpiresAt: expiresAt}), nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if s.revocations != nil {
		if err := s.revocations.Revoke(ctx, claims.ID, expiresAt); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	s.publish(ctx, events.New(events.EventLoggedOut, claims.UserID(), events.LoggedOutPayload{TokenID: claims.ID}))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
