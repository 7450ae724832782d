package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// CreateUserInput carries validated registration data.
type CreateUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	Password     string
	ProfileImage *string
	DOB          *time.Time
	RoleID       string
}

// UserFilter selects a user by email or phone.
type UserFilter struct {
	Email string
	Phone string
}

// ListParams are the raw paging inputs; see NormalizeListParams.
type ListParams struct {
	Offset  int
	Limit   int
	OrderBy domain.SortOrder
}

// Page is one slice of the user listing.
type Page struct {
	Data           []domain.User `json:"data"`
	TotalCount     int64         `json:"totalCount"`
	RecordNumStart int           `json:"recordNumStart"`
	RecordNumEnd   int           `json:"recordNumEnd"`
}

// UserService implements account registration and lookup.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	hasher     *auth.Hasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Hasher     *auth.Hasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewHasher(auth.DefaultBcryptCost)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		hasher:     hasher,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateUser registers a new account with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	role, err := s.roles.GetByID(ctx, in.RoleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewBadRequest("Role not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load role: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, auth.ErrInputError) {
		return nil, apperrors.NewValidationError("password cannot be hashed", map[string]any{"password": err.Error()})
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		PasswordHash: hash,
		ProfileImage: in.ProfileImage,
		DOB:          in.DOB,
		Role:         *role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Email already exists", nil)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.dispatcher != nil {
		event := events.New(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
			Email: user.Email,
			Role:  string(role.Name),
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return user, nil
}

// GetAllUsers lists every account. An empty store yields an empty slice.
func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// FindUser returns the first account matching the email or the phone.
func (s *UserService) FindUser(ctx context.Context, filter UserFilter) (*domain.User, error) {
	email, phone := strings.TrimSpace(filter.Email), strings.TrimSpace(filter.Phone)
	if email == "" && phone == "" {
		return nil, apperrors.NewBadRequest("At least email or phone must be provided")
	}

	user, err := s.users.FindByEmailOrPhone(ctx, email, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("User", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// NormalizeListParams clamps limit to [1, MaxPageLimit] and offset to >= 0.
// Callers apply DefaultPageLimit when no limit was supplied.
func NormalizeListParams(p ListParams) ListParams {
	switch {
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.OrderBy != domain.SortDesc {
		p.OrderBy = domain.SortAsc
	}
	return p
}

// GetUsers returns one page ordered by first name together with the total
// count, both read from the same snapshot.
func (s *UserService) GetUsers(ctx context.Context, params ListParams) (*Page, error) {
	p := NormalizeListParams(params)

	users, total, err := s.users.ListPage(ctx, p.Offset, p.Limit, p.OrderBy)
	if err != nil {
		return nil, fmt.Errorf("list users page: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return &Page{
		Data:           users,
		TotalCount:     total,
		RecordNumStart: p.Offset,
		RecordNumEnd:   p.Offset + len(users),
	}, nil
}
