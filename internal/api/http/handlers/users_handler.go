package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/service"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

// UsersHandler exposes registration and user lookup endpoints.
type UsersHandler struct {
	users     *service.UserService
	validator *Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, validator *Validator) *UsersHandler {
	if validator == nil {
		validator = NewValidator()
	}
	return &UsersHandler{users: userService, validator: validator}
}

// Create handles POST /user.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := h.validator.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.UserContext(), service.CreateUserInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
		DOB:          req.DOB.Ptr(),
		RoleID:       req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(user)
}

// List handles GET /user.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.GetAllUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Search handles GET /user/search?email=&phone=.
func (h *UsersHandler) Search(c *fiber.Ctx) error {
	user, err := h.users.FindUser(c.UserContext(), service.UserFilter{
		Email: c.Query("email"),
		Phone: c.Query("phone"),
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Page handles GET /user/list?limit=&offset=&orderBy=.
func (h *UsersHandler) Page(c *fiber.Ctx) error {
	limit := service.DefaultPageLimit
	if c.Query("limit") != "" {
		limit = c.QueryInt("limit", service.DefaultPageLimit)
	}
	page, err := h.users.GetUsers(c.UserContext(), service.ListParams{
		Limit:   limit,
		Offset:  c.QueryInt("offset", 0),
		OrderBy: domain.ParseSortOrder(c.Query("orderBy", string(domain.SortAsc))),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}
