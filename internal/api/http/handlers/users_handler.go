package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/api/dto"
	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/service"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// UsersHandler is the token-authenticated REST surface for account
// management. Every route sits behind bearer auth plus the admin role.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return okData(c, fiber.StatusOK, "users retrieved", dto.NewUserResponses(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid user id", nil)
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return okData(c, fiber.StatusOK, "user retrieved", dto.NewUserResponse(user))
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Role:      domain.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     phone,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return okData(c, fiber.StatusCreated, "user created", dto.NewUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid user id", nil)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	user, err := h.users.Update(c.UserContext(), id, service.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     phone,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return okData(c, fiber.StatusOK, "user updated", dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid user id", nil)
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "user deleted")
}
