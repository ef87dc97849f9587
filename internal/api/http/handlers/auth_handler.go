package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/api/dto"
	"github.com/greenhaven/nursery-service/internal/auth"
	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/service"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// AuthHandler serves the registration and login pages plus the bearer
// profile endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// RegisterPage handles GET /auth/register.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return c.Render("auth/register", fiber.Map{"Title": "Register"})
}

// Register handles POST /auth/register. Validation failures re-render the
// form with the submitted values so the visitor does not retype everything.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("auth/register", fiber.Map{
			"Title": "Register",
			"Flash": dangerFlash("Invalid form submission"),
		})
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	_, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Role:      domain.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     phone,
	})
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).Render("auth/register", fiber.Map{
			"Title": "Register",
			"Flash": dangerFlash(domainErr.Message),
			"Form":  req,
		})
	}

	return c.Render("auth/login", fiber.Map{
		"Title": "Login",
		"Flash": successFlash("Registration successful! Please log in."),
	})
}

// LoginPage handles GET /auth/login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("auth/login", fiber.Map{"Title": "Login"})
}

// Login handles POST /auth/login. A successful login issues the session
// cookie, delivers the bearer token as an httpOnly cookie for the REST
// surface, and lands on the dashboard matching the account's role.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).Render("auth/login", fiber.Map{
			"Title": "Login",
			"Flash": dangerFlash("Username and password are required"),
		})
	}

	user, sessionID, token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).Render("auth/login", fiber.Map{
			"Title": "Login",
			"Flash": dangerFlash(domainErr.Message),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    sessionID,
		Expires:  time.Now().Add(h.auth.SessionTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(h.auth.TokenTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	switch user.Role {
	case domain.RoleAdmin:
		return c.Redirect("/admin/dashboard", fiber.StatusFound)
	case domain.RoleCaretaker:
		return c.Redirect("/caretaker/dashboard", fiber.StatusFound)
	default:
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
}

// Logout handles GET /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(auth.SessionCookie)
	if err := h.auth.Logout(c.UserContext(), sessionID); err != nil {
		return apperrors.MapError(err)
	}
	for _, name := range []string{auth.SessionCookie, auth.TokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
	}
	return c.Redirect(auth.LoginPath, fiber.StatusFound)
}

// Profile handles GET /auth/profile on the bearer path.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	user, err := h.auth.Profile(c.UserContext(), identity.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return okData(c, fiber.StatusOK, "profile retrieved", dto.NewUserResponse(user))
}
