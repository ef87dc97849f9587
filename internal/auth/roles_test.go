package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/domain"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// bindIdentity injects a principal the way RequireSession would after a
// successful cookie lookup.
func bindIdentity(identity domain.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(principalKey, identity)
		return c.Next()
	}
}

func newRoleTestApp(identity *domain.Identity, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	if identity != nil {
		app.Use(bindIdentity(*identity))
	}
	app.Get("/protected", guard, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	identity := domain.Identity{ID: 1, Username: "root", Role: domain.RoleAdmin}
	app := newRoleTestApp(&identity, RequireRole(domain.RoleAdmin))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_RedirectsWrongRole(t *testing.T) {
	identity := domain.Identity{ID: 2, Username: "bob", Role: domain.RoleCustomer}
	app := newRoleTestApp(&identity, RequireRole(domain.RoleAdmin))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))
}

func TestRequireRole_RedirectsWithoutIdentity(t *testing.T) {
	app := newRoleTestApp(nil, RequireRole(domain.RoleAdmin))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	identity := domain.Identity{ID: 3, Username: "carol", Role: domain.RoleCaretaker}
	app := newRoleTestApp(&identity, RequireRole(domain.RoleAdmin, domain.RoleCaretaker))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// newAPITestApp maps escaped domain errors to their HTTP status the way the
// server's error middleware does.
func newAPITestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"success": false,
				"message": domainErr.Message,
			})
		},
	})
}

func TestRequireAPIRole_ForbidsWrongRole(t *testing.T) {
	identity := domain.Identity{ID: 4, Username: "dave", Role: domain.RoleCustomer}
	app := newAPITestApp()
	app.Use(bindIdentity(identity))
	app.Get("/users", RequireAPIRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAPIRole_UnauthorizedWithoutIdentity(t *testing.T) {
	app := newAPITestApp()
	app.Get("/users", RequireAPIRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
