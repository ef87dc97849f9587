package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/domain"
)

func newBearerTestApp(tokens *TokenManager) *fiber.App {
	app := newAPITestApp()
	m := NewMiddleware(nil, tokens)
	app.Get("/profile", m.RequireBearer, func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.JSON(identity)
	})
	return app
}

func TestRequireBearer_AcceptsAuthorizationHeader(t *testing.T) {
	tokens := &TokenManager{secret: []byte("test-secret"), ttl: time.Hour}
	app := newBearerTestApp(tokens)

	token, _, err := tokens.GenerateToken(&domain.User{ID: 5, Username: "erin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// The login handler hands the token to browsers as an httpOnly cookie, so a
// cookie-only request must clear the guard too.
func TestRequireBearer_AcceptsTokenCookie(t *testing.T) {
	tokens := &TokenManager{secret: []byte("test-secret"), ttl: time.Hour}
	app := newBearerTestApp(tokens)

	token, _, err := tokens.GenerateToken(&domain.User{ID: 5, Username: "erin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var identity domain.Identity
	require.NoError(t, json.Unmarshal(raw, &identity))
	assert.Equal(t, int64(5), identity.ID)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestRequireBearer_MissingCredential(t *testing.T) {
	tokens := &TokenManager{secret: []byte("test-secret"), ttl: time.Hour}
	app := newBearerTestApp(tokens)

	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireBearer_RejectsGarbageCookie(t *testing.T) {
	tokens := &TokenManager{secret: []byte("test-secret"), ttl: time.Hour}
	app := newBearerTestApp(tokens)

	req := httptest.NewRequest("GET", "/profile", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "not-a-jwt"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
