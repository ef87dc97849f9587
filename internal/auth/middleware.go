package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/domain"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

const principalKey = "auth_principal"

// LoginPath is where unauthenticated page requests are steered.
const LoginPath = "/auth/login"

// Middleware validates credentials and binds the caller's identity. The
// session path (rendered pages) and the bearer path (REST) are independent;
// satisfying one never satisfies the other.
type Middleware struct {
	sessions *SessionManager
	tokens   *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions *SessionManager, tokens *TokenManager) *Middleware {
	return &Middleware{sessions: sessions, tokens: tokens}
}

// RequireSession authenticates via the session cookie. Absent or invalid
// sessions redirect to the login page rather than erroring; that is the
// storefront's only unauthenticated outcome.
func (m *Middleware) RequireSession(c *fiber.Ctx) error {
	sessionID := c.Cookies(SessionCookie)
	if sessionID == "" {
		return c.Redirect(LoginPath, fiber.StatusFound)
	}

	identity, err := m.sessions.Get(c.UserContext(), sessionID)
	if err != nil {
		if err == ErrSessionNotFound {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, identity)
	return c.Next()
}

// RequireBearer authenticates via the Authorization header or, failing that,
// the httpOnly token cookie issued at login. Missing credential is 401;
// invalid or expired credential is 403, mirroring the session path's role
// semantics without sharing its state.
func (m *Middleware) RequireBearer(c *fiber.Ctx) error {
	credential := bearerToken(c.Get("Authorization"))
	if credential == "" {
		credential = c.Cookies(TokenCookie)
	}
	if credential == "" {
		return apperrors.NewUnauthorized("access token required")
	}

	claims, err := m.tokens.ParseToken(credential)
	if err != nil {
		return apperrors.NewForbidden("invalid or expired token")
	}

	c.Locals(principalKey, domain.Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
	return c.Next()
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
