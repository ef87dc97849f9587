package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/auth"
	"github.com/greenhaven/nursery-service/internal/domain"
)

// flash is the inline message shown on re-rendered forms.
type flash struct {
	Type string
	Text string
}

func dangerFlash(text string) *flash  { return &flash{Type: "danger", Text: text} }
func successFlash(text string) *flash { return &flash{Type: "success", Text: text} }

func mustIdentity(c *fiber.Ctx) domain.Identity {
	identity, _ := auth.IdentityFromContext(c)
	return identity
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

// renderError shows the shared error page. Store fault detail stays in the
// logs; the page carries only a generic message.
func renderError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("error", fiber.Map{
		"Title":   "Error",
		"Message": message,
	})
}

func renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{
		"Title":   "Not Found",
		"Message": message,
	})
}

// okJSON writes the success envelope used by the AJAX endpoints.
func okJSON(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

// okData writes a success envelope carrying a payload, the REST surface
// shape.
func okData(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}
