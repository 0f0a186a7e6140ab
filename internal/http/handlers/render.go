package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"shopfront/internal/catalogapi"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Locals can be empty on the first response that sets the cookie.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// bannerMessage is the single line shown to the user for a failed API call.
func bannerMessage(err error, fallback string) string {
	var apiErr *catalogapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
