package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "shopfront/internal/log"
)

// Routes mounts every page and API endpoint. Global middleware is the caller's job.
func Routes(app *fiber.App, d *Deps) {
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/products") })

	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/new", d.ProductHandler.NewForm)
	app.Post("/products", d.ProductHandler.Create)
	app.Post("/products/view-mode", d.ViewModeHandler.Set)
	app.Post("/products/view-mode/clear", d.ViewModeHandler.Clear)

	api := app.Group("/api/v1")
	priceLimiter := limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|price"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.final_price.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/final-price", priceLimiter, d.ProductHandler.FinalPrice)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}

// NotFound is the catch-all registered after every other route.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
}

// ErrorHandler logs the failure and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	applog.Error(c, "server.error", err, nil)
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}
