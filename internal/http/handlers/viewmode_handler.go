package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/validate"
)

// ViewModeHandler lets a visitor pick or forget their list/grid layout.
type ViewModeHandler struct {
	Sessions *Sessions
}

func (h *ViewModeHandler) Set(c *fiber.Ctx) error {
	mode, ok := validate.Mode(c.FormValue("mode"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "mode"})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Unknown view mode."})
	}
	sid := h.Sessions.ensureSID(c)
	h.Sessions.viewMode(c, sid).Persist(mode)
	applog.Info(c, "viewmode.set", map[string]any{"mode": string(mode)})
	return c.Redirect("/products")
}

func (h *ViewModeHandler) Clear(c *fiber.Ctx) error {
	sid := h.Sessions.ensureSID(c)
	h.Sessions.viewMode(c, sid).Clear()
	applog.Info(c, "viewmode.clear", nil)
	return c.Redirect("/products")
}
