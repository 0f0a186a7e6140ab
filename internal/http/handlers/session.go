package handlers

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "shopfront/internal/log"
	"shopfront/internal/repos"
	"shopfront/internal/validate"
	"shopfront/internal/viewmode"
)

const sidCookie = "sid"

// Sessions identifies visitors by the sid cookie and hands out their view mode policy.
type Sessions struct {
	Prefs *repos.PrefRepo

	// mu serializes view mode reads and writes across requests.
	mu sync.Mutex
}

func (s *Sessions) ensureSID(c *fiber.Ctx) string {
	raw := c.Cookies(sidCookie)
	sid, ok := validate.SID(raw)
	if !ok {
		if raw != "" {
			applog.Security(c, "session.invalid", nil)
		}
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: sidCookie, Value: sid, Path: "/", HTTPOnly: true, SameSite: "Lax"})
	}
	if err := s.Prefs.Touch(sid); err != nil {
		applog.Error(c, "session.touch.fail", err, nil)
	}
	return sid
}

func (s *Sessions) viewMode(c *fiber.Ctx, sid string) *viewmode.Policy {
	return viewmode.New(s.Prefs.ForSession(sid),
		viewmode.WithLocker(&s.mu),
		viewmode.WithErrorHook(func(op string, err error) {
			applog.Error(c, "viewmode.store.fail", err, map[string]any{"op": op})
		}),
	)
}
