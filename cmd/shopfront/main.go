package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"shopfront/internal/config"
	"shopfront/internal/http/handlers"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
)

func main() {
	app := &cli.App{
		Name:  "shopfront",
		Usage: "product catalog front-end",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (overrides SHOPFRONT_PORT)"},
			&cli.StringFlag{Name: "api", Usage: "catalog API base URL (overrides SHOPFRONT_API_BASE_URL)"},
			&cli.BoolFlag{Name: "reload", Usage: "reload templates on every request"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		applog.Error(nil, "server.fatal", err, nil)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if p := cliCtx.String("port"); p != "" {
		cfg.Port = p
	}
	if u := cliCtx.String("api"); u != "" {
		cfg.APIBaseURL = u
	}

	logFile, err := applog.Setup(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := handlers.NewEngine(cfg.TemplatesDir)
	engine.Reload(cliCtx.Bool("reload"))

	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 1 << 20, // 1 MiB
		ErrorHandler: handlers.ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: applog.Writer()}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/api/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		ContextKey:     "csrf",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	app.Static("/static", cfg.StaticDir)

	deps := handlers.NewDeps(db, cfg)
	handlers.Routes(app, deps)
	app.Use(handlers.NotFound)

	errc := make(chan error, 1)
	go func() {
		applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
		errc <- app.Listen(":" + cfg.Port)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case s := <-sig:
		applog.Info(nil, "server.shutdown", map[string]any{"signal": s.String()})
	}
	return errors.Wrap(app.ShutdownWithTimeout(10*time.Second), "shutdown")
}
