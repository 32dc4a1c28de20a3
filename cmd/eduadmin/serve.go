package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/spf13/cobra"

	"eduadmin/internal/apiclient"
	"eduadmin/internal/config"
	"eduadmin/internal/http/handlers"
	applog "eduadmin/internal/log"
	"eduadmin/internal/repos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg := config.Load()

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
			log.SetOutput(out)
		}
	}
	applog.SetLogger(applog.New(out, cfg.LogLevel))
	defer func() { _ = applog.L().Sync() }()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	audit := repos.NewAuditRepo(db)

	api := apiclient.New(cfg.APIURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(applog.L().Named("api")),
	)
	deps := handlers.NewDeps(api, audit, cfg)

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
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

	log.Printf("[static] /static -> %s", cfg.StaticDir)
	app.Static("/static", cfg.StaticDir)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Login throttled per client
	handlers.Mount(app, deps, limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{
				"Err":   "Too many attempts. Please try again later.",
				"Email": "",
			})
		},
	}))

	app.Use(handlers.NotFound)

	log.Printf("[serve] listening on :%s, API %s", cfg.Port, cfg.APIURL)
	return app.Listen(":" + cfg.Port)
}
