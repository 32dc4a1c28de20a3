package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/config"
	"eduadmin/internal/repos"
	"eduadmin/internal/services"
	"eduadmin/internal/session"
)

type Deps struct {
	Session    *Session
	AuthSvc    *services.AuthService
	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Categories *CategoryHandler
	Menus      *MenuHandler
	Blocks     *ContentBlockHandler
	Documents  *DocumentHandler
	Users      *UserHandler
}

func NewDeps(api services.API, audit *repos.AuditRepo, cfg config.Config) *Deps {
	sess := &Session{Sealer: session.NewSealer(cfg.CookieSecret), Secure: cfg.CookieSecure, Now: time.Now}
	a := auditor{Repo: audit}

	authSvc := services.NewAuthService(api)
	catSvc := services.NewCategoryService(api)
	menuSvc := services.NewMenuService(api)
	blockSvc := services.NewContentBlockService(api)
	docSvc := services.NewDocumentService(api)
	userSvc := services.NewUserService(api)

	return &Deps{
		Session: sess,
		AuthSvc: authSvc,
		Auth:    &AuthHandler{Auth: authSvc, Session: sess, auditor: a},
		Dashboard: &DashboardHandler{
			Users: userSvc, Documents: docSvc, Categories: catSvc, Menus: menuSvc, Audit: audit,
		},
		Categories: &CategoryHandler{Categories: catSvc, auditor: a},
		Menus:      &MenuHandler{Menus: menuSvc, Categories: catSvc, auditor: a},
		Blocks:     &ContentBlockHandler{Blocks: blockSvc, Categories: catSvc, auditor: a},
		Documents:  &DocumentHandler{Documents: docSvc, auditor: a},
		Users:      &UserHandler{Users: userSvc, auditor: a},
	}
}

// Mount registers the dashboard routes. loginGuard, when not nil, runs
// in front of POST /login (the login throttle).
func Mount(app fiber.Router, d *Deps, loginGuard fiber.Handler) {
	app.Use(d.Session.Load())

	app.Get("/login", d.Auth.LoginForm)
	if loginGuard != nil {
		app.Post("/login", loginGuard, d.Auth.Login)
	} else {
		app.Post("/login", d.Auth.Login)
	}
	app.Post("/logout", d.Auth.Logout)

	admin := RequireAdmin(d.AuthSvc)
	app.Get("/", admin, d.Dashboard.Home)

	cat := app.Group("/categories", admin)
	cat.Get("/", d.Categories.List)
	cat.Get("/next-order", d.Categories.NextOrder)
	cat.Get("/:id/edit", d.Categories.EditForm)
	cat.Post("/", d.Categories.Save)
	cat.Post("/normalize", d.Categories.Normalize)
	cat.Post("/:id/delete", d.Categories.Delete)
	cat.Post("/:id", d.Categories.Save)

	menu := app.Group("/menus", admin)
	menu.Get("/", d.Menus.List)
	menu.Get("/next-order", d.Menus.NextOrder)
	menu.Get("/:id/edit", d.Menus.EditForm)
	menu.Post("/", d.Menus.Save)
	menu.Post("/normalize", d.Menus.Normalize)
	menu.Post("/:id/delete", d.Menus.Delete)
	menu.Post("/:id", d.Menus.Save)

	blocks := app.Group("/content-blocks", admin)
	blocks.Get("/", d.Blocks.List)
	blocks.Get("/:id/edit", d.Blocks.EditForm)
	blocks.Post("/", d.Blocks.Save)
	blocks.Post("/:id/delete", d.Blocks.Delete)
	blocks.Post("/:id", d.Blocks.Save)

	docs := app.Group("/documents", admin)
	docs.Get("/", d.Documents.List)
	docs.Post("/:id/approve", d.Documents.Approve)
	docs.Post("/:id/reject", d.Documents.Reject)

	users := app.Group("/users", admin)
	users.Get("/", d.Users.List)
	users.Post("/:id/role", d.Users.SetRole)
	users.Post("/:id/toggle", d.Users.Toggle)
}
