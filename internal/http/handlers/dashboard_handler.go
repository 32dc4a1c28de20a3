package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/apiclient"
	"eduadmin/internal/domain"
	applog "eduadmin/internal/log"
	"eduadmin/internal/repos"
	"eduadmin/internal/services"
)

type DashboardHandler struct {
	Users      *services.UserService
	Documents  *services.DocumentService
	Categories *services.CategoryService
	Menus      *services.MenuService
	Audit      *repos.AuditRepo
}

type stat struct {
	Label string
	Value int
	Link  string
}

// GET /
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	users, err := h.Users.List(ctx)
	note(err)
	docs, err := h.Documents.List(ctx)
	note(err)
	cats, err := h.Categories.List(ctx)
	note(err)
	menus, err := h.Menus.List(ctx)
	note(err)

	if errors.Is(firstErr, apiclient.ErrUnauthorized) {
		return reauth(c)
	}
	counts := services.CountByStatus(docs)
	stats := []stat{
		{Label: "Users", Value: len(users), Link: "/users"},
		{Label: "Documents", Value: counts[""], Link: "/documents"},
		{Label: "Pending review", Value: counts[domain.DocPending], Link: "/documents?status=pending"},
		{Label: "Categories", Value: len(cats), Link: "/categories"},
		{Label: "Menu items", Value: len(menus), Link: "/menus"},
	}

	data := fiber.Map{"Title": "Dashboard", "Stats": stats}
	if firstErr != nil {
		applog.Error(c, "dashboard.load.fail", firstErr, nil)
		data["Err"] = errMessage(firstErr)
	}
	if h.Audit != nil {
		entries, err := h.Audit.Latest(20)
		if err != nil {
			applog.Error(c, "audit.latest.fail", err, nil)
		}
		data["Audit"] = entries
	}
	return render(c, "dashboard", data)
}
