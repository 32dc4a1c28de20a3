package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/domain"
	"eduadmin/internal/services"
	"eduadmin/internal/validate"
)

type UserHandler struct {
	Users *services.UserService
	auditor
}

type userRow struct {
	domain.User
	Roles []option
}

func (h *UserHandler) show(c *fiber.Ctx, status int, users []domain.User, errMsg, notice string) error {
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		roles := make([]option, 0, len(domain.Roles))
		for _, r := range domain.Roles {
			roles = append(roles, option{Value: string(r), Label: string(r), Selected: r == u.Role})
		}
		rows = append(rows, userRow{User: u, Roles: roles})
	}
	return render(c.Status(status), "users", fiber.Map{
		"Title":  "Users",
		"Rows":   rows,
		"Err":    errMsg,
		"Notice": notice,
	})
}

// GET /users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return apiFailure(c, "users.list.fail", err, func(status int, msg string) error {
			return h.show(c, status, nil, msg, "")
		})
	}
	return h.show(c, fiber.StatusOK, users, "", notices[c.Query("notice")])
}

// afterMutation always refetches, so the page shows what the API holds
// whether or not the change went through.
func (h *UserHandler) afterMutation(c *fiber.Ctx, action, id string, detail map[string]any, err error) error {
	if err != nil {
		return apiFailure(c, action+".fail", err, func(status int, msg string) error {
			users, _ := h.Users.List(c.UserContext())
			return h.show(c, status, users, msg, "")
		})
	}
	h.record(c, action, "user", id, detail)
	return c.Redirect("/users?notice=updated")
}

// POST /users/:id/role
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "User not found")
	}
	role := domain.Role(c.FormValue("role"))
	if !role.Valid() {
		users, _ := h.Users.List(c.UserContext())
		return h.show(c, fiber.StatusUnprocessableEntity, users, "Unknown role.", "")
	}
	err := h.Users.SetRole(c.UserContext(), id, role)
	return h.afterMutation(c, "users.role", id, map[string]any{"role": string(role)}, err)
}

// POST /users/:id/toggle flips isActive. The form carries the value the
// page showed, so a stale page cannot flip the flag twice.
func (h *UserHandler) Toggle(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "User not found")
	}
	current, err := strconv.ParseBool(c.FormValue("active"))
	if err != nil {
		users, _ := h.Users.List(c.UserContext())
		return h.show(c, fiber.StatusUnprocessableEntity, users, "Could not read the user's current status.", "")
	}
	err = h.Users.SetActive(c.UserContext(), id, !current)
	return h.afterMutation(c, "users.active", id, map[string]any{"isActive": !current}, err)
}
