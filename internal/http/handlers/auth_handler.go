package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/log"
	"eduadmin/internal/services"
	"eduadmin/internal/validate"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Session *Session
	auditor
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if tokenOf(c) != "" {
		return c.Redirect("/")
	}
	return c.Render("login", fiber.Map{"Err": "", "Email": "", "CSRFToken": csrfToken(c)})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	fail := func(status int, msg string) error {
		return c.Status(status).Render("login", fiber.Map{"Err": msg, "Email": email, "CSRFToken": csrfToken(c)})
	}
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return fail(fiber.StatusUnauthorized, "Invalid email or password")
	}

	res, err := h.Auth.Login(c.UserContext(), email, pass)
	if errors.Is(err, services.ErrNotAdmin) {
		log.Security(c, "auth.login.denied", map[string]any{"email": email, "reason": "not_admin"})
		return fail(fiber.StatusForbidden, errMessage(err))
	}
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "err": err.Error()})
		return fail(fiber.StatusUnauthorized, errMessage(err))
	}
	if err := h.Session.set(c, res.AccessToken); err != nil {
		log.Error(c, "auth.session.seal.fail", err, nil)
		return fail(fiber.StatusInternalServerError, "Could not start a session. Please try again.")
	}

	c.Locals("user", &res.User)
	h.record(c, "auth.login.success", "user", res.User.ID, map[string]any{"email": res.User.Email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	who := actor(c)
	if tokenOf(c) != "" {
		if err := h.Auth.Logout(c.UserContext()); err != nil {
			log.Error(c, "auth.logout.api.fail", err, nil)
		}
	}
	h.Session.expire(c)
	log.Audit(c, "auth.logout", map[string]any{"actor": who})
	return c.Redirect("/login")
}
