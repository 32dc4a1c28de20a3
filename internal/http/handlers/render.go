package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/apiclient"
	"eduadmin/internal/domain"
	applog "eduadmin/internal/log"
	"eduadmin/internal/services"
)

func csrfToken(c *fiber.Ctx) string {
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		return tok
	}
	// Fallback when the middleware did not populate Locals.
	return c.Cookies("csrf_")
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	data["CSRFToken"] = csrfToken(c)
	data["Path"] = c.Path()
	return c.Render(tmpl, data, "layout")
}

// apiFailure turns a service error into a response. A 401 goes to
// /login; anything else is rendered by page with the user-facing message
// and the status that fits it.
func apiFailure(c *fiber.Ctx, action string, err error, page func(status int, msg string) error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return reauth(c)
	}
	applog.Error(c, action, err, nil)
	status := fiber.StatusInternalServerError
	var apiErr *apiclient.Error
	switch {
	case errors.Is(err, services.ErrInvalidParent), errors.Is(err, services.ErrInvalidSlug):
		status = fiber.StatusUnprocessableEntity
	case errors.As(err, &apiErr) && (apiErr.Kind == apiclient.KindTransport || apiErr.Status >= 500):
		status = fiber.StatusBadGateway
	case errors.As(err, &apiErr) && apiErr.Status == fiber.StatusNotFound:
		status = fiber.StatusNotFound
	case errors.As(err, &apiErr):
		status = fiber.StatusUnprocessableEntity
	}
	return page(status, errMessage(err))
}

func errMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidParent):
		return "Choose a parent that exists and is not this item or one of its children."
	case errors.Is(err, services.ErrInvalidSlug):
		return "Enter a slug. None can be made from this name."
	case errors.Is(err, services.ErrNotAdmin):
		return "This account does not have administrator access."
	}
	return apiclient.Message(err)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

// pickerCategories lists categories for pickers on other pages. The page
// still renders without them; a 401 is reported so the caller can
// reauthenticate.
func pickerCategories(c *fiber.Ctx, cats *services.CategoryService, action string) ([]domain.Category, bool) {
	list, err := cats.List(c.UserContext())
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return nil, false
	case err != nil:
		applog.Error(c, action, err, nil)
	}
	return list, true
}
