package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "eduadmin/internal/log"
)

const genericFailure = "Something went wrong. Please try again."

// ErrorHandler is the app-wide fallback. Fiber errors keep their status
// (404, 413); everything else is a 500. Internal details never reach the
// page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := genericFailure
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		status = fe.Code
		switch status {
		case fiber.StatusNotFound:
			msg = "Page not found"
		case fiber.StatusRequestEntityTooLarge:
			msg = "The submitted form is too large."
		}
	}
	applog.Error(c, "server.error", err, map[string]any{"status": status})
	if rerr := c.Status(status).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}

// NotFound answers any route nothing else matched.
func NotFound(c *fiber.Ctx) error {
	return notFound(c, "Page not found")
}
