package controllers

import (
	"errors"

	"reelstgram-backend/internal/analytics"
	"reelstgram-backend/internal/channels"
	"reelstgram-backend/internal/feed"

	"github.com/gofiber/fiber/v3"
)

var (
	service *channels.Service
	events  *analytics.Logger
	feeds   *feed.Manager
)

// Setup wires the handlers to their collaborators. Must run before any
// route is registered.
func Setup(s *channels.Service, l *analytics.Logger, m *feed.Manager) {
	service = s
	events = l
	feeds = m
}

// currentUser resolves the viewer making the request. There is no
// authentication; the single-user model trusts the header and falls
// back to the seed user the reference clients start with.
func currentUser(c fiber.Ctx) string {
	if id := c.Get("X-User-Id"); id != "" {
		return id
	}
	return "default-user"
}

// serviceError maps service errors onto the HTTP surface: validation
// failures are 400s, not-found conditions are 404s, storage failures
// are 500s. Nothing bubbles past here.
func serviceError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, channels.ErrChannelNotFound),
		errors.Is(err, channels.ErrPostNotFound):
		c.Status(fiber.StatusNotFound)
	case errors.Is(err, channels.ErrEmptyName),
		errors.Is(err, channels.ErrEmptyComment),
		errors.Is(err, channels.ErrEmptyUrl):
		c.Status(fiber.StatusBadRequest)
	default:
		c.Status(fiber.StatusInternalServerError)
	}
	return c.JSON(ErrorResponse{
		Message: err.Error(),
	})
}
