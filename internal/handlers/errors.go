package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

// respondError maps service errors onto HTTP responses.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var extErr *services.ExtractionError

	switch {
	case errors.Is(err, services.ErrMissingInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"warning": err.Error(),
		})
	case errors.As(err, &extErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  err.Error(),
			"resume": extErr.Name,
		})
	case errors.Is(err, repositories.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	case errors.Is(err, services.ErrSessionFailed),
		errors.Is(err, services.ErrEmptyVocabulary):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidFile):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func invalidSessionID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid session ID format",
	})
}
