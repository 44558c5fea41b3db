package handlers

import (
	"errors"

	"libralend/internal/core/domain"
	"libralend/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseID parses a UUID path parameter. The returned error is a
// *fiber.Error so the app's error handler renders it as a 400; callers
// must return it unchanged instead of falling through to the service.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return id, nil
}

// domainError maps domain errors to HTTP responses
func domainError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.BadRequest(c, validationErrs.Error())
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateEntity):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrCannotBorrow),
		errors.Is(err, domain.ErrNotAvailable),
		errors.Is(err, domain.ErrInvalidOperation):
		return response.UnprocessableEntity(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
