package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bloggyhq/bloggy/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

// respondError translates a service error into a status code and JSON body.
// Anything outside the sentinel taxonomy is logged and reported as a
// generic 500.
func (s *HTTPServer) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorEmailTaken),
		errors.Is(err, common.ErrorBadCredentials),
		errors.Is(err, common.ErrorEmailUnverified),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorFileTooLarge),
		errors.Is(err, common.ErrorBadFileType),
		errors.Is(err, common.ErrorNoFile),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrTokenSignatureInvalid),
		errors.Is(err, common.ErrTokenExpired):
		return c.Status(fiber.StatusBadRequest).JSON(messageResponse{Message: err.Error()})

	case errors.Is(err, common.ErrorUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(messageResponse{Message: err.Error()})

	case errors.Is(err, common.ErrorForbidden):
		return c.Status(fiber.StatusForbidden).JSON(messageResponse{Message: err.Error()})

	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(messageResponse{Message: err.Error()})

	default:
		s.logger.Error(c.UserContext(), "internal error", "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(messageResponse{Message: "internal server error"})
	}
}
