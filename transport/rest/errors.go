package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/pkg/api"
)

var statuses = map[apperror.Kind]int{
	apperror.KindNotYourTurn:       fiber.StatusConflict,
	apperror.KindMatchCompleted:    fiber.StatusConflict,
	apperror.KindDuplicateMove:     fiber.StatusConflict,
	apperror.KindNotCompleted:      fiber.StatusConflict,
	apperror.KindCooldownActive:    fiber.StatusTooManyRequests,
	apperror.KindResourceExhausted: fiber.StatusUnprocessableEntity,
	apperror.KindNoHintAvailable:   fiber.StatusUnprocessableEntity,
	apperror.KindInvalidMoveShape:  fiber.StatusBadRequest,
	apperror.KindUnknownFeature:    fiber.StatusBadRequest,
	apperror.KindNotParticipant:    fiber.StatusForbidden,
	apperror.KindMatchNotFound:     fiber.StatusNotFound,
	apperror.KindUnauthorized:      fiber.StatusUnauthorized,
	apperror.KindTransientNetwork:  fiber.StatusServiceUnavailable,
}

// errorHandler renders every handler error as an api.ErrorResponse.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	log := logger.With("component", "rest", "method", "errorHandler")

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(api.ErrorResponse{Error: apperror.KindUnknown, Message: fiberErr.Message})
		}

		kind := apperror.Classify(err)

		status, ok := statuses[kind]
		if !ok {
			log.Error("request failed", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(api.ErrorResponse{Error: apperror.KindUnknown, Message: "internal error"})
		}

		body := api.ErrorResponse{Error: kind, Message: err.Error()}
		if retryAfter, found := apperror.RetryAfter(err); found {
			body.RetryAfter = &retryAfter
			c.Set(fiber.HeaderRetryAfter, retryAfter.UTC().Format(http.TimeFormat))
		}

		return c.Status(status).JSON(body)
	}
}
