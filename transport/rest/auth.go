package rest

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/pkg/api"
)

const participantKey = "participant_id"

type authService interface {
	GenerateToken(participantID string) (string, error)
	VerifyToken(token string) (string, error)
}

// Authenticate resolves the bearer token into the participant the request acts for.
func Authenticate(auth authService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperror.ErrUnauthorized
		}

		participantID, err := auth.VerifyToken(token)
		if err != nil {
			return err
		}

		c.Locals(participantKey, participantID)

		return c.Next()
	}
}

func participant(c *fiber.Ctx) string {
	participantID, _ := c.Locals(participantKey).(string)

	return participantID
}

type TokenHandler interface {
	Issue(c *fiber.Ctx) error
}

type tokenHandler struct {
	auth authService
}

func NewTokenHandler(auth authService) TokenHandler {
	return &tokenHandler{auth: auth}
}

func (that *tokenHandler) Issue(c *fiber.Ctx) error {
	var request api.TokenRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	token, err := that.auth.GenerateToken(request.ParticipantID)
	if err != nil {
		return err
	}

	return c.JSON(api.TokenResponse{Token: token})
}
