package rest

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/reward"
	"github.com/rocketscienceinc/matchsync/internal/usecase"
	"github.com/rocketscienceinc/matchsync/pkg/api"
)

type matchUseCase interface {
	CreateOrJoin(ctx context.Context, participantID, partnerID, featureKey string) (*entity.Match, error)
	FetchState(ctx context.Context, participantID, matchID string) (*entity.Match, error)
	SubmitMove(ctx context.Context, participantID, matchID string, move entity.Move) (usecase.MoveOutcome, error)
	ConsumeResource(ctx context.Context, participantID, matchID string, kind entity.ResourceKind) (usecase.ResourceOutcome, error)
	AwardOnce(ctx context.Context, participantID, matchID string, requested int) (reward.Status, error)
}

type MatchHandler interface {
	CreateOrJoin(c *fiber.Ctx) error
	FetchState(c *fiber.Ctx) error
	SubmitMove(c *fiber.Ctx) error
	ConsumeResource(c *fiber.Ctx) error
	AwardOnce(c *fiber.Ctx) error
}

type matchHandler struct {
	logger *slog.Logger

	matches matchUseCase
}

func NewMatchHandler(logger *slog.Logger, matches matchUseCase) MatchHandler {
	return &matchHandler{
		logger:  logger.With("component", "match-handler"),
		matches: matches,
	}
}

func (that *matchHandler) CreateOrJoin(c *fiber.Ctx) error {
	var request api.JoinRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	match, err := that.matches.CreateOrJoin(c.UserContext(), participant(c), request.PartnerID, request.Feature)
	if err != nil {
		return err
	}

	return c.JSON(match)
}

func (that *matchHandler) FetchState(c *fiber.Ctx) error {
	match, err := that.matches.FetchState(c.UserContext(), participant(c), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(match)
}

func (that *matchHandler) SubmitMove(c *fiber.Ctx) error {
	var move entity.Move
	if err := c.BodyParser(&move); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := that.matches.SubmitMove(c.UserContext(), participant(c), c.Params("id"), move)
	if err != nil {
		return err
	}

	return c.JSON(api.MoveResponse{
		Accepted:   true,
		Correct:    outcome.Verdict.Correct,
		ScoreDelta: outcome.Verdict.Points,
		TurnEnded:  outcome.Turn.TurnEnded,
		Completed:  outcome.Turn.Completed,
		Match:      outcome.Match,
	})
}

func (that *matchHandler) ConsumeResource(c *fiber.Ctx) error {
	kind := entity.ResourceKind(c.Params("kind"))

	outcome, err := that.matches.ConsumeResource(c.UserContext(), participant(c), c.Params("id"), kind)
	if err != nil {
		return err
	}

	return c.JSON(api.ResourceResponse{
		Kind:      outcome.Kind,
		Remaining: outcome.Remaining,
		Payload:   outcome.Payload,
		Match:     outcome.Match,
	})
}

func (that *matchHandler) AwardOnce(c *fiber.Ctx) error {
	var request api.RewardRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	status, err := that.matches.AwardOnce(c.UserContext(), participant(c), c.Params("id"), request.Amount)
	if err != nil {
		return err
	}

	return c.JSON(api.RewardResponse{Status: string(status)})
}
