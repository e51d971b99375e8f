package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/feature"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
	"github.com/rocketscienceinc/matchsync/internal/puzzle"
	"github.com/rocketscienceinc/matchsync/internal/reward"
)

type matchRepo interface {
	Create(ctx context.Context, match *entity.Match, ttl time.Duration) (*entity.Match, error)
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	GetByPair(ctx context.Context, feature, window, pairKey string) (*entity.Match, error)
	Update(ctx context.Context, id string, mutate func(match *entity.Match) error) (*entity.Match, error)
}

type rewardRepo interface {
	Award(ctx context.Context, reward *entity.Reward) (bool, error)
}

type contentProvider interface {
	Content(ctx context.Context, feature, window string) (json.RawMessage, error)
}

type featureRegistry interface {
	Get(key string) (feature.Feature, error)
}

// MoveOutcome is what an accepted move did. Match carries redacted content.
type MoveOutcome struct {
	Verdict puzzle.Verdict
	Turn    entity.TurnOutcome
	Match   *entity.Match
}

type ResourceOutcome struct {
	Kind      entity.ResourceKind
	Remaining int
	Payload   json.RawMessage
	Match     *entity.Match
}

// MatchService is the authoritative side of every match: it owns turn order, scoring,
// budgets and the reward ledger.
type MatchService struct {
	logger *slog.Logger

	matches  matchRepo
	rewards  rewardRepo
	contents contentProvider
	features featureRegistry

	clock    clockwork.Clock
	location *time.Location
	intn     func(n int) int
}

func NewMatchService(
	logger *slog.Logger,
	matches matchRepo,
	rewards rewardRepo,
	contents contentProvider,
	features featureRegistry,
	clock clockwork.Clock,
	location *time.Location,
) *MatchService {
	if location == nil {
		location = time.UTC
	}

	return &MatchService{
		logger: logger.With("component", "match-service"),

		matches:  matches,
		rewards:  rewards,
		contents: contents,
		features: features,

		clock:    clock,
		location: location,
		intn:     rand.IntN,
	}
}

// CreateOrJoin returns the pair's match for the feature in the current window, creating
// it when there is none. The caller becomes the first mover of a new match.
func (that *MatchService) CreateOrJoin(ctx context.Context, participantID, partnerID, featureKey string) (*entity.Match, error) {
	log := that.logger.With("method", "CreateOrJoin", "participant", participantID, "partner", partnerID)

	if partnerID == "" || partnerID == participantID {
		return nil, fmt.Errorf("%w: invalid partner %q", apperror.ErrNotParticipant, partnerID)
	}

	current, err := that.features.Get(featureKey)
	if err != nil {
		return nil, err
	}

	now := that.clock.Now()
	window := entity.DailyWindow(now, that.location)
	pair := entity.PairKey(participantID, partnerID)

	existing, err := that.matches.GetByPair(ctx, current.Key, window.Key, pair)
	if err == nil {
		return that.resolve(current, existing, window)
	}

	if !errors.Is(err, apperror.ErrMatchNotFound) {
		return nil, fmt.Errorf("failed to get match by pair: %w", err)
	}

	content, err := that.contents.Content(ctx, current.Key, window.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	match := entity.NewMatch(entity.MatchOptions{
		ID:            uuid.NewString(),
		Feature:       current.Key,
		Window:        window.Key,
		ParticipantA:  participantID,
		ParticipantB:  partnerID,
		Content:       content,
		TurnThreshold: current.TurnThreshold,
		Budgets:       current.Budgets(),
		Now:           now,
	})

	stored, err := that.matches.Create(ctx, match, window.End.Sub(now)+entity.WindowGrace)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if stored.ID == match.ID {
		log.Info("match created", "match", match.ID, "feature", current.Key, "window", window.Key)
	}

	return that.resolve(current, stored, window)
}

func (that *MatchService) resolve(current feature.Feature, match *entity.Match, window entity.Window) (*entity.Match, error) {
	if match.IsCompleted() {
		return nil, &apperror.CooldownError{RetryAfter: window.End}
	}

	return that.redact(current, match)
}

func (that *MatchService) FetchState(ctx context.Context, participantID, matchID string) (*entity.Match, error) {
	match, err := that.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if !match.IsMember(participantID) {
		return nil, apperror.ErrNotParticipant
	}

	current, err := that.features.Get(match.Feature)
	if err != nil {
		return nil, err
	}

	return that.redact(current, match)
}

// SubmitMove validates, judges and records a move. A wrong answer is still an accepted
// move and counts toward the turn.
func (that *MatchService) SubmitMove(ctx context.Context, participantID, matchID string, move entity.Move) (MoveOutcome, error) {
	log := that.logger.With("method", "SubmitMove", "participant", participantID, "match", matchID)

	var (
		current feature.Feature
		outcome MoveOutcome
	)

	updated, err := that.matches.Update(ctx, matchID, func(match *entity.Match) error {
		var err error

		current, err = that.confirmMover(match, participantID)
		if err != nil {
			return err
		}

		normalized, err := current.Validator.Validate(matchstate.New(match), participantID, move)
		if err != nil {
			return err
		}

		verdict, err := current.Judge.Judge(match, participantID, normalized)
		if err != nil {
			return err
		}

		remaining, err := current.Judge.Remaining(match)
		if err != nil {
			return err
		}

		now := that.clock.Now()
		entry := entity.ProgressEntry{
			ParticipantID: participantID,
			Key:           verdict.Key,
			Token:         verdict.Token,
			Question:      normalized.Question,
			Choice:        normalized.Choice,
			Correct:       verdict.Correct,
			Points:        verdict.Points,
			At:            now,
		}

		turn, err := match.Record(entry, verdict.PartnerPoints, remaining, now)
		if err != nil {
			return err
		}

		outcome = MoveOutcome{Verdict: verdict, Turn: turn}

		return nil
	})
	if err != nil {
		return MoveOutcome{}, fmt.Errorf("failed to submit move: %w", err)
	}

	log.Debug("move recorded", "correct", outcome.Verdict.Correct, "turn_ended", outcome.Turn.TurnEnded, "completed", outcome.Turn.Completed)

	if outcome.Turn.Completed {
		log.Info("match completed", "scores", updated.Scores)
	}

	outcome.Match, err = that.redact(current, updated)
	if err != nil {
		return MoveOutcome{}, err
	}

	return outcome, nil
}

// ConsumeResource spends one unit of kind. Nothing is spent when the resource has
// nothing to reveal.
func (that *MatchService) ConsumeResource(ctx context.Context, participantID, matchID string, kind entity.ResourceKind) (ResourceOutcome, error) {
	log := that.logger.With("method", "ConsumeResource", "participant", participantID, "match", matchID, "kind", kind)

	var (
		current feature.Feature
		outcome ResourceOutcome
	)

	updated, err := that.matches.Update(ctx, matchID, func(match *entity.Match) error {
		var err error

		current, err = that.confirmMover(match, participantID)
		if err != nil {
			return err
		}

		left, err := match.Consume(participantID, kind, that.clock.Now())
		if err != nil {
			return err
		}

		outcome = ResourceOutcome{Kind: kind, Remaining: left}

		if kind == entity.ResourceHint {
			outcome.Payload, err = current.Judge.Hint(match, participantID, that.intn)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return ResourceOutcome{}, fmt.Errorf("failed to consume %s: %w", kind, err)
	}

	log.Debug("resource consumed", "remaining", outcome.Remaining)

	outcome.Match, err = that.redact(current, updated)
	if err != nil {
		return ResourceOutcome{}, err
	}

	return outcome, nil
}

// AwardOnce credits the feature's reward for a completed match. The ledger decides
// whether this is the first award.
func (that *MatchService) AwardOnce(ctx context.Context, participantID, matchID string, requested int) (reward.Status, error) {
	log := that.logger.With("method", "AwardOnce", "participant", participantID, "match", matchID)

	match, err := that.matches.GetByID(ctx, matchID)
	if err != nil {
		return "", fmt.Errorf("failed to get match: %w", err)
	}

	if !match.IsMember(participantID) {
		return "", apperror.ErrNotParticipant
	}

	if !match.IsCompleted() {
		return "", apperror.ErrNotCompleted
	}

	current, err := that.features.Get(match.Feature)
	if err != nil {
		return "", err
	}

	if requested != current.RewardAmount {
		log.Warn("requested amount differs from feature reward", "requested", requested, "amount", current.RewardAmount)
	}

	created, err := that.rewards.Award(ctx, &entity.Reward{
		ParticipantID: participantID,
		MatchID:       matchID,
		Feature:       match.Feature,
		Amount:        current.RewardAmount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to award: %w", err)
	}

	if !created {
		log.Info("reward already awarded")
		return reward.StatusAlreadyAwarded, nil
	}

	log.Info("reward awarded", "amount", current.RewardAmount)

	return reward.StatusAwarded, nil
}

func (that *MatchService) confirmMover(match *entity.Match, participantID string) (feature.Feature, error) {
	if !match.IsMember(participantID) {
		return feature.Feature{}, apperror.ErrNotParticipant
	}

	if err := match.ConfirmActive(); err != nil {
		return feature.Feature{}, err
	}

	if err := match.ConfirmTurn(participantID); err != nil {
		return feature.Feature{}, err
	}

	return that.features.Get(match.Feature)
}

func (that *MatchService) redact(current feature.Feature, match *entity.Match) (*entity.Match, error) {
	redacted := match.Clone()
	if len(redacted.Content) == 0 {
		return redacted, nil
	}

	content, err := current.Judge.Redact(redacted.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to redact content: %w", err)
	}

	redacted.Content = content

	return redacted, nil
}
