package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/feature"
	"github.com/rocketscienceinc/matchsync/internal/puzzle"
	"github.com/rocketscienceinc/matchsync/internal/reward"
	mockedUseCase "github.com/rocketscienceinc/matchsync/mocks/usecase"
)

var (
	errRedisDown    = errors.New("redis down")
	errLedgerDown   = errors.New("ledger down")
	errBucketMissed = errors.New("bucket unreachable")
)

const gridJSON = `{
	"rows": ["CAT", "OXO", "WEG"],
	"words": [
		{"word": "CAT", "start": {"row": 0, "col": 0}, "direction": {"row": 0, "col": 1}},
		{"word": "COW", "start": {"row": 0, "col": 0}, "direction": {"row": 1, "col": 0}},
		{"word": "TOG", "start": {"row": 0, "col": 2}, "direction": {"row": 1, "col": 0}}
	]
}`

const quizJSON = `{
	"questions": [
		{"prompt": "2+2", "options": ["3", "4", "5"], "correct": 1},
		{"prompt": "Capital of France", "options": ["Paris", "Rome"], "correct": 0}
	]
}`

var (
	now         = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	windowKey   = "2026-01-02"
	windowEnd   = time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	cat         = []entity.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	cow         = []entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}}
	tog         = []entity.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}}
	diagonalCXG = []entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}
)

type fixture struct {
	matches  *mockedUseCase.MockmatchRepo
	rewards  *mockedUseCase.MockrewardRepo
	contents *mockedUseCase.MockcontentProvider
	service  *MatchService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	matches := mockedUseCase.NewMockmatchRepo(t)
	rewards := mockedUseCase.NewMockrewardRepo(t)
	contents := mockedUseCase.NewMockcontentProvider(t)

	service := NewMatchService(
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		matches,
		rewards,
		contents,
		feature.NewRegistry(nil),
		clockwork.NewFakeClockAt(now),
		time.UTC,
	)
	service.intn = func(int) int { return 0 }

	return &fixture{matches: matches, rewards: rewards, contents: contents, service: service}
}

func storedMatch(featureKey, content string, threshold int) *entity.Match {
	return entity.NewMatch(entity.MatchOptions{
		ID:            "m-1",
		Feature:       featureKey,
		Window:        windowKey,
		ParticipantA:  "x",
		ParticipantB:  "y",
		Content:       json.RawMessage(content),
		TurnThreshold: threshold,
		Budgets:       map[entity.ResourceKind]int{entity.ResourceHint: 1},
		Now:           now,
	})
}

// applyTo lets Update mutate an in-memory match the way the repository does: nothing
// is kept when the mutation fails.
func applyTo(stored *entity.Match) func(context.Context, string, func(*entity.Match) error) (*entity.Match, error) {
	return func(_ context.Context, id string, mutate func(*entity.Match) error) (*entity.Match, error) {
		if id != stored.ID {
			return nil, apperror.ErrMatchNotFound
		}

		working := stored.Clone()
		if err := mutate(working); err != nil {
			return nil, err
		}

		*stored = *working.Clone()

		return working, nil
	}
}

func TestMatchService_CreateOrJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a match with the caller moving first", func(t *testing.T) {
		// Given: no match for the pair in today's window
		f := newFixture(t)

		f.matches.EXPECT().
			GetByPair(mock.Anything, feature.Quiz, windowKey, entity.PairKey("x", "y")).
			Return(nil, apperror.ErrMatchNotFound).
			Once()

		f.contents.EXPECT().
			Content(mock.Anything, feature.Quiz, windowKey).
			Return(json.RawMessage(quizJSON), nil).
			Once()

		f.matches.EXPECT().
			Create(mock.Anything, mock.AnythingOfType("*entity.Match"), windowEnd.Sub(now)+entity.WindowGrace).
			RunAndReturn(func(_ context.Context, match *entity.Match, _ time.Duration) (*entity.Match, error) {
				return match, nil
			}).
			Once()

		// When: x opens the quiz with y
		match, err := f.service.CreateOrJoin(ctx, "x", "y", "Quiz")

		// Then: x is A and has the first turn, and answers never leave the peer
		require.NoError(t, err)
		assert.NotEmpty(t, match.ID)
		assert.Equal(t, "x", match.ParticipantA)
		assert.Equal(t, "x", match.CurrentTurn)
		assert.Equal(t, windowKey, match.Window)
		assert.Equal(t, 1, match.RemainingBudget("y", entity.ResourceHint))
		assert.NotContains(t, string(match.Content), "correct")
	})

	t.Run("Joining returns the partner's match", func(t *testing.T) {
		// Given: y already created today's match
		f := newFixture(t)
		existing := storedMatch(feature.Quiz, quizJSON, 3)
		existing.ParticipantA, existing.ParticipantB, existing.CurrentTurn = "y", "x", "y"

		f.matches.EXPECT().
			GetByPair(mock.Anything, feature.Quiz, windowKey, entity.PairKey("x", "y")).
			Return(existing, nil).
			Once()

		// When: x opens the feature
		match, err := f.service.CreateOrJoin(ctx, "x", "y", feature.Quiz)

		// Then: the same match comes back and nothing is created
		require.NoError(t, err)
		assert.Equal(t, "m-1", match.ID)
		assert.Equal(t, "y", match.CurrentTurn)
	})

	t.Run("Losing the creation race returns the winner", func(t *testing.T) {
		f := newFixture(t)
		winner := storedMatch(feature.Quiz, quizJSON, 3)

		f.matches.EXPECT().GetByPair(mock.Anything, feature.Quiz, windowKey, mock.Anything).Return(nil, apperror.ErrMatchNotFound).Once()
		f.contents.EXPECT().Content(mock.Anything, feature.Quiz, windowKey).Return(json.RawMessage(quizJSON), nil).Once()
		f.matches.EXPECT().Create(mock.Anything, mock.Anything, mock.Anything).Return(winner, nil).Once()

		match, err := f.service.CreateOrJoin(ctx, "y", "x", feature.Quiz)

		require.NoError(t, err)
		assert.Equal(t, "m-1", match.ID)
	})

	t.Run("Completed match in the window is a cooldown", func(t *testing.T) {
		// Given: the pair already completed today's quiz
		f := newFixture(t)
		completed := storedMatch(feature.Quiz, quizJSON, 3)
		completed.Status = entity.StatusCompleted

		f.matches.EXPECT().GetByPair(mock.Anything, feature.Quiz, windowKey, mock.Anything).Return(completed, nil).Once()

		// When: x opens the quiz again
		_, err := f.service.CreateOrJoin(ctx, "x", "y", feature.Quiz)

		// Then: the cooldown ends when the next window opens
		require.ErrorIs(t, err, apperror.ErrCooldownActive)
		retryAfter, ok := apperror.RetryAfter(err)
		require.True(t, ok)
		assert.True(t, windowEnd.Equal(retryAfter))
	})

	t.Run("Invalid partner", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateOrJoin(ctx, "x", "x", feature.Quiz)

		require.ErrorIs(t, err, apperror.ErrNotParticipant)
	})

	t.Run("Unknown feature", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateOrJoin(ctx, "x", "y", "chess")

		require.ErrorIs(t, err, apperror.ErrUnknownFeature)
	})

	t.Run("Storage failures are wrapped", func(t *testing.T) {
		f := newFixture(t)

		f.matches.EXPECT().GetByPair(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errRedisDown).Once()

		_, err := f.service.CreateOrJoin(ctx, "x", "y", feature.Quiz)

		require.ErrorIs(t, err, errRedisDown)
	})

	t.Run("Content failures are wrapped", func(t *testing.T) {
		f := newFixture(t)

		f.matches.EXPECT().GetByPair(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, apperror.ErrMatchNotFound).Once()
		f.contents.EXPECT().Content(mock.Anything, mock.Anything, mock.Anything).Return(nil, errBucketMissed).Once()

		_, err := f.service.CreateOrJoin(ctx, "x", "y", feature.Quiz)

		require.ErrorIs(t, err, errBucketMissed)
	})
}

func TestMatchService_SubmitMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Turn passes after the threshold", func(t *testing.T) {
		// Given: a fresh word grid with threshold 3
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Times(3)

		// When: x finds two words and misses once
		first, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: cat})
		require.NoError(t, err)
		second, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: cow})
		require.NoError(t, err)
		third, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: diagonalCXG})
		require.NoError(t, err)

		// Then: the miss still counts and the turn flips to y
		assert.True(t, first.Verdict.Correct)
		assert.False(t, first.Turn.TurnEnded)
		assert.True(t, second.Verdict.Correct)
		assert.False(t, third.Verdict.Correct)
		assert.True(t, third.Turn.TurnEnded)
		assert.False(t, third.Turn.Completed)

		assert.Equal(t, "y", third.Match.CurrentTurn)
		assert.Zero(t, third.Match.MovesSinceTurnStart)
		assert.Equal(t, entity.StatusActive, third.Match.Status)
		assert.Equal(t, 6, third.Match.Score("x"))
		assert.NotContains(t, string(third.Match.Content), "words")
	})

	t.Run("Partner's submission is rejected without change", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Once()

		_, err := f.service.SubmitMove(ctx, "y", "m-1", entity.Move{Path: cat})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Empty(t, stored.Progress)
		assert.Equal(t, int64(1), stored.Version)
	})

	t.Run("Outsiders are rejected", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Once()

		_, err := f.service.SubmitMove(ctx, "z", "m-1", entity.Move{Path: cat})

		require.ErrorIs(t, err, apperror.ErrNotParticipant)
	})

	t.Run("Badly shaped paths never reach the judge", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Once()

		_, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: []entity.Cell{{Row: 0, Col: 0}, {Row: 2, Col: 2}, {Row: 1, Col: 1}}})

		require.ErrorIs(t, err, apperror.ErrInvalidMoveShape)
		assert.Empty(t, stored.Progress)
	})

	t.Run("A found word cannot be claimed twice", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Twice()

		_, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: cat})
		require.NoError(t, err)

		_, err = f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: cat})

		require.ErrorIs(t, err, apperror.ErrDuplicateMove)
		assert.Len(t, stored.Progress, 1)
	})

	t.Run("Completion does not wait for the threshold", func(t *testing.T) {
		// Given: y already found CAT and x starts a turn
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		stored.Progress = []entity.ProgressEntry{{ParticipantID: "y", Key: puzzle.WordKey("CAT"), Correct: true, Points: 3}}
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Twice()

		// When: x finds the last two words
		_, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: cow})
		require.NoError(t, err)
		last, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: tog})
		require.NoError(t, err)

		// Then: the match completes on the second move of the turn
		assert.True(t, last.Turn.Completed)
		assert.Equal(t, entity.StatusCompleted, last.Match.Status)
		assert.Empty(t, last.Match.CurrentTurn)
		assert.NotNil(t, last.Match.CompletedAt)
	})

	t.Run("Completed matches refuse moves", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		stored.Status = entity.StatusCompleted
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Once()

		_, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Path: cat})

		require.ErrorIs(t, err, apperror.ErrMatchCompleted)
	})

	t.Run("Quiz answers score against the correct option", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.Quiz, quizJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Twice()

		right, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Question: 0, Choice: 1})
		require.NoError(t, err)
		wrong, err := f.service.SubmitMove(ctx, "x", "m-1", entity.Move{Question: 1, Choice: 1})
		require.NoError(t, err)

		assert.True(t, right.Verdict.Correct)
		assert.False(t, wrong.Verdict.Correct)
		// x ran out of questions while y still has two, so the turn passes early
		assert.True(t, wrong.Turn.TurnEnded)
		assert.Equal(t, "y", wrong.Match.CurrentTurn)
		assert.Equal(t, 1, wrong.Match.Score("x"))
	})

	t.Run("Missing match", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().Update(mock.Anything, "gone", mock.Anything).Return(nil, apperror.ErrMatchNotFound).Once()

		_, err := f.service.SubmitMove(ctx, "x", "gone", entity.Move{Path: cat})

		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})
}

func TestMatchService_ConsumeResource(t *testing.T) {
	ctx := context.Background()

	t.Run("Spends a hint and reveals a cell", func(t *testing.T) {
		// Given: x holds one hint
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Twice()

		// When: x asks for a hint twice
		outcome, err := f.service.ConsumeResource(ctx, "x", "m-1", entity.ResourceHint)
		require.NoError(t, err)
		_, err = f.service.ConsumeResource(ctx, "x", "m-1", entity.ResourceHint)

		// Then: the first reveals the first letter of CAT, the second is refused
		assert.Zero(t, outcome.Remaining)
		assert.JSONEq(t, `{"cell":{"row":0,"col":0},"letter":"C"}`, string(outcome.Payload))
		assert.Zero(t, outcome.Match.RemainingBudget("x", entity.ResourceHint))
		assert.Equal(t, 1, outcome.Match.RemainingBudget("y", entity.ResourceHint))
		require.ErrorIs(t, err, apperror.ErrResourceExhausted)
	})

	t.Run("Nothing to reveal keeps the budget", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.Quiz, quizJSON, 3)
		stored.Progress = []entity.ProgressEntry{
			{ParticipantID: "x", Key: "q:0"},
			{ParticipantID: "x", Key: "q:1"},
		}
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Once()

		_, err := f.service.ConsumeResource(ctx, "x", "m-1", entity.ResourceHint)

		require.ErrorIs(t, err, apperror.ErrNoHintAvailable)
		assert.Equal(t, 1, stored.RemainingBudget("x", entity.ResourceHint))
	})

	t.Run("Only the mover may use resources", func(t *testing.T) {
		f := newFixture(t)
		stored := storedMatch(feature.WordGrid, gridJSON, 3)
		f.matches.EXPECT().Update(mock.Anything, "m-1", mock.Anything).RunAndReturn(applyTo(stored)).Once()

		_, err := f.service.ConsumeResource(ctx, "y", "m-1", entity.ResourceHint)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 1, stored.RemainingBudget("y", entity.ResourceHint))
	})
}

func TestMatchService_FetchState(t *testing.T) {
	ctx := context.Background()

	t.Run("Members read the redacted match", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "m-1").Return(storedMatch(feature.WordGrid, gridJSON, 3), nil).Once()

		match, err := f.service.FetchState(ctx, "y", "m-1")

		require.NoError(t, err)
		assert.Equal(t, "m-1", match.ID)
		assert.Contains(t, string(match.Content), "rows")
		assert.NotContains(t, string(match.Content), "words")
	})

	t.Run("Outsiders cannot read", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "m-1").Return(storedMatch(feature.WordGrid, gridJSON, 3), nil).Once()

		_, err := f.service.FetchState(ctx, "z", "m-1")

		require.ErrorIs(t, err, apperror.ErrNotParticipant)
	})

	t.Run("Missing match", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "gone").Return(nil, apperror.ErrMatchNotFound).Once()

		_, err := f.service.FetchState(ctx, "x", "gone")

		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
	})
}

func TestMatchService_AwardOnce(t *testing.T) {
	ctx := context.Background()

	completed := func() *entity.Match {
		match := storedMatch(feature.Quiz, quizJSON, 3)
		match.Status = entity.StatusCompleted
		return match
	}

	t.Run("First award credits the feature amount", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "m-1").Return(completed(), nil).Once()
		f.rewards.EXPECT().
			Award(mock.Anything, &entity.Reward{ParticipantID: "x", MatchID: "m-1", Feature: feature.Quiz, Amount: 30}).
			Return(true, nil).
			Once()

		status, err := f.service.AwardOnce(ctx, "x", "m-1", 30)

		require.NoError(t, err)
		assert.Equal(t, reward.StatusAwarded, status)
	})

	t.Run("Repeated award is reported, not credited", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "m-1").Return(completed(), nil).Once()
		f.rewards.EXPECT().Award(mock.Anything, mock.AnythingOfType("*entity.Reward")).Return(false, nil).Once()

		status, err := f.service.AwardOnce(ctx, "x", "m-1", 30)

		require.NoError(t, err)
		assert.Equal(t, reward.StatusAlreadyAwarded, status)
	})

	t.Run("Active matches earn nothing", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "m-1").Return(storedMatch(feature.Quiz, quizJSON, 3), nil).Once()

		_, err := f.service.AwardOnce(ctx, "x", "m-1", 30)

		require.ErrorIs(t, err, apperror.ErrNotCompleted)
	})

	t.Run("Outsiders earn nothing", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "m-1").Return(completed(), nil).Once()

		_, err := f.service.AwardOnce(ctx, "z", "m-1", 30)

		require.ErrorIs(t, err, apperror.ErrNotParticipant)
	})

	t.Run("Ledger failures surface", func(t *testing.T) {
		f := newFixture(t)
		f.matches.EXPECT().GetByID(mock.Anything, "m-1").Return(completed(), nil).Once()
		f.rewards.EXPECT().Award(mock.Anything, mock.Anything).Return(false, errLedgerDown).Once()

		_, err := f.service.AwardOnce(ctx, "x", "m-1", 30)

		require.ErrorIs(t, err, errLedgerDown)
	})
}
