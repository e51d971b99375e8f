package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/matchsync/internal/client"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/feature"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
	"github.com/rocketscienceinc/matchsync/internal/puzzle"
	"github.com/rocketscienceinc/matchsync/internal/turnsync"
	"github.com/rocketscienceinc/matchsync/internal/validator"
)

const pathAttempts = 32

var ErrNoAvailableMoves = errors.New("no available moves")

var directions = []entity.Cell{
	{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1},
	{Row: 0, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: -1}, {Row: -1, Col: 1},
}

type botController interface {
	Start(ctx context.Context) (turnsync.View, error)
	Snapshot() turnsync.View
	Submit(ctx context.Context, move entity.Move) (client.MoveResult, error)
	Retry(ctx context.Context) error
}

// Bot plays one side of a match with random moves of the right shape.
type Bot struct {
	logger *slog.Logger

	controller    botController
	participantID string
	feature       feature.Feature

	clock clockwork.Clock
	delay time.Duration
	intn  func(n int) int
}

func NewBot(
	logger *slog.Logger,
	controller botController,
	participantID string,
	current feature.Feature,
	clock clockwork.Clock,
	delay time.Duration,
) *Bot {
	if delay <= 0 {
		delay = time.Second
	}

	return &Bot{
		logger:        logger.With("component", "bot", "participant", participantID),
		controller:    controller,
		participantID: participantID,
		feature:       current,
		clock:         clock,
		delay:         delay,
		intn:          rand.IntN,
	}
}

// Play joins the match and moves whenever it is the bot's turn, until the match completes
// or ctx is done.
func (that *Bot) Play(ctx context.Context) (turnsync.View, error) {
	log := that.logger.With("method", "Play")

	view, err := that.controller.Start(ctx)
	if err != nil {
		return view, fmt.Errorf("failed to start match: %w", err)
	}

	log.Info("joined match", "match", view.State.ID())

	ticker := that.clock.NewTicker(that.delay)
	defer ticker.Stop()

	for {
		view = that.controller.Snapshot()

		switch view.Phase {
		case turnsync.PhaseCompleted:
			log.Info("match completed", "score", view.State.MyScore(that.participantID), "partner_score", view.State.PartnerScore(that.participantID))
			return view, nil
		case turnsync.PhaseErrored:
			if err = that.controller.Retry(ctx); err != nil {
				return view, fmt.Errorf("match failed: %w", err)
			}
		case turnsync.PhaseMyTurn:
			if view.Pending == nil {
				that.play(ctx, view.State)
			}
		}

		select {
		case <-ctx.Done():
			return view, ctx.Err()
		case <-ticker.Chan():
		}
	}
}

func (that *Bot) play(ctx context.Context, state matchstate.State) {
	log := that.logger.With("method", "play")

	move, err := that.NextMove(state)
	if err != nil {
		log.Warn("no move to play", "error", err)
		return
	}

	result, err := that.controller.Submit(ctx, move)
	if err != nil {
		log.Debug("move rejected", "error", err)
		return
	}

	log.Debug("move played", "token", move.Token, "question", move.Question, "correct", result.Correct)
}

// NextMove picks a random move the local validator accepts.
func (that *Bot) NextMove(state matchstate.State) (entity.Move, error) {
	switch that.feature.Shape {
	case feature.ShapeChoice:
		return that.nextChoice(state)
	case feature.ShapePath:
		return that.nextPath(state)
	default:
		return entity.Move{}, fmt.Errorf("%w: unsupported shape %q", ErrNoAvailableMoves, that.feature.Shape)
	}
}

func (that *Bot) nextChoice(state matchstate.State) (entity.Move, error) {
	options, err := puzzle.DecodeOptions(state.Content())
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to decode options: %w", err)
	}

	for question := range options.QuestionCount() {
		if state.Answered(that.participantID, validator.QuestionKey(question)) {
			continue
		}

		count := options.OptionCount(question)
		if count == 0 {
			continue
		}

		return entity.Move{Question: question, Choice: that.intn(count)}, nil
	}

	return entity.Move{}, ErrNoAvailableMoves
}

func (that *Bot) nextPath(state matchstate.State) (entity.Move, error) {
	grid, err := puzzle.DecodeGrid(state.Content())
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to decode grid: %w", err)
	}

	rows, cols := grid.Size()
	if rows == 0 || cols == 0 {
		return entity.Move{}, ErrNoAvailableMoves
	}

	minLength := max(that.feature.MinPathLength, validator.DefaultMinPathLength)

	for range pathAttempts {
		start := entity.Cell{Row: that.intn(rows), Col: that.intn(cols)}
		step := directions[that.intn(len(directions))]
		length := minLength + that.intn(2)

		var selection validator.Selection
		for i := range length {
			selection.Touch(entity.Cell{Row: start.Row + step.Row*i, Col: start.Col + step.Col*i})
		}

		move, err := that.feature.Validator.Validate(state, that.participantID, selection.Move())
		if err != nil {
			continue
		}

		if state.Answered(that.participantID, puzzle.WordKey(move.Token)) {
			continue
		}

		return move, nil
	}

	return entity.Move{}, ErrNoAvailableMoves
}
