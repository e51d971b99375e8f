package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
)

var (
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrChoiceOutOfRange   = errors.New("choice index out of range")
	ErrAlreadyAnswered    = errors.New("question already answered")
)

// OptionSet describes the presented questions of a choice game.
type OptionSet interface {
	QuestionCount() int
	OptionCount(question int) int
}

type OptionDecoder func(content json.RawMessage) (OptionSet, error)

// QuestionKey is the progress key a participant's answer is recorded under.
func QuestionKey(question int) string {
	return "q:" + strconv.Itoa(question)
}

// CheckChoice validates the indices of a choice move against options.
func CheckChoice(options OptionSet, question, choice int) error {
	if question < 0 || question >= options.QuestionCount() {
		return fmt.Errorf("%w: %w: %d", apperror.ErrInvalidMoveShape, ErrQuestionOutOfRange, question)
	}

	if choice < 0 || choice >= options.OptionCount(question) {
		return fmt.Errorf("%w: %w: %d", apperror.ErrInvalidMoveShape, ErrChoiceOutOfRange, choice)
	}

	return nil
}

type Choice struct {
	decode OptionDecoder
}

func NewChoice(decode OptionDecoder) *Choice {
	return &Choice{decode: decode}
}

func (that *Choice) Validate(state matchstate.State, participantID string, move entity.Move) (entity.Move, error) {
	options, err := that.decode(state.Content())
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to decode options: %w", err)
	}

	if err = CheckChoice(options, move.Question, move.Choice); err != nil {
		return entity.Move{}, err
	}

	if state.Answered(participantID, QuestionKey(move.Question)) {
		return entity.Move{}, fmt.Errorf("%w: %w: %d", apperror.ErrInvalidMoveShape, ErrAlreadyAnswered, move.Question)
	}

	return entity.Move{Question: move.Question, Choice: move.Choice}, nil
}
