package puzzle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/validator"
)

// Question has a Correct index for quiz content. Preference questions leave it nil and
// score by agreement between the two participants.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct *int     `json:"correct,omitempty"`
}

type ChoiceContent struct {
	Questions []Question `json:"questions"`
}

func DecodeChoiceContent(content json.RawMessage) (*ChoiceContent, error) {
	var choices ChoiceContent
	if err := json.Unmarshal(content, &choices); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedContent, err)
	}

	if len(choices.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrMalformedContent)
	}

	return &choices, nil
}

// DecodeOptions adapts DecodeChoiceContent to validator.OptionDecoder.
func DecodeOptions(content json.RawMessage) (validator.OptionSet, error) {
	return DecodeChoiceContent(content)
}

func (that *ChoiceContent) QuestionCount() int {
	return len(that.Questions)
}

func (that *ChoiceContent) OptionCount(question int) int {
	if question < 0 || question >= len(that.Questions) {
		return 0
	}

	return len(that.Questions[question].Options)
}

type ChoiceJudge struct{}

func NewChoiceJudge() *ChoiceJudge {
	return &ChoiceJudge{}
}

func (that *ChoiceJudge) Judge(match *entity.Match, participantID string, move entity.Move) (Verdict, error) {
	choices, err := DecodeChoiceContent(match.Content)
	if err != nil {
		return Verdict{}, err
	}

	if err = validator.CheckChoice(choices, move.Question, move.Choice); err != nil {
		return Verdict{}, err
	}

	key := validator.QuestionKey(move.Question)
	if match.HasKey(key, participantID) {
		return Verdict{}, fmt.Errorf("%w: question %d", apperror.ErrDuplicateMove, move.Question)
	}

	question := choices.Questions[move.Question]
	verdict := Verdict{Key: key, Token: question.Options[move.Choice]}

	if question.Correct != nil {
		verdict.Correct = move.Choice == *question.Correct
		if verdict.Correct {
			verdict.Points = 1
		}

		return verdict, nil
	}

	// agreement is scored once, by whoever answers second
	for _, entry := range match.Progress {
		if entry.Key == key && entry.ParticipantID == match.Partner(participantID) && entry.Choice == move.Choice {
			verdict.Correct = true
			verdict.Points = 1
			verdict.PartnerPoints = 1
		}
	}

	return verdict, nil
}

// Remaining counts questions participantID has not answered yet.
func (that *ChoiceJudge) Remaining(match *entity.Match) (entity.RemainingFunc, error) {
	choices, err := DecodeChoiceContent(match.Content)
	if err != nil {
		return nil, err
	}

	return func(progress []entity.ProgressEntry, participantID string) int {
		answered := 0
		for _, entry := range progress {
			if entry.ParticipantID == participantID && strings.HasPrefix(entry.Key, "q:") {
				answered++
			}
		}

		return max(len(choices.Questions)-answered, 0)
	}, nil
}

type ChoiceHint struct {
	Question   int `json:"question"`
	Eliminated int `json:"eliminated"`
}

// Hint eliminates one wrong option of the first question participantID has not answered.
func (that *ChoiceJudge) Hint(match *entity.Match, participantID string, intn func(n int) int) (json.RawMessage, error) {
	choices, err := DecodeChoiceContent(match.Content)
	if err != nil {
		return nil, err
	}

	for i, question := range choices.Questions {
		if match.HasKey(validator.QuestionKey(i), participantID) {
			continue
		}

		if question.Correct == nil {
			return nil, fmt.Errorf("%w: question %d has no correct answer", apperror.ErrNoHintAvailable, i)
		}

		wrong := make([]int, 0, len(question.Options))
		for option := range question.Options {
			if option != *question.Correct {
				wrong = append(wrong, option)
			}
		}

		if len(wrong) == 0 {
			return nil, apperror.ErrNoHintAvailable
		}

		payload, err := json.Marshal(ChoiceHint{Question: i, Eliminated: wrong[intn(len(wrong))]})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal hint: %w", err)
		}

		return payload, nil
	}

	return nil, apperror.ErrNoHintAvailable
}

func (that *ChoiceJudge) Redact(content json.RawMessage) (json.RawMessage, error) {
	choices, err := DecodeChoiceContent(content)
	if err != nil {
		return nil, err
	}

	redacted := ChoiceContent{Questions: make([]Question, 0, len(choices.Questions))}
	for _, question := range choices.Questions {
		redacted.Questions = append(redacted.Questions, Question{
			Prompt:  question.Prompt,
			Options: question.Options,
		})
	}

	payload, err := json.Marshal(redacted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}

	return payload, nil
}
