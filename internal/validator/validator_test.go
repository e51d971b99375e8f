package validator

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
)

type letterGrid []string

func (that letterGrid) Size() (int, int) {
	return len(that), len(that[0])
}

func (that letterGrid) Letter(cell entity.Cell) string {
	return string(that[cell.Row][cell.Col])
}

var testGrid = letterGrid{
	"cat",
	"oxo",
	"weg",
}

func path(cells ...int) []entity.Cell {
	result := make([]entity.Cell, 0, len(cells)/2)
	for i := 0; i+1 < len(cells); i += 2 {
		result = append(result, entity.Cell{Row: cells[i], Col: cells[i+1]})
	}

	return result
}

func TestTrace(t *testing.T) {
	t.Run("Spells a straight row, column or diagonal", func(t *testing.T) {
		cases := map[string][]entity.Cell{
			"CAT": path(0, 0, 0, 1, 0, 2),
			"COW": path(0, 0, 1, 0, 2, 0),
			"CXG": path(0, 0, 1, 1, 2, 2),
			"TAC": path(0, 2, 0, 1, 0, 0),
			"WXT": path(2, 0, 1, 1, 0, 2),
		}

		for want, cells := range cases {
			// When: the path is traced
			token, err := Trace(testGrid, cells, 2)

			// Then: the upper-cased letters come back
			require.NoError(t, err, want)
			assert.Equal(t, want, token)
		}
	})

	t.Run("Rejects broken shapes as invalid move shape", func(t *testing.T) {
		cases := []struct {
			name  string
			cells []entity.Cell
			want  error
		}{
			{"too short", path(0, 0), ErrPathTooShort},
			{"out of bounds", path(0, 2, 0, 3), ErrCellOutOfBound},
			{"negative", path(0, 0, -1, 0), ErrCellOutOfBound},
			{"gap", path(0, 0, 0, 2), ErrNotAdjacent},
			{"same cell", path(0, 0, 0, 0), ErrCellRepeated},
			{"bend", path(0, 0, 0, 1, 1, 1), ErrNotStraight},
			{"back and forth", path(0, 0, 0, 1, 0, 0), ErrCellRepeated},
		}

		for _, tc := range cases {
			// When: the path is traced
			_, err := Trace(testGrid, tc.cells, 2)

			// Then: both the shape sentinel and the specific reason are reported
			require.ErrorIs(t, err, apperror.ErrInvalidMoveShape, tc.name)
			require.ErrorIs(t, err, tc.want, tc.name)
		}
	})

	t.Run("Uses the default minimum length when none is set", func(t *testing.T) {
		_, err := Trace(testGrid, path(1, 1), 0)

		require.ErrorIs(t, err, ErrPathTooShort)
	})
}

func TestSelection(t *testing.T) {
	t.Run("Re-touching the previous cell backtracks", func(t *testing.T) {
		// Given: a selection over three cells
		var selection Selection
		selection.Touch(entity.Cell{Row: 0, Col: 0})
		selection.Touch(entity.Cell{Row: 0, Col: 1})
		selection.Touch(entity.Cell{Row: 0, Col: 2})

		// When: the gesture moves back onto the second cell
		selection.Touch(entity.Cell{Row: 0, Col: 1})

		// Then: the last cell is removed
		assert.Equal(t, path(0, 0, 0, 1), selection.Cells())
	})

	t.Run("Touching the current cell again is ignored", func(t *testing.T) {
		var selection Selection
		selection.Touch(entity.Cell{Row: 0, Col: 0})
		selection.Touch(entity.Cell{Row: 0, Col: 0})

		assert.Len(t, selection.Cells(), 1)
	})

	t.Run("Backtrack and Reset", func(t *testing.T) {
		var selection Selection
		selection.Backtrack()
		selection.Touch(entity.Cell{Row: 2, Col: 2})
		selection.Touch(entity.Cell{Row: 1, Col: 1})
		selection.Backtrack()

		assert.Equal(t, path(2, 2), selection.Move().Path)

		selection.Reset()
		assert.Empty(t, selection.Cells())
	})
}

func TestPath_Validate(t *testing.T) {
	decode := func(json.RawMessage) (Grid, error) { return testGrid, nil }

	t.Run("Returns the normalized move with its token", func(t *testing.T) {
		validator := NewPath(decode, 3)

		move, err := validator.Validate(matchstate.State{}, "x", entity.Move{Path: path(0, 0, 1, 0, 2, 0), Token: "ignored"})

		require.NoError(t, err)
		assert.Equal(t, "COW", move.Token)
		assert.Equal(t, path(0, 0, 1, 0, 2, 0), move.Path)
	})

	t.Run("Honors the feature minimum length", func(t *testing.T) {
		validator := NewPath(decode, 3)

		_, err := validator.Validate(matchstate.State{}, "x", entity.Move{Path: path(0, 0, 0, 1)})

		require.ErrorIs(t, err, apperror.ErrInvalidMoveShape)
	})

	t.Run("Surfaces content decoding failures", func(t *testing.T) {
		errBroken := errors.New("broken")
		validator := NewPath(func(json.RawMessage) (Grid, error) { return nil, errBroken }, 3)

		_, err := validator.Validate(matchstate.State{}, "x", entity.Move{Path: path(0, 0, 0, 1, 0, 2)})

		require.ErrorIs(t, err, errBroken)
	})
}

type optionCounts []int

func (that optionCounts) QuestionCount() int {
	return len(that)
}

func (that optionCounts) OptionCount(question int) int {
	return that[question]
}

func TestChoice_Validate(t *testing.T) {
	decode := func(json.RawMessage) (OptionSet, error) { return optionCounts{2, 4}, nil }

	match := entity.NewMatch(entity.MatchOptions{
		ID:            "m",
		ParticipantA:  "x",
		ParticipantB:  "y",
		TurnThreshold: 3,
		Now:           time.Now(),
	})
	match.Progress = []entity.ProgressEntry{{ParticipantID: "x", Key: QuestionKey(0)}}
	state := matchstate.New(match)

	t.Run("Accepts an in-range answer to a new question", func(t *testing.T) {
		move, err := NewChoice(decode).Validate(state, "x", entity.Move{Question: 1, Choice: 3})

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Question: 1, Choice: 3}, move)
	})

	t.Run("Rejects out of range indices", func(t *testing.T) {
		_, err := NewChoice(decode).Validate(state, "x", entity.Move{Question: 1, Choice: 4})
		require.ErrorIs(t, err, ErrChoiceOutOfRange)
		require.ErrorIs(t, err, apperror.ErrInvalidMoveShape)

		_, err = NewChoice(decode).Validate(state, "x", entity.Move{Question: 2})
		require.ErrorIs(t, err, ErrQuestionOutOfRange)
	})

	t.Run("Rejects a question this participant already answered", func(t *testing.T) {
		_, err := NewChoice(decode).Validate(state, "x", entity.Move{Question: 0, Choice: 1})

		require.ErrorIs(t, err, ErrAlreadyAnswered)
		require.ErrorIs(t, err, apperror.ErrInvalidMoveShape)
	})

	t.Run("The partner's answer does not block this participant", func(t *testing.T) {
		_, err := NewChoice(decode).Validate(state, "y", entity.Move{Question: 0, Choice: 1})

		require.NoError(t, err)
	})
}
