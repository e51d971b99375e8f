package puzzle

import (
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/validator"
)

const wordKeyPrefix = "word:"

type PlacedWord struct {
	Word      string      `json:"word"`
	Start     entity.Cell `json:"start"`
	Direction entity.Cell `json:"direction"`
	Clue      string      `json:"clue,omitempty"`
}

// GridContent is the letter grid shared by word-grid and word-link. Words is stripped
// before the content leaves the peer.
type GridContent struct {
	Rows      []string     `json:"rows"`
	Words     []PlacedWord `json:"words,omitempty"`
	Clues     []string     `json:"clues,omitempty"`
	WordCount int          `json:"word_count"`

	letters [][]rune
}

func DecodeGridContent(content json.RawMessage) (*GridContent, error) {
	var grid GridContent
	if err := json.Unmarshal(content, &grid); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedContent, err)
	}

	if len(grid.Rows) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedContent)
	}

	width := utf8.RuneCountInString(grid.Rows[0])
	grid.letters = make([][]rune, len(grid.Rows))

	for i, row := range grid.Rows {
		grid.letters[i] = []rune(row)
		if len(grid.letters[i]) != width {
			return nil, fmt.Errorf("%w: row %d has %d letters, want %d", ErrMalformedContent, i, len(grid.letters[i]), width)
		}
	}

	return &grid, nil
}

// DecodeGrid adapts DecodeGridContent to validator.GridDecoder.
func DecodeGrid(content json.RawMessage) (validator.Grid, error) {
	return DecodeGridContent(content)
}

func (that *GridContent) Size() (int, int) {
	if len(that.letters) == 0 {
		return 0, 0
	}

	return len(that.letters), len(that.letters[0])
}

func (that *GridContent) Letter(cell entity.Cell) string {
	rows, cols := that.Size()
	if cell.Row < 0 || cell.Row >= rows || cell.Col < 0 || cell.Col >= cols {
		return ""
	}

	return string(that.letters[cell.Row][cell.Col])
}

// Cells lists the grid cells covered by word.
func (that PlacedWord) Cells() []entity.Cell {
	length := utf8.RuneCountInString(that.Word)
	cells := make([]entity.Cell, 0, length)

	for i := 0; i < length; i++ {
		cells = append(cells, entity.Cell{
			Row: that.Start.Row + i*that.Direction.Row,
			Col: that.Start.Col + i*that.Direction.Col,
		})
	}

	return cells
}

// WordKey is the progress key a found word is recorded under.
func WordKey(word string) string {
	return wordKeyPrefix + validator.Fold(word)
}

type GridJudge struct {
	minLength int
}

func NewGridJudge(minLength int) *GridJudge {
	return &GridJudge{minLength: minLength}
}

// Judge accepts any well-shaped path. A path that spells no unfound placed word is a
// legitimate miss and still consumes the move.
func (that *GridJudge) Judge(match *entity.Match, _ string, move entity.Move) (Verdict, error) {
	grid, err := DecodeGridContent(match.Content)
	if err != nil {
		return Verdict{}, err
	}

	token, err := validator.Trace(grid, move.Path, that.minLength)
	if err != nil {
		return Verdict{}, err
	}

	word, ok := grid.placedAt(move.Path)
	if !ok {
		return Verdict{Token: token}, nil
	}

	key := WordKey(word.Word)
	if match.HasKey(key, "") {
		return Verdict{}, fmt.Errorf("%w: %s", apperror.ErrDuplicateMove, token)
	}

	return Verdict{
		Key:     key,
		Token:   token,
		Correct: true,
		Points:  utf8.RuneCountInString(word.Word),
	}, nil
}

// Remaining counts unfound words. The board is shared, so both sides see the same number.
func (that *GridJudge) Remaining(match *entity.Match) (entity.RemainingFunc, error) {
	grid, err := DecodeGridContent(match.Content)
	if err != nil {
		return nil, err
	}

	return func(progress []entity.ProgressEntry, _ string) int {
		found := make(map[string]struct{}, len(progress))
		for _, entry := range progress {
			if entry.Correct && entry.Key != "" {
				found[entry.Key] = struct{}{}
			}
		}

		left := 0
		for _, word := range grid.Words {
			if _, ok := found[WordKey(word.Word)]; !ok {
				left++
			}
		}

		return left
	}, nil
}

type GridHint struct {
	Cell   entity.Cell `json:"cell"`
	Letter string      `json:"letter"`
}

// Hint reveals one cell of an unfound word without saying which word it belongs to.
func (that *GridJudge) Hint(match *entity.Match, _ string, intn func(n int) int) (json.RawMessage, error) {
	grid, err := DecodeGridContent(match.Content)
	if err != nil {
		return nil, err
	}

	unfound := make([]PlacedWord, 0, len(grid.Words))
	for _, word := range grid.Words {
		if !match.HasKey(WordKey(word.Word), "") {
			unfound = append(unfound, word)
		}
	}

	if len(unfound) == 0 {
		return nil, apperror.ErrNoHintAvailable
	}

	cells := unfound[intn(len(unfound))].Cells()
	cell := cells[intn(len(cells))]

	payload, err := json.Marshal(GridHint{Cell: cell, Letter: grid.Letter(cell)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hint: %w", err)
	}

	return payload, nil
}

func (that *GridJudge) Redact(content json.RawMessage) (json.RawMessage, error) {
	grid, err := DecodeGridContent(content)
	if err != nil {
		return nil, err
	}

	redacted := GridContent{
		Rows:      grid.Rows,
		Clues:     grid.Clues,
		WordCount: len(grid.Words),
	}

	for _, word := range grid.Words {
		if word.Clue != "" && !slices.Contains(redacted.Clues, word.Clue) {
			redacted.Clues = append(redacted.Clues, word.Clue)
		}
	}

	payload, err := json.Marshal(redacted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grid: %w", err)
	}

	return payload, nil
}

func (that *GridContent) placedAt(path []entity.Cell) (PlacedWord, bool) {
	for _, word := range that.Words {
		cells := word.Cells()
		if slices.Equal(cells, path) {
			return word, true
		}

		slices.Reverse(cells)
		if slices.Equal(cells, path) {
			return word, true
		}
	}

	return PlacedWord{}, false
}
