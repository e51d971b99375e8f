package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
)

const DefaultMinPathLength = 2

var (
	ErrPathTooShort   = errors.New("path is too short")
	ErrCellOutOfBound = errors.New("cell is out of the grid")
	ErrCellRepeated   = errors.New("cell is selected twice")
	ErrNotAdjacent    = errors.New("cells are not adjacent")
	ErrNotStraight    = errors.New("path changes direction")
)

// Grid is the read-only letter layout a path is traced on.
type Grid interface {
	Size() (rows, cols int)
	Letter(cell entity.Cell) string
}

// GridDecoder extracts a Grid from opaque match content.
type GridDecoder func(content json.RawMessage) (Grid, error)

// Trace checks the geometry of path on grid and returns the letters it spells.
// It does not know which words are placed on the grid.
func Trace(grid Grid, path []entity.Cell, minLength int) (string, error) {
	if minLength < 1 {
		minLength = DefaultMinPathLength
	}

	if len(path) < minLength {
		return "", fmt.Errorf("%w: %w: %d cells, need %d", apperror.ErrInvalidMoveShape, ErrPathTooShort, len(path), minLength)
	}

	rows, cols := grid.Size()
	seen := make(map[entity.Cell]struct{}, len(path))

	var direction entity.Cell
	var token strings.Builder

	for i, cell := range path {
		if cell.Row < 0 || cell.Row >= rows || cell.Col < 0 || cell.Col >= cols {
			return "", fmt.Errorf("%w: %w: (%d,%d)", apperror.ErrInvalidMoveShape, ErrCellOutOfBound, cell.Row, cell.Col)
		}

		if _, ok := seen[cell]; ok {
			return "", fmt.Errorf("%w: %w: (%d,%d)", apperror.ErrInvalidMoveShape, ErrCellRepeated, cell.Row, cell.Col)
		}
		seen[cell] = struct{}{}

		if i > 0 {
			step := entity.Cell{Row: cell.Row - path[i-1].Row, Col: cell.Col - path[i-1].Col}
			if !isAdjacentStep(step) {
				return "", fmt.Errorf("%w: %w: step %d", apperror.ErrInvalidMoveShape, ErrNotAdjacent, i)
			}

			if i == 1 {
				direction = step
			} else if step != direction {
				return "", fmt.Errorf("%w: %w: step %d", apperror.ErrInvalidMoveShape, ErrNotStraight, i)
			}
		}

		token.WriteString(grid.Letter(cell))
	}

	return Fold(token.String()), nil
}

// Fold normalizes a token for comparison against placed words.
func Fold(token string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(token))
}

func isAdjacentStep(step entity.Cell) bool {
	if step.Row == 0 && step.Col == 0 {
		return false
	}

	return abs(step.Row) <= 1 && abs(step.Col) <= 1
}

func abs(value int) int {
	if value < 0 {
		return -value
	}

	return value
}

// Path validates grid selections before they are submitted.
type Path struct {
	decode    GridDecoder
	minLength int
}

func NewPath(decode GridDecoder, minLength int) *Path {
	return &Path{
		decode:    decode,
		minLength: minLength,
	}
}

func (that *Path) Validate(state matchstate.State, _ string, move entity.Move) (entity.Move, error) {
	grid, err := that.decode(state.Content())
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to decode grid: %w", err)
	}

	token, err := Trace(grid, move.Path, that.minLength)
	if err != nil {
		return entity.Move{}, err
	}

	return entity.Move{
		Path:  append([]entity.Cell(nil), move.Path...),
		Token: token,
	}, nil
}

// Selection accumulates a drag gesture over the grid. Re-touching the previous cell is
// the backtrack gesture and removes the last one.
type Selection struct {
	cells []entity.Cell
}

func (that *Selection) Touch(cell entity.Cell) {
	count := len(that.cells)

	switch {
	case count > 0 && that.cells[count-1] == cell:
		return
	case count > 1 && that.cells[count-2] == cell:
		that.Backtrack()
	default:
		that.cells = append(that.cells, cell)
	}
}

func (that *Selection) Backtrack() {
	if len(that.cells) > 0 {
		that.cells = that.cells[:len(that.cells)-1]
	}
}

func (that *Selection) Reset() {
	that.cells = nil
}

func (that *Selection) Cells() []entity.Cell {
	return append([]entity.Cell(nil), that.cells...)
}

// Move turns the gesture into a candidate move.
func (that *Selection) Move() entity.Move {
	return entity.Move{Path: that.Cells()}
}
