// Package validator holds the cheap local checks run on a candidate move before it
// costs a round-trip to the peer. A failure here is always apperror.ErrInvalidMoveShape
// and never consumes a turn.
package validator

import (
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
)

type MoveValidator interface {
	Validate(state matchstate.State, participantID string, move entity.Move) (entity.Move, error)
}
