package turnsync

import (
	"encoding/json"
	"maps"
	"time"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
)

type Phase string

const (
	PhaseLoading     Phase = "loading"
	PhaseMyTurn      Phase = "my_turn"
	PhasePartnerTurn Phase = "partner_turn"
	PhaseCompleted   Phase = "completed"
	PhaseErrored     Phase = "errored"
)

// View is what the UI layer renders. It is a copy, safe to keep.
type View struct {
	Phase      Phase
	State      matchstate.State
	ErrorKind  apperror.Kind
	Err        error
	RetryAfter time.Time

	// Pending is the move currently in flight, shown optimistically until the peer answers.
	Pending *entity.Move

	Exhausted map[entity.ResourceKind]bool
	LastHint  json.RawMessage

	RewardClaimed bool
	RewardErr     error
}

// CanUse reports whether the resource action should be offered.
func (that View) CanUse(participantID string, kind entity.ResourceKind) bool {
	return that.Phase == PhaseMyTurn &&
		that.Pending == nil &&
		!that.Exhausted[kind] &&
		that.State.RemainingResourceBudget(participantID, kind) > 0
}

func (that View) clone() View {
	clone := that
	clone.Exhausted = maps.Clone(that.Exhausted)

	if that.Pending != nil {
		pending := *that.Pending
		pending.Path = append([]entity.Cell(nil), that.Pending.Path...)
		clone.Pending = &pending
	}

	if that.LastHint != nil {
		clone.LastHint = append(json.RawMessage(nil), that.LastHint...)
	}

	return clone
}
