// Package reward fires the completion reward of a match exactly once per participant and
// hands the final state over to the summary view.
package reward

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
)

type Status string

const (
	StatusAwarded        Status = "awarded"
	StatusAlreadyAwarded Status = "already_awarded"
)

var ErrNotCompleted = apperror.ErrNotCompleted

// Service credits a participant for a completed match. Repeated calls for the same
// participant and match report StatusAlreadyAwarded.
type Service interface {
	AwardOnce(ctx context.Context, participantID, matchID string, amount int) (Status, error)
}

// ClaimStore is the local "reward already claimed" marker.
type ClaimStore interface {
	Claim(matchID, participantID string) bool
	Release(matchID, participantID string)
}

type Summary struct {
	State  matchstate.State
	Status Status
	Err    error
}

type Presenter interface {
	ShowSummary(summary Summary)
}

type MemoryClaims struct {
	claims sync.Map
}

func NewMemoryClaims() *MemoryClaims {
	return &MemoryClaims{}
}

// Claim reports true only for the first caller of a match and participant pair.
func (that *MemoryClaims) Claim(matchID, participantID string) bool {
	_, loaded := that.claims.LoadOrStore(claimKey(matchID, participantID), struct{}{})

	return !loaded
}

func (that *MemoryClaims) Release(matchID, participantID string) {
	that.claims.Delete(claimKey(matchID, participantID))
}

type Handoff struct {
	logger *slog.Logger

	service   Service
	claims    ClaimStore
	presenter Presenter

	presented sync.Map
}

func NewHandoff(logger *slog.Logger, service Service, claims ClaimStore, presenter Presenter) *Handoff {
	return &Handoff{
		logger:    logger.With("component", "reward-handoff"),
		service:   service,
		claims:    claims,
		presenter: presenter,
	}
}

// Complete awards the completion reward for participantID. It returns false without
// calling the service when the reward was already claimed. A failed award releases
// the claim so a later call can try again.
func (that *Handoff) Complete(ctx context.Context, participantID string, state matchstate.State, amount int) (bool, error) {
	log := that.logger.With("method", "Complete", "match", state.ID(), "participant", participantID)

	if !state.IsComplete() {
		return false, ErrNotCompleted
	}

	if !that.claims.Claim(state.ID(), participantID) {
		log.Debug("reward already claimed")
		return false, nil
	}

	status, err := that.service.AwardOnce(ctx, participantID, state.ID(), amount)
	if err != nil {
		that.claims.Release(state.ID(), participantID)
		log.Error("failed to award reward", "error", err)

		that.present(participantID, Summary{State: state, Err: err})

		return true, fmt.Errorf("failed to award reward: %w", err)
	}

	log.Info("reward handed off", "status", status, "amount", amount)
	that.present(participantID, Summary{State: state, Status: status})

	return true, nil
}

func (that *Handoff) present(participantID string, summary Summary) {
	if that.presenter == nil {
		return
	}

	if _, loaded := that.presented.LoadOrStore(claimKey(summary.State.ID(), participantID), struct{}{}); loaded {
		return
	}

	that.presenter.ShowSummary(summary)
}

func claimKey(matchID, participantID string) string {
	return matchID + "/" + participantID
}
