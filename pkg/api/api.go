// Package api holds the JSON bodies exchanged between match clients and the peer.
package api

import (
	"encoding/json"
	"time"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
)

const (
	RewardAwarded        = "awarded"
	RewardAlreadyAwarded = "already_awarded"
)

type JoinRequest struct {
	PartnerID string `json:"partner_id"`
	Feature   string `json:"feature"`
}

type MoveResponse struct {
	Accepted   bool          `json:"accepted"`
	Correct    bool          `json:"correct"`
	ScoreDelta int           `json:"score_delta"`
	TurnEnded  bool          `json:"turn_ended"`
	Completed  bool          `json:"completed"`
	Match      *entity.Match `json:"match"`
}

type ResourceResponse struct {
	Kind      entity.ResourceKind `json:"kind"`
	Remaining int                 `json:"remaining"`
	Payload   json.RawMessage     `json:"payload,omitempty"`
	Match     *entity.Match       `json:"match"`
}

type RewardRequest struct {
	Amount int `json:"amount"`
}

type RewardResponse struct {
	Status string `json:"status"`
}

// FeatureInfo describes the rules of one feature to clients.
type FeatureInfo struct {
	Key           string `json:"key"`
	Shape         string `json:"shape"`
	TurnThreshold int    `json:"turn_threshold"`
	HintBudget    int    `json:"hint_budget"`
	RewardAmount  int    `json:"reward_amount"`
	MinPathLength int    `json:"min_path_length,omitempty"`
}

type TokenRequest struct {
	ParticipantID string `json:"participant_id"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error      apperror.Kind `json:"error"`
	Message    string        `json:"message"`
	RetryAfter *time.Time    `json:"retry_after,omitempty"`
}
