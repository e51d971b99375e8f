package entity

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ResourceKind names a per-participant consumable, such as hints.
type ResourceKind string

const ResourceHint ResourceKind = "hint"

// RemainingFunc reports how many moves participantID can still make given progress.
type RemainingFunc func(progress []ProgressEntry, participantID string) int

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move is a candidate submitted by a participant. Grid games fill Path and Token,
// choice games fill Question and Choice.
type Move struct {
	Path     []Cell `json:"path,omitempty"`
	Token    string `json:"token,omitempty"`
	Question int    `json:"question"`
	Choice   int    `json:"choice"`
}

type ProgressEntry struct {
	ParticipantID string    `json:"participant_id"`
	Key           string    `json:"key,omitempty"`
	Token         string    `json:"token,omitempty"`
	Question      int       `json:"question"`
	Choice        int       `json:"choice"`
	Correct       bool      `json:"correct"`
	Points        int       `json:"points"`
	At            time.Time `json:"at"`
}

// TurnOutcome describes what an accepted move did to turn ownership.
type TurnOutcome struct {
	TurnEnded bool
	Completed bool
}

type Match struct {
	ID           string `json:"id"`
	PairKey      string `json:"pair_key"`
	Feature      string `json:"feature"`
	Window       string `json:"window"`
	ParticipantA string `json:"participant_a"`
	ParticipantB string `json:"participant_b"`

	Status              string `json:"status"`
	CurrentTurn         string `json:"current_turn,omitempty"`
	MovesSinceTurnStart int    `json:"moves_since_turn_start"`
	TurnThreshold       int    `json:"turn_threshold"`

	Content  json.RawMessage                 `json:"content,omitempty"`
	Progress []ProgressEntry                 `json:"progress,omitempty"`
	Scores   map[string]int                  `json:"scores,omitempty"`
	Budgets  map[string]map[ResourceKind]int `json:"budgets,omitempty"`

	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type MatchOptions struct {
	ID            string
	Feature       string
	Window        string
	ParticipantA  string
	ParticipantB  string
	Content       json.RawMessage
	TurnThreshold int
	Budgets       map[ResourceKind]int
	Now           time.Time
}

// NewMatch creates an active match where ParticipantA moves first.
func NewMatch(opts MatchOptions) *Match {
	budgets := make(map[string]map[ResourceKind]int, 2)
	for _, participant := range []string{opts.ParticipantA, opts.ParticipantB} {
		budgets[participant] = maps.Clone(opts.Budgets)
		if budgets[participant] == nil {
			budgets[participant] = map[ResourceKind]int{}
		}
	}

	threshold := opts.TurnThreshold
	if threshold < 1 {
		threshold = 1
	}

	return &Match{
		ID:            opts.ID,
		PairKey:       PairKey(opts.ParticipantA, opts.ParticipantB),
		Feature:       opts.Feature,
		Window:        opts.Window,
		ParticipantA:  opts.ParticipantA,
		ParticipantB:  opts.ParticipantB,
		Status:        StatusActive,
		CurrentTurn:   opts.ParticipantA,
		TurnThreshold: threshold,
		Content:       slices.Clone(opts.Content),
		Scores:        map[string]int{opts.ParticipantA: 0, opts.ParticipantB: 0},
		Budgets:       budgets,
		Version:       1,
		CreatedAt:     opts.Now,
		UpdatedAt:     opts.Now,
	}
}

func (that *Match) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Match) IsCompleted() bool {
	return that.Status == StatusCompleted
}

func (that *Match) IsMember(participantID string) bool {
	return participantID != "" && (participantID == that.ParticipantA || participantID == that.ParticipantB)
}

// Partner returns the other participant, or "" when participantID is not a member.
func (that *Match) Partner(participantID string) string {
	switch participantID {
	case that.ParticipantA:
		return that.ParticipantB
	case that.ParticipantB:
		return that.ParticipantA
	default:
		return ""
	}
}

func (that *Match) ConfirmActive() error {
	switch that.Status {
	case StatusActive:
		return nil
	case StatusCompleted:
		return apperror.ErrMatchCompleted
	default:
		return fmt.Errorf("unknown match status: %s", that.Status)
	}
}

func (that *Match) ConfirmTurn(participantID string) error {
	if !that.IsMember(participantID) {
		return apperror.ErrNotParticipant
	}

	if that.CurrentTurn != participantID {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// HasKey reports whether an entry with key was recorded, by participantID or by anyone
// when participantID is empty.
func (that *Match) HasKey(key, participantID string) bool {
	if key == "" {
		return false
	}

	for _, entry := range that.Progress {
		if entry.Key == key && (participantID == "" || entry.ParticipantID == participantID) {
			return true
		}
	}

	return false
}

func (that *Match) Score(participantID string) int {
	return that.Scores[participantID]
}

func (that *Match) RemainingBudget(participantID string, kind ResourceKind) int {
	return that.Budgets[participantID][kind]
}

// Record appends an accepted move and advances turn ownership. The match completes as
// soon as nobody has moves left, regardless of the turn threshold.
func (that *Match) Record(entry ProgressEntry, partnerPoints int, remaining RemainingFunc, now time.Time) (TurnOutcome, error) {
	if err := that.ConfirmActive(); err != nil {
		return TurnOutcome{}, err
	}

	if err := that.ConfirmTurn(entry.ParticipantID); err != nil {
		return TurnOutcome{}, err
	}

	mover := entry.ParticipantID
	partner := that.Partner(mover)

	if that.Scores == nil {
		that.Scores = map[string]int{}
	}

	that.Progress = append(that.Progress, entry)
	that.Scores[mover] += entry.Points
	that.Scores[partner] += partnerPoints
	that.MovesSinceTurnStart++
	that.touch(now)

	moverLeft := remaining(that.Progress, mover)
	partnerLeft := remaining(that.Progress, partner)

	if moverLeft <= 0 && partnerLeft <= 0 {
		that.complete(now)
		return TurnOutcome{TurnEnded: true, Completed: true}, nil
	}

	if that.MovesSinceTurnStart < that.TurnThreshold && moverLeft > 0 {
		return TurnOutcome{}, nil
	}

	// the partner has nothing left to play, the mover starts a fresh turn. This is the
	// only reset of the counter that does not come with a turn change.
	if partnerLeft <= 0 {
		that.MovesSinceTurnStart = 0
		return TurnOutcome{TurnEnded: true}, nil
	}

	that.switchTurn()

	return TurnOutcome{TurnEnded: true}, nil
}

// Consume spends one unit of kind for participantID and returns what is left.
func (that *Match) Consume(participantID string, kind ResourceKind, now time.Time) (int, error) {
	if err := that.ConfirmActive(); err != nil {
		return 0, err
	}

	if err := that.ConfirmTurn(participantID); err != nil {
		return 0, err
	}

	left := that.Budgets[participantID][kind]
	if left <= 0 {
		return 0, apperror.ErrResourceExhausted
	}

	that.Budgets[participantID][kind] = left - 1
	that.touch(now)

	return left - 1, nil
}

// Clone returns a deep copy.
func (that *Match) Clone() *Match {
	if that == nil {
		return nil
	}

	clone := *that
	clone.Content = slices.Clone(that.Content)
	clone.Progress = slices.Clone(that.Progress)
	clone.Scores = maps.Clone(that.Scores)

	if that.Budgets != nil {
		clone.Budgets = make(map[string]map[ResourceKind]int, len(that.Budgets))
		for participant, budget := range that.Budgets {
			clone.Budgets[participant] = maps.Clone(budget)
		}
	}

	if that.CompletedAt != nil {
		completedAt := *that.CompletedAt
		clone.CompletedAt = &completedAt
	}

	return &clone
}

func (that *Match) switchTurn() {
	that.CurrentTurn = that.Partner(that.CurrentTurn)
	that.MovesSinceTurnStart = 0
}

func (that *Match) complete(now time.Time) {
	that.Status = StatusCompleted
	that.CurrentTurn = ""
	that.MovesSinceTurnStart = 0
	that.CompletedAt = &now
}

func (that *Match) touch(now time.Time) {
	that.Version++
	that.UpdatedAt = now
}
