// Package matchstate holds the last-known-good snapshot of a match as fetched from the
// authoritative peer. A State is never mutated; every update produces a new one.
package matchstate

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/rocketscienceinc/matchsync/internal/entity"
)

type State struct {
	match *entity.Match
}

// New snapshots match. The caller may keep mutating its own copy afterwards.
func New(match *entity.Match) State {
	return State{match: match.Clone()}
}

// IsZero reports whether the state was never populated.
func (that State) IsZero() bool {
	return that.match == nil
}

// Match returns a deep copy of the underlying match.
func (that State) Match() *entity.Match {
	return that.match.Clone()
}

func (that State) ID() string {
	if that.match == nil {
		return ""
	}

	return that.match.ID
}

func (that State) Feature() string {
	if that.match == nil {
		return ""
	}

	return that.match.Feature
}

func (that State) Version() int64 {
	if that.match == nil {
		return 0
	}

	return that.match.Version
}

func (that State) CurrentTurn() string {
	if that.match == nil || !that.match.IsActive() {
		return ""
	}

	return that.match.CurrentTurn
}

func (that State) MovesSinceTurnStart() int {
	if that.match == nil {
		return 0
	}

	return that.match.MovesSinceTurnStart
}

// Content is the opaque feature payload, handed to validators untouched.
func (that State) Content() json.RawMessage {
	if that.match == nil {
		return nil
	}

	return bytes.Clone(that.match.Content)
}

func (that State) Progress() []entity.ProgressEntry {
	if that.match == nil {
		return nil
	}

	return that.match.Clone().Progress
}

func (that State) IsMember(participantID string) bool {
	return that.match != nil && that.match.IsMember(participantID)
}

func (that State) Partner(participantID string) string {
	if that.match == nil {
		return ""
	}

	return that.match.Partner(participantID)
}

func (that State) IsMyTurn(participantID string) bool {
	return that.match != nil &&
		that.match.IsActive() &&
		that.match.IsMember(participantID) &&
		that.match.CurrentTurn == participantID
}

func (that State) MyScore(participantID string) int {
	if that.match == nil {
		return 0
	}

	return that.match.Score(participantID)
}

func (that State) PartnerScore(participantID string) int {
	if that.match == nil {
		return 0
	}

	return that.match.Score(that.match.Partner(participantID))
}

func (that State) IsComplete() bool {
	return that.match != nil && that.match.IsCompleted()
}

func (that State) RemainingResourceBudget(participantID string, kind entity.ResourceKind) int {
	if that.match == nil {
		return 0
	}

	return that.match.RemainingBudget(participantID, kind)
}

// Answered reports whether participantID already has a progress entry under key.
func (that State) Answered(participantID, key string) bool {
	return that.match != nil && that.match.HasKey(key, participantID)
}

// Equal compares every field of both snapshots.
func (that State) Equal(other State) bool {
	if that.match == nil || other.match == nil {
		return that.match == other.match
	}

	left, right := that.match.Clone(), other.match.Clone()

	// raw JSON is compared byte-wise, time values by instant
	if !bytes.Equal(left.Content, right.Content) {
		return false
	}
	left.Content, right.Content = nil, nil

	if !sameInstant(left, right) {
		return false
	}
	normalizeTimes(left)
	normalizeTimes(right)

	return reflect.DeepEqual(left, right)
}

// NewerThan reports whether that carries a strictly later mutation of the same match.
func (that State) NewerThan(other State) bool {
	if that.match == nil {
		return false
	}

	if other.match == nil || other.match.ID != that.match.ID {
		return true
	}

	return that.match.Version > other.match.Version
}

func sameInstant(left, right *entity.Match) bool {
	if !left.CreatedAt.Equal(right.CreatedAt) || !left.UpdatedAt.Equal(right.UpdatedAt) {
		return false
	}

	if (left.CompletedAt == nil) != (right.CompletedAt == nil) {
		return false
	}

	if left.CompletedAt != nil && !left.CompletedAt.Equal(*right.CompletedAt) {
		return false
	}

	if len(left.Progress) != len(right.Progress) {
		return false
	}

	for i := range left.Progress {
		if !left.Progress[i].At.Equal(right.Progress[i].At) {
			return false
		}
	}

	return true
}

func normalizeTimes(match *entity.Match) {
	match.CreatedAt = match.CreatedAt.UTC()
	match.UpdatedAt = match.UpdatedAt.UTC()

	if match.CompletedAt != nil {
		completedAt := match.CompletedAt.UTC()
		match.CompletedAt = &completedAt
	}

	for i := range match.Progress {
		match.Progress[i].At = match.Progress[i].At.UTC()
	}
}
