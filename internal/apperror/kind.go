package apperror

import "errors"

// Kind is the classified failure the sync controller reacts to.
type Kind string

const (
	KindNone              Kind = ""
	KindNotYourTurn       Kind = "not_your_turn"
	KindCooldownActive    Kind = "cooldown_active"
	KindResourceExhausted Kind = "resource_exhausted"
	KindTransientNetwork  Kind = "transient_network"
	KindMatchNotFound     Kind = "match_not_found"
	KindInvalidMoveShape  Kind = "invalid_move_shape"
	KindMatchCompleted    Kind = "match_completed"
	KindDuplicateMove     Kind = "duplicate_move"
	KindNotParticipant    Kind = "not_participant"
	KindUnknownFeature    Kind = "unknown_feature"
	KindNoHintAvailable   Kind = "no_hint_available"
	KindUnauthorized      Kind = "unauthorized"
	KindNotCompleted      Kind = "not_completed"
	KindUnknown           Kind = "unknown"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrNotYourTurn, KindNotYourTurn},
	{ErrCooldownActive, KindCooldownActive},
	{ErrResourceExhausted, KindResourceExhausted},
	{ErrTransientNetwork, KindTransientNetwork},
	{ErrMatchNotFound, KindMatchNotFound},
	{ErrInvalidMoveShape, KindInvalidMoveShape},
	{ErrMatchCompleted, KindMatchCompleted},
	{ErrDuplicateMove, KindDuplicateMove},
	{ErrNotParticipant, KindNotParticipant},
	{ErrUnknownFeature, KindUnknownFeature},
	{ErrNoHintAvailable, KindNoHintAvailable},
	{ErrUnauthorized, KindUnauthorized},
	{ErrNotCompleted, KindNotCompleted},
}

// Classify maps an error chain onto its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	for _, entry := range kinds {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}

	return KindUnknown
}

// FromKind is the inverse of Classify for kinds received over the wire.
func FromKind(kind Kind) error {
	for _, entry := range kinds {
		if entry.kind == kind {
			return entry.err
		}
	}

	return nil
}
