package apperror

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCooldownActive    = errors.New("match cooldown is active")
	ErrResourceExhausted = errors.New("resource budget is exhausted")
	ErrTransientNetwork  = errors.New("transient network failure")
	ErrMatchNotFound     = errors.New("match not found")
	ErrInvalidMoveShape  = errors.New("invalid move shape")

	ErrMatchCompleted  = errors.New("match is already completed")
	ErrDuplicateMove   = errors.New("move was already submitted")
	ErrNotParticipant  = errors.New("not a participant of this match")
	ErrUnknownFeature  = errors.New("unknown feature")
	ErrNoHintAvailable = errors.New("no hint available")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotCompleted    = errors.New("match is not completed")
)

// CooldownError carries the moment a new match becomes available for the pair.
type CooldownError struct {
	RetryAfter time.Time
}

func (that *CooldownError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrCooldownActive, that.RetryAfter.Format(time.RFC3339))
}

func (that *CooldownError) Unwrap() error {
	return ErrCooldownActive
}

// RetryAfter extracts the cooldown deadline from err, if any.
func RetryAfter(err error) (time.Time, bool) {
	var cooldown *CooldownError
	if errors.As(err, &cooldown) {
		return cooldown.RetryAfter, true
	}

	return time.Time{}, false
}
