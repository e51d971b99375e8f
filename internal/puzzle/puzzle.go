// Package puzzle judges moves against full feature content on the authoritative side.
// Clients only ever see the redacted content.
package puzzle

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/matchsync/internal/entity"
)

var ErrMalformedContent = errors.New("malformed content")

// Verdict is the authoritative decision on one accepted move.
type Verdict struct {
	Key           string
	Token         string
	Correct       bool
	Points        int
	PartnerPoints int
}

// Judge scores moves for one content shape.
type Judge interface {
	Judge(match *entity.Match, participantID string, move entity.Move) (Verdict, error)
	Remaining(match *entity.Match) (entity.RemainingFunc, error)
	Hint(match *entity.Match, participantID string, intn func(n int) int) (json.RawMessage, error)
	Redact(content json.RawMessage) (json.RawMessage, error)
}
