// Package client talks to the authoritative peer. Every failure it returns is already
// classified into the apperror taxonomy, raw transport errors never leak upward.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
	"github.com/rocketscienceinc/matchsync/internal/reward"
	"github.com/rocketscienceinc/matchsync/pkg/api"
)

const DefaultTimeout = 10 * time.Second

type MoveResult struct {
	Accepted   bool
	Correct    bool
	ScoreDelta int
	TurnEnded  bool
	Completed  bool
	State      matchstate.State
}

type ResourceResult struct {
	Kind      entity.ResourceKind
	Remaining int
	Payload   json.RawMessage
	State     matchstate.State
}

// MatchClient issues the four match operations on behalf of one participant.
type MatchClient interface {
	CreateOrJoin(ctx context.Context, request api.JoinRequest) (matchstate.State, error)
	SubmitMove(ctx context.Context, matchID string, move entity.Move) (MoveResult, error)
	ConsumeResource(ctx context.Context, matchID string, kind entity.ResourceKind) (ResourceResult, error)
	FetchState(ctx context.Context, matchID string) (matchstate.State, error)
}

// HTTP is the MatchClient and reward service of one participant, authenticated by a
// bearer token.
type HTTP struct {
	logger *slog.Logger

	baseURL string
	token   string
	client  *http.Client
}

func NewHTTP(logger *slog.Logger, baseURL, token string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTP{
		logger:  logger.With("component", "match-client"),
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (that *HTTP) CreateOrJoin(ctx context.Context, request api.JoinRequest) (matchstate.State, error) {
	var match entity.Match
	if err := that.do(ctx, http.MethodPost, "/matches", request, &match); err != nil {
		return matchstate.State{}, fmt.Errorf("failed to create or join match: %w", err)
	}

	return matchstate.New(&match), nil
}

func (that *HTTP) SubmitMove(ctx context.Context, matchID string, move entity.Move) (MoveResult, error) {
	var response api.MoveResponse
	if err := that.do(ctx, http.MethodPost, "/matches/"+url.PathEscape(matchID)+"/moves", move, &response); err != nil {
		return MoveResult{}, fmt.Errorf("failed to submit move: %w", err)
	}

	if response.Match == nil {
		return MoveResult{}, fmt.Errorf("%w: move response without match", apperror.ErrTransientNetwork)
	}

	return MoveResult{
		Accepted:   response.Accepted,
		Correct:    response.Correct,
		ScoreDelta: response.ScoreDelta,
		TurnEnded:  response.TurnEnded,
		Completed:  response.Completed,
		State:      matchstate.New(response.Match),
	}, nil
}

func (that *HTTP) ConsumeResource(ctx context.Context, matchID string, kind entity.ResourceKind) (ResourceResult, error) {
	var response api.ResourceResponse

	path := "/matches/" + url.PathEscape(matchID) + "/resources/" + url.PathEscape(string(kind))
	if err := that.do(ctx, http.MethodPost, path, nil, &response); err != nil {
		return ResourceResult{}, fmt.Errorf("failed to consume %s: %w", kind, err)
	}

	if response.Match == nil {
		return ResourceResult{}, fmt.Errorf("%w: resource response without match", apperror.ErrTransientNetwork)
	}

	return ResourceResult{
		Kind:      response.Kind,
		Remaining: response.Remaining,
		Payload:   response.Payload,
		State:     matchstate.New(response.Match),
	}, nil
}

func (that *HTTP) FetchState(ctx context.Context, matchID string) (matchstate.State, error) {
	var match entity.Match
	if err := that.do(ctx, http.MethodGet, "/matches/"+url.PathEscape(matchID), nil, &match); err != nil {
		return matchstate.State{}, fmt.Errorf("failed to fetch match: %w", err)
	}

	return matchstate.New(&match), nil
}

// AwardOnce asks the peer to credit the completion reward. The peer takes the
// participant from the bearer token.
func (that *HTTP) AwardOnce(ctx context.Context, participantID, matchID string, amount int) (reward.Status, error) {
	var response api.RewardResponse

	path := "/matches/" + url.PathEscape(matchID) + "/reward"
	if err := that.do(ctx, http.MethodPost, path, api.RewardRequest{Amount: amount}, &response); err != nil {
		return "", fmt.Errorf("failed to award %s: %w", participantID, err)
	}

	switch response.Status {
	case api.RewardAwarded:
		return reward.StatusAwarded, nil
	case api.RewardAlreadyAwarded:
		return reward.StatusAlreadyAwarded, nil
	default:
		return "", fmt.Errorf("unknown reward status: %q", response.Status)
	}
}

// IssueToken asks a development peer for a token of participantID and authenticates
// this client with it.
func (that *HTTP) IssueToken(ctx context.Context, participantID string) error {
	var response api.TokenResponse
	if err := that.do(ctx, http.MethodPost, "/tokens", api.TokenRequest{ParticipantID: participantID}, &response); err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	that.token = response.Token

	return nil
}

func (that *HTTP) do(ctx context.Context, method, path string, body, out any) error {
	log := that.logger.With("method", method, "path", path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	if that.token != "" {
		request.Header.Set("Authorization", "Bearer "+that.token)
	}

	response, err := that.client.Do(request)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		log.Debug("request failed", "error", err)
		return fmt.Errorf("%w: %w", apperror.ErrTransientNetwork, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", apperror.ErrTransientNetwork, err)
	}

	if response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices {
		if err = json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %w", apperror.ErrTransientNetwork, err)
		}

		return nil
	}

	classified := classify(response.StatusCode, payload)
	log.Debug("peer rejected request", "status", response.StatusCode, "error", classified)

	return classified
}

func classify(status int, payload []byte) error {
	var body api.ErrorResponse
	_ = json.Unmarshal(payload, &body)

	if sentinel := apperror.FromKind(body.Error); sentinel != nil {
		if errors.Is(sentinel, apperror.ErrCooldownActive) && body.RetryAfter != nil {
			return &apperror.CooldownError{RetryAfter: *body.RetryAfter}
		}

		if body.Message == "" {
			return sentinel
		}

		return fmt.Errorf("%w: %s", sentinel, body.Message)
	}

	switch {
	case status == http.StatusNotFound:
		return apperror.ErrMatchNotFound
	case status == http.StatusUnauthorized:
		return apperror.ErrUnauthorized
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", apperror.ErrTransientNetwork, status)
	default:
		return fmt.Errorf("unexpected status %d: %s", status, bytes.TrimSpace(payload))
	}
}
