package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/reward"
	"github.com/rocketscienceinc/matchsync/pkg/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTP {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewHTTP(logger, server.URL, "secret-token", time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func testMatch() *entity.Match {
	return entity.NewMatch(entity.MatchOptions{
		ID:            "match-1",
		Feature:       "word-grid",
		ParticipantA:  "x",
		ParticipantB:  "y",
		TurnThreshold: 3,
		Now:           time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	})
}

func TestHTTP_CreateOrJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends the join request with the bearer token", func(t *testing.T) {
		// Given: a peer that answers with a fresh match
		var got api.JoinRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/matches", r.URL.Path)
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			writeJSON(t, w, http.StatusOK, testMatch())
		})

		// When: the client joins
		state, err := client.CreateOrJoin(ctx, api.JoinRequest{PartnerID: "y", Feature: "word-grid"})

		// Then: the match is returned as state
		require.NoError(t, err)
		assert.Equal(t, "match-1", state.ID())
		assert.True(t, state.IsMyTurn("x"))
		assert.Equal(t, api.JoinRequest{PartnerID: "y", Feature: "word-grid"}, got)
	})

	t.Run("Cooldown carries the retry deadline", func(t *testing.T) {
		// Given: a peer refusing a second match in the window
		retryAfter := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusConflict, api.ErrorResponse{
				Error:      apperror.KindCooldownActive,
				Message:    "already played today",
				RetryAfter: &retryAfter,
			})
		})

		// When: the client joins
		_, err := client.CreateOrJoin(ctx, api.JoinRequest{PartnerID: "y", Feature: "word-grid"})

		// Then: the failure is a cooldown with the deadline attached
		require.ErrorIs(t, err, apperror.ErrCooldownActive)
		deadline, ok := apperror.RetryAfter(err)
		require.True(t, ok)
		assert.True(t, retryAfter.Equal(deadline))
	})
}

func TestHTTP_SubmitMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the move result", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/matches/match-1/moves", r.URL.Path)

			var move entity.Move
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&move))
			assert.Equal(t, "CAT", move.Token)

			match := testMatch()
			match.Version = 2
			writeJSON(t, w, http.StatusOK, api.MoveResponse{Accepted: true, Correct: true, ScoreDelta: 3, Match: match})
		})

		result, err := client.SubmitMove(ctx, "match-1", entity.Move{Token: "CAT"})

		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.True(t, result.Correct)
		assert.Equal(t, 3, result.ScoreDelta)
		assert.Equal(t, int64(2), result.State.Version())
	})

	t.Run("A response without a match is transient", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, api.MoveResponse{Accepted: true})
		})

		_, err := client.SubmitMove(ctx, "match-1", entity.Move{Token: "CAT"})

		require.ErrorIs(t, err, apperror.ErrTransientNetwork)
	})
}

func TestHTTP_Classification(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"Error kind wins over status", http.StatusConflict, `{"error":"not_your_turn"}`, apperror.ErrNotYourTurn},
		{"Exhausted resource", http.StatusConflict, `{"error":"resource_exhausted","message":"no hints left"}`, apperror.ErrResourceExhausted},
		{"Bare 404 is a missing match", http.StatusNotFound, ``, apperror.ErrMatchNotFound},
		{"Bare 401 is unauthorized", http.StatusUnauthorized, `nope`, apperror.ErrUnauthorized},
		{"Server errors are transient", http.StatusBadGateway, `<html>bad gateway</html>`, apperror.ErrTransientNetwork},
		{"Rate limiting is transient", http.StatusTooManyRequests, ``, apperror.ErrTransientNetwork},
		{"Undecodable success is transient", http.StatusOK, `{"id":`, apperror.ErrTransientNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FetchState(ctx, "match-1")

			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("Unknown client errors stay unclassified", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		_, err := client.FetchState(ctx, "match-1")

		require.Error(t, err)
		assert.Equal(t, apperror.KindUnknown, apperror.Classify(err))
	})
}

func TestHTTP_TransportFailures(t *testing.T) {
	t.Run("An unreachable peer is transient", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := NewHTTP(slog.New(slog.NewJSONHandler(io.Discard, nil)), server.URL, "token", time.Second)

		_, err := client.FetchState(context.Background(), "match-1")

		require.ErrorIs(t, err, apperror.ErrTransientNetwork)
	})

	t.Run("A cancelled call reports cancellation", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, testMatch())
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.FetchState(ctx, "match-1")

		require.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, apperror.ErrTransientNetwork)
	})
}

func TestHTTP_ConsumeResource(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches/match-1/resources/hint", r.URL.Path)

		writeJSON(t, w, http.StatusOK, api.ResourceResponse{
			Kind:      entity.ResourceHint,
			Remaining: 2,
			Payload:   json.RawMessage(`{"cell":{"row":0,"col":0},"letter":"C"}`),
			Match:     testMatch(),
		})
	})

	result, err := client.ConsumeResource(context.Background(), "match-1", entity.ResourceHint)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Remaining)
	assert.JSONEq(t, `{"cell":{"row":0,"col":0},"letter":"C"}`, string(result.Payload))
	assert.Equal(t, "match-1", result.State.ID())
}

func TestHTTP_AwardOnce(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   reward.Status
	}{
		{"First award", api.RewardAwarded, reward.StatusAwarded},
		{"Repeated award", api.RewardAlreadyAwarded, reward.StatusAlreadyAwarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/matches/match-1/reward", r.URL.Path)

				var request api.RewardRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
				assert.Equal(t, 50, request.Amount)

				writeJSON(t, w, http.StatusOK, api.RewardResponse{Status: tt.status})
			})

			status, err := client.AwardOnce(context.Background(), "x", "match-1", 50)

			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestHTTP_IssueToken(t *testing.T) {
	// Given: a development peer that issues tokens
	var authorized []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authorized = append(authorized, r.Header.Get("Authorization"))

		if r.URL.Path == "/tokens" {
			var request api.TokenRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, "bot", request.ParticipantID)
			writeJSON(t, w, http.StatusOK, api.TokenResponse{Token: "issued"})

			return
		}

		writeJSON(t, w, http.StatusOK, testMatch())
	})
	client.token = ""

	// When: the token is issued and used
	require.NoError(t, client.IssueToken(context.Background(), "bot"))

	_, err := client.FetchState(context.Background(), "match-1")
	require.NoError(t, err)

	// Then: only the follow-up call carries it
	assert.Equal(t, []string{"", "Bearer issued"}, authorized)
}
