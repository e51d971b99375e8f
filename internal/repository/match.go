package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/entity"
)

const (
	matchPrefix  = "match:"
	pairPrefix   = "pair:"
	windowPrefix = "window:"
	windowsKey   = "windows"

	maxUpdateAttempts = 10
)

var (
	ErrUpdateConflict          = errors.New("too many concurrent updates")
	ErrReservationWithoutMatch = errors.New("pair is reserved by a match that is gone")
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match, ttl time.Duration) (*entity.Match, error)
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	GetByPair(ctx context.Context, feature, window, pairKey string) (*entity.Match, error)
	Update(ctx context.Context, id string, mutate func(match *entity.Match) error) (*entity.Match, error)
	DeleteWindowsBefore(ctx context.Context, window string) (int, error)
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

// Create stores match and then reserves the pair for it. When the pair is already
// reserved the reserving match is returned and match is discarded. A reservation is
// never taken over, and it always points at a stored match.
func (that *dbMatch) Create(ctx context.Context, match *entity.Match, ttl time.Duration) (*entity.Match, error) {
	pair := pairKey(match.Feature, match.Window, match.PairKey)

	if err := that.store(ctx, match, pair, ttl); err != nil {
		return nil, err
	}

	created, err := that.client.SetNX(ctx, pair, match.ID, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve pair: %w", err)
	}

	if created {
		return match, nil
	}

	if err = that.discard(ctx, match); err != nil {
		return nil, err
	}

	existing, err := that.GetByPair(ctx, match.Feature, match.Window, match.PairKey)
	if errors.Is(err, apperror.ErrMatchNotFound) {
		return nil, fmt.Errorf("%w: pair %s: %w", apperror.ErrTransientNetwork, match.PairKey, ErrReservationWithoutMatch)
	}

	if err != nil {
		return nil, err
	}

	return existing, nil
}

// store writes the match record and registers it with its window.
func (that *dbMatch) store(ctx context.Context, match *entity.Match, pair string, ttl time.Duration) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchPrefix+match.ID, matchJSON, ttl)
		pipe.SAdd(ctx, windowPrefix+match.Window, matchPrefix+match.ID, pair)
		pipe.SAdd(ctx, windowsKey, match.Window)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	return nil
}

// discard drops a match record that lost the pair reservation.
func (that *dbMatch) discard(ctx context.Context, match *entity.Match) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, matchPrefix+match.ID)
		pipe.SRem(ctx, windowPrefix+match.Window, matchPrefix+match.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to discard match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	response, err := that.client.Get(ctx, matchPrefix+id).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	return decodeMatch(response)
}

func (that *dbMatch) GetByPair(ctx context.Context, feature, window, participants string) (*entity.Match, error) {
	id, err := that.client.Get(ctx, pairKey(feature, window, participants)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by pair: %w", err)
	}

	return that.GetByID(ctx, id)
}

// Update applies mutate under optimistic locking and retries when another writer got
// there first. Nothing is written when mutate fails.
func (that *dbMatch) Update(ctx context.Context, id string, mutate func(match *entity.Match) error) (*entity.Match, error) {
	key := matchPrefix + id

	var updated *entity.Match

	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrMatchNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to get match: %w", err)
		}

		match, err := decodeMatch(response)
		if err != nil {
			return err
		}

		if err = mutate(match); err != nil {
			return err
		}

		matchJSON, err := json.Marshal(match)
		if err != nil {
			return fmt.Errorf("could not marshal match: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, key, matchJSON, redis.SetArgs{KeepTTL: true})

			return nil
		})
		if err != nil {
			return err
		}

		updated = match

		return nil
	}

	for range maxUpdateAttempts {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return updated, nil
	}

	return nil, fmt.Errorf("failed to update match %s: %w", id, ErrUpdateConflict)
}

// DeleteWindowsBefore drops every match and pair index of windows older than window.
func (that *dbMatch) DeleteWindowsBefore(ctx context.Context, window string) (int, error) {
	windows, err := that.client.SMembers(ctx, windowsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list windows: %w", err)
	}

	deleted := 0

	for _, old := range windows {
		if old >= window {
			continue
		}

		keys, err := that.client.SMembers(ctx, windowPrefix+old).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to list window %s: %w", old, err)
		}

		_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(keys) > 0 {
				pipe.Del(ctx, keys...)
			}
			pipe.Del(ctx, windowPrefix+old)
			pipe.SRem(ctx, windowsKey, old)

			return nil
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to delete window %s: %w", old, err)
		}

		deleted++
	}

	return deleted, nil
}

func decodeMatch(payload []byte) (*entity.Match, error) {
	var match entity.Match
	if err := json.Unmarshal(payload, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &match, nil
}

func pairKey(feature, window, participants string) string {
	return pairPrefix + feature + ":" + window + ":" + participants
}
