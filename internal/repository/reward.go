package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rocketscienceinc/matchsync/internal/entity"
)

type RewardRepository interface {
	Award(ctx context.Context, reward *entity.Reward) (bool, error)
}

type dbReward struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &dbReward{
		db: db,
	}
}

// Award inserts reward and reports false when the participant was already credited
// for the match.
func (that *dbReward) Award(ctx context.Context, reward *entity.Reward) (bool, error) {
	result := that.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(reward)
	if result.Error != nil {
		return false, fmt.Errorf("can't save reward: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}
