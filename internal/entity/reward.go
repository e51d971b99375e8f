package entity

import "time"

// Reward is one credited completion reward. A participant holds at most one per match.
type Reward struct {
	ID            uint      `gorm:"primaryKey"`
	ParticipantID string    `gorm:"not null;uniqueIndex:idx_rewards_participant_match"`
	MatchID       string    `gorm:"not null;uniqueIndex:idx_rewards_participant_match"`
	Feature       string    `gorm:"not null"`
	Amount        int       `gorm:"not null"`
	CreatedAt     time.Time
}
