// models/attempt.go - Challenge Attempt Ledger
package models

import (
	"time"
)

// Attempt status constants
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusCompleted  AttemptStatus = "completed"
)

// Attempt is one row of the append-only challenge-attempt ledger.
// Rows are inserted and, on completion, have their status flipped once;
// a retry of a completed challenge inserts a new row rather than
// rewriting the old one, so the full attempt history is preserved.
type Attempt struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	UserID      uint          `json:"user_id" gorm:"not null;index"`
	User        *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ChallengeID string        `json:"challenge_id" gorm:"not null;size:64;index"`
	Status      AttemptStatus `json:"status" gorm:"not null;default:'in_progress';index"`
	Score       int           `json:"score" gorm:"default:0"` // 0-100, meaningful once completed
	XPEarned    int           `json:"xp_earned" gorm:"default:0"`

	// Client-supplied key that makes a blind completion retry safe:
	// a second submission with the same key returns the original row.
	IdempotencyKey string `json:"idempotency_key,omitempty" gorm:"size:64;index"`

	StartedAt   time.Time  `json:"started_at" gorm:"not null"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Attempt) TableName() string {
	return "attempts"
}
