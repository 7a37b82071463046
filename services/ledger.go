// services/ledger.go - Attempt Ledger write path
package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"cyberquest/models"
	"cyberquest/progression"
)

// RetriesAllowed reports the re-attempt policy. Default is allow:
// retries create new ledger rows and only the best score counts
// toward XP.
func RetriesAllowed() bool {
	return os.Getenv("RETRY_POLICY") != "deny"
}

// PrereqsEnforced reports whether RecordStart checks prerequisite
// completion. On by default.
func PrereqsEnforced() bool {
	return os.Getenv("ENFORCE_PREREQS") != "false"
}

// RecordStart creates (or reuses) an in-progress ledger row for the
// user and challenge. The partial unique index on open rows serializes
// two concurrent starts for the same pair; the loser gets the row the
// winner created.
func RecordStart(db *gorm.DB, userID uint, challengeID string) (*models.Attempt, error) {
	cat := GetCatalog()
	challenge, ok := cat.Get(challengeID)
	if !ok {
		return nil, progression.ErrUnknownChallenge
	}

	if PrereqsEnforced() && len(challenge.Prerequisites) > 0 {
		var completed []string
		if err := db.Model(&models.Attempt{}).
			Where("user_id = ? AND status = ?", userID, models.AttemptStatusCompleted).
			Distinct("challenge_id").
			Pluck("challenge_id", &completed).Error; err != nil {
			return nil, fmt.Errorf("ledger: check prerequisites: %w", err)
		}
		done := make(map[string]bool, len(completed))
		for _, id := range completed {
			done[id] = true
		}
		for _, pre := range challenge.Prerequisites {
			if !done[pre] {
				return nil, progression.ErrPrerequisiteNotMet
			}
		}
	}

	if !RetriesAllowed() {
		var n int64
		if err := db.Model(&models.Attempt{}).
			Where("user_id = ? AND challenge_id = ? AND status = ?",
				userID, challengeID, models.AttemptStatusCompleted).
			Count(&n).Error; err != nil {
			return nil, fmt.Errorf("ledger: check completion: %w", err)
		}
		if n > 0 {
			return nil, progression.ErrAlreadyCompleted
		}
	}

	// Reuse an open attempt if one exists.
	var open models.Attempt
	err := db.Where("user_id = ? AND challenge_id = ? AND status = ?",
		userID, challengeID, models.AttemptStatusInProgress).
		First(&open).Error
	if err == nil {
		return &open, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("ledger: find open attempt: %w", err)
	}

	attempt := models.Attempt{
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.AttemptStatusInProgress,
		StartedAt:   time.Now().UTC(),
	}
	if err := db.Create(&attempt).Error; err != nil {
		// A concurrent start won the unique-index race; hand back its row.
		var raced models.Attempt
		if ferr := db.Where("user_id = ? AND challenge_id = ? AND status = ?",
			userID, challengeID, models.AttemptStatusInProgress).
			First(&raced).Error; ferr == nil {
			return &raced, nil
		}
		return nil, fmt.Errorf("ledger: create attempt: %w", err)
	}
	return &attempt, nil
}

// RecordCompletion flips the user's open attempt to completed. A repeat
// submission carrying the same idempotency key returns the original row
// instead of appending again, so the caller may blindly retry.
func RecordCompletion(db *gorm.DB, userID uint, challengeID string, score int, idempotencyKey string) (*models.Attempt, error) {
	if score < 0 || score > 100 {
		return nil, progression.ErrInvalidScore
	}
	cat := GetCatalog()
	challenge, ok := cat.Get(challengeID)
	if !ok {
		return nil, progression.ErrUnknownChallenge
	}

	if idempotencyKey != "" {
		var prior models.Attempt
		err := db.Where("user_id = ? AND challenge_id = ? AND idempotency_key = ? AND status = ?",
			userID, challengeID, idempotencyKey, models.AttemptStatusCompleted).
			First(&prior).Error
		if err == nil {
			return &prior, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ledger: idempotency lookup: %w", err)
		}
	}

	var attempt models.Attempt
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND challenge_id = ? AND status = ?",
			userID, challengeID, models.AttemptStatusInProgress).
			First(&attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A concurrent retry carrying the same key may have
				// completed the attempt after the lookup above; hand
				// back its row instead of ErrNotStarted.
				if idempotencyKey != "" {
					if ferr := tx.Where("user_id = ? AND challenge_id = ? AND idempotency_key = ? AND status = ?",
						userID, challengeID, idempotencyKey, models.AttemptStatusCompleted).
						First(&attempt).Error; ferr == nil {
						return nil
					}
				}
				return progression.ErrNotStarted
			}
			return fmt.Errorf("ledger: find open attempt: %w", err)
		}

		now := time.Now().UTC()
		attempt.Status = models.AttemptStatusCompleted
		attempt.Score = score
		attempt.CompletedAt = &now
		attempt.XPEarned = progression.ChallengeXP(challenge.Points, score)
		attempt.IdempotencyKey = idempotencyKey
		return tx.Save(&attempt).Error
	})
	if err != nil {
		return nil, err
	}

	AwardNewBadges(db, userID)
	return &attempt, nil
}

// UserAttempts loads a user's full attempt history, oldest first.
func UserAttempts(db *gorm.DB, userID uint) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := db.Where("user_id = ?", userID).
		Order("started_at ASC, id ASC").
		Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("ledger: load attempts: %w", err)
	}
	return attempts, nil
}
