// services/badges.go - Badge award persistence
package services

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cyberquest/models"
	"cyberquest/progression"
)

// EarnedBadgeIDs loads the persisted earned set for a user.
func EarnedBadgeIDs(db *gorm.DB, userID uint) (map[string]bool, error) {
	var ids []string
	if err := db.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

// AwardNewBadges re-evaluates the badge rules for a user and persists
// any newly earned ids. Awards are insert-only; evaluation never
// removes a row, so a persisted badge survives rule or ledger changes.
// Failures here are logged, not returned: badge awards are derived
// state and the next evaluation will catch up.
func AwardNewBadges(db *gorm.DB, userID uint) []string {
	attempts, err := UserAttempts(db, userID)
	if err != nil {
		log.Printf("badges: load attempts for user %d: %v", userID, err)
		return nil
	}

	earned, err := EarnedBadgeIDs(db, userID)
	if err != nil {
		log.Printf("badges: load earned set for user %d: %v", userID, err)
		return nil
	}

	cat := GetCatalog()
	state := progression.Calculate(userID, attempts, cat, GetRankTable())
	streak := progression.ComputeStreak(attempts, UserLocation(db, userID), time.Now())

	after := progression.EvaluateBadges(GetBadgeDefs(), state, streak, cat, earned)

	var fresh []string
	now := time.Now().UTC()
	for id := range after {
		if earned[id] {
			continue
		}
		row := models.UserBadge{UserID: userID, BadgeID: id, EarnedAt: now}
		// A concurrent evaluation may have inserted the same award.
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			log.Printf("badges: persist %s for user %d: %v", id, userID, err)
			continue
		}
		fresh = append(fresh, id)
	}
	return fresh
}

// UserLocation resolves the user's reporting timezone, falling back to
// UTC on anything unparseable.
func UserLocation(db *gorm.DB, userID uint) *time.Location {
	var tz string
	db.Model(&models.User{}).Where("id = ?", userID).Pluck("timezone", &tz)
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
