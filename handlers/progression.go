// handlers/progression.go
package handlers

import (
	"time"

	"cyberquest/database"
	"cyberquest/middleware"
	"cyberquest/models"
	"cyberquest/progression"
	"cyberquest/services"

	"github.com/gofiber/fiber/v2"
)

// GetProgression returns the caller's derived progression and streak
// state. Everything here is recomputed from the ledger on each call;
// nothing is read from a stored counter.
func GetProgression(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	attempts, err := services.UserAttempts(db, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load attempts"})
	}

	state := progression.Calculate(userID, attempts, services.GetCatalog(), services.GetRankTable())
	streak := progression.ComputeStreak(attempts, services.UserLocation(db, userID), time.Now())

	xpIntoLevel := state.TotalXP % progression.XPPerLevel

	return c.JSON(fiber.Map{
		"success":              true,
		"total_xp":             state.TotalXP,
		"level":                state.Level,
		"rank_name":            state.RankName,
		"xp_into_level":        xpIntoLevel,
		"xp_to_next_level":     progression.XPPerLevel - xpIntoLevel,
		"challenges_completed": state.ChallengesCompleted,
		"challenges_total":     state.ChallengesTotal,
		"completion_pct":       state.CompletionPct,
		"current_streak":       streak.CurrentStreak,
		"longest_streak":       streak.LongestStreak,
	})
}

// GetBadges returns the full badge table with the caller's earned state.
func GetBadges(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	// Re-evaluate first so anything newly qualified shows as earned.
	services.AwardNewBadges(db, userID)

	var rows []models.UserBadge
	if err := db.Where("user_id = ?", userID).Order("earned_at ASC").Find(&rows).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load badges"})
	}
	earnedAt := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		earnedAt[row.BadgeID] = row.EarnedAt
	}

	defs := services.GetBadgeDefs()
	badges := make([]fiber.Map, 0, len(defs))
	earnedCount := 0
	for _, def := range defs {
		entry := fiber.Map{
			"id":     def.ID,
			"name":   def.Name,
			"icon":   def.Icon,
			"rarity": def.Rarity,
			"earned": false,
		}
		if at, ok := earnedAt[def.ID]; ok {
			entry["earned"] = true
			entry["earned_at"] = at
			earnedCount++
		}
		badges = append(badges, entry)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"badges":  badges,
		"total":   len(defs),
		"earned":  earnedCount,
	})
}

// GetRanks returns the rank-title table for display.
func GetRanks(c *fiber.Ctx) error {
	tiers := services.GetRankTable().Tiers()
	ranks := make([]fiber.Map, 0, len(tiers))
	for _, tier := range tiers {
		ranks = append(ranks, fiber.Map{
			"min_level": tier.MinLevel,
			"name":      tier.Name,
		})
	}
	return c.JSON(fiber.Map{"success": true, "ranks": ranks})
}
