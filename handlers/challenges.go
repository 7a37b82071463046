// handlers/challenges.go
package handlers

import (
	"errors"

	"cyberquest/database"
	"cyberquest/middleware"
	"cyberquest/models"
	"cyberquest/progression"
	"cyberquest/services"

	"github.com/gofiber/fiber/v2"
)

type CompleteChallengeRequest struct {
	Score          int    `json:"score"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// GetChallenges returns the catalog with the caller's per-challenge
// completion state folded in.
func GetChallenges(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	attempts, err := services.UserAttempts(db, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load attempts"})
	}

	cat := services.GetCatalog()
	state := progression.Calculate(userID, attempts, cat, services.GetRankTable())

	open := make(map[string]bool)
	for _, a := range attempts {
		if a.Status == models.AttemptStatusInProgress {
			open[a.ChallengeID] = true
		}
	}

	challenges := make([]fiber.Map, 0, cat.Size())
	for _, ch := range cat.Challenges() {
		status := "not_started"
		if _, done := state.BestScores[ch.ID]; done {
			status = "completed"
		} else if open[ch.ID] {
			status = "in_progress"
		}

		prereqsMet := true
		for _, pre := range ch.Prerequisites {
			if _, done := state.BestScores[pre]; !done {
				prereqsMet = false
				break
			}
		}

		entry := fiber.Map{
			"id":            ch.ID,
			"title":         ch.Title,
			"difficulty":    ch.Difficulty,
			"points":        ch.Points,
			"category":      ch.Category,
			"prerequisites": ch.Prerequisites,
			"status":        status,
			"prereqs_met":   prereqsMet,
		}
		if score, done := state.BestScores[ch.ID]; done {
			entry["best_score"] = score
		}
		challenges = append(challenges, entry)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"challenges": challenges,
		"completed":  state.ChallengesCompleted,
		"total":      state.ChallengesTotal,
	})
}

// StartChallenge opens (or resumes) an attempt.
func StartChallenge(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	challengeID := c.Params("id")
	attempt, err := services.RecordStart(database.GetDB(), userID, challengeID)
	if err != nil {
		return ledgerError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"attempt": attempt,
	})
}

// CompleteChallenge records a passing result for an open attempt.
func CompleteChallenge(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CompleteChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	challengeID := c.Params("id")
	db := database.GetDB()
	attempt, err := services.RecordCompletion(db, userID, challengeID, req.Score, req.IdempotencyKey)
	if err != nil {
		return ledgerError(c, err)
	}

	attempts, err := services.UserAttempts(db, userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load attempts"})
	}
	state := progression.Calculate(userID, attempts, services.GetCatalog(), services.GetRankTable())

	return c.JSON(fiber.Map{
		"success":   true,
		"attempt":   attempt,
		"xp_earned": attempt.XPEarned,
		"total_xp":  state.TotalXP,
		"level":     state.Level,
		"rank_name": state.RankName,
	})
}

// ledgerError maps the engine's validation taxonomy onto HTTP statuses.
func ledgerError(c *fiber.Ctx, err error) error {
	status := 500
	switch {
	case errors.Is(err, progression.ErrUnknownChallenge):
		status = 404
	case errors.Is(err, progression.ErrInvalidScore):
		status = 400
	case errors.Is(err, progression.ErrNotStarted),
		errors.Is(err, progression.ErrAlreadyCompleted),
		errors.Is(err, progression.ErrPrerequisiteNotMet):
		status = 409
	}
	if status == 500 {
		return c.Status(500).JSON(fiber.Map{"error": "Ledger write failed"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
