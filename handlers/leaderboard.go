// handlers/leaderboard.go
package handlers

import (
	"strconv"

	"cyberquest/middleware"
	"cyberquest/progression"
	"cyberquest/services"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns a page of the ranked leaderboard.
// GET /api/leaderboard?limit=25&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	limit := clampInt(c.QueryInt("limit", 25), 1, 100)
	offset := maxInt(c.QueryInt("offset", 0), 0)

	snap := services.GetSnapshotService().Current()
	if snap == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Leaderboard not ready"})
	}

	entries := snap.Entries
	total := len(entries)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"entries":  entries[offset:end],
		"total":    total,
		"limit":    limit,
		"offset":   offset,
		"taken_at": snap.TakenAt,
	})
}

// GetMyRank returns the caller's rank, or rank 0 when unranked.
// GET /api/leaderboard/me
func GetMyRank(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	snap := services.GetSnapshotService().Current()
	if snap == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Leaderboard not ready"})
	}

	rank := progression.RankOf(snap.Entries, userID)
	resp := fiber.Map{
		"success":  true,
		"user_id":  userID,
		"rank":     rank,
		"ranked":   rank > 0,
		"total":    len(snap.Entries),
		"taken_at": snap.TakenAt,
	}
	for _, e := range snap.Entries {
		if e.UserID == userID {
			resp["entry"] = e
			break
		}
	}
	return c.JSON(resp)
}

// GetLeaderboardAroundUser returns the window around a specific user.
// GET /api/leaderboard/around/:id?context=5
func GetLeaderboardAroundUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}
	contextN := clampInt(c.QueryInt("context", 5), 1, 20)

	snap := services.GetSnapshotService().Current()
	if snap == nil {
		return c.Status(503).JSON(fiber.Map{"error": "Leaderboard not ready"})
	}

	window := progression.Around(snap.Entries, uint(id), contextN)
	if window == nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not ranked"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"entries":     window,
		"target_user": uint(id),
		"context":     contextN,
		"taken_at":    snap.TakenAt,
	})
}

// helpers
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
