// handlers/admin.go - Admin operations
package handlers

import (
	"cyberquest/database"
	"cyberquest/models"
	"cyberquest/services"

	"github.com/gofiber/fiber/v2"
)

// ReloadContent re-reads the catalog, rank and badge config tables and
// refreshes the leaderboard snapshot against them.
// POST /api/admin/reload
func ReloadContent(c *fiber.Ctx) error {
	if err := services.ReloadCatalog(); err != nil {
		return c.Status(422).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	services.GetSnapshotService().Refresh()
	return c.JSON(fiber.Map{
		"success":    true,
		"challenges": services.GetCatalog().Size(),
		"badges":     len(services.GetBadgeDefs()),
	})
}

// RefreshLeaderboard forces an immediate snapshot rebuild.
// POST /api/admin/leaderboard/refresh
func RefreshLeaderboard(c *fiber.Ctx) error {
	services.GetSnapshotService().Refresh()
	snap := services.GetSnapshotService().Current()
	return c.JSON(fiber.Map{
		"success":  true,
		"ranked":   len(snap.Entries),
		"taken_at": snap.TakenAt,
	})
}

// GetUserLedger returns a user's full attempt history for audit.
// GET /api/admin/users/:id/ledger
func GetUserLedger(c *fiber.Ctx) error {
	var user models.User
	db := database.GetDB()
	if err := db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	attempts, err := services.UserAttempts(db, user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load attempts"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"user_id":  user.ID,
		"username": user.Username,
		"attempts": attempts,
	})
}
