// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"cyberquest/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Attempt{},
		&models.UserBadge{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes AutoMigrate cannot express.
func createIndexes() {
	db := GetDB()

	// At most one open attempt per (user, challenge). This is what
	// serializes two concurrent starts of the same challenge: the
	// second insert loses and reuses the winner's row.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_attempts_open
		ON attempts(user_id, challenge_id)
		WHERE status = 'in_progress'`)

	// A completion idempotency key is unique per user+challenge, so a
	// blind retry resolves to the original row.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_attempts_idem
		ON attempts(user_id, challenge_id, idempotency_key)
		WHERE idempotency_key <> '' AND status = 'completed'`)

	db.Exec("CREATE INDEX IF NOT EXISTS idx_attempts_user_status ON attempts(user_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_attempts_completed_at ON attempts(completed_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
}
