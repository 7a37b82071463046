// services/catalog.go - Catalog configuration loading and reload
package services

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"cyberquest/catalog"
)

// contentTables bundles the three config tables that load and reload
// together: a badge table is only valid against the catalog it was
// checked with.
type contentTables struct {
	Catalog *catalog.Catalog
	Ranks   *catalog.RankTable
	Badges  []catalog.BadgeDef
}

var (
	contentMu sync.RWMutex
	content   *contentTables
)

// InitCatalog loads the content tables at process start. Missing config
// files fall back to the compiled defaults; an invalid file is fatal
// because serving with a broken catalog is worse than not starting.
func InitCatalog() {
	tables, err := loadContentTables()
	if err != nil {
		log.Fatalf("❌ Failed to load catalog configuration: %v", err)
	}
	contentMu.Lock()
	content = tables
	contentMu.Unlock()
	log.Printf("✅ Catalog loaded: %d challenges, %d rank tiers, %d badges",
		tables.Catalog.Size(), len(tables.Ranks.Tiers()), len(tables.Badges))
}

// ReloadCatalog re-reads the config tables. A failed reload keeps the
// previous tables and returns the error.
func ReloadCatalog() error {
	tables, err := loadContentTables()
	if err != nil {
		return err
	}
	contentMu.Lock()
	content = tables
	contentMu.Unlock()
	log.Printf("🔄 Catalog reloaded: %d challenges, %d badges",
		tables.Catalog.Size(), len(tables.Badges))
	return nil
}

// WatchCatalogReload triggers ReloadCatalog on SIGHUP.
func WatchCatalogReload() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)
	go func() {
		for range ch {
			if err := ReloadCatalog(); err != nil {
				log.Printf("⚠️ Catalog reload failed, keeping previous tables: %v", err)
			}
		}
	}()
}

// GetCatalog returns the current challenge catalog.
func GetCatalog() *catalog.Catalog {
	contentMu.RLock()
	defer contentMu.RUnlock()
	return content.Catalog
}

// GetRankTable returns the current rank-title table.
func GetRankTable() *catalog.RankTable {
	contentMu.RLock()
	defer contentMu.RUnlock()
	return content.Ranks
}

// GetBadgeDefs returns the current badge rule table.
func GetBadgeDefs() []catalog.BadgeDef {
	contentMu.RLock()
	defer contentMu.RUnlock()
	return content.Badges
}

func loadContentTables() (*contentTables, error) {
	dir := os.Getenv("CATALOG_DIR")
	if dir == "" {
		dir = "./config"
	}

	var (
		cat *catalog.Catalog
		err error
	)
	challengesPath := filepath.Join(dir, "challenges.json")
	if fileExists(challengesPath) {
		cat, err = catalog.LoadChallenges(challengesPath)
	} else {
		log.Printf("No %s, using built-in challenge catalog", challengesPath)
		cat, err = catalog.NewCatalog(catalog.DefaultChallenges())
	}
	if err != nil {
		return nil, err
	}

	var ranks *catalog.RankTable
	ranksPath := filepath.Join(dir, "ranks.json")
	if fileExists(ranksPath) {
		ranks, err = catalog.LoadRanks(ranksPath)
	} else {
		ranks, err = catalog.NewRankTable(catalog.DefaultRanks())
	}
	if err != nil {
		return nil, err
	}

	var badges []catalog.BadgeDef
	badgesPath := filepath.Join(dir, "badges.json")
	if fileExists(badgesPath) {
		badges, err = catalog.LoadBadges(badgesPath, cat)
	} else {
		badges = catalog.DefaultBadges()
		err = catalog.ValidateBadges(badges, cat)
	}
	if err != nil {
		return nil, err
	}

	return &contentTables{Catalog: cat, Ranks: ranks, Badges: badges}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
