// catalog/load.go - JSON loading with compiled defaults
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

type challengesFile struct {
	Version    int         `json:"version"`
	Challenges []Challenge `json:"challenges"`
}

type ranksFile struct {
	Version int        `json:"version"`
	Ranks   []RankTier `json:"ranks"`
}

type badgesFile struct {
	Version int        `json:"version"`
	Badges  []BadgeDef `json:"badges"`
}

// LoadChallenges reads and validates a challenge catalog JSON file.
func LoadChallenges(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var f challengesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	return NewCatalog(f.Challenges)
}

// LoadRanks reads and validates a rank table JSON file.
func LoadRanks(path string) (*RankTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ranks: read %s: %w", path, err)
	}
	var f ranksFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ranks: parse %s: %w", path, err)
	}
	return NewRankTable(f.Ranks)
}

// LoadBadges reads and validates a badge rule table JSON file against
// an already-loaded catalog.
func LoadBadges(path string, cat *Catalog) ([]BadgeDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("badges: read %s: %w", path, err)
	}
	var f badgesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("badges: parse %s: %w", path, err)
	}
	if err := ValidateBadges(f.Badges, cat); err != nil {
		return nil, err
	}
	return f.Badges, nil
}

// DefaultChallenges is the built-in catalog used when no config file is
// present. Content teams normally override this via config/challenges.json.
func DefaultChallenges() []Challenge {
	return []Challenge{
		{ID: "intro-terminal", Title: "Terminal Basics", Difficulty: DifficultyBeginner, Points: 50, Category: "fundamentals"},
		{ID: "intro-networks", Title: "How Packets Travel", Difficulty: DifficultyBeginner, Points: 50, Category: "network"},
		{ID: "password-hygiene", Title: "Crack the Weak Password", Difficulty: DifficultyBeginner, Points: 75, Category: "fundamentals", Prerequisites: []string{"intro-terminal"}},
		{ID: "caesar-cipher", Title: "Caesar's Secret", Difficulty: DifficultyBeginner, Points: 75, Category: "crypto"},
		{ID: "http-headers", Title: "Reading HTTP Headers", Difficulty: DifficultyBeginner, Points: 75, Category: "web", Prerequisites: []string{"intro-networks"}},
		{ID: "hidden-in-plain-sight", Title: "Hidden in Plain Sight", Difficulty: DifficultyIntermediate, Points: 100, Category: "forensics", Prerequisites: []string{"intro-terminal"}},
		{ID: "sql-injection-101", Title: "The Login Bypass", Difficulty: DifficultyIntermediate, Points: 125, Category: "web", Prerequisites: []string{"http-headers"}},
		{ID: "vigenere-vault", Title: "The Vigenere Vault", Difficulty: DifficultyIntermediate, Points: 125, Category: "crypto", Prerequisites: []string{"caesar-cipher"}},
		{ID: "packet-detective", Title: "Packet Detective", Difficulty: DifficultyIntermediate, Points: 150, Category: "network", Prerequisites: []string{"intro-networks"}},
		{ID: "metadata-trail", Title: "The Metadata Trail", Difficulty: DifficultyIntermediate, Points: 150, Category: "forensics", Prerequisites: []string{"hidden-in-plain-sight"}},
		{ID: "xss-playground", Title: "Script Smuggler", Difficulty: DifficultyAdvanced, Points: 200, Category: "web", Prerequisites: []string{"sql-injection-101"}},
		{ID: "rsa-toybox", Title: "RSA Toybox", Difficulty: DifficultyAdvanced, Points: 250, Category: "crypto", Prerequisites: []string{"vigenere-vault"}},
		{ID: "memory-dump", Title: "Cold Memory", Difficulty: DifficultyAdvanced, Points: 250, Category: "forensics", Prerequisites: []string{"metadata-trail", "packet-detective"}},
		{ID: "capture-the-flag", Title: "Capture the Flag", Difficulty: DifficultyAdvanced, Points: 300, Category: "capstone", Prerequisites: []string{"xss-playground", "rsa-toybox", "memory-dump"}},
	}
}

// DefaultRanks is the built-in rank-title table.
func DefaultRanks() []RankTier {
	return []RankTier{
		{MinLevel: 1, Name: "Script Kiddie"},
		{MinLevel: 3, Name: "Code Cadet"},
		{MinLevel: 5, Name: "Packet Wrangler"},
		{MinLevel: 8, Name: "White Hat"},
		{MinLevel: 12, Name: "Exploit Artisan"},
		{MinLevel: 16, Name: "Cipher Sage"},
		{MinLevel: 21, Name: "Ghost in the Wires"},
	}
}

// DefaultBadges is the built-in badge rule table.
func DefaultBadges() []BadgeDef {
	return []BadgeDef{
		{ID: "first-blood", Name: "First Blood", Icon: "🩸", Rarity: RarityCommon, Kind: BadgeCompleteCount, Threshold: 1},
		{ID: "five-down", Name: "High Five", Icon: "✋", Rarity: RarityCommon, Kind: BadgeCompleteCount, Threshold: 5},
		{ID: "ten-down", Name: "Double Digits", Icon: "🔟", Rarity: RarityUncommon, Kind: BadgeCompleteCount, Threshold: 10},
		{ID: "beginner-sweep", Name: "Training Wheels Off", Icon: "🚲", Rarity: RarityUncommon, Kind: BadgeCompleteDifficulty, Difficulty: DifficultyBeginner},
		{ID: "crypto-complete", Name: "Cryptographer", Icon: "🔐", Rarity: RarityRare, Kind: BadgeCompleteCategory, Category: "crypto"},
		{ID: "web-complete", Name: "Web Slinger", Icon: "🕸️", Rarity: RarityRare, Kind: BadgeCompleteCategory, Category: "web"},
		{ID: "flawless-flag", Name: "Flawless Victory", Icon: "🏁", Rarity: RarityLegendary, Kind: BadgePerfectScore, ChallengeID: "capture-the-flag"},
		{ID: "streak-3", Name: "Warming Up", Icon: "🔥", Rarity: RarityCommon, Kind: BadgeStreakDays, Threshold: 3},
		{ID: "streak-7", Name: "Week Warrior", Icon: "📅", Rarity: RarityUncommon, Kind: BadgeStreakDays, Threshold: 7},
		{ID: "streak-30", Name: "Unbroken", Icon: "⛓️", Rarity: RarityLegendary, Kind: BadgeStreakDays, Threshold: 30},
		{ID: "level-5", Name: "Climbing", Icon: "🧗", Rarity: RarityUncommon, Kind: BadgeReachLevel, Threshold: 5},
		{ID: "xp-1000", Name: "Grinder", Icon: "⚙️", Rarity: RarityRare, Kind: BadgeTotalXP, Threshold: 1000},
	}
}
