// catalog/badges.go - Badge rule table (tagged rules)
package catalog

import (
	"fmt"
)

// Badge rule kinds. Each kind names a pure predicate over a user's
// derived progression; the evaluator in the progression package does
// the actual checking.
type BadgeKind string

const (
	BadgeCompleteCount      BadgeKind = "complete_count"      // completed >= Threshold challenges
	BadgeCompleteCategory   BadgeKind = "complete_category"   // completed every challenge in Category
	BadgeCompleteDifficulty BadgeKind = "complete_difficulty" // completed every challenge of Difficulty
	BadgePerfectScore       BadgeKind = "perfect_score"       // score 100 on ChallengeID
	BadgeStreakDays         BadgeKind = "streak_days"         // current or longest streak >= Threshold
	BadgeReachLevel         BadgeKind = "reach_level"         // level >= Threshold
	BadgeTotalXP            BadgeKind = "total_xp"            // total XP >= Threshold
)

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityUncommon  BadgeRarity = "uncommon"
	RarityRare      BadgeRarity = "rare"
	RarityLegendary BadgeRarity = "legendary"
)

// BadgeDef is one entry of the badge rule table: display metadata plus
// a tagged criterion. Which parameter fields are meaningful depends on
// the kind.
type BadgeDef struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Icon   string      `json:"icon"`
	Rarity BadgeRarity `json:"rarity"`
	Kind   BadgeKind   `json:"kind"`

	Threshold   int        `json:"threshold,omitempty"`
	Category    string     `json:"category,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	ChallengeID string     `json:"challenge_id,omitempty"`
}

// ValidateBadges checks the rule table against the challenge catalog:
// every tag must be known and every referenced id/category/difficulty
// must exist.
func ValidateBadges(defs []BadgeDef, cat *Catalog) error {
	seen := make(map[string]bool, len(defs))
	categories := make(map[string]bool)
	for _, ch := range cat.Challenges() {
		categories[ch.Category] = true
	}

	for _, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("badges: badge with empty id")
		}
		if seen[def.ID] {
			return fmt.Errorf("badges: duplicate badge id %q", def.ID)
		}
		seen[def.ID] = true

		switch def.Kind {
		case BadgeCompleteCount, BadgeStreakDays, BadgeReachLevel, BadgeTotalXP:
			if def.Threshold <= 0 {
				return fmt.Errorf("badges: badge %q needs a positive threshold", def.ID)
			}
		case BadgeCompleteCategory:
			if !categories[def.Category] {
				return fmt.Errorf("badges: badge %q references unknown category %q", def.ID, def.Category)
			}
		case BadgeCompleteDifficulty:
			switch def.Difficulty {
			case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
			default:
				return fmt.Errorf("badges: badge %q references unknown difficulty %q", def.ID, def.Difficulty)
			}
		case BadgePerfectScore:
			if _, ok := cat.Get(def.ChallengeID); !ok {
				return fmt.Errorf("badges: badge %q references unknown challenge %q", def.ID, def.ChallengeID)
			}
		default:
			return fmt.Errorf("badges: badge %q has unknown kind %q", def.ID, def.Kind)
		}
	}
	return nil
}
