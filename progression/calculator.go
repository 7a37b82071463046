// progression/calculator.go - XP, level and rank derivation
package progression

import (
	"cyberquest/catalog"
	"cyberquest/models"
)

// XPPerLevel is the flat progression step: every 500 XP is one level.
// Flat rather than exponential so rank titles stay meaningful at low XP.
const XPPerLevel = 500

// ProgressionState is the derived per-user view. It is never stored;
// identical ledger input always produces identical output.
type ProgressionState struct {
	UserID              uint    `json:"user_id"`
	TotalXP             int     `json:"total_xp"`
	Level               int     `json:"level"`
	RankName            string  `json:"rank_name"`
	ChallengesCompleted int     `json:"challenges_completed"`
	ChallengesTotal     int     `json:"challenges_total"`
	CompletionPct       float64 `json:"completion_pct"`

	// BestScores maps challenge id to the best completed score.
	// Retries only help, never hurt.
	BestScores map[string]int `json:"best_scores,omitempty"`
}

// LevelForXP applies the flat level curve: level 1 starts at 0 XP.
func LevelForXP(totalXP int) int {
	return totalXP/XPPerLevel + 1
}

// ChallengeXP is the XP contribution of one completed challenge:
// points scaled by the best score, rounded down.
func ChallengeXP(points, bestScore int) int {
	return points * bestScore / 100
}

// Calculate derives a user's ProgressionState from their attempt
// history. Attempts against challenges missing from the catalog (e.g.
// retired content) contribute nothing.
func Calculate(userID uint, attempts []models.Attempt, cat *catalog.Catalog, ranks *catalog.RankTable) ProgressionState {
	best := make(map[string]int)
	for _, a := range attempts {
		if a.Status != models.AttemptStatusCompleted {
			continue
		}
		if _, ok := cat.Get(a.ChallengeID); !ok {
			continue
		}
		if prev, ok := best[a.ChallengeID]; !ok || a.Score > prev {
			best[a.ChallengeID] = a.Score
		}
	}

	totalXP := 0
	for id, score := range best {
		ch, _ := cat.Get(id)
		totalXP += ChallengeXP(ch.Points, score)
	}

	level := LevelForXP(totalXP)
	state := ProgressionState{
		UserID:              userID,
		TotalXP:             totalXP,
		Level:               level,
		RankName:            ranks.NameFor(level),
		ChallengesCompleted: len(best),
		ChallengesTotal:     cat.Size(),
		BestScores:          best,
	}
	if state.ChallengesTotal > 0 {
		state.CompletionPct = float64(state.ChallengesCompleted) / float64(state.ChallengesTotal) * 100
	}
	return state
}
