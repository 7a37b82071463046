// progression/badges.go - Badge evaluation
package progression

import (
	"cyberquest/catalog"
)

// EvaluateBadges applies every rule in the badge table independently and
// returns the full earned set of badge ids. alreadyEarned is the
// persisted set; it is unioned into the result so earning is monotonic:
// a badge id, once present, is never removed even if the underlying
// state would no longer satisfy its criterion.
func EvaluateBadges(defs []catalog.BadgeDef, state ProgressionState, streak StreakState, cat *catalog.Catalog, alreadyEarned map[string]bool) map[string]bool {
	earned := make(map[string]bool, len(alreadyEarned))
	for id := range alreadyEarned {
		earned[id] = true
	}

	for _, def := range defs {
		if earned[def.ID] {
			continue
		}
		if ruleSatisfied(def, state, streak, cat) {
			earned[def.ID] = true
		}
	}
	return earned
}

func ruleSatisfied(def catalog.BadgeDef, state ProgressionState, streak StreakState, cat *catalog.Catalog) bool {
	switch def.Kind {
	case catalog.BadgeCompleteCount:
		return state.ChallengesCompleted >= def.Threshold
	case catalog.BadgeCompleteCategory:
		return groupComplete(state, cat, func(ch catalog.Challenge) bool {
			return ch.Category == def.Category
		})
	case catalog.BadgeCompleteDifficulty:
		return groupComplete(state, cat, func(ch catalog.Challenge) bool {
			return ch.Difficulty == def.Difficulty
		})
	case catalog.BadgePerfectScore:
		return state.BestScores[def.ChallengeID] == 100
	case catalog.BadgeStreakDays:
		return streak.CurrentStreak >= def.Threshold || streak.LongestStreak >= def.Threshold
	case catalog.BadgeReachLevel:
		return state.Level >= def.Threshold
	case catalog.BadgeTotalXP:
		return state.TotalXP >= def.Threshold
	}
	return false
}

// groupComplete reports whether every catalog challenge matching the
// filter has a completed best attempt. An empty group never satisfies
// a completion rule.
func groupComplete(state ProgressionState, cat *catalog.Catalog, match func(catalog.Challenge) bool) bool {
	found := false
	for _, ch := range cat.Challenges() {
		if !match(ch) {
			continue
		}
		found = true
		if _, done := state.BestScores[ch.ID]; !done {
			return false
		}
	}
	return found
}
