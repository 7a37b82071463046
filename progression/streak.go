// progression/streak.go - Daily-activity streak derivation
package progression

import (
	"sort"
	"time"

	"cyberquest/models"
)

// StreakState is the derived daily-streak view. Recomputed from
// completion timestamps on every read; there is no write path.
type StreakState struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// ComputeStreak derives streaks from a user's completed attempts.
// Completions are bucketed into calendar days in loc; the trailing run
// only counts as "current" while its most recent day is today or
// yesterday relative to now.
func ComputeStreak(attempts []models.Attempt, loc *time.Location, now time.Time) StreakState {
	if loc == nil {
		loc = time.UTC
	}

	daySet := make(map[string]time.Time)
	for _, a := range attempts {
		if a.Status != models.AttemptStatusCompleted || a.CompletedAt == nil {
			continue
		}
		local := a.CompletedAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		daySet[day.Format("2006-01-02")] = day
	}
	if len(daySet) == 0 {
		return StreakState{}
	}

	days := make([]time.Time, 0, len(daySet))
	for _, d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Longest run anywhere in history. Consecutive-day checks use
	// AddDate rather than a 24h duration so DST transitions don't
	// split a run.
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// Trailing run, anchored at today or yesterday.
	nowLocal := now.In(loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	last := days[len(days)-1]

	current := 0
	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if !days[i].AddDate(0, 0, 1).Equal(days[i+1]) {
				break
			}
			current++
		}
	}

	return StreakState{CurrentStreak: current, LongestStreak: longest}
}
