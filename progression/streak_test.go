package progression

import (
	"testing"
	"time"

	"cyberquest/models"
)

func completionOn(day time.Time) models.Attempt {
	at := day.Add(15 * time.Hour) // mid-afternoon
	return models.Attempt{
		UserID:      1,
		ChallengeID: "alpha",
		Status:      models.AttemptStatusCompleted,
		Score:       80,
		StartedAt:   at.Add(-time.Hour),
		CompletedAt: &at,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeStreak_ZeroCompletions(t *testing.T) {
	got := ComputeStreak(nil, time.UTC, time.Now())
	if got.CurrentStreak != 0 || got.LongestStreak != 0 {
		t.Errorf("ComputeStreak(nil) = %+v, want zeros", got)
	}

	// In-progress attempts don't count as activity.
	open := models.Attempt{Status: models.AttemptStatusInProgress, StartedAt: time.Now()}
	got = ComputeStreak([]models.Attempt{open}, time.UTC, time.Now())
	if got.CurrentStreak != 0 || got.LongestStreak != 0 {
		t.Errorf("ComputeStreak(open only) = %+v, want zeros", got)
	}
}

func TestComputeStreak_BrokenRunKeepsLongest(t *testing.T) {
	// Completions on days 1,2,3; nothing after; observed on day 5.
	attempts := []models.Attempt{
		completionOn(day(2026, 3, 1)),
		completionOn(day(2026, 3, 2)),
		completionOn(day(2026, 3, 3)),
	}
	now := day(2026, 3, 5).Add(10 * time.Hour)

	got := ComputeStreak(attempts, time.UTC, now)
	if got.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 (two idle days)", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", got.LongestStreak)
	}
}

func TestComputeStreak_AnchoredToday(t *testing.T) {
	attempts := []models.Attempt{
		completionOn(day(2026, 3, 8)),
		completionOn(day(2026, 3, 9)),
		completionOn(day(2026, 3, 10)),
	}
	now := day(2026, 3, 10).Add(20 * time.Hour)

	got := ComputeStreak(attempts, time.UTC, now)
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", got.LongestStreak)
	}
}

func TestComputeStreak_AnchoredYesterday(t *testing.T) {
	// Last completion yesterday: streak still alive.
	attempts := []models.Attempt{
		completionOn(day(2026, 3, 9)),
		completionOn(day(2026, 3, 10)),
	}
	now := day(2026, 3, 11).Add(8 * time.Hour)

	got := ComputeStreak(attempts, time.UTC, now)
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
}

func TestComputeStreak_SameDayCountsOnce(t *testing.T) {
	attempts := []models.Attempt{
		completionOn(day(2026, 3, 10)),
		completionOn(day(2026, 3, 10).Add(2 * time.Hour)),
		completionOn(day(2026, 3, 10).Add(5 * time.Hour)),
	}
	now := day(2026, 3, 10).Add(22 * time.Hour)

	got := ComputeStreak(attempts, time.UTC, now)
	if got.CurrentStreak != 1 || got.LongestStreak != 1 {
		t.Errorf("ComputeStreak = %+v, want current 1 longest 1", got)
	}
}

func TestComputeStreak_LongestNotTrailing(t *testing.T) {
	// Long run early, short run now: longest reflects history.
	attempts := []models.Attempt{
		completionOn(day(2026, 2, 1)),
		completionOn(day(2026, 2, 2)),
		completionOn(day(2026, 2, 3)),
		completionOn(day(2026, 2, 4)),
		completionOn(day(2026, 3, 10)),
	}
	now := day(2026, 3, 10).Add(18 * time.Hour)

	got := ComputeStreak(attempts, time.UTC, now)
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 4 {
		t.Errorf("LongestStreak = %d, want 4", got.LongestStreak)
	}
}

func TestComputeStreak_TimezoneBucketing(t *testing.T) {
	// 23:30 UTC on March 9 is already March 10 in UTC+2: two completions
	// that straddle midnight UTC land on consecutive local days.
	loc := time.FixedZone("UTC+2", 2*60*60)
	first := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)  // Mar 10 local
	second := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC) // Mar 11 local

	attempts := []models.Attempt{
		{Status: models.AttemptStatusCompleted, CompletedAt: &first, StartedAt: first.Add(-time.Hour)},
		{Status: models.AttemptStatusCompleted, CompletedAt: &second, StartedAt: second.Add(-time.Hour)},
	}
	now := time.Date(2026, 3, 11, 10, 0, 0, 0, loc)

	got := ComputeStreak(attempts, loc, now)
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (local-day bucketing)", got.CurrentStreak)
	}
}
