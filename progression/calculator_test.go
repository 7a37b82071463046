package progression

import (
	"reflect"
	"testing"
	"time"

	"cyberquest/catalog"
	"cyberquest/models"
)

func testCatalog(t *testing.T) (*catalog.Catalog, *catalog.RankTable) {
	t.Helper()
	cat, err := catalog.NewCatalog([]catalog.Challenge{
		{ID: "alpha", Title: "Alpha", Difficulty: catalog.DifficultyBeginner, Points: 100, Category: "web"},
		{ID: "beta", Title: "Beta", Difficulty: catalog.DifficultyBeginner, Points: 200, Category: "web"},
		{ID: "gamma", Title: "Gamma", Difficulty: catalog.DifficultyAdvanced, Points: 500, Category: "crypto"},
		{ID: "delta", Title: "Delta", Difficulty: catalog.DifficultyAdvanced, Points: 1000, Category: "crypto"},
	})
	if err != nil {
		t.Fatal(err)
	}
	ranks, err := catalog.NewRankTable([]catalog.RankTier{
		{MinLevel: 1, Name: "Script Kiddie"},
		{MinLevel: 2, Name: "Code Cadet"},
		{MinLevel: 3, Name: "White Hat"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat, ranks
}

func completed(challengeID string, score int) models.Attempt {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return models.Attempt{
		UserID:      1,
		ChallengeID: challengeID,
		Status:      models.AttemptStatusCompleted,
		Score:       score,
		StartedAt:   at.Add(-time.Hour),
		CompletedAt: &at,
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestCalculate_BestScoreSemantics(t *testing.T) {
	cat, ranks := testCatalog(t)

	// 60 then 40: retry never hurts.
	state := Calculate(1, []models.Attempt{
		completed("alpha", 60),
		completed("alpha", 40),
	}, cat, ranks)
	if state.TotalXP != 60 {
		t.Errorf("TotalXP after 60,40 = %d, want 60", state.TotalXP)
	}

	// 60 then 90: retry helps.
	state = Calculate(1, []models.Attempt{
		completed("alpha", 60),
		completed("alpha", 90),
	}, cat, ranks)
	if state.TotalXP != 90 {
		t.Errorf("TotalXP after 60,90 = %d, want 90", state.TotalXP)
	}

	if state.ChallengesCompleted != 1 {
		t.Errorf("ChallengesCompleted = %d, want 1 (same challenge twice)", state.ChallengesCompleted)
	}
}

func TestCalculate_XPIsFloored(t *testing.T) {
	cat, ranks := testCatalog(t)

	// 100 points at 33% is 33 XP, not 33.33 rounded up.
	state := Calculate(1, []models.Attempt{completed("alpha", 33)}, cat, ranks)
	if state.TotalXP != 33 {
		t.Errorf("TotalXP = %d, want 33", state.TotalXP)
	}

	// 500 points at 99% floors to 495.
	state = Calculate(1, []models.Attempt{completed("gamma", 99)}, cat, ranks)
	if state.TotalXP != 495 {
		t.Errorf("TotalXP = %d, want 495", state.TotalXP)
	}
}

func TestCalculate_LevelAndRank(t *testing.T) {
	cat, ranks := testCatalog(t)

	state := Calculate(1, nil, cat, ranks)
	if state.Level != 1 || state.RankName != "Script Kiddie" {
		t.Errorf("empty ledger: level %d rank %q, want 1 Script Kiddie", state.Level, state.RankName)
	}

	// delta at 100% = 1000 XP = level 3.
	state = Calculate(1, []models.Attempt{completed("delta", 100)}, cat, ranks)
	if state.Level != 3 || state.RankName != "White Hat" {
		t.Errorf("1000 XP: level %d rank %q, want 3 White Hat", state.Level, state.RankName)
	}
}

func TestCalculate_MonotonicXP(t *testing.T) {
	cat, ranks := testCatalog(t)

	ledger := []models.Attempt{}
	additions := []models.Attempt{
		completed("alpha", 50),
		completed("alpha", 10), // worse retry
		completed("beta", 100),
		completed("gamma", 1),
		completed("gamma", 0), // zero-score retry
	}

	prev := 0
	for _, add := range additions {
		ledger = append(ledger, add)
		state := Calculate(1, ledger, cat, ranks)
		if state.TotalXP < prev {
			t.Fatalf("XP decreased from %d to %d after adding %s@%d",
				prev, state.TotalXP, add.ChallengeID, add.Score)
		}
		prev = state.TotalXP
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	cat, ranks := testCatalog(t)
	ledger := []models.Attempt{
		completed("alpha", 70),
		completed("beta", 85),
		completed("beta", 40),
	}

	a := Calculate(1, ledger, cat, ranks)
	b := Calculate(1, ledger, cat, ranks)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Calculate not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestCalculate_IgnoresUnknownAndOpenAttempts(t *testing.T) {
	cat, ranks := testCatalog(t)

	open := models.Attempt{
		UserID:      1,
		ChallengeID: "beta",
		Status:      models.AttemptStatusInProgress,
		StartedAt:   time.Now(),
	}
	retired := completed("retired-challenge", 100)

	state := Calculate(1, []models.Attempt{completed("alpha", 50), open, retired}, cat, ranks)
	if state.TotalXP != 50 {
		t.Errorf("TotalXP = %d, want 50 (open and retired attempts ignored)", state.TotalXP)
	}
	if state.ChallengesCompleted != 1 {
		t.Errorf("ChallengesCompleted = %d, want 1", state.ChallengesCompleted)
	}
}

func TestCalculate_CompletionPct(t *testing.T) {
	cat, ranks := testCatalog(t)
	state := Calculate(1, []models.Attempt{completed("alpha", 50), completed("beta", 50)}, cat, ranks)
	if state.ChallengesTotal != 4 {
		t.Fatalf("ChallengesTotal = %d, want 4", state.ChallengesTotal)
	}
	if state.CompletionPct != 50 {
		t.Errorf("CompletionPct = %v, want 50", state.CompletionPct)
	}
}
