package catalog

import (
	"strings"
	"testing"
)

func validChallenges() []Challenge {
	return []Challenge{
		{ID: "a", Title: "A", Difficulty: DifficultyBeginner, Points: 50, Category: "web"},
		{ID: "b", Title: "B", Difficulty: DifficultyIntermediate, Points: 100, Category: "web", Prerequisites: []string{"a"}},
		{ID: "c", Title: "C", Difficulty: DifficultyAdvanced, Points: 200, Category: "crypto", Prerequisites: []string{"a", "b"}},
	}
}

func TestNewCatalog_Valid(t *testing.T) {
	cat, err := NewCatalog(validChallenges())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	if cat.Size() != 3 {
		t.Errorf("Size() = %d, want 3", cat.Size())
	}
	ch, ok := cat.Get("b")
	if !ok || ch.Points != 100 {
		t.Errorf("Get(b) = %+v, %v", ch, ok)
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		challenges []Challenge
		wantSubstr string
	}{
		{
			name: "duplicate id",
			challenges: []Challenge{
				{ID: "a", Difficulty: DifficultyBeginner, Points: 10},
				{ID: "a", Difficulty: DifficultyBeginner, Points: 10},
			},
			wantSubstr: "duplicate",
		},
		{
			name: "non-positive points",
			challenges: []Challenge{
				{ID: "a", Difficulty: DifficultyBeginner, Points: 0},
			},
			wantSubstr: "non-positive",
		},
		{
			name: "unknown difficulty",
			challenges: []Challenge{
				{ID: "a", Difficulty: "nightmare", Points: 10},
			},
			wantSubstr: "difficulty",
		},
		{
			name: "unknown prerequisite",
			challenges: []Challenge{
				{ID: "a", Difficulty: DifficultyBeginner, Points: 10, Prerequisites: []string{"ghost"}},
			},
			wantSubstr: "unknown prerequisite",
		},
		{
			name: "self prerequisite",
			challenges: []Challenge{
				{ID: "a", Difficulty: DifficultyBeginner, Points: 10, Prerequisites: []string{"a"}},
			},
			wantSubstr: "itself",
		},
		{
			name: "two-node cycle",
			challenges: []Challenge{
				{ID: "a", Difficulty: DifficultyBeginner, Points: 10, Prerequisites: []string{"b"}},
				{ID: "b", Difficulty: DifficultyBeginner, Points: 10, Prerequisites: []string{"a"}},
			},
			wantSubstr: "cycle",
		},
		{
			name: "three-node cycle",
			challenges: []Challenge{
				{ID: "a", Difficulty: DifficultyBeginner, Points: 10, Prerequisites: []string{"c"}},
				{ID: "b", Difficulty: DifficultyBeginner, Points: 10, Prerequisites: []string{"a"}},
				{ID: "c", Difficulty: DifficultyBeginner, Points: 10, Prerequisites: []string{"b"}},
			},
			wantSubstr: "cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.challenges)
			if err == nil {
				t.Fatal("NewCatalog() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error %q does not contain %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestDefaultChallenges_IsValidDAG(t *testing.T) {
	if _, err := NewCatalog(DefaultChallenges()); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}
}

func TestRankTable_NameFor(t *testing.T) {
	table, err := NewRankTable([]RankTier{
		{MinLevel: 1, Name: "Script Kiddie"},
		{MinLevel: 3, Name: "Code Cadet"},
		{MinLevel: 8, Name: "White Hat"},
	})
	if err != nil {
		t.Fatalf("NewRankTable() error = %v", err)
	}

	tests := []struct {
		level int
		want  string
	}{
		{1, "Script Kiddie"},
		{2, "Script Kiddie"},
		{3, "Code Cadet"},
		{7, "Code Cadet"},
		{8, "White Hat"},
		{100, "White Hat"},
	}
	for _, tt := range tests {
		if got := table.NameFor(tt.level); got != tt.want {
			t.Errorf("NameFor(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestRankTable_Invalid(t *testing.T) {
	if _, err := NewRankTable(nil); err == nil {
		t.Error("empty table should be rejected")
	}
	if _, err := NewRankTable([]RankTier{{MinLevel: 2, Name: "Late Start"}}); err == nil {
		t.Error("table not starting at level 1 should be rejected")
	}
	if _, err := NewRankTable([]RankTier{
		{MinLevel: 1, Name: "A"},
		{MinLevel: 5, Name: "B"},
		{MinLevel: 3, Name: "C"},
	}); err == nil {
		t.Error("out-of-order tiers should be rejected")
	}
}

func TestValidateBadges(t *testing.T) {
	cat, err := NewCatalog(validChallenges())
	if err != nil {
		t.Fatal(err)
	}

	good := []BadgeDef{
		{ID: "one", Name: "One", Kind: BadgeCompleteCount, Threshold: 1},
		{ID: "web", Name: "Web", Kind: BadgeCompleteCategory, Category: "web"},
		{ID: "adv", Name: "Adv", Kind: BadgeCompleteDifficulty, Difficulty: DifficultyAdvanced},
		{ID: "perfect-c", Name: "Perfect C", Kind: BadgePerfectScore, ChallengeID: "c"},
		{ID: "streak", Name: "Streak", Kind: BadgeStreakDays, Threshold: 7},
		{ID: "lvl", Name: "Level", Kind: BadgeReachLevel, Threshold: 5},
		{ID: "xp", Name: "XP", Kind: BadgeTotalXP, Threshold: 1000},
	}
	if err := ValidateBadges(good, cat); err != nil {
		t.Errorf("ValidateBadges(good) = %v", err)
	}

	bad := []struct {
		name string
		defs []BadgeDef
	}{
		{"unknown kind", []BadgeDef{{ID: "x", Kind: "mystery"}}},
		{"duplicate id", []BadgeDef{
			{ID: "x", Kind: BadgeCompleteCount, Threshold: 1},
			{ID: "x", Kind: BadgeCompleteCount, Threshold: 2},
		}},
		{"zero threshold", []BadgeDef{{ID: "x", Kind: BadgeCompleteCount}}},
		{"unknown category", []BadgeDef{{ID: "x", Kind: BadgeCompleteCategory, Category: "lasers"}}},
		{"unknown challenge", []BadgeDef{{ID: "x", Kind: BadgePerfectScore, ChallengeID: "ghost"}}},
		{"unknown difficulty", []BadgeDef{{ID: "x", Kind: BadgeCompleteDifficulty, Difficulty: "brutal"}}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateBadges(tt.defs, cat); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDefaultBadges_ValidAgainstDefaultCatalog(t *testing.T) {
	cat, err := NewCatalog(DefaultChallenges())
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateBadges(DefaultBadges(), cat); err != nil {
		t.Fatalf("built-in badges invalid: %v", err)
	}
}
