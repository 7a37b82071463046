package progression

import (
	"math/rand"
	"reflect"
	"testing"
)

func entry(userID uint, xp, done int) LeaderboardEntry {
	return LeaderboardEntry{UserID: userID, XP: xp, ChallengesCompleted: done}
}

func TestBuildLeaderboard_Ordering(t *testing.T) {
	// Equal XP: more challenges completed ranks higher.
	got := BuildLeaderboard([]LeaderboardEntry{
		entry(1, 500, 3),
		entry(2, 500, 5),
		entry(3, 900, 2),
	})

	wantOrder := []uint{3, 2, 1}
	for i, want := range wantOrder {
		if got[i].UserID != want {
			t.Fatalf("position %d: user %d, want %d", i, got[i].UserID, want)
		}
		if got[i].Rank != i+1 {
			t.Errorf("user %d rank = %d, want %d", got[i].UserID, got[i].Rank, i+1)
		}
	}
}

func TestBuildLeaderboard_TieBreakUserID(t *testing.T) {
	got := BuildLeaderboard([]LeaderboardEntry{
		entry(42, 300, 2),
		entry(7, 300, 2),
	})
	if got[0].UserID != 7 || got[1].UserID != 42 {
		t.Errorf("full tie should order by user id: got %d, %d", got[0].UserID, got[1].UserID)
	}
}

func TestBuildLeaderboard_ExcludesInactive(t *testing.T) {
	got := BuildLeaderboard([]LeaderboardEntry{
		entry(1, 100, 1),
		entry(2, 0, 0), // never completed anything
	})
	if len(got) != 1 || got[0].UserID != 1 {
		t.Errorf("inactive user should be excluded, got %+v", got)
	}
}

func TestTopK_SmallPopulation(t *testing.T) {
	entries := []LeaderboardEntry{
		entry(1, 100, 1),
		entry(2, 300, 2),
		entry(3, 200, 1),
	}

	got := TopK(entries, 2)
	if len(got) != 2 || got[0].UserID != 2 || got[1].UserID != 3 {
		t.Errorf("TopK(2) = %+v", got)
	}

	if got := TopK(entries, 10); len(got) != 3 {
		t.Errorf("TopK beyond population = %d entries, want 3", len(got))
	}
	if got := TopK(entries, 0); got != nil {
		t.Errorf("TopK(0) = %+v, want nil", got)
	}
}

func TestTopK_HeapMatchesFullSort(t *testing.T) {
	// Above the heap threshold both code paths must agree exactly,
	// ties included.
	rng := rand.New(rand.NewSource(1))
	n := heapThreshold + 500
	entries := make([]LeaderboardEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, entry(uint(i+1), rng.Intn(50)*100, rng.Intn(10)+1))
	}

	k := 25
	viaHeap := TopK(entries, k)
	full := BuildLeaderboard(entries)[:k]

	if !reflect.DeepEqual(viaHeap, full) {
		t.Fatalf("heap path diverges from full sort:\nheap: %+v\nsort: %+v", viaHeap[:5], full[:5])
	}
}

func TestRankOf(t *testing.T) {
	entries := []LeaderboardEntry{
		entry(1, 100, 1),
		entry(2, 300, 2),
		entry(3, 200, 1),
		entry(4, 0, 0),
	}

	tests := []struct {
		userID uint
		want   int
	}{
		{2, 1},
		{3, 2},
		{1, 3},
		{4, 0},  // inactive
		{99, 0}, // unknown
	}
	for _, tt := range tests {
		if got := RankOf(entries, tt.userID); got != tt.want {
			t.Errorf("RankOf(%d) = %d, want %d", tt.userID, got, tt.want)
		}
	}
}

func TestRankOf_AgreesWithBuild(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	entries := make([]LeaderboardEntry, 0, 200)
	for i := 0; i < 200; i++ {
		entries = append(entries, entry(uint(i+1), rng.Intn(20)*50, rng.Intn(5)))
	}

	ranked := BuildLeaderboard(entries)
	for _, e := range ranked {
		if got := RankOf(entries, e.UserID); got != e.Rank {
			t.Fatalf("RankOf(%d) = %d, BuildLeaderboard says %d", e.UserID, got, e.Rank)
		}
	}
}

func TestAround(t *testing.T) {
	entries := []LeaderboardEntry{
		entry(1, 500, 1),
		entry(2, 400, 1),
		entry(3, 300, 1),
		entry(4, 200, 1),
		entry(5, 100, 1),
	}

	got := Around(entries, 3, 1)
	if len(got) != 3 || got[0].UserID != 2 || got[1].UserID != 3 || got[2].UserID != 4 {
		t.Errorf("Around(3, 1) = %+v", got)
	}

	// Window clipped at the top.
	got = Around(entries, 1, 2)
	if len(got) != 3 || got[0].UserID != 1 {
		t.Errorf("Around(1, 2) = %+v", got)
	}

	// Unranked user yields nothing.
	if got := Around(entries, 99, 2); got != nil {
		t.Errorf("Around(unknown) = %+v, want nil", got)
	}
}
