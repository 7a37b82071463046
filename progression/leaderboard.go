// progression/leaderboard.go - Ranked leaderboard derivation
package progression

import (
	"container/heap"
	"sort"
)

// LeaderboardEntry is one ranked row. Ephemeral: recomputed per request
// (or per snapshot refresh), never persisted.
type LeaderboardEntry struct {
	UserID              uint   `json:"user_id"`
	Name                string `json:"name"`
	XP                  int    `json:"xp"`
	Level               int    `json:"level"`
	ChallengesCompleted int    `json:"challenges_completed"`
	BadgeCount          int    `json:"badge_count"`
	Rank                int    `json:"rank"`
}

// Populations above this use the bounded-heap top-K path instead of a
// full sort. Both paths produce identical order.
const heapThreshold = 1024

// Better reports whether a outranks b: XP desc, then challenges
// completed desc, then user id asc for determinism.
func Better(a, b LeaderboardEntry) bool {
	if a.XP != b.XP {
		return a.XP > b.XP
	}
	if a.ChallengesCompleted != b.ChallengesCompleted {
		return a.ChallengesCompleted > b.ChallengesCompleted
	}
	return a.UserID < b.UserID
}

// BuildLeaderboard fully ranks the population. Users with zero
// completed challenges are excluded, not ranked last.
func BuildLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	ranked := filterActive(entries)
	sort.Slice(ranked, func(i, j int) bool { return Better(ranked[i], ranked[j]) })
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// TopK returns the first k ranked entries. For large populations it
// keeps a bounded min-heap of the k best seen so far rather than
// sorting everyone; the resulting order is identical to BuildLeaderboard.
func TopK(entries []LeaderboardEntry, k int) []LeaderboardEntry {
	if k <= 0 {
		return nil
	}
	active := filterActive(entries)
	if len(active) <= heapThreshold || k >= len(active) {
		ranked := BuildLeaderboard(active)
		if k > len(ranked) {
			k = len(ranked)
		}
		return ranked[:k]
	}

	h := &boundedHeap{}
	heap.Init(h)
	for _, e := range active {
		if h.Len() < k {
			heap.Push(h, e)
		} else if Better(e, (*h)[0]) {
			(*h)[0] = e
			heap.Fix(h, 0)
		}
	}

	top := make([]LeaderboardEntry, h.Len())
	for i := len(top) - 1; i >= 0; i-- {
		top[i] = heap.Pop(h).(LeaderboardEntry)
	}
	for i := range top {
		top[i].Rank = i + 1
	}
	return top
}

// RankOf returns a user's 1-based rank with a single linear pass, or 0
// if the user has no completed challenges.
func RankOf(entries []LeaderboardEntry, userID uint) int {
	var target *LeaderboardEntry
	for i := range entries {
		if entries[i].UserID == userID {
			target = &entries[i]
			break
		}
	}
	if target == nil || target.ChallengesCompleted == 0 {
		return 0
	}
	rank := 1
	for _, e := range entries {
		if e.UserID == userID || e.ChallengesCompleted == 0 {
			continue
		}
		if Better(e, *target) {
			rank++
		}
	}
	return rank
}

// Around returns the ranked window of n entries either side of a user,
// including the user. Empty result if the user is unranked.
func Around(entries []LeaderboardEntry, userID uint, n int) []LeaderboardEntry {
	ranked := BuildLeaderboard(entries)
	idx := -1
	for i := range ranked {
		if ranked[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	lo := idx - n
	if lo < 0 {
		lo = 0
	}
	hi := idx + n + 1
	if hi > len(ranked) {
		hi = len(ranked)
	}
	return ranked[lo:hi]
}

func filterActive(entries []LeaderboardEntry) []LeaderboardEntry {
	active := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.ChallengesCompleted > 0 {
			active = append(active, e)
		}
	}
	return active
}

// boundedHeap is a min-heap ordered so the worst of the kept entries is
// always at the root, ready to be displaced.
type boundedHeap []LeaderboardEntry

func (h boundedHeap) Len() int           { return len(h) }
func (h boundedHeap) Less(i, j int) bool { return Better(h[j], h[i]) }
func (h boundedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *boundedHeap) Push(x any) {
	*h = append(*h, x.(LeaderboardEntry))
}

func (h *boundedHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
