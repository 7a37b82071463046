// services/snapshot.go - Leaderboard snapshot refresher
package services

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"cyberquest/models"
	"cyberquest/progression"
)

// Snapshot is an immutable, fully ranked view of every active user's
// progression. Handlers and the live feed read whichever snapshot is
// current; a refresh swaps the pointer, so a response is never built
// from a half-updated ranking.
type Snapshot struct {
	TakenAt time.Time
	Entries []progression.LeaderboardEntry
}

// SnapshotService periodically recomputes the leaderboard snapshot.
type SnapshotService struct {
	db       *gorm.DB
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}

	mu          sync.RWMutex
	current     *Snapshot
	subscribers map[chan *Snapshot]struct{}
}

var snapshotService *SnapshotService

// InitSnapshotService builds the singleton and takes the first snapshot.
func InitSnapshotService(db *gorm.DB) {
	interval := 30 * time.Second
	if v := os.Getenv("LEADERBOARD_REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			interval = time.Duration(n) * time.Second
		}
	}
	snapshotService = &SnapshotService{
		db:          db,
		interval:    interval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		subscribers: make(map[chan *Snapshot]struct{}),
	}
	snapshotService.Refresh()
}

// GetSnapshotService returns the initialized service.
func GetSnapshotService() *SnapshotService {
	return snapshotService
}

// Start launches the background refresh loop.
func (s *SnapshotService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Refresh()
			case <-s.stop:
				return
			}
		}
	}()
	log.Printf("✅ Leaderboard snapshot service started (every %s)", s.interval)
}

// Stop shuts down the refresh loop and waits for it to exit.
func (s *SnapshotService) Stop() {
	close(s.stop)
	<-s.done
}

// Current returns the latest snapshot.
func (s *SnapshotService) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a channel that receives each new snapshot. Slow
// consumers miss intermediate snapshots rather than blocking a refresh.
func (s *SnapshotService) Subscribe() chan *Snapshot {
	ch := make(chan *Snapshot, 1)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel.
func (s *SnapshotService) Unsubscribe(ch chan *Snapshot) {
	s.mu.Lock()
	delete(s.subscribers, ch)
	s.mu.Unlock()
}

// Refresh recomputes progression for every user with at least one
// completed attempt and swaps in the new ranked snapshot.
func (s *SnapshotService) Refresh() {
	entries, err := computeAllEntries(s.db)
	if err != nil {
		log.Printf("⚠️ Leaderboard refresh failed, keeping previous snapshot: %v", err)
		return
	}

	snap := &Snapshot{
		TakenAt: time.Now().UTC(),
		Entries: progression.BuildLeaderboard(entries),
	}

	s.mu.Lock()
	s.current = snap
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
	s.mu.Unlock()
}

func computeAllEntries(db *gorm.DB) ([]progression.LeaderboardEntry, error) {
	// Only users with a completed attempt can rank; load their full
	// histories in one pass and group in memory.
	var attempts []models.Attempt
	if err := db.
		Where("user_id IN (?)", db.Model(&models.Attempt{}).
			Select("DISTINCT user_id").
			Where("status = ?", models.AttemptStatusCompleted)).
		Order("user_id ASC, started_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	byUser := make(map[uint][]models.Attempt)
	for _, a := range attempts {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}
	if len(byUser) == 0 {
		return nil, nil
	}

	userIDs := make([]uint, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}

	var users []models.User
	if err := db.Select("id", "username", "display_name").
		Where("id IN ?", userIDs).
		Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		name := u.DisplayName
		if name == "" {
			name = u.Username
		}
		names[u.ID] = name
	}

	type badgeCount struct {
		UserID uint
		N      int
	}
	var counts []badgeCount
	if err := db.Model(&models.UserBadge{}).
		Select("user_id, COUNT(*) as n").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	badges := make(map[uint]int, len(counts))
	for _, c := range counts {
		badges[c.UserID] = c.N
	}

	cat := GetCatalog()
	ranks := GetRankTable()
	entries := make([]progression.LeaderboardEntry, 0, len(byUser))
	for id, history := range byUser {
		state := progression.Calculate(id, history, cat, ranks)
		entries = append(entries, progression.LeaderboardEntry{
			UserID:              id,
			Name:                names[id],
			XP:                  state.TotalXP,
			Level:               state.Level,
			ChallengesCompleted: state.ChallengesCompleted,
			BadgeCount:          badges[id],
		})
	}
	return entries, nil
}
