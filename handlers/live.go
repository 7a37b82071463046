// handlers/live.go - Live leaderboard feed
package handlers

import (
	"cyberquest/services"

	"github.com/gofiber/websocket/v2"
)

type liveUpdate struct {
	Type    string      `json:"type"`
	TakenAt interface{} `json:"taken_at"`
	Entries interface{} `json:"entries"`
}

// LeaderboardLive streams leaderboard snapshots over a websocket. The
// client gets the current top page immediately and a fresh one after
// every snapshot refresh. Slow clients skip intermediate snapshots.
func LeaderboardLive(conn *websocket.Conn) {
	svc := services.GetSnapshotService()
	updates := svc.Subscribe()
	defer svc.Unsubscribe(updates)

	send := func(snap *services.Snapshot) bool {
		if snap == nil {
			return true
		}
		entries := snap.Entries
		if len(entries) > 25 {
			entries = entries[:25]
		}
		msg := liveUpdate{Type: "leaderboard", TakenAt: snap.TakenAt, Entries: entries}
		return conn.WriteJSON(msg) == nil
	}

	if !send(svc.Current()) {
		return
	}

	// Reader goroutine: its exit signals that the peer went away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap := <-updates:
			if !send(snap) {
				return
			}
		case <-closed:
			return
		}
	}
}
