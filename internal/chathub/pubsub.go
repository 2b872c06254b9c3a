package chathub

import (
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"omnichat/backend/internal/models"
)

// ListenEvents forwards stored-message events from the Redis subscription
// into the hub's broadcast channel. It must run in its own goroutine and
// returns when the subscription is closed.
//
// Redis preserves publish order per channel, so events for a room reach the
// broadcast loop in the order they were appended.
func (m *ManagerService) ListenEvents(sub *redis.PubSub) {
	defer sub.Close()

	for msg := range sub.Channel() {
		var event models.RoomEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("ERROR: Failed to unmarshal pub/sub event: %v", err)
			continue
		}
		m.BroadcastCh <- event
	}
}
