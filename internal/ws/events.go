package ws

import (
	"encoding/json"
	"time"
)

type StoreEvent struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// Notify satisfies the store's notifier hook: every mutation topic becomes
// one broadcast event.
func (h *Hub) Notify(topic string) {
	if h == nil || topic == "" {
		return
	}

	evt := StoreEvent{
		Type:      topic,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
