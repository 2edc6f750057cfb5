package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// ResourceUpdatedEvent tells admin clients which collection changed so they
// can drop their cached list and refetch.
type ResourceUpdatedEvent struct {
	Type      string `json:"type"`
	Resource  string `json:"resource"`
	Timestamp string `json:"timestamp"`
}

const EventTypeResourceUpdated = "resource_updated"

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyResourceUpdated broadcasts after a successful mutation. A nil hub
// (tests, CLI runs) makes this a no-op.
func NotifyResourceUpdated(resourceName string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	resourceName = strings.ToLower(strings.TrimSpace(resourceName))
	if resourceName == "" {
		return
	}

	evt := ResourceUpdatedEvent{
		Type:      EventTypeResourceUpdated,
		Resource:  resourceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
