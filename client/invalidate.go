package client

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"
)

type resourceUpdatedEvent struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
}

// SubscribeInvalidations connects to the server's invalidation feed and
// drops the matching cached list whenever a mutation is broadcast. The
// returned stop function closes the connection; the subscription also ends
// when ctx is cancelled.
func (c *Client) SubscribeInvalidations(ctx context.Context) (func() error, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL(c.baseURL)+"/api/ws", nil)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		select {
		case <-done:
		default:
			_ = conn.Close()
		}
	}()

	go func() {
		defer close(done)
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var evt resourceUpdatedEvent
			if err := json.Unmarshal(msg, &evt); err != nil {
				continue
			}
			if evt.Type != "resource_updated" || evt.Resource == "" {
				continue
			}
			c.cache.Delete(evt.Resource)
		}
	}()

	return conn.Close, nil
}

func wsURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	default:
		return base
	}
}
