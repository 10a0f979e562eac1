package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	v1 "github.com/vinforge/forgedfate/api/v1"
	"github.com/vinforge/forgedfate/internal/models"
)

const streamWriteTimeout = 5 * time.Second

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

// StreamMonitor pushes badge, result and monitor events over a websocket.
// The current badges are sent first.
// (GET /monitor/stream)
func (h *Handler) StreamMonitor(c *gin.Context) {
	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.S().Named("stream_handler").Debugw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := h.events.Subscribe()
	defer unsubscribe()

	for _, b := range h.badgeSrv.All() {
		badge := b
		event := models.Event{Type: models.EventBadge, Kind: b.Kind, Badge: &badge, Timestamp: time.Now()}
		if err := writeEvent(conn, event); err != nil {
			return
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(conn, event); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, event models.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(v1.NewStreamEvent(event))
}
