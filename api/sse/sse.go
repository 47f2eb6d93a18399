package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/epicadventure/cache"
	"github.com/kasuganosora/epicadventure/config"
	"github.com/kasuganosora/epicadventure/game/broadcast"
	"github.com/kasuganosora/epicadventure/game/store"
	mw "github.com/kasuganosora/epicadventure/middleware"
	"go.uber.org/zap"
)

const defaultKeepalive = 30 * time.Second

// SnapshotSource supplies the state sent when a client connects.
type SnapshotSource interface {
	Snapshot() *store.Snapshot
}

// Handler streams state snapshots and game notifications.
type Handler struct {
	pubsub    cache.PubSub
	c         cache.Cache
	sec       config.SecurityConfig
	state     SnapshotSource
	logger    *zap.Logger
	keepalive time.Duration
}

// NewHandler creates a new SSE Handler.
func NewHandler(pubsub cache.PubSub, c cache.Cache, sec config.SecurityConfig, state SnapshotSource, logger *zap.Logger) *Handler {
	return &Handler{pubsub: pubsub, c: c, sec: sec, state: state, logger: logger, keepalive: defaultKeepalive}
}

// SetKeepalive overrides the keepalive comment interval.
func (h *Handler) SetKeepalive(d time.Duration) {
	if d > 0 {
		h.keepalive = d
	}
}

func writeEvent(w io.Writer, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

// ServeSSE handles GET /sse?token=<jwt>.
// The stream opens with the current snapshot as "state", then relays every
// published snapshot ("state") and notification ("game").
func (h *Handler) ServeSSE(c *gin.Context) {
	if _, err := mw.Authenticate(c.Request.Context(), h.sec, h.c, c.Query("token")); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	subCtx, subCancel := context.WithCancel(c.Request.Context())
	defer subCancel()

	msgCh, unsub, err := h.pubsub.Subscribe(subCtx, broadcast.StateChannel, broadcast.EventChannel)
	if err != nil {
		h.logger.Error("sse subscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscribe failed"})
		return
	}
	defer unsub()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// Snapshots older than the initial one are skipped.
	var lastVersion uint64
	if h.state != nil {
		snap := h.state.Snapshot()
		lastVersion = snap.Version
		payload, err := json.Marshal(snap)
		if err == nil {
			writeEvent(c.Writer, "state", string(payload))
		}
	}
	c.Writer.Flush()

	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-msgCh:
			if !ok {
				return
			}
			switch msg.Channel {
			case broadcast.StateChannel:
				var head struct {
					Version uint64 `json:"version"`
				}
				if json.Unmarshal([]byte(msg.Payload), &head) == nil && head.Version <= lastVersion {
					continue
				}
				lastVersion = head.Version
				writeEvent(c.Writer, "state", msg.Payload)
			case broadcast.EventChannel:
				writeEvent(c.Writer, "game", msg.Payload)
			}
			c.Writer.Flush()

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keepalive\n\n")
			c.Writer.Flush()

		case <-c.Request.Context().Done():
			if err := c.Request.Context().Err(); err != nil && !errors.Is(err, context.Canceled) {
				h.logger.Debug("sse stream ended", zap.Error(err))
			}
			return
		}
	}
}
