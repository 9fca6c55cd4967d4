package httpserver

import (
	"io"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/realtime"
)

const ssePingInterval = 25 * time.Second

// eventsHandler streams hub events over SSE until the client hangs up.
// Periodic pings keep intermediaries from reaping the connection.
func eventsHandler(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, cancel := hub.Subscribe()
		defer cancel()

		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		ping := time.NewTicker(ssePingInterval)
		defer ping.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case ev, ok := <-ch:
				if !ok {
					return false
				}
				_ = sse.Encode(w, sse.Event{Event: ev.Name, Data: ev.Payload})
				return true
			case <-ping.C:
				_ = sse.Encode(w, sse.Event{Event: "ping", Data: "keepalive"})
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
