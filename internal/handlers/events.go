package handlers

import (
  "encoding/json"
  "fmt"
  "net/http"
  "strings"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/realtime"
)

// EventsHandler bridges hub change events to web clients over SSE.
type EventsHandler struct {
  log *logger.Logger
  hub *realtime.Hub
}

func NewEventsHandler(log *logger.Logger, hub *realtime.Hub) *EventsHandler {
  return &EventsHandler{log: log.With("handler", "EventsHandler"), hub: hub}
}

var defaultStreamTables = []string{"booking", "payment", "seo_settings", "media_asset"}

// Stream subscribes the caller to change events for its business and
// replays them as SSE messages until the connection drops. ?tables=
// narrows the set.
func (eh *EventsHandler) Stream(c *gin.Context) {
  businessID := middleware.BusinessID(c)

  tables := defaultStreamTables
  if raw := c.Query("tables"); raw != "" {
    tables = strings.Split(raw, ",")
  }

  merged := make(chan realtime.ChangeEvent, 64)
  done := make(chan struct{})
  defer close(done)
  for _, table := range tables {
    sub := eh.hub.Subscribe(strings.TrimSpace(table), businessID)
    defer sub.Unsubscribe()
    go func(sub *realtime.Subscription) {
      for ev := range sub.C {
        select {
        case merged <- ev:
        case <-done:
          return
        }
      }
    }(sub)
  }

  w := c.Writer
  w.Header().Set("Content-Type", "text/event-stream")
  w.Header().Set("Cache-Control", "no-cache")
  w.Header().Set("Connection", "keep-alive")
  w.Header().Set("X-Accel-Buffering", "no")

  flusher, ok := w.(http.Flusher)
  if !ok {
    c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
    return
  }

  ctx := c.Request.Context()
  heartbeat := time.NewTicker(15 * time.Second)
  defer heartbeat.Stop()

  for {
    select {
    case <-ctx.Done():
      return
    case <-heartbeat.C:
      fmt.Fprint(w, ": ping\n\n")
      flusher.Flush()
    case ev := <-merged:
      payload, err := json.Marshal(ev)
      if err != nil {
        eh.log.Warn("change event not marshalable", "table", ev.Table, "error", err)
        continue
      }
      fmt.Fprintf(w, "event: %s\n", ev.Table)
      fmt.Fprintf(w, "data: %s\n\n", payload)
      flusher.Flush()
    }
  }
}
