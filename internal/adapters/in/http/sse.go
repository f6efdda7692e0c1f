package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bolpurmart/internal/pkg/live"

	"github.com/labstack/echo/v4"
)

const (
	eventError = "error"

	keepAliveInterval = 25 * time.Second
)

// serveStream writes every snapshot of stream as a server-sent event named event until
// the client goes away or the stream ends. A failed snapshot is written as an error
// event and the stream goes on. The stream is closed on return.
func serveStream[T any](c echo.Context, stream *live.Stream[T], event string, render func(T) any) error {
	defer func() { _ = stream.Close() }()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-stream.Done():
			// a final snapshot may still be unread
			select {
			case snap := <-stream.Updates():
				_ = writeSnapshot(w, event, snap, render)
			default:
			}
			return nil

		case snap := <-stream.Updates():
			if err := writeSnapshot(w, event, snap, render); err != nil {
				return nil
			}

		case <-keepAlive.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func writeSnapshot[T any](w *echo.Response, event string, snap live.Snapshot[T], render func(T) any) error {
	if snap.Err != nil {
		_, body := errorResponse(snap.Err)
		return writeEvent(w, eventError, body)
	}
	return writeEvent(w, event, render(snap.Value))
}

func writeEvent(w *echo.Response, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
