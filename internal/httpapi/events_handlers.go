package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"jobscout-engine/internal/events"
)

const defaultHeartbeat = 25 * time.Second

// EventsHandler streams hub events as server-sent events. Every frame is
// sent as "message" so a plain EventSource.onmessage sees all of them; the
// envelope's "type" tells them apart.
type EventsHandler struct {
	Hub       *events.Hub
	// Heartbeat is the idle interval between keep-alive comments.
	Heartbeat time.Duration
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	every := h.Heartbeat
	if every <= 0 {
		every = defaultHeartbeat
	}
	tick := time.NewTicker(every)
	defer tick.Stop()

	var seq uint64
	send := func(data string) {
		seq++
		writeSSE(w, seq, data)
		flusher.Flush()
	}

	fmt.Fprintf(w, "retry: %d\n\n", (3 * time.Second).Milliseconds())
	send(events.MakeEvent(RequestIDFrom(r.Context()), events.TypePing, 1, nil))

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			send(msg)
			tick.Reset(every)
		case <-tick.C:
			// comment lines keep proxies from closing an idle stream
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, id uint64, data string) {
	fmt.Fprintf(w, "id: %d\nevent: message\ndata: %s\n\n", id, data)
}
