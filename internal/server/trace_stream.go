package server

import (
	"net/http"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/horizon/internal/events"
)

// TraceStreamHandler streams lab events over a websocket so clients can
// follow encode and recovery diagnostics as they happen.
type TraceStreamHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewTraceStreamHandler creates a trace stream handler
func NewTraceStreamHandler(bus *events.Bus, log zerolog.Logger) *TraceStreamHandler {
	return &TraceStreamHandler{
		bus: bus,
		log: log.With().Str("handler", "trace_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/holography/trace
func (h *TraceStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to accept websocket connection")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	ch, cancel := h.bus.Subscribe()
	defer cancel()

	h.log.Info().Msg("Trace stream client connected")

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				h.log.Debug().Err(err).Msg("Trace stream client disconnected")
				return
			}
		}
	}
}
