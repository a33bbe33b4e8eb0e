package wsframe

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Handshake is the first frame every connection receives.
type Handshake struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Handler struct {
	dispatcher   *Dispatcher
	logger       logging.Logger
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
}

func NewHandler(l logging.Logger, bs *services.BookService, m *metrics.Recorder) *Handler {
	l = l.With("module", "wsframe")
	return &Handler{
		dispatcher:   NewDispatcher(l, bs, m),
		logger:       l,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and answers frames one at a time until the
// peer goes away. Application errors never close the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	h.logger.Info(ctx, "WebSocket connected", "remote", r.RemoteAddr)

	if err := h.writeJSON(conn, Handshake{Status: "connected", Message: "WebSocket connection established"}); err != nil {
		h.logger.Warn(ctx, "WebSocket write failed", "error", err)
		return
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn(ctx, "WebSocket read failed", "error", err)
			}
			break
		}

		if err := h.writeJSON(conn, h.dispatcher.Dispatch(ctx, frame)); err != nil {
			h.logger.Warn(ctx, "WebSocket write failed", "error", err)
			break
		}
	}

	h.logger.Info(ctx, "WebSocket disconnected", "remote", r.RemoteAddr)
}

// writeJSON bounds every write so a peer that stops reading cannot stall the handler.
func (h *Handler) writeJSON(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
