package broker

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/dmitrijs2005/bookhub/internal/common"
	"github.com/dmitrijs2005/bookhub/internal/logging"
	"github.com/dmitrijs2005/bookhub/internal/server/metrics"
	"github.com/dmitrijs2005/bookhub/internal/server/services"
	"github.com/go-stomp/stomp/v3/frame"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Handler accepts STOMP-over-WebSocket connections.
type Handler struct {
	relay    *Relay
	pubsub   PubSub
	logger   logging.Logger
	upgrader websocket.Upgrader
}

func NewHandler(l logging.Logger, bs *services.BookService, ps PubSub, m *metrics.Recorder) *Handler {
	l = l.With("module", "stomp")
	return &Handler{
		relay:  NewRelay(l, bs, ps, m),
		pubsub: ps,
		logger: l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			Subprotocols:    []string{"v12.stomp", "v11.stomp", "v10.stomp"},
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "WebSocket upgrade failed", "error", err)
		return
	}

	// The request context ends with the handler; subscriptions must live
	// exactly as long as the connection.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	id := uuid.NewString()
	s := &session{
		Handler: h,
		id:      id,
		logger:  h.logger.With("session", id),
		conn:    conn,
		subs:    make(map[string]context.CancelFunc),
		cancel:  cancel,
	}
	s.run(ctx)
}

// session is one client connection. Reads happen on the handler goroutine;
// writes come from it and from one forwarder per subscription, so they go
// through writeMu.
type session struct {
	*Handler
	id        string
	logger    logging.Logger
	conn      *websocket.Conn
	writeMu   sync.Mutex
	subs      map[string]context.CancelFunc
	forwarded sync.WaitGroup
	cancel    context.CancelFunc
	connected bool
}

func (s *session) run(ctx context.Context) {
	defer func() {
		s.cancel()
		s.forwarded.Wait()
		_ = s.conn.Close()
		s.logger.Info(ctx, "STOMP session closed")
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn(ctx, "WebSocket read failed", "error", err)
			}
			return
		}

		f, err := readFrame(data)
		if err != nil {
			s.fail(ctx, "Malformed frame", err.Error())
			return
		}
		if f == nil {
			continue
		}

		if !s.handle(ctx, f) {
			return
		}
	}
}

// handle reports whether the session should keep reading.
func (s *session) handle(ctx context.Context, f *frame.Frame) bool {
	if !s.connected && f.Command != frame.CONNECT && f.Command != frame.STOMP {
		s.fail(ctx, "Not connected", "The first frame must be CONNECT")
		return false
	}

	switch f.Command {
	case frame.CONNECT, frame.STOMP:
		s.connected = true
		s.logger.Info(ctx, "STOMP session opened")
		return s.write(ctx, frame.New(frame.CONNECTED,
			frame.Version, "1.2",
			frame.HeartBeat, "0,0",
			frame.Server, "bookhub",
			frame.Session, s.id,
		))

	case frame.SUBSCRIBE:
		id := f.Header.Get(frame.Id)
		dest := f.Header.Get(frame.Destination)
		if id == "" || dest == "" {
			s.fail(ctx, "Invalid SUBSCRIBE", "id and destination are required")
			return false
		}
		if err := s.subscribe(ctx, id, dest); err != nil {
			s.fail(ctx, "Subscription failed", err.Error())
			return false
		}

	case frame.UNSUBSCRIBE:
		id := f.Header.Get(frame.Id)
		if stop, ok := s.subs[id]; ok {
			stop()
			delete(s.subs, id)
		}

	case frame.SEND:
		dest := f.Header.Get(frame.Destination)
		if !s.send(ctx, dest, f.Body) {
			return false
		}

	case frame.ACK, frame.NACK:
		// Subscriptions use auto ack.

	case frame.DISCONNECT:
		s.receipt(ctx, f)
		return false

	default:
		s.fail(ctx, "Unknown command", f.Command)
		return false
	}

	return s.receipt(ctx, f)
}

func (s *session) send(ctx context.Context, dest string, body []byte) bool {
	if !strings.HasPrefix(dest, AppPrefix+"/") {
		// Plain topics are broadcast as-is, the way a simple broker does.
		msg := message.NewMessage(watermill.NewUUID(), body)
		if err := s.pubsub.Publish(dest, msg); err != nil {
			s.logger.Error(ctx, "Broadcast failed", "topic", dest, "error", err)
		}
		return true
	}

	err := s.relay.Handle(ctx, dest, body)
	if errors.Is(err, common.ErrorUnknownOperation) {
		s.logger.Warn(ctx, "Unknown destination", "destination", dest)
		return s.write(ctx, frame.New(frame.ERROR,
			frame.Message, "Unknown destination",
			frame.Destination, dest,
		))
	}
	return true
}

func (s *session) subscribe(ctx context.Context, id, dest string) error {
	if stop, ok := s.subs[id]; ok {
		stop()
	}

	subCtx, stop := context.WithCancel(ctx)
	msgs, err := s.pubsub.Subscribe(subCtx, dest)
	if err != nil {
		stop()
		return err
	}
	s.subs[id] = stop

	s.forwarded.Add(1)
	go func() {
		defer s.forwarded.Done()
		for msg := range msgs {
			msg.Ack()
			if subCtx.Err() != nil {
				return
			}
			f := frame.New(frame.MESSAGE,
				frame.Subscription, id,
				frame.MessageId, msg.UUID,
				frame.Destination, dest,
				frame.ContentType, "application/json",
			)
			f.Body = msg.Payload
			if !s.write(subCtx, f) {
				s.cancel()
				return
			}
		}
	}()
	return nil
}

func (s *session) receipt(ctx context.Context, f *frame.Frame) bool {
	id, ok := f.Header.Contains(frame.Receipt)
	if !ok {
		return true
	}
	return s.write(ctx, frame.New(frame.RECEIPT, frame.ReceiptId, id))
}

// fail sends an ERROR frame; the caller then closes the session.
func (s *session) fail(ctx context.Context, msg, detail string) {
	s.logger.Warn(ctx, "STOMP protocol error", "message", msg, "detail", detail)
	f := frame.New(frame.ERROR, frame.Message, msg)
	f.Body = []byte(detail)
	s.write(ctx, f)
}

func (s *session) write(ctx context.Context, f *frame.Frame) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	w, err := s.conn.NextWriter(websocket.TextMessage)
	if err == nil {
		err = writeFrame(w, f)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		s.logger.Warn(ctx, "WebSocket write failed", "error", err)
		return false
	}
	return true
}
