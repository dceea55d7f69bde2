package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pixil98/go-realm/internal/events"
	"github.com/pixil98/go-realm/internal/messaging"
	"github.com/pixil98/go-realm/internal/session"
)

// EventHandler consumes inbound client events and connection teardown.
type EventHandler interface {
	Dispatch(ctx context.Context, req *events.Request)
	Disconnect(ctx context.Context, connID string)
}

// Bus provides per-connection subscriptions for outbound delivery.
type Bus interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Lifecycle observes connection open and close.
type Lifecycle interface {
	OnConnect(connID string)
}

// WebsocketListener accepts websocket clients and pumps frames between each
// socket and the event dispatcher. Outbound broadcasts arrive over the bus on
// the connection's own subject; replies are written directly. It is also the
// presence layer's ground truth for live connections.
type WebsocketListener struct {
	port     uint16
	path     string
	handler  EventHandler
	bus      Bus
	registry *session.Registry
	presence Lifecycle

	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]*clientConn
}

func NewWebsocketListener(port uint16, path string, handler EventHandler, bus Bus, registry *session.Registry, presence Lifecycle) *WebsocketListener {
	return &WebsocketListener{
		port:     port,
		path:     path,
		handler:  handler,
		bus:      bus,
		registry: registry,
		presence: presence,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		conns: map[string]*clientConn{},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		l.handleConn(ctx, w, r)
	})

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			svr.Shutdown(shutdownCtx)
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "websocket listener starting", "port", l.port, "path", l.path)

	err := svr.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}
	return nil
}

// LiveConnections reports the ids of every open socket. Satisfies the
// presence reconciler's live source.
func (l *WebsocketListener) LiveConnections() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.conns))
	for id := range l.conns {
		ids = append(ids, id)
	}
	return ids, nil
}

func (l *WebsocketListener) handleConn(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	connID := uuid.NewString()
	client := &clientConn{ws: ws}

	unsubscribe, err := l.bus.Subscribe(messaging.ConnSubject(connID), func(data []byte) {
		if err := client.write(data); err != nil {
			slog.WarnContext(ctx, "outbound write failed", "conn", connID, "error", err)
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "subscribing connection subject", "conn", connID, "error", err)
		ws.Close()
		return
	}

	l.mu.Lock()
	l.conns[connID] = client
	l.mu.Unlock()

	sess := session.New(connID)
	l.registry.Add(sess)
	l.presence.OnConnect(connID)

	slog.InfoContext(ctx, "connection accepted", "conn", connID, "remote", r.RemoteAddr)

	l.readLoop(ctx, connID, sess, client)

	unsubscribe()
	l.mu.Lock()
	delete(l.conns, connID)
	l.mu.Unlock()
	l.handler.Disconnect(ctx, connID)
	ws.Close()

	slog.InfoContext(ctx, "connection closed", "conn", connID)
}

func (l *WebsocketListener) readLoop(ctx context.Context, connID string, sess *session.Session, client *clientConn) {
	for {
		_, payload, err := client.ws.ReadMessage()
		if err != nil {
			return
		}

		var env messaging.Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			slog.WarnContext(ctx, "discarding malformed frame", "conn", connID, "error", err)
			continue
		}
		if env.Event == "" {
			slog.WarnContext(ctx, "discarding frame without event", "conn", connID)
			continue
		}

		req := &events.Request{
			Session: sess,
			Name:    env.Event,
			Data:    env.Data,
		}
		if env.Ack != nil {
			ack := *env.Ack
			req.Reply = func(payload any) {
				data, err := messaging.EncodeAck(ack, payload)
				if err != nil {
					slog.ErrorContext(ctx, "encoding reply", "conn", connID, "error", err)
					return
				}
				if err := client.write(data); err != nil {
					slog.WarnContext(ctx, "reply write failed", "conn", connID, "error", err)
				}
			}
		}

		l.handler.Dispatch(ctx, req)
	}
}

// clientConn serializes writes to one websocket. Replies and bus deliveries
// come from different goroutines; gorilla allows only one concurrent writer.
type clientConn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (c *clientConn) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, data)
}
