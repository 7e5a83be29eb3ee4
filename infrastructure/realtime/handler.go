package realtime

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
	"webchat/services"
	"webchat/sink"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades requests to WebSocket connections bound to the chat service.
type Handler struct {
	log        *slog.Logger
	service    services.IChatService
	upgrader   websocket.Upgrader
	bufferSize int
	location   *time.Location

	mu          sync.Mutex
	connections map[string]*Connection
}

func NewHandler(log *slog.Logger, service services.IChatService, allowedOrigin string,
	bufferSize int, location *time.Location) *Handler {
	return &Handler{
		log:     log,
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return AllowOrigin(allowedOrigin, r.Header.Get("Origin"))
			},
		},
		bufferSize:  bufferSize,
		location:    location,
		connections: make(map[string]*Connection),
	}
}

// AllowOrigin accepts everything for "*", requests without an Origin
// header, and otherwise an exact match.
func AllowOrigin(allowed, origin string) bool {
	return allowed == "*" || origin == "" || origin == allowed
}

// ServeHTTP blocks for the lifetime of the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already answered with an HTTP error
		h.log.Debug("Upgrade failed", "error", err)
		return
	}
	id := uuid.NewString()
	c := &Connection{
		id:       id,
		log:      h.log.With("connection_id", id),
		conn:     conn,
		sink:     sink.NewConnectionSink(h.bufferSize),
		service:  h.service,
		location: h.location,
	}
	c.log.Debug("Connection opened", "remote", r.RemoteAddr)

	h.track(c)
	defer h.forget(c)

	go c.writePump()
	c.readPump(r.Context())
}

// Close asks every open connection to close. Their read pumps then
// unregister them from the rooms.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.connections {
		c.sink.Close()
	}
}

// Open reports the number of live connections.
func (h *Handler) Open() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

func (h *Handler) track(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.id] = c
}

func (h *Handler) forget(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, c.id)
}
