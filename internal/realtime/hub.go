package realtime

import (
	"log"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/pawhaven/backend/internal/models"
)

// Event is the JSON frame sent to connected clients. Event names match the
// strings mobile clients subscribe to.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// wsConn is the slice of *websocket.Conn the hub needs. Narrowed so tests
// can join fake connections.
type wsConn interface {
	WriteJSON(v any) error
	Close() error
}

// connection wraps a websocket connection with the identity that owns it
type connection struct {
	conn wsConn
	ref  models.IdentityRef
}

// Hub manages per-identity channels. Rooms are keyed by the full identity
// reference: the stores issue ids independently, so admin #1 and verified
// user #1 are different people with different rooms.
type Hub struct {
	mu        sync.RWMutex
	rooms     map[models.IdentityRef]map[*connection]bool
	upgrader  websocket.Upgrader
	jwtSecret string
}

// NewHub creates a Hub. The secret authenticates upgrade requests carrying
// the same JWT the HTTP API uses.
func NewHub(jwtSecret string) *Hub {
	return &Hub{
		rooms: make(map[models.IdentityRef]map[*connection]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		jwtSecret: jwtSecret,
	}
}

// join adds a connection to its identity's room
func (h *Hub) join(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[c.ref] == nil {
		h.rooms[c.ref] = make(map[*connection]bool)
	}
	h.rooms[c.ref][c] = true
	log.Printf("ws: %s %d joined (sessions: %d)", c.ref.Kind, c.ref.ID, len(h.rooms[c.ref]))
}

// leave removes a connection from its identity's room
func (h *Hub) leave(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[c.ref]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.rooms, c.ref)
		}
	}
}

// Emit sends an event to every session in the recipient's room. At-most-once,
// no acknowledgement: a recipient with no joined session misses the push.
func (h *Hub) Emit(recipient models.IdentityRef, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.rooms[recipient]
	if !ok {
		return
	}

	frame := Event{Event: event, Data: payload}
	for c := range conns {
		if err := c.conn.WriteJSON(frame); err != nil {
			log.Printf("ws: write to %s %d failed: %v", recipient.Kind, recipient.ID, err)
		}
	}
}

// Serve upgrades an HTTP request to a websocket session and keeps it joined
// to the caller's room until the connection drops. Authentication is via the
// token query parameter.
func (h *Hub) Serve(c echo.Context) error {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(c.QueryParam("token"), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := &connection{conn: ws, ref: claims.Ref()}
	h.join(conn)
	defer func() {
		h.leave(conn)
		ws.Close()
	}()

	// Read loop drains client keepalives until the peer goes away.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	return nil
}
