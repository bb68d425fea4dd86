package ws

import (
	"errors"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/vold333/kitchen-order-ticket/internal/auth"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (we validate via JWT)
	},
}

// roomRoles lists the roles allowed to subscribe to each room.
var roomRoles = map[string][]string{
	enum.RoomKitchen: {enum.UserRoleAdmin, enum.UserRoleKitchen, enum.UserRoleWaiter, enum.UserRoleReceptionist},
	enum.RoomCashier: {enum.UserRoleAdmin, enum.UserRoleReceptionist},
}

// Client represents a single WebSocket connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	room string
	send chan []byte
}

// ReadPump pumps messages from the WebSocket connection to the hub
// The application runs ReadPump in a per-connection goroutine
// Kitchen displays and receipt printers only listen, so we just detect disconnects
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Read loop - we just wait for disconnect or errors
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
// The application runs WritePump in a per-connection goroutine
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// admissionError is an HTTP rejection issued before the upgrade.
type admissionError struct {
	status int
	msg    string
}

func (e *admissionError) Error() string { return e.msg }

// admit checks the ?token= JWT and returns the room the caller may join.
func admit(jwtSecret string, r *http.Request) (string, error) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		return "", &admissionError{http.StatusUnauthorized, "missing token"}
	}
	claims, err := auth.ValidateToken(jwtSecret, tokenStr)
	if err != nil {
		return "", &admissionError{http.StatusUnauthorized, "invalid token"}
	}

	room := chi.URLParam(r, "room")
	allowed, ok := roomRoles[room]
	if !ok {
		return "", &admissionError{http.StatusNotFound, "unknown room"}
	}
	if !slices.Contains(allowed, claims.Role) {
		return "", &admissionError{http.StatusForbidden, "room access denied"}
	}
	return room, nil
}

// ServeWS upgrades an authorized request and subscribes it to one room.
// Endpoint: WS /ws/{room}?token=JWT
func ServeWS(hub *Hub, jwtSecret string, w http.ResponseWriter, r *http.Request) {
	room, err := admit(jwtSecret, r)
	if err != nil {
		var ae *admissionError
		if errors.As(err, &ae) {
			http.Error(w, ae.msg, ae.status)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		room: room,
		send: make(chan []byte, 256),
	}
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
