// Package ws delivers notifications to connected users over WebSocket using
// gorilla/websocket.
//
// Clients connect authenticated, so every connection is registered under a
// user ID. PushToUser targets that user's open connections; Broadcast goes
// to everyone.
//
//	var NotificationHub = ws.NewHub()
//	func init() { go NotificationHub.Run() }
//
//	// In the route handler, after auth:
//	ws.Upgrade(w, r, NotificationHub, userID.Hex())
//
//	// From a service:
//	NotificationHub.PushToUser(userID.Hex(), payload)
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aurigalabs/storefront/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // inbound frames are acks only, keep them small
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ─── Client ───────────────────────────────────────────────────────────────────

// Client is a single WebSocket connection belonging to one user. A user with
// two open tabs has two clients.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// readPump drains the connection so pings and close frames are processed.
// Inbound payloads are ignored; this channel is push-only.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// ─── Hub ──────────────────────────────────────────────────────────────────────

type userMessage struct {
	userID string
	data   []byte
}

// Hub maintains all active connections indexed by user and routes pushes to
// the right sockets. All state is owned by the Run goroutine.
type Hub struct {
	byUser     map[string]map[*Client]bool
	Broadcast  chan []byte // send to every connected client
	direct     chan userMessage
	register   chan *Client
	unregister chan *Client
	counts     chan chan int
}

// NewHub creates a new Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		byUser:     make(map[string]map[*Client]bool),
		Broadcast:  make(chan []byte, 256),
		direct:     make(chan userMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		counts:     make(chan chan int),
	}
}

// PushToUser queues payload for every open connection of the given user.
// A user with no connections drops the payload silently; the stored
// notification is still there when they next fetch.
func (h *Hub) PushToUser(userID string, payload []byte) {
	select {
	case h.direct <- userMessage{userID: userID, data: payload}:
	default:
		// Hub backlogged — drop the live push.
	}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			logger.Info("ws: client connected", "user_id", client.userID)

		case client := <-h.unregister:
			if clients, ok := h.byUser[client.userID]; ok && clients[client] {
				delete(clients, client)
				close(client.send)
				if len(clients) == 0 {
					delete(h.byUser, client.userID)
				}
				logger.Info("ws: client disconnected", "user_id", client.userID)
			}

		case msg := <-h.Broadcast:
			for _, clients := range h.byUser {
				for client := range clients {
					h.deliver(client, msg)
				}
			}

		case msg := <-h.direct:
			for client := range h.byUser[msg.userID] {
				h.deliver(client, msg.data)
			}

		case reply := <-h.counts:
			n := 0
			for _, clients := range h.byUser {
				n += len(clients)
			}
			reply <- n
		}
	}
}

func (h *Hub) deliver(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		close(client.send)
		delete(h.byUser[client.userID], client)
		if len(h.byUser[client.userID]) == 0 {
			delete(h.byUser, client.userID)
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	h.counts <- reply
	return <-reply
}

// ─── Upgrade ─────────────────────────────────────────────────────────────────

// Upgrade upgrades an HTTP connection to a WebSocket and registers the
// resulting client under userID.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), userID: userID}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
