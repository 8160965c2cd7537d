// Package realtime owns the websocket connection registry. Connections are
// keyed by user id, registered on connect and deregistered on disconnect;
// sends to absent users are silently dropped — the persisted notification
// record is the durable signal.
package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Message types pushed to clients.
const (
	TypeNewBooking     = "new-booking"
	TypeBookingUpdated = "booking-updated"
	TypeNotification   = "notification"
)

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
	Time int64  `json:"time"`
}

func NewMessage(msgType string, data any) Message {
	return Message{Type: msgType, Data: data, Time: time.Now().Unix()}
}

// Client is one websocket connection belonging to a user.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan Message
	hub    *Hub
}

// Hub maintains the set of active clients per user.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run drives register/unregister. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true
	log.Printf("[Hub] user %d connected (%d connections)", client.UserID, len(h.clients[client.UserID]))
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.UserID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send)
			if len(clients) == 0 {
				delete(h.clients, client.UserID)
			}
			log.Printf("[Hub] user %d disconnected", client.UserID)
		}
	}
}

// SendToUser delivers a message to every connection the user has. Returns
// false when the user has no active connection.
func (h *Hub) SendToUser(userID uint, msg Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.clients[userID]
	if !ok || len(clients) == 0 {
		return false
	}
	for client := range clients {
		select {
		case client.Send <- msg:
		default:
			// slow consumer, drop the message rather than block
		}
	}
	return true
}

// NewClient wires a connection into the hub and starts its pumps.
func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan Message, 16),
		hub:    hub,
	}
	hub.Register(client)
	go client.writePump()
	go client.readPump()
	return client
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; it exists to detect disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
