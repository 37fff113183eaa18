package websocket

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// client is one connected browser. Writes are serialized per connection;
// gorilla allows only one concurrent writer.
type client struct {
	id   string
	conn *websocket.Conn

	mu sync.Mutex
}

func (that *client) send(action string, payload Payload) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn.WriteJSON(Message{
		Action:  action,
		Payload: mustMarshal(payload),
	})
}

// Hub owns the room channels (which connections receive a room's
// broadcasts) and the connection-to-room index used for disconnect
// cleanup. It knows nothing about game rules.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	rooms       map[string]map[string]*client
	clientRooms map[string]string
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "hub"),
		rooms:       make(map[string]map[string]*client),
		clientRooms: make(map[string]string),
	}
}

// Join subscribes a connection to a room channel and records the
// connection-to-room index entry.
func (that *Hub) Join(roomID string, c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.rooms[roomID] == nil {
		that.rooms[roomID] = make(map[string]*client)
	}

	that.rooms[roomID][c.id] = c
	that.clientRooms[c.id] = roomID
}

// Leave unsubscribes a connection from a room channel and drops its
// index entry. Empty channels are removed.
func (that *Hub) Leave(roomID, clientID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms[roomID], clientID)
	if len(that.rooms[roomID]) == 0 {
		delete(that.rooms, roomID)
	}

	delete(that.clientRooms, clientID)
}

// RoomOf reports which room a connection currently occupies, if any.
func (that *Hub) RoomOf(clientID string) (string, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	roomID, ok := that.clientRooms[clientID]

	return roomID, ok
}

// Broadcast sends a notification to every connection in a room channel.
func (that *Hub) Broadcast(roomID, action string, payload Payload) {
	that.mu.RLock()
	clients := make([]*client, 0, len(that.rooms[roomID]))
	for _, c := range that.rooms[roomID] {
		clients = append(clients, c)
	}
	that.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(action, payload); err != nil {
			that.logger.Error("failed to broadcast", "roomID", roomID, "clientID", c.id, "error", err)
		}
	}
}
