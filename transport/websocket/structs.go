package websocket

import (
	"encoding/json"

	"github.com/PauloDevelo/tictactoe/internal/entity"
)

// Inbound intents.
const (
	actionRoomCreate  = "room:create"
	actionRoomJoin    = "room:join"
	actionRoomLeave   = "room:leave"
	actionRoomList    = "room:list"
	actionRoomGet     = "room:get"
	actionPlayerReady = "player:ready"
	actionGameStart   = "game:start"
	actionGameMove    = "game:move"
	actionGameReset   = "game:reset"
)

// Outbound notifications.
const (
	actionConnect            = "connect"
	actionRoomCreated        = "room:created"
	actionRoomJoined         = "room:joined"
	actionRoomLeft           = "room:left"
	actionRoomDetails        = "room:details"
	actionRoomUpdated        = "room:updated"
	actionGameStarted        = "game:started"
	actionGameFinished       = "game:finished"
	actionPlayerDisconnected = "player:disconnected"
	actionError              = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries both request fields and response fields; unused fields
// stay absent on the wire.
type Payload struct {
	Room        *entity.Room   `json:"room,omitempty"`
	Rooms       []*entity.Room `json:"rooms,omitempty"`
	RoomID      string         `json:"roomId,omitempty"`
	RoomName    string         `json:"roomName,omitempty"`
	PlayerID    string         `json:"playerId,omitempty"`
	PlayerName  string         `json:"playerName,omitempty"`
	Ready       *bool          `json:"ready,omitempty"`
	Position    *int           `json:"position,omitempty"`
	Winner      string         `json:"winner,omitempty"`
	WinningLine []int          `json:"winningLine,omitempty"`
	Message     string         `json:"message,omitempty"`
}
