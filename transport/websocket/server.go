package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/PauloDevelo/tictactoe/internal/entity"
)

type roomManager interface {
	CreateRoom(ctx context.Context, roomID, roomName string) (*entity.Room, error)
	GetRoom(ctx context.Context, roomID string) (*entity.Room, error)
	GetAllRooms(ctx context.Context) ([]*entity.Room, error)

	JoinRoom(ctx context.Context, roomID, playerID, playerName string) (*entity.Room, error)
	LeaveRoom(ctx context.Context, roomID, playerID string) (*entity.Room, error)
	SetPlayerReady(ctx context.Context, roomID, playerID string, ready bool) (*entity.Room, error)
	StartGame(ctx context.Context, roomID string) (*entity.Room, error)
	MakeMove(ctx context.Context, roomID, playerID string, position int) (*entity.Room, error)
	ResetGame(ctx context.Context, roomID string) (*entity.Room, error)
}

// Server is the realtime gateway: it turns inbound client intents into
// room manager calls and fans the resulting room state out to every
// connection in the room's channel.
type Server struct {
	logger  *slog.Logger
	manager roomManager
	hub     *Hub

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, c *client, message *Message) error
}

func New(logger *slog.Logger, manager roomManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		hub:     NewHub(logger),

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[actionRoomCreate] = server.handleCreateRoom
	server.handlers[actionRoomJoin] = server.handleJoinRoom
	server.handlers[actionRoomLeave] = server.handleLeaveRoom
	server.handlers[actionRoomList] = server.handleListRooms
	server.handlers[actionRoomGet] = server.handleGetRoom
	server.handlers[actionPlayerReady] = server.handlePlayerReady
	server.handlers[actionGameStart] = server.handleStartGame
	server.handlers[actionGameMove] = server.handleMakeMove
	server.handlers[actionGameReset] = server.handleResetGame

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.ServeWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeWS upgrades the connection and runs its read loop until the
// client goes away; the disconnect path then cleans up any seat the
// connection still holds.
func (that *Server) ServeWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
	}

	defer conn.Close()

	log.Info("client connected", "clientID", c.id)

	// the connection id doubles as the player id for seating
	if err = c.send(actionConnect, Payload{PlayerID: c.id}); err != nil {
		log.Error("failed to send connect message", "clientID", c.id, "error", err)
		return
	}

	that.handleMessages(ctx, c)
	that.handleDisconnect(ctx, c)

	log.Info("client disconnected", "clientID", c.id)
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages", "clientID", c.id)

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(c, fmt.Errorf("unknown action %q", message.Action))
			continue
		}

		if err := handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// sendError relays a failure to the originating connection only; other
// connections and rooms never see it.
func (that *Server) sendError(c *client, err error) {
	if sendErr := c.send(actionError, Payload{Message: err.Error()}); sendErr != nil {
		that.logger.Error("failed to send error response", "clientID", c.id, "error", sendErr)
	}
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
