package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PauloDevelo/tictactoe/internal/pkg"
)

// handleCreateRoom - creates a room with a generated code and replies to
// the sender only. The creator still joins explicitly via room:join.
func (that *Server) handleCreateRoom(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	if payload.RoomName == "" {
		that.sendError(c, errors.New("roomName is required"))
		return nil
	}

	room, err := that.manager.CreateRoom(ctx, pkg.GenerateRoomID(), payload.RoomName)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	return c.send(actionRoomCreated, Payload{Room: room})
}

// handleJoinRoom - seats the connection in the room, subscribes it to the
// room channel and notifies everyone already there.
func (that *Server) handleJoinRoom(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	if payload.RoomID == "" {
		that.sendError(c, errors.New("roomId is required"))
		return nil
	}

	playerName := payload.PlayerName
	if playerName == "" {
		playerName = "Player"
	}

	room, err := that.manager.JoinRoom(ctx, payload.RoomID, c.id, playerName)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	that.hub.Join(room.ID, c)

	if err = c.send(actionRoomJoined, Payload{Room: room}); err != nil {
		return err
	}

	that.hub.Broadcast(room.ID, actionRoomUpdated, Payload{Room: room})

	return nil
}

// handleLeaveRoom - vacates the seat. Remaining players see the room reset
// to waiting; an emptied room is gone entirely.
func (that *Server) handleLeaveRoom(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	if payload.RoomID == "" {
		that.sendError(c, errors.New("roomId is required"))
		return nil
	}

	room, err := that.manager.LeaveRoom(ctx, payload.RoomID, c.id)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	that.hub.Leave(payload.RoomID, c.id)

	if err = c.send(actionRoomLeft, Payload{RoomID: payload.RoomID}); err != nil {
		return err
	}

	if len(room.Players) > 0 {
		that.hub.Broadcast(room.ID, actionRoomUpdated, Payload{Room: room})
	}

	return nil
}

func (that *Server) handleListRooms(ctx context.Context, c *client, _ *Message) error {
	rooms, err := that.manager.GetAllRooms(ctx)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	return c.send(actionRoomList, Payload{Rooms: rooms})
}

func (that *Server) handleGetRoom(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	room, err := that.manager.GetRoom(ctx, payload.RoomID)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	return c.send(actionRoomDetails, Payload{Room: room})
}

// handlePlayerReady - flips the sender's ready flag. When the flip makes
// both seated players ready the game starts and the broadcast carries the
// playing state.
func (that *Server) handlePlayerReady(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	if payload.RoomID == "" {
		that.sendError(c, errors.New("roomId is required"))
		return nil
	}

	ready := true
	if payload.Ready != nil {
		ready = *payload.Ready
	}

	room, err := that.manager.SetPlayerReady(ctx, payload.RoomID, c.id, ready)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	that.hub.Broadcast(room.ID, actionRoomUpdated, Payload{Room: room})

	return nil
}

func (that *Server) handleStartGame(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	room, err := that.manager.StartGame(ctx, payload.RoomID)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	that.hub.Broadcast(room.ID, actionGameStarted, Payload{Room: room})
	that.hub.Broadcast(room.ID, actionRoomUpdated, Payload{Room: room})

	return nil
}

// handleMakeMove - applies the sender's move. Everyone in the room sees
// the updated board; a finishing move additionally announces the outcome.
func (that *Server) handleMakeMove(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	if payload.RoomID == "" {
		that.sendError(c, errors.New("roomId is required"))
		return nil
	}

	if payload.Position == nil {
		that.sendError(c, errors.New("position is required"))
		return nil
	}

	room, err := that.manager.MakeMove(ctx, payload.RoomID, c.id, *payload.Position)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	that.hub.Broadcast(room.ID, actionGameMove, Payload{
		Room:     room,
		Position: payload.Position,
		PlayerID: c.id,
	})
	that.hub.Broadcast(room.ID, actionRoomUpdated, Payload{Room: room})

	if room.GameState.IsFinished() {
		that.hub.Broadcast(room.ID, actionGameFinished, Payload{
			Room:        room,
			Winner:      room.GameState.Winner,
			WinningLine: room.GameState.WinningLine,
		})
	}

	return nil
}

// handleResetGame - starts a rematch on a fresh board with the starting
// player alternated from the previous game.
func (that *Server) handleResetGame(ctx context.Context, c *client, message *Message) error {
	payload, err := decodePayload(message)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	room, err := that.manager.ResetGame(ctx, payload.RoomID)
	if err != nil {
		that.sendError(c, err)
		return nil
	}

	that.hub.Broadcast(room.ID, actionGameReset, Payload{Room: room})
	that.hub.Broadcast(room.ID, actionRoomUpdated, Payload{Room: room})

	return nil
}

// handleDisconnect - runs when a connection drops for any reason. The
// seat is vacated exactly as if the player had left on purpose, and the
// remaining player is told who went away.
func (that *Server) handleDisconnect(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleDisconnect", "clientID", c.id)

	roomID, ok := that.hub.RoomOf(c.id)
	if !ok {
		return
	}

	room, err := that.manager.LeaveRoom(ctx, roomID, c.id)
	if err != nil {
		log.Error("failed to vacate seat", "roomID", roomID, "error", err)
	}

	that.hub.Leave(roomID, c.id)

	if err == nil && len(room.Players) > 0 {
		that.hub.Broadcast(roomID, actionPlayerDisconnected, Payload{RoomID: roomID, PlayerID: c.id})
		that.hub.Broadcast(roomID, actionRoomUpdated, Payload{Room: room})
	}
}

func decodePayload(message *Message) (Payload, error) {
	var payload Payload
	if len(message.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return payload, fmt.Errorf("invalid payload: %w", err)
	}

	return payload, nil
}
