package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/PauloDevelo/tictactoe/internal/apperror"
	"github.com/PauloDevelo/tictactoe/internal/entity"
	"github.com/PauloDevelo/tictactoe/internal/repository"
	"github.com/PauloDevelo/tictactoe/internal/tictactoe"
)

// RoomManager owns the room lifecycle: seating, ready gating, turn
// enforcement and rematches. Every operation reads the room, mutates it
// and writes it back before returning; the returned room is always the
// authoritative post-operation state.
//
// A single mutex serializes all operations. The read-modify-write
// pattern is only safe because no two operations can interleave on the
// same room; one coarse lock is enough at tic-tac-toe scale, where every
// operation is O(board).
type RoomManager struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms repository.RoomRepository
}

func NewRoomManager(logger *slog.Logger, rooms repository.RoomRepository) *RoomManager {
	return &RoomManager{
		logger: logger.With("component", "room-manager"),
		rooms:  rooms,
	}
}

// CreateRoom registers an empty room under the given id.
func (that *RoomManager) CreateRoom(ctx context.Context, roomID, roomName string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room := entity.NewRoom(roomID, roomName)
	if err := that.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room %s: %w", roomID, err)
	}

	that.logger.Info("room created", "roomID", roomID, "roomName", roomName)

	return room, nil
}

func (that *RoomManager) GetRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.getRoom(ctx, roomID)
}

func (that *RoomManager) GetAllRooms(ctx context.Context) ([]*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	rooms, err := that.rooms.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}

func (that *RoomManager) DeleteRoom(ctx context.Context, roomID string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed, err := that.rooms.DeleteByID(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("failed to delete room %s: %w", roomID, err)
	}

	return removed, nil
}

// JoinRoom seats a player. The first player to join takes the mark equal
// to the game's current turn, so a starter alternated by a previous game
// carries over to the first seat; the second player takes the opposite
// mark. The moment the second seat fills, the game starts, ready flags
// notwithstanding.
func (that *RoomManager) JoinRoom(ctx context.Context, roomID, playerID, playerName string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var symbol string
	if len(room.Players) == 0 {
		symbol = room.GameState.CurrentTurn
	} else {
		symbol = tictactoe.ToggleMark(room.Players[0].Symbol)
	}

	if err = room.AddPlayer(entity.NewPlayer(playerID, playerName, symbol)); err != nil {
		return nil, err
	}

	if room.IsFull() {
		room.GameState = tictactoe.StartGame(room.GameState)
		room.Status = entity.StatusPlaying
	}

	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %s: %w", roomID, err)
	}

	that.logger.Info("player joined room",
		"roomID", roomID, "playerID", playerID, "symbol", symbol, "roomStatus", room.Status)

	return room, nil
}

// LeaveRoom unseats a player. An emptied room is destroyed on the spot;
// the returned value then only serves caller notification. A room with
// one player left gets a brand-new game (turn back to X) rather than the
// alternating rematch reset: a departure forfeits the alternation memory.
func (that *RoomManager) LeaveRoom(ctx context.Context, roomID, playerID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.RemovePlayer(playerID)

	if len(room.Players) == 0 {
		if _, err = that.rooms.DeleteByID(ctx, roomID); err != nil {
			return nil, fmt.Errorf("failed to delete room %s: %w", roomID, err)
		}

		that.logger.Info("room destroyed, last player left", "roomID", roomID, "playerID", playerID)

		return room, nil
	}

	room.GameState = entity.NewGameState()
	room.Status = entity.StatusWaiting

	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %s: %w", roomID, err)
	}

	that.logger.Info("player left room", "roomID", roomID, "playerID", playerID)

	return room, nil
}

// SetPlayerReady flips a seat's ready flag. When both seats are filled
// and ready while the room still waits, the game starts; this path is a
// fallback, since JoinRoom already starts the game at capacity.
func (that *RoomManager) SetPlayerReady(ctx context.Context, roomID, playerID string, ready bool) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	player := room.FindPlayer(playerID)
	if player == nil {
		return nil, apperror.ErrPlayerNotFound
	}

	player.IsReady = ready

	switch {
	case room.AllPlayersReady() && room.IsFull() && room.Status == entity.StatusWaiting:
		room.GameState = tictactoe.StartGame(room.GameState)
		room.Status = entity.StatusPlaying
	case !room.AllPlayersReady() && room.Status == entity.StatusReady:
		room.Status = entity.StatusWaiting
	}

	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %s: %w", roomID, err)
	}

	return room, nil
}

// StartGame starts the game explicitly; both seats must be filled and ready.
func (that *RoomManager) StartGame(ctx context.Context, roomID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !room.AllPlayersReady() {
		return nil, apperror.ErrNotAllPlayersReady
	}

	room.GameState = tictactoe.StartGame(room.GameState)
	room.Status = entity.StatusPlaying

	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %s: %w", roomID, err)
	}

	that.logger.Info("game started", "roomID", roomID)

	return room, nil
}

// MakeMove validates the move against seating and turn order, then lets
// the board engine apply it.
func (that *RoomManager) MakeMove(ctx context.Context, roomID, playerID string, position int) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status != entity.StatusPlaying {
		return nil, apperror.ErrGameNotInProgress
	}

	player := room.FindPlayer(playerID)
	if player == nil {
		return nil, apperror.ErrPlayerNotFound
	}

	if room.GameState.CurrentTurn != player.Symbol {
		return nil, apperror.ErrNotYourTurn
	}

	room.GameState = tictactoe.ApplyMove(room.GameState, position, player.Symbol)

	if room.GameState.IsFinished() {
		room.Status = entity.StatusFinished
	}

	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %s: %w", roomID, err)
	}

	return room, nil
}

// ResetGame rolls the room into a rematch: the starting mark alternates,
// seats are re-aligned so the new starter sits first, ready flags clear,
// and with both players still present the next game begins immediately.
func (that *RoomManager) ResetGame(ctx context.Context, roomID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	gameState := tictactoe.ResetGame(room.GameState)
	room.Players = tictactoe.ReconcileSymbols(room.Players, gameState.CurrentTurn)

	if room.IsFull() {
		gameState = tictactoe.StartGame(gameState)
		room.Status = entity.StatusPlaying
	} else {
		room.Status = entity.StatusWaiting
	}

	room.GameState = gameState

	for _, player := range room.Players {
		player.IsReady = false
	}

	if err = that.rooms.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %s: %w", roomID, err)
	}

	that.logger.Info("game reset", "roomID", roomID, "startingPlayer", room.GameState.CurrentTurn)

	return room, nil
}

func (that *RoomManager) getRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	room, err := that.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", roomID, err)
	}

	return room, nil
}
