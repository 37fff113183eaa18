package entity

import (
	"time"

	"github.com/PauloDevelo/tictactoe/internal/apperror"
)

const MaxPlayersPerRoom = 2

// Room is the matchmaking unit: up to two seated players and exactly one
// game. Players are kept in join order; the order implies first/second seat.
type Room struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Players    []*Player `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	GameState  GameState `json:"gameState"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewRoom(id, name string) *Room {
	return &Room{
		ID:         id,
		Name:       name,
		Players:    []*Player{},
		MaxPlayers: MaxPlayersPerRoom,
		GameState:  NewGameState(),
		Status:     StatusWaiting,
		CreatedAt:  time.Now(),
	}
}

// AddPlayer seats a player, preserving join order.
func (that *Room) AddPlayer(player *Player) error {
	if that.IsFull() {
		return apperror.ErrRoomFull
	}

	if that.FindPlayer(player.ID) != nil {
		return apperror.ErrPlayerAlreadyInRoom
	}

	that.Players = append(that.Players, player)

	return nil
}

// RemovePlayer unseats the player with the given id; it reports whether
// anyone was actually removed.
func (that *Room) RemovePlayer(playerID string) bool {
	for i, player := range that.Players {
		if player.ID == playerID {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return true
		}
	}

	return false
}

func (that *Room) FindPlayer(playerID string) *Player {
	for _, player := range that.Players {
		if player.ID == playerID {
			return player
		}
	}

	return nil
}

// Clone returns a deep copy: players and the winning line are copied so
// the clone shares no mutable state with the original.
func (that *Room) Clone() *Room {
	clone := *that

	clone.Players = make([]*Player, len(that.Players))
	for i, player := range that.Players {
		copied := *player
		clone.Players[i] = &copied
	}

	if that.GameState.WinningLine != nil {
		clone.GameState.WinningLine = append([]int(nil), that.GameState.WinningLine...)
	}

	return &clone
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= that.MaxPlayers
}

func (that *Room) AllPlayersReady() bool {
	if len(that.Players) != that.MaxPlayers {
		return false
	}

	for _, player := range that.Players {
		if !player.IsReady {
			return false
		}
	}

	return true
}
