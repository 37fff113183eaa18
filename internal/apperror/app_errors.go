package apperror

import "errors"

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomAlreadyExists   = errors.New("room already exists")
	ErrRoomFull            = errors.New("room is full")
	ErrPlayerAlreadyInRoom = errors.New("player already in room")
	ErrPlayerNotFound      = errors.New("player not found in room")
	ErrNotAllPlayersReady  = errors.New("not all players are ready")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrGameNotInProgress   = errors.New("game is not in progress")
)
