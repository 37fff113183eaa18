package repository

import (
	"context"

	"github.com/PauloDevelo/tictactoe/internal/entity"
)

// RoomRepository is the registry of live rooms. GetAll returns rooms in
// insertion order. Implementations report misses with
// apperror.ErrRoomNotFound and duplicate ids with
// apperror.ErrRoomAlreadyExists.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetAll(ctx context.Context) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	DeleteByID(ctx context.Context, id string) (bool, error)
}
