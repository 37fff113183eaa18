package repository

import (
	"context"
	"sync"

	"github.com/PauloDevelo/tictactoe/internal/apperror"
	"github.com/PauloDevelo/tictactoe/internal/entity"
)

type memoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
	order []string
}

// NewMemoryRoomRepository returns the default in-process room registry.
// Rooms live for the lifetime of the process only. Rooms cross the
// repository boundary as deep copies in both directions, so a caller can
// never mutate stored state, and a room handed out earlier can never be
// torn by a later operation while the caller is still reading it.
func NewMemoryRoomRepository() RoomRepository {
	return &memoryRoomRepository{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *memoryRoomRepository) Create(_ context.Context, room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[room.ID]; ok {
		return apperror.ErrRoomAlreadyExists
	}

	that.rooms[room.ID] = room.Clone()
	that.order = append(that.order, room.ID)

	return nil
}

func (that *memoryRoomRepository) GetByID(_ context.Context, id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room.Clone(), nil
}

func (that *memoryRoomRepository) GetAll(_ context.Context) ([]*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, id := range that.order {
		rooms = append(rooms, that.rooms[id].Clone())
	}

	return rooms, nil
}

func (that *memoryRoomRepository) Update(_ context.Context, room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[room.ID]; !ok {
		return apperror.ErrRoomNotFound
	}

	that.rooms[room.ID] = room.Clone()

	return nil
}

func (that *memoryRoomRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[id]; !ok {
		return false, nil
	}

	delete(that.rooms, id)

	for i, roomID := range that.order {
		if roomID == id {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}

	return true, nil
}
