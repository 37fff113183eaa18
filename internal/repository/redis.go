package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/PauloDevelo/tictactoe/internal/apperror"
	"github.com/PauloDevelo/tictactoe/internal/entity"
)

const roomIndexKey = "rooms:index"

type redisRoomRepository struct {
	client *redis.Client
}

// NewRedisRoomRepository returns a room registry backed by redis. Rooms
// are stored as JSON under room:<id>; a list under rooms:index preserves
// insertion order for GetAll.
func NewRedisRoomRepository(client *redis.Client) RoomRepository {
	return &redisRoomRepository{
		client: client,
	}
}

func (that *redisRoomRepository) Create(ctx context.Context, room *entity.Room) error {
	exists, err := that.client.Exists(ctx, roomKey(room.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if exists > 0 {
		return apperror.ErrRoomAlreadyExists
	}

	if err = that.set(ctx, room); err != nil {
		return err
	}

	if err = that.client.RPush(ctx, roomIndexKey, room.ID).Err(); err != nil {
		return fmt.Errorf("failed to index room: %w", err)
	}

	return nil
}

func (that *redisRoomRepository) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	response, err := that.client.Get(ctx, roomKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRoomNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	var room entity.Room
	if err = json.Unmarshal([]byte(response), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

func (that *redisRoomRepository) GetAll(ctx context.Context) ([]*entity.Room, error) {
	ids, err := that.client.LRange(ctx, roomIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list room index: %w", err)
	}

	rooms := make([]*entity.Room, 0, len(ids))
	for _, id := range ids {
		room, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrRoomNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, room)
	}

	return rooms, nil
}

func (that *redisRoomRepository) Update(ctx context.Context, room *entity.Room) error {
	exists, err := that.client.Exists(ctx, roomKey(room.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if exists == 0 {
		return apperror.ErrRoomNotFound
	}

	return that.set(ctx, room)
}

func (that *redisRoomRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	removed, err := that.client.Del(ctx, roomKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	if err = that.client.LRem(ctx, roomIndexKey, 0, id).Err(); err != nil {
		return false, fmt.Errorf("failed to unindex room: %w", err)
	}

	return removed > 0, nil
}

func (that *redisRoomRepository) set(ctx context.Context, room *entity.Room) error {
	roomJSON, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	if err = that.client.Set(ctx, roomKey(room.ID), roomJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func roomKey(id string) string {
	return "room:" + id
}
