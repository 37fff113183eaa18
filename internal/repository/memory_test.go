package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauloDevelo/tictactoe/internal/apperror"
	"github.com/PauloDevelo/tictactoe/internal/entity"
)

func TestMemoryRoomRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Create_Success", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		// Given: a fresh room
		room := entity.NewRoom("ABC123", "Test Room")

		// When: Create is called
		err := repo.Create(ctx, room)

		// Then: no error should be returned, and the room is retrievable
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, room, stored)
	})

	t.Run("Create_DuplicateID", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		// Given: a room already stored under an id
		require.NoError(t, repo.Create(ctx, entity.NewRoom("ABC123", "First")))

		// When: Create is called again with the same id
		err := repo.Create(ctx, entity.NewRoom("ABC123", "Second"))

		// Then: an ErrRoomAlreadyExists error should be returned
		require.ErrorIs(t, err, apperror.ErrRoomAlreadyExists)
	})
}

func TestMemoryRoomRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		// When: GetByID is called with a non-existent id
		room, err := repo.GetByID(ctx, "NOSUCH")

		// Then: an ErrRoomNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
		assert.Nil(t, room)
	})
}

func TestMemoryRoomRepository_Isolation(t *testing.T) {
	ctx := context.Background()

	t.Run("Mutating a returned room leaves the store untouched", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		room := entity.NewRoom("ABC123", "Test Room")
		require.NoError(t, room.AddPlayer(entity.NewPlayer("p1", "Alice", entity.PlayerX)))
		require.NoError(t, repo.Create(ctx, room))

		// When: the room handed back by GetByID is mutated in place
		fetched, err := repo.GetByID(ctx, "ABC123")
		require.NoError(t, err)

		fetched.Status = entity.StatusPlaying
		fetched.GameState.Board[0] = entity.PlayerX
		fetched.Players[0].IsReady = true

		// Then: a fresh read still sees the original state
		stored, err := repo.GetByID(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWaiting, stored.Status)
		assert.Equal(t, entity.EmptyCell, stored.GameState.Board[0])
		assert.False(t, stored.Players[0].IsReady)
	})

	t.Run("Mutating the created room after Create leaves the store untouched", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		room := entity.NewRoom("ABC123", "Test Room")
		require.NoError(t, repo.Create(ctx, room))

		room.Status = entity.StatusFinished

		stored, err := repo.GetByID(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusWaiting, stored.Status)
	})
}

func TestMemoryRoomRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRoomRepository()

	// Given: three rooms created in order
	for _, id := range []string{"AAAAAA", "BBBBBB", "CCCCCC"} {
		require.NoError(t, repo.Create(ctx, entity.NewRoom(id, "room "+id)))
	}

	// When: one is deleted and GetAll is called
	removed, err := repo.DeleteByID(ctx, "BBBBBB")
	require.NoError(t, err)
	require.True(t, removed)

	rooms, err := repo.GetAll(ctx)
	require.NoError(t, err)

	// Then: the remaining rooms come back in insertion order
	require.Len(t, rooms, 2)
	assert.Equal(t, "AAAAAA", rooms[0].ID)
	assert.Equal(t, "CCCCCC", rooms[1].ID)
}

func TestMemoryRoomRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Update_Success", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		room := entity.NewRoom("ABC123", "Test Room")
		require.NoError(t, repo.Create(ctx, room))

		// When: the room status changes and Update is called
		room.Status = entity.StatusPlaying
		require.NoError(t, repo.Update(ctx, room))

		// Then: the stored room reflects the change
		stored, err := repo.GetByID(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPlaying, stored.Status)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		err := repo.Update(ctx, entity.NewRoom("NOSUCH", "ghost"))

		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestMemoryRoomRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteByID_Success", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		require.NoError(t, repo.Create(ctx, entity.NewRoom("ABC123", "Test Room")))

		// When: DeleteByID is called with an existing id
		removed, err := repo.DeleteByID(ctx, "ABC123")

		// Then: the room is gone
		require.NoError(t, err)
		require.True(t, removed)

		_, err = repo.GetByID(ctx, "ABC123")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		repo := NewMemoryRoomRepository()

		removed, err := repo.DeleteByID(ctx, "NOSUCH")

		require.NoError(t, err)
		require.False(t, removed)
	})
}
