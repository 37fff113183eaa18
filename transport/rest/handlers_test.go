package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauloDevelo/tictactoe/internal/entity"
	"github.com/PauloDevelo/tictactoe/internal/repository"
	"github.com/PauloDevelo/tictactoe/internal/usecase"
)

func newTestMux(t *testing.T) (*http.ServeMux, *usecase.RoomManager) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewRoomManager(logger, repository.NewMemoryRoomRepository())
	handlers := NewHandlers(logger, manager)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /api/rooms", handlers.GetAllRooms)
	mux.HandleFunc("GET /api/rooms/{roomId}", handlers.GetRoomByID)
	mux.HandleFunc("POST /api/rooms", handlers.CreateRoom)
	mux.HandleFunc("DELETE /api/rooms/{roomId}", handlers.DeleteRoom)

	return mux, manager
}

func TestHandlers_Health(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandlers_CreateRoom(t *testing.T) {
	t.Run("Creates a room with a generated 6-char code", func(t *testing.T) {
		mux, _ := newTestMux(t)

		// When: a room is created over REST
		payload := bytes.NewBufferString(`{"roomName": "  Friday Night  "}`)
		req := httptest.NewRequest(http.MethodPost, "/api/rooms", payload)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		// Then: 201 with the trimmed name and a 6-char id
		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			Success bool        `json:"success"`
			Data    entity.Room `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "Friday Night", body.Data.Name)
		assert.Len(t, body.Data.ID, 6)
		assert.Equal(t, entity.StatusWaiting, body.Data.Status)
	})

	t.Run("Rejects an empty room name", func(t *testing.T) {
		mux, _ := newTestMux(t)

		payload := bytes.NewBufferString(`{"roomName": "   "}`)
		req := httptest.NewRequest(http.MethodPost, "/api/rooms", payload)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Rejects a malformed body", func(t *testing.T) {
		mux, _ := newTestMux(t)

		req := httptest.NewRequest(http.MethodPost, "/api/rooms", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlers_GetRoomByID(t *testing.T) {
	t.Run("Returns the room", func(t *testing.T) {
		mux, manager := newTestMux(t)

		_, err := manager.CreateRoom(context.Background(), "ABC123", "Test Room")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/rooms/ABC123", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data entity.Room `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ABC123", body.Data.ID)
	})

	t.Run("404 for an unknown room", func(t *testing.T) {
		mux, _ := newTestMux(t)

		req := httptest.NewRequest(http.MethodGet, "/api/rooms/NOSUCH", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandlers_GetAllRooms(t *testing.T) {
	mux, manager := newTestMux(t)

	for _, id := range []string{"AAAAAA", "BBBBBB"} {
		_, err := manager.CreateRoom(context.Background(), id, "room "+id)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool          `json:"success"`
		Data    []entity.Room `json:"data"`
		Count   int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "AAAAAA", body.Data[0].ID)
}

func TestHandlers_DeleteRoom(t *testing.T) {
	t.Run("Deletes an existing room", func(t *testing.T) {
		mux, manager := newTestMux(t)

		_, err := manager.CreateRoom(context.Background(), "ABC123", "Test Room")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodDelete, "/api/rooms/ABC123", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		_, err = manager.GetRoom(context.Background(), "ABC123")
		require.Error(t, err)
	})

	t.Run("404 for an unknown room", func(t *testing.T) {
		mux, _ := newTestMux(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/rooms/NOSUCH", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("404 when the room vanishes between lookup and delete", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		handlers := NewHandlers(logger, &vanishingRoomManager{})

		req := httptest.NewRequest(http.MethodDelete, "/api/rooms/ABC123", nil)
		req.SetPathValue("roomId", "ABC123")
		rec := httptest.NewRecorder()
		handlers.DeleteRoom(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var body struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "Room not found", body.Error)
	})
}

// vanishingRoomManager answers the lookup but reports nothing removed on
// delete, as if another caller destroyed the room in between.
type vanishingRoomManager struct{}

func (that *vanishingRoomManager) CreateRoom(_ context.Context, roomID, roomName string) (*entity.Room, error) {
	return entity.NewRoom(roomID, roomName), nil
}

func (that *vanishingRoomManager) GetRoom(_ context.Context, roomID string) (*entity.Room, error) {
	return entity.NewRoom(roomID, "Test Room"), nil
}

func (that *vanishingRoomManager) GetAllRooms(_ context.Context) ([]*entity.Room, error) {
	return nil, nil
}

func (that *vanishingRoomManager) DeleteRoom(_ context.Context, _ string) (bool, error) {
	return false, nil
}
