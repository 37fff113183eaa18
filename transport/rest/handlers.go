package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PauloDevelo/tictactoe/internal/apperror"
	"github.com/PauloDevelo/tictactoe/internal/entity"
	"github.com/PauloDevelo/tictactoe/internal/pkg"
)

type roomManager interface {
	CreateRoom(ctx context.Context, roomID, roomName string) (*entity.Room, error)
	GetRoom(ctx context.Context, roomID string) (*entity.Room, error)
	GetAllRooms(ctx context.Context) ([]*entity.Room, error)
	DeleteRoom(ctx context.Context, roomID string) (bool, error)
}

type Handlers struct {
	logger *slog.Logger
	rooms  roomManager
}

func NewHandlers(logger *slog.Logger, rooms roomManager) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		rooms:  rooms,
	}
}

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type createRoomRequest struct {
	RoomName string `json:"roomName"`
}

func (that *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (that *Handlers) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := that.rooms.GetAllRooms(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	count := len(rooms)
	writeJSON(w, http.StatusOK, response{Success: true, Data: rooms, Count: &count})
}

func (that *Handlers) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	room, err := that.rooms.GetRoom(r.Context(), r.PathValue("roomId"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: room})
}

func (that *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "invalid request body"})
		return
	}

	roomName := strings.TrimSpace(req.RoomName)
	if roomName == "" {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "room name is required and must be a non-empty string"})
		return
	}

	room, err := that.rooms.CreateRoom(r.Context(), pkg.GenerateRoomID(), roomName)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Success: true, Data: room})
}

func (that *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomId")

	if _, err := that.rooms.GetRoom(r.Context(), roomID); err != nil {
		that.writeError(w, r, err)
		return
	}

	deleted, err := that.rooms.DeleteRoom(r.Context(), roomID)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	// the room can vanish between the lookup and the delete
	if !deleted {
		writeJSON(w, http.StatusNotFound, response{Success: false, Error: "Room not found"})
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "Room deleted successfully"})
}

// writeError maps the domain error taxonomy onto HTTP status codes.
func (that *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		status = http.StatusNotFound
		message = "Room not found"
	case errors.Is(err, apperror.ErrRoomAlreadyExists):
		status = http.StatusBadRequest
		message = err.Error()
	case err != nil:
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		message = err.Error()
	}

	writeJSON(w, status, response{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
