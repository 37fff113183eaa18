package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Start - starts the HTTP server exposing the room CRUD API and the
// health endpoint.
func Start(logger *slog.Logger, port string, rooms roomManager) error {
	handlers := NewHandlers(logger, rooms)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /api/rooms", handlers.GetAllRooms)
	mux.HandleFunc("GET /api/rooms/{roomId}", handlers.GetRoomByID)
	mux.HandleFunc("POST /api/rooms", handlers.CreateRoom)
	mux.HandleFunc("DELETE /api/rooms/{roomId}", handlers.DeleteRoom)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
