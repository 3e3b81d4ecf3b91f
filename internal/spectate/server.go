package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// NewRouter serves the spectator API backed by hub.
func NewRouter(hub *Hub) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/health", healthHandler(hub)).Methods("GET")
	router.HandleFunc("/api/game", gameHandler(hub)).Methods("GET")
	router.HandleFunc("/ws", hub.ServeWS).Methods("GET")
	return router
}

func healthHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"status":     "ok",
			"spectators": hub.ClientCount(),
		}
		if snap, ok := hub.Latest(); ok {
			resp["gameId"] = snap.GameID
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func gameHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := hub.Latest()
		if !ok {
			http.Error(w, "No game in progress", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	}
}

// Server is the spectator HTTP server.
type Server struct {
	hub *Hub
	srv *http.Server
}

func NewServer(host string, port int, hub *Hub) *Server {
	return &Server{
		hub: hub,
		srv: &http.Server{
			Addr:        fmt.Sprintf("%s:%d", host, port),
			Handler:     NewRouter(hub),
			ReadTimeout: 15 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
	}
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("Starting spectator server")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("spectator server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down spectator server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectator server forced to shutdown: %w", err)
	}
	log.Info().Msg("Spectator server exited")
	return nil
}
