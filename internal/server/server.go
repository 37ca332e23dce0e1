package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/wortspiel/imposter-backend/internal/database"
	"github.com/wortspiel/imposter-backend/internal/game"
)

const (
	defaultPort    = 8080
	defaultIdleTTL = 30 * time.Minute
	janitorPeriod  = time.Minute
)

type Server struct {
	port int

	db       database.Service
	registry *game.Registry
	hub      *game.Hub
}

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = defaultPort
	}

	idleTTL := defaultIdleTTL
	if raw := os.Getenv("ROOM_IDLE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			idleTTL = parsed
		}
	}

	db := database.New()
	registry := game.NewRegistry(idleTTL)

	s := &Server{
		port:     port,
		db:       db,
		registry: registry,
		hub:      game.NewHub(registry, db),
	}

	// Idle-room reclamation runs for the life of the process, independent
	// of the per-room action path.
	go registry.Janitor(context.Background(), janitorPeriod)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
