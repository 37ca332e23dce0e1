package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"

	"github.com/wortspiel/imposter-backend/internal/game"
)

// Service exposes the database surface the server needs: liveness for the
// health endpoint and best-effort match history for finished games.
type Service interface {
	Health() map[string]string

	SaveMatch(ctx context.Context, m game.MatchResult) error

	Close() error
}

type service struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

var (
	database   = os.Getenv("GAME_DB_DATABASE")
	password   = os.Getenv("GAME_DB_PASSWORD")
	username   = os.Getenv("GAME_DB_USERNAME")
	port       = os.Getenv("GAME_DB_PORT")
	host       = os.Getenv("GAME_DB_HOST")
	schema     = os.Getenv("GAME_DB_SCHEMA")
	dbInstance *service
)

func New() Service {
	// Reuse connection
	if dbInstance != nil {
		return dbInstance
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		username, password, host, port, database, schema)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatal(err)
	}
	dbInstance = &service{db: db}
	return dbInstance
}

// Health returns connection liveness and pool statistics. A down database
// never takes the game server with it; rooms live entirely in memory.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	return stats
}

func (s *service) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS match_history (
				id            BIGSERIAL PRIMARY KEY,
				room_code     TEXT        NOT NULL,
				word          TEXT        NOT NULL,
				imposter_name TEXT        NOT NULL,
				caught        BOOLEAN     NOT NULL,
				players       INT         NOT NULL,
				votes         INT         NOT NULL,
				finished_at   TIMESTAMPTZ NOT NULL DEFAULT now()
			)`)
	})
	return s.schemaErr
}

// SaveMatch appends one finished game to match_history.
func (s *service) SaveMatch(ctx context.Context, m game.MatchResult) error {
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_history (room_code, word, imposter_name, caught, players, votes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.RoomCode, m.Word, m.ImposterName, m.Caught, m.Players, m.Votes)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (s *service) Close() error {
	log.Printf("Disconnected from database: %s", database)
	return s.db.Close()
}
