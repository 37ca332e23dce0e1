package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/wortspiel/imposter-backend/internal"
	"github.com/wortspiel/imposter-backend/internal/utils"
)

// Registry owns every live room. It is constructed at server start and
// injected into the connection handlers; nothing reaches it as ambient
// global state.
type Registry struct {
	rooms map[string]*internal.Room
	mu    sync.RWMutex

	// IdleTTL is how long a room may sit without activity before the
	// janitor reclaims it.
	IdleTTL time.Duration

	// NewRand supplies the per-room random source for word, order and
	// imposter selection. Tests swap in fixed seeds.
	NewRand func() *rand.Rand
}

func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		rooms:   make(map[string]*internal.Room),
		IdleTTL: idleTTL,
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// GetOrCreate returns the room for the normalized code, creating it in
// lobby phase on first join. Exactly one room exists per normalized code
// even when two joins race.
func (reg *Registry) GetOrCreate(code string) *internal.Room {
	code = utils.NormalizeRoomCode(code)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, exists := reg.rooms[code]; exists {
		return room
	}

	room := &internal.Room{
		Code:       code,
		Phase:      internal.PhaseLobby,
		Votes:      make(map[string]string),
		LastActive: time.Now(),
		Rng:        reg.NewRand(),
	}
	reg.rooms[code] = room

	log.Printf("[Registry] Created room %s", code)
	return room
}

func (reg *Registry) Get(code string) (*internal.Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[utils.NormalizeRoomCode(code)]
	return room, ok
}

func (reg *Registry) Remove(code string) {
	code = utils.NormalizeRoomCode(code)
	reg.mu.Lock()
	if _, exists := reg.rooms[code]; exists {
		delete(reg.rooms, code)
		log.Printf("[Registry] Removed room %s", code)
	}
	reg.mu.Unlock()
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// Janitor reclaims idle rooms on a timer, off the action-serialization
// path. It runs until ctx is cancelled.
func (reg *Registry) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.reapIdle()
		}
	}
}

func (reg *Registry) reapIdle() {
	if reg.IdleTTL <= 0 {
		return
	}

	reg.mu.RLock()
	rooms := make([]*internal.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	for _, room := range rooms {
		room.Mu.Lock()
		idle := time.Since(room.LastActive) > reg.IdleTTL
		var conns []internal.Conn
		if idle {
			for _, p := range room.Players {
				if p.IsConnected && p.Conn != nil {
					conns = append(conns, p.Conn)
				}
			}
		}
		room.Mu.Unlock()

		if !idle {
			continue
		}

		log.Printf("[Janitor] Reclaiming idle room %s (last active %s)",
			room.Code, room.LastActive.Format(time.RFC3339))
		reg.Remove(room.Code)
		for _, conn := range conns {
			if err := conn.Close(); err != nil {
				log.Printf("[Janitor] Room %s: error closing connection: %v", room.Code, err)
			}
		}
	}
}
