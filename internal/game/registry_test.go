package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortspiel/imposter-backend/internal"
)

func seededRegistry(seed int64) *Registry {
	reg := NewRegistry(time.Hour)
	reg.NewRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	return reg
}

func TestGetOrCreateNormalizesCode(t *testing.T) {
	reg := NewRegistry(time.Hour)

	room := reg.GetOrCreate("  abcd ")
	assert.Equal(t, "ABCD", room.Code)
	assert.Equal(t, internal.PhaseLobby, room.Phase)

	same := reg.GetOrCreate("ABCD")
	assert.Same(t, room, same)
	assert.Equal(t, 1, reg.Len())
}

func TestGetOrCreateConcurrentSameCode(t *testing.T) {
	reg := NewRegistry(time.Hour)

	const workers = 32
	rooms := make([]*internal.Room, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rooms[i] = reg.GetOrCreate("race")
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, reg.Len(), "racing joins must create exactly one room")
	for _, room := range rooms {
		assert.Same(t, rooms[0], room)
	}
}

func TestRemove(t *testing.T) {
	reg := NewRegistry(time.Hour)
	reg.GetOrCreate("gone")

	reg.Remove(" gone ")
	_, ok := reg.Get("GONE")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestReapIdleReclaimsStaleRooms(t *testing.T) {
	reg := NewRegistry(time.Minute)

	stale := reg.GetOrCreate("stale")
	conn := &fakeConn{}
	stale.Mu.Lock()
	stale.Players = append(stale.Players, &internal.Player{
		Id: "p1", Name: "Alice", Conn: conn, IsConnected: true,
	})
	stale.LastActive = time.Now().Add(-2 * time.Minute)
	stale.Mu.Unlock()

	fresh := reg.GetOrCreate("fresh")

	reg.reapIdle()

	_, ok := reg.Get("stale")
	assert.False(t, ok, "stale room should be reclaimed")
	assert.True(t, conn.Closed(), "reclaiming must close remaining connections")

	got, ok := reg.Get("fresh")
	require.True(t, ok)
	assert.Same(t, fresh, got)
}
