package internal

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// MaskedWord is what the imposter sees instead of the secret word.
	MaskedWord = "???"

	MinPlayersToStart = 1
)

type GamePhase string

const (
	PhaseLobby    GamePhase = "lobby"
	PhaseTurns    GamePhase = "turns"
	PhaseDecision GamePhase = "decision"
	PhaseDone     GamePhase = "done"
)

// Conn is the transport side of a player connection. *websocket.Conn
// satisfies it; tests substitute an in-memory recorder.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type Player struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	IsImposter bool   `json:"-"`

	Conn        Conn `json:"-"`
	IsConnected bool `json:"-"`

	// Guards writes to Conn, gorilla connections do not allow
	// concurrent writers.
	Mu sync.Mutex `json:"-"`
}

// Turn is one accepted word submission.
type Turn struct {
	PlayerId string `json:"playerId"`
	Word     string `json:"word"`
}

type Room struct {
	// Code is the normalized room code (uppercase, trimmed). The code a
	// player typed is only used for matching, never re-displayed.
	Code string

	// Players in join order. Entries are never reordered; mid-game leavers
	// are flagged IsConnected=false instead of removed so ids stay stable.
	Players []*Player

	Phase      GamePhase
	Word       string
	ImposterId string

	// Round state. TurnOrder is fixed at round start as a permutation of
	// the player ids present at that moment; TurnIndex == len(TurnOrder)
	// marks round completion.
	TurnOrder []string
	TurnIndex int
	Turns     []Turn

	// Votes keeps exactly one recorded choice per voter id. Target counts
	// are derived at resolution, never accumulated, so a re-vote is an
	// overwrite and not a second ballot.
	Votes map[string]string

	LastActive time.Time

	// Rng drives word, imposter and order selection. Injected by the
	// registry so tests can fix the seed.
	Rng *rand.Rand

	// Mu serializes every mutation of this room. Each operation holds it
	// for the whole read-modify-write; broadcasts happen after release on
	// a snapshot.
	Mu sync.Mutex
}

// Response is the envelope for plain HTTP endpoints.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
