package game

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/wortspiel/imposter-backend/internal"
)

// Hub wires the registry and match store into connection handling. One hub
// serves every room; per-room serialization happens on the room locks.
type Hub struct {
	Registry *Registry
	Matches  MatchStore

	Upgrader websocket.Upgrader
}

func NewHub(registry *Registry, matches MatchStore) *Hub {
	return &Hub{
		Registry: registry,
		Matches:  matches,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and runs its read loop. The
// connection starts unbound; the first valid join frame binds it to a
// (player, room) pair for its whole lifetime.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HandleWebSocket] Upgrade failed: %v", err)
		return
	}
	h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	var (
		room   *internal.Room
		player *internal.Player
	)
	defer func() {
		conn.Close()
		if room != nil && player != nil {
			h.HandleDisconnect(room, player)
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if player != nil {
				log.Printf("[ReadLoop] Read error for player %s: %v", player.Name, err)
			}
			return
		}

		var env internal.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			// Malformed frames are dropped; the connection stays open.
			log.Printf("[ReadLoop] Dropping malformed frame: %v", err)
			continue
		}

		if env.Type == internal.MsgJoin {
			if player != nil {
				sendError(player, ErrAlreadyJoined)
				continue
			}
			if env.Name == "" || env.Room == "" {
				log.Printf("[ReadLoop] Dropping join frame with missing fields")
				continue
			}
			r0, p0, err := h.HandleJoin(env.Room, env.Name, conn)
			if err != nil {
				writeErrorFrame(conn, err)
				continue
			}
			room, player = r0, p0
			continue
		}

		if player == nil {
			// Action before joining any room.
			writeErrorFrame(conn, ErrUnknownRoom)
			continue
		}

		if err := h.dispatch(room, player, env); err != nil {
			sendError(player, err)
		}
	}
}

// dispatch validates the fields each frame type requires before anything
// reaches the state machine; unrecognized types are dropped.
func (h *Hub) dispatch(room *internal.Room, player *internal.Player, env internal.Envelope) error {
	switch env.Type {
	case internal.MsgStart:
		return h.HandleStart(room, player)

	case internal.MsgSubmitWord:
		if env.PlayerId == "" || env.Word == "" {
			log.Printf("[Dispatch] Room %s: dropping submitWord with missing fields", room.Code)
			return nil
		}
		return h.HandleSubmitWord(room, player, env.PlayerId, env.Word)

	case internal.MsgVote:
		if env.TargetId == "" {
			log.Printf("[Dispatch] Room %s: dropping vote with missing target", room.Code)
			return nil
		}
		return h.HandleVote(room, player, env.TargetId)

	case internal.MsgNextRound:
		return h.HandleNextRound(room, player)

	default:
		log.Printf("[Dispatch] Room %s: dropping unrecognized frame type %q", room.Code, env.Type)
		return nil
	}
}

// writeErrorFrame is for connections not yet bound to a player; only the
// read loop writes here, so no write lock is needed yet.
func writeErrorFrame(conn *websocket.Conn, err error) {
	msg := internal.ErrorMessage{
		Type:    internal.MsgError,
		Code:    ErrorCode(err),
		Message: err.Error(),
	}
	if werr := conn.WriteJSON(msg); werr != nil {
		log.Printf("[WriteErrorFrame] %v", werr)
	}
}
