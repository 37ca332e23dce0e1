package game

import (
	"log"

	"github.com/wortspiel/imposter-backend/internal"
)

// SafeBroadcastToRoom delivers msg to every connected player. The player
// list is snapshotted under the room lock, writes happen outside it, and a
// broken connection is logged and skipped without failing the caller.
func SafeBroadcastToRoom(room *internal.Room, msg any) {
	room.Mu.Lock()
	players := make([]*internal.Player, 0, len(room.Players))
	for _, p := range room.Players {
		if p.IsConnected {
			players = append(players, p)
		}
	}
	room.Mu.Unlock()

	for _, p := range players {
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[Broadcast][Room:%s] Failed for player %s (%s): %v",
				room.Code, p.Id, p.Name, err)
			continue
		}
	}
}

// SendToPlayer writes a single individualized message.
func SendToPlayer(room *internal.Room, p *internal.Player, msg any) {
	if err := p.SafeWriteJSON(msg); err != nil {
		log.Printf("[SendToPlayer][Room:%s] Failed for player %s (%s): %v",
			room.Code, p.Id, p.Name, err)
	}
}

func sendError(p *internal.Player, err error) {
	msg := internal.ErrorMessage{
		Type:    internal.MsgError,
		Code:    ErrorCode(err),
		Message: err.Error(),
	}
	if werr := p.SafeWriteJSON(msg); werr != nil {
		log.Printf("[SendError] Failed for player %s (%s): %v", p.Id, p.Name, werr)
	}
}
