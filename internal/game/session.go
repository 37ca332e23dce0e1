package game

import (
	"context"
	"log"
	"time"

	"github.com/wortspiel/imposter-backend/internal"
	"github.com/wortspiel/imposter-backend/internal/utils"
)

// MatchStore records finished games. Room state itself is never persisted;
// only the terminal result of a round, best effort.
type MatchStore interface {
	SaveMatch(ctx context.Context, m MatchResult) error
}

type MatchResult struct {
	RoomCode     string
	Word         string
	ImposterName string
	Caught       bool
	Players      int
	Votes        int
}

// =============================================================================
// ROOM SESSION STATE MACHINE
//
// Every operation takes the room lock for its whole read-modify-write,
// snapshots the outbound messages, releases the lock and only then sends.
// Two players acting "simultaneously" are therefore observed as a strict
// sequence per room, while different rooms never contend.
// =============================================================================

// HandleJoin binds a new player to the room for code, creating the room on
// first join. Valid only while the room is in lobby phase.
func (h *Hub) HandleJoin(code, name string, conn internal.Conn) (*internal.Room, *internal.Player, error) {
	room := h.Registry.GetOrCreate(code)

	room.Mu.Lock()
	if room.Phase != internal.PhaseLobby {
		room.Mu.Unlock()
		return nil, nil, ErrPhaseViolation
	}

	player := &internal.Player{
		Id:          utils.GenerateID(),
		Name:        name,
		Conn:        conn,
		IsConnected: true,
	}
	room.Players = append(room.Players, player)
	room.Touch()

	update := internal.LobbyUpdate{
		Type:    internal.MsgLobbyUpdate,
		Players: room.PlayerNames(),
	}
	room.Mu.Unlock()

	log.Printf("[HandleJoin] Room %s: player %s (%s) joined, %d in lobby",
		room.Code, player.Id, player.Name, len(update.Players))

	SafeBroadcastToRoom(room, update)
	return room, player, nil
}

// HandleStart begins a round: secret word, shuffled turn order and imposter
// are all drawn from the room's injected random source, then every player
// gets an individualized gameStart.
func (h *Hub) HandleStart(room *internal.Room, player *internal.Player) error {
	room.Mu.Lock()
	if room.Phase != internal.PhaseLobby {
		room.Mu.Unlock()
		return ErrPhaseViolation
	}
	if len(room.Players) < internal.MinPlayersToStart {
		room.Mu.Unlock()
		return ErrNoPlayers
	}

	room.Word = Words[room.Rng.Intn(len(Words))]

	order := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		order = append(order, p.Id)
	}
	room.Rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	room.TurnOrder = order
	room.ImposterId = order[room.Rng.Intn(len(order))]

	for _, p := range room.Players {
		p.IsImposter = p.Id == room.ImposterId
	}

	room.Turns = nil
	room.TurnIndex = 0
	room.Votes = make(map[string]string)
	room.Phase = internal.PhaseTurns
	room.Touch()

	orderNames := make([]string, 0, len(order))
	for _, id := range order {
		orderNames = append(orderNames, room.PlayerById(id).Name)
	}
	firstName := orderNames[0]

	type delivery struct {
		player *internal.Player
		msg    internal.GameStart
	}
	deliveries := make([]delivery, 0, len(room.Players))
	for _, p := range room.Players {
		deliveries = append(deliveries, delivery{
			player: p,
			msg: internal.GameStart{
				Type:        internal.MsgGameStart,
				Word:        p.WordFor(room.Word),
				YourId:      p.Id,
				Order:       orderNames,
				CurrentTurn: firstName,
			},
		})
	}
	room.Mu.Unlock()

	log.Printf("[HandleStart] Room %s: round started with %d players, first turn %s",
		room.Code, len(deliveries), firstName)

	for _, d := range deliveries {
		SendToPlayer(room, d.player, d.msg)
	}
	return nil
}

// HandleSubmitWord accepts the current player's word and advances the turn
// pointer. Anyone else is rejected without touching room state.
func (h *Hub) HandleSubmitWord(room *internal.Room, player *internal.Player, playerId, word string) error {
	room.Mu.Lock()
	if room.Phase != internal.PhaseTurns {
		room.Mu.Unlock()
		return ErrPhaseViolation
	}
	if playerId != player.Id {
		room.Mu.Unlock()
		return ErrPlayerMismatch
	}
	if !room.IsCurrentTurn(player.Id) {
		room.Mu.Unlock()
		return ErrOutOfTurn
	}

	room.Turns = append(room.Turns, internal.Turn{PlayerId: player.Id, Word: word})
	room.AdvanceTurn()
	room.Touch()

	update := internal.TurnUpdate{
		Type:  internal.MsgTurnUpdate,
		Turns: room.TurnEntries(),
	}
	if room.RoundComplete() {
		room.Phase = internal.PhaseDecision
		update.AllowVoting = true
	} else {
		update.CurrentTurn = room.PlayerById(room.CurrentTurnId()).Name
	}
	total := len(room.TurnOrder)
	room.Mu.Unlock()

	log.Printf("[HandleSubmitWord] Room %s: %s submitted %q, %d/%d turns",
		room.Code, player.Name, word, len(update.Turns), total)

	SafeBroadcastToRoom(room, update)
	return nil
}

// HandleVote records or overwrites the voter's choice. Once every connected
// player has voted the round resolves exactly once.
func (h *Hub) HandleVote(room *internal.Room, player *internal.Player, targetId string) error {
	room.Mu.Lock()
	if room.Phase != internal.PhaseDecision {
		room.Mu.Unlock()
		return ErrPhaseViolation
	}
	if room.PlayerById(targetId) == nil {
		room.Mu.Unlock()
		return ErrUnknownTarget
	}

	room.RecordVote(player.Id, targetId)
	room.Touch()

	if !room.VotingComplete() {
		room.Mu.Unlock()
		return nil
	}

	msg, result := h.resolveLocked(room)
	room.Mu.Unlock()

	SafeBroadcastToRoom(room, msg)
	h.recordMatch(result)
	return nil
}

// resolveLocked finishes the round. Caller holds room.Mu and guarantees
// VotingComplete; phase flips to done so a second resolution is impossible.
func (h *Hub) resolveLocked(room *internal.Room) (internal.GameOver, MatchResult) {
	suspectId := room.ResolveVotes()
	caught := suspectId == room.ImposterId
	imposterName := ""
	if p := room.PlayerById(room.ImposterId); p != nil {
		imposterName = p.Name
	}
	room.Phase = internal.PhaseDone

	log.Printf("[Resolve] Room %s: suspect %s, imposter was %s, caught=%t",
		room.Code, suspectId, imposterName, caught)

	msg := internal.GameOver{
		Type:         internal.MsgGameOver,
		Imposter:     caught,
		RealImposter: imposterName,
	}
	result := MatchResult{
		RoomCode:     room.Code,
		Word:         room.Word,
		ImposterName: imposterName,
		Caught:       caught,
		Players:      len(room.Players),
		Votes:        len(room.Votes),
	}
	return msg, result
}

func (h *Hub) recordMatch(result MatchResult) {
	if h.Matches == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Matches.SaveMatch(ctx, result); err != nil {
			log.Printf("[RecordMatch] Room %s: failed to save result: %v", result.RoomCode, err)
		}
	}()
}

// HandleNextRound restarts turn-taking with the same word and imposter, an
// early-restart path out of the decision phase.
func (h *Hub) HandleNextRound(room *internal.Room, player *internal.Player) error {
	room.Mu.Lock()
	if room.Phase != internal.PhaseDecision {
		room.Mu.Unlock()
		return ErrPhaseViolation
	}

	room.ResetRound()
	room.Phase = internal.PhaseTurns
	room.Touch()

	update := internal.TurnUpdate{
		Type:  internal.MsgTurnUpdate,
		Turns: []internal.TurnEntry{},
	}
	if room.RoundComplete() {
		// Everyone in the turn order has disconnected.
		room.Phase = internal.PhaseDecision
		update.AllowVoting = true
	} else {
		update.CurrentTurn = room.PlayerById(room.CurrentTurnId()).Name
	}
	room.Mu.Unlock()

	log.Printf("[HandleNextRound] Room %s: restarted by %s", room.Code, player.Name)

	SafeBroadcastToRoom(room, update)
	return nil
}

// HandleDisconnect processes a transport-level disconnect through the same
// per-room serialization point as every game action. Lobby leavers are
// removed outright; mid-game leavers are kept but flagged, skipped in the
// turn order and excluded from the voter-completion count.
func (h *Hub) HandleDisconnect(room *internal.Room, player *internal.Player) {
	room.Mu.Lock()
	player.IsConnected = false
	delete(room.Votes, player.Id)
	room.Touch()

	var update any
	switch room.Phase {
	case internal.PhaseLobby:
		for i, p := range room.Players {
			if p.Id == player.Id {
				room.Players = append(room.Players[:i], room.Players[i+1:]...)
				break
			}
		}
		update = internal.LobbyUpdate{
			Type:    internal.MsgLobbyUpdate,
			Players: room.PlayerNames(),
		}

	case internal.PhaseTurns:
		if room.IsCurrentTurn(player.Id) {
			room.SkipDisconnected()
			turnUpdate := internal.TurnUpdate{
				Type:  internal.MsgTurnUpdate,
				Turns: room.TurnEntries(),
			}
			if room.RoundComplete() {
				room.Phase = internal.PhaseDecision
				turnUpdate.AllowVoting = true
			} else {
				turnUpdate.CurrentTurn = room.PlayerById(room.CurrentTurnId()).Name
			}
			update = turnUpdate
		}

	case internal.PhaseDecision:
		// The leaver may have been the last holdout.
		if room.ConnectedCount() > 0 && room.VotingComplete() {
			msg, result := h.resolveLocked(room)
			room.Mu.Unlock()
			SafeBroadcastToRoom(room, msg)
			h.recordMatch(result)
			h.removeIfEmpty(room)
			return
		}
	}

	empty := room.ConnectedCount() == 0
	phase := room.Phase
	room.Mu.Unlock()

	log.Printf("[HandleDisconnect] Room %s: player %s (%s) left during %s",
		room.Code, player.Id, player.Name, phase)

	if update != nil {
		SafeBroadcastToRoom(room, update)
	}
	if empty {
		h.Registry.Remove(room.Code)
	}
}

func (h *Hub) removeIfEmpty(room *internal.Room) {
	room.Mu.Lock()
	empty := room.ConnectedCount() == 0
	room.Mu.Unlock()
	if empty {
		h.Registry.Remove(room.Code)
	}
}
