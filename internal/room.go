package internal

import "time"

// Methods (Room struct). Callers hold room.Mu.

func (r *Room) PlayerById(id string) *Player {
	for _, p := range r.Players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// PlayerNames returns display names in join order, duplicates included.
func (r *Room) PlayerNames() []string {
	names := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		names = append(names, p.Name)
	}
	return names
}

func (r *Room) ConnectedCount() int {
	count := 0
	for _, p := range r.Players {
		if p.IsConnected {
			count++
		}
	}
	return count
}

func (r *Room) Touch() {
	r.LastActive = time.Now()
}

// =============================================================================
// TURN SEQUENCING
// =============================================================================

// CurrentTurnId returns the id of the player whose turn it is, or "" once
// the round is complete.
func (r *Room) CurrentTurnId() string {
	if r.TurnIndex >= len(r.TurnOrder) {
		return ""
	}
	return r.TurnOrder[r.TurnIndex]
}

func (r *Room) IsCurrentTurn(playerId string) bool {
	return playerId != "" && r.CurrentTurnId() == playerId
}

// AdvanceTurn moves the turn pointer forward, skipping over players who
// disconnected mid-game.
func (r *Room) AdvanceTurn() {
	r.TurnIndex++
	r.SkipDisconnected()
}

// SkipDisconnected advances the pointer past departed players without
// consuming anyone else's turn.
func (r *Room) SkipDisconnected() {
	for r.TurnIndex < len(r.TurnOrder) {
		p := r.PlayerById(r.TurnOrder[r.TurnIndex])
		if p != nil && p.IsConnected {
			return
		}
		r.TurnIndex++
	}
}

func (r *Room) RoundComplete() bool {
	return r.TurnIndex >= len(r.TurnOrder)
}

// TurnEntries maps the accepted submissions to their wire shape.
func (r *Room) TurnEntries() []TurnEntry {
	entries := make([]TurnEntry, 0, len(r.Turns))
	for _, t := range r.Turns {
		name := t.PlayerId
		if p := r.PlayerById(t.PlayerId); p != nil {
			name = p.Name
		}
		entries = append(entries, TurnEntry{Name: name, Word: t.Word})
	}
	return entries
}

// ResetRound clears per-round state for another round with the same word
// and imposter.
func (r *Room) ResetRound() {
	r.Turns = nil
	r.TurnIndex = 0
	r.Votes = make(map[string]string)
	r.SkipDisconnected()
}

// =============================================================================
// VOTE TALLY
// =============================================================================

// RecordVote stores or overwrites the voter's choice. Re-votes are
// idempotent with respect to completion counting.
func (r *Room) RecordVote(voterId, targetId string) {
	if r.Votes == nil {
		r.Votes = make(map[string]string)
	}
	r.Votes[voterId] = targetId
}

// VotingComplete reports whether every connected player has a recorded
// vote. Votes of players who disconnected are discarded on disconnect, so
// counting map entries from connected voters is exact.
func (r *Room) VotingComplete() bool {
	voters := 0
	for voterId := range r.Votes {
		if p := r.PlayerById(voterId); p != nil && p.IsConnected {
			voters++
		}
	}
	return voters > 0 && voters >= r.ConnectedCount()
}

// ResolveVotes derives per-target counts from the recorded votes and
// returns the suspect id. Tie-break: the first target in turn order to
// reach the maximum count wins.
func (r *Room) ResolveVotes() string {
	counts := make(map[string]int)
	for _, targetId := range r.Votes {
		counts[targetId]++
	}

	suspectId := ""
	best := 0
	for _, id := range r.TurnOrder {
		if counts[id] > best {
			best = counts[id]
			suspectId = id
		}
	}
	return suspectId
}
