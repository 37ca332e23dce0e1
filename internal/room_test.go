package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom(names ...string) *Room {
	r := &Room{
		Code:  "TEST",
		Phase: PhaseLobby,
		Votes: make(map[string]string),
	}
	for i, name := range names {
		r.Players = append(r.Players, &Player{
			Id:          string(rune('a' + i)),
			Name:        name,
			IsConnected: true,
		})
	}
	return r
}

func TestPlayerNamesKeepJoinOrder(t *testing.T) {
	r := testRoom("Alice", "Bob", "Alice")
	assert.Equal(t, []string{"Alice", "Bob", "Alice"}, r.PlayerNames())
}

func TestCurrentTurnAdvances(t *testing.T) {
	r := testRoom("Alice", "Bob", "Carol")
	r.TurnOrder = []string{"a", "b", "c"}

	assert.Equal(t, "a", r.CurrentTurnId())
	assert.True(t, r.IsCurrentTurn("a"))
	assert.False(t, r.IsCurrentTurn("b"))

	r.AdvanceTurn()
	assert.Equal(t, "b", r.CurrentTurnId())
	assert.False(t, r.RoundComplete())

	r.AdvanceTurn()
	r.AdvanceTurn()
	assert.True(t, r.RoundComplete())
	assert.Equal(t, "", r.CurrentTurnId())
	assert.False(t, r.IsCurrentTurn(""))
}

func TestAdvanceTurnSkipsDisconnected(t *testing.T) {
	r := testRoom("Alice", "Bob", "Carol")
	r.TurnOrder = []string{"a", "b", "c"}
	r.Players[1].IsConnected = false

	r.AdvanceTurn()
	assert.Equal(t, "c", r.CurrentTurnId(), "Bob is gone, Carol is next")

	r.AdvanceTurn()
	assert.True(t, r.RoundComplete())
}

func TestSkipDisconnectedAtRoundStart(t *testing.T) {
	r := testRoom("Alice", "Bob")
	r.TurnOrder = []string{"a", "b"}
	r.Players[0].IsConnected = false

	r.ResetRound()
	assert.Equal(t, "b", r.CurrentTurnId())
	assert.Empty(t, r.Turns)
	assert.Empty(t, r.Votes)
}

func TestRecordVoteOverwrites(t *testing.T) {
	r := testRoom("Alice", "Bob")

	r.RecordVote("a", "b")
	r.RecordVote("a", "a")
	require.Len(t, r.Votes, 1, "a re-vote must not count as a second ballot")
	assert.Equal(t, "a", r.Votes["a"])
}

func TestVotingComplete(t *testing.T) {
	r := testRoom("Alice", "Bob", "Carol")

	assert.False(t, r.VotingComplete(), "no votes yet")

	r.RecordVote("a", "b")
	r.RecordVote("b", "a")
	assert.False(t, r.VotingComplete())

	r.RecordVote("c", "b")
	assert.True(t, r.VotingComplete())
}

func TestVotingCompleteExcludesDisconnected(t *testing.T) {
	r := testRoom("Alice", "Bob", "Carol")

	r.RecordVote("a", "b")
	r.RecordVote("b", "a")
	assert.False(t, r.VotingComplete())

	// Carol leaves; the two remaining votes now complete the tally.
	r.Players[2].IsConnected = false
	delete(r.Votes, "c")
	assert.True(t, r.VotingComplete())
}

func TestResolveVotesMajority(t *testing.T) {
	r := testRoom("Alice", "Bob", "Carol")
	r.TurnOrder = []string{"c", "a", "b"}

	r.RecordVote("a", "b")
	r.RecordVote("c", "b")
	r.RecordVote("b", "a")

	assert.Equal(t, "b", r.ResolveVotes())
}

func TestResolveVotesTieBreakFirstInTurnOrder(t *testing.T) {
	r := testRoom("Alice", "Bob", "Carol", "Dave")
	r.TurnOrder = []string{"d", "b", "a", "c"}

	// Two votes each for a and b. b comes first in turn order.
	r.RecordVote("a", "b")
	r.RecordVote("c", "b")
	r.RecordVote("b", "a")
	r.RecordVote("d", "a")

	assert.Equal(t, "b", r.ResolveVotes())
}

func TestTurnEntriesUseDisplayNames(t *testing.T) {
	r := testRoom("Alice", "Bob")
	r.Turns = []Turn{
		{PlayerId: "a", Word: "Frucht"},
		{PlayerId: "b", Word: "Grün"},
	}

	entries := r.TurnEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, TurnEntry{Name: "Alice", Word: "Frucht"}, entries[0])
	assert.Equal(t, TurnEntry{Name: "Bob", Word: "Grün"}, entries[1])
}

func TestWordForMasksImposter(t *testing.T) {
	p := &Player{Id: "a", Name: "Alice"}
	assert.Equal(t, "Kaktus", p.WordFor("Kaktus"))

	p.IsImposter = true
	assert.Equal(t, MaskedWord, p.WordFor("Kaktus"))
}
