package game

import "errors"

// Rejections local to one action. None of these mutate room state and none
// are fatal to the process; they travel back to the sender as an "error"
// frame.
var (
	ErrUnknownRoom    = errors.New("no such room, join first")
	ErrAlreadyJoined  = errors.New("connection is already bound to a room")
	ErrPhaseViolation = errors.New("action not valid in the current phase")
	ErrNoPlayers      = errors.New("cannot start a round without players")
	ErrOutOfTurn      = errors.New("not this player's turn")
	ErrPlayerMismatch = errors.New("playerId does not belong to this connection")
	ErrUnknownTarget  = errors.New("vote target is not a player in this room")
)

// ErrorCode maps a rejection to its wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownRoom):
		return "unknownRoom"
	case errors.Is(err, ErrAlreadyJoined):
		return "alreadyJoined"
	case errors.Is(err, ErrPhaseViolation):
		return "phaseViolation"
	case errors.Is(err, ErrNoPlayers):
		return "noPlayers"
	case errors.Is(err, ErrOutOfTurn):
		return "outOfTurn"
	case errors.Is(err, ErrPlayerMismatch):
		return "playerMismatch"
	case errors.Is(err, ErrUnknownTarget):
		return "unknownTarget"
	default:
		return "internal"
	}
}
