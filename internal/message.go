package internal

// Wire frames. One JSON object per websocket frame, discriminated by the
// flat "type" field, matching what the clients already speak.

const (
	MsgJoin       = "join"
	MsgStart      = "start"
	MsgSubmitWord = "submitWord"
	MsgVote       = "vote"
	MsgNextRound  = "nextRound"

	MsgLobbyUpdate = "lobbyUpdate"
	MsgGameStart   = "gameStart"
	MsgTurnUpdate  = "turnUpdate"
	MsgGameOver    = "gameOver"
	MsgError       = "error"
)

// Envelope is the superset of every client->server frame. The dispatch
// layer validates the fields required for each type before any of it
// reaches game logic.
type Envelope struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	Room     string `json:"room,omitempty"`
	PlayerId string `json:"playerId,omitempty"`
	Word     string `json:"word,omitempty"`
	TargetId string `json:"targetId,omitempty"`
}

type LobbyUpdate struct {
	Type    string   `json:"type"`
	Players []string `json:"players"`
}

// GameStart is individualized per recipient: the imposter gets MaskedWord,
// everyone else the real word.
type GameStart struct {
	Type        string   `json:"type"`
	Word        string   `json:"word"`
	YourId      string   `json:"yourId"`
	Order       []string `json:"order"`
	CurrentTurn string   `json:"currentTurn"`
}

type TurnEntry struct {
	Name string `json:"name"`
	Word string `json:"word"`
}

type TurnUpdate struct {
	Type        string      `json:"type"`
	Turns       []TurnEntry `json:"turns"`
	CurrentTurn string      `json:"currentTurn,omitempty"`
	AllowVoting bool        `json:"allowVoting,omitempty"`
}

type GameOver struct {
	Type         string `json:"type"`
	Imposter     bool   `json:"imposter"`
	RealImposter string `json:"realImposter"`
}

// ErrorMessage goes to the offending sender only, never broadcast.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
