package protocol

import "boardquest/internal/engine"

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgEvent       = "event"
	MsgPrompt      = "prompt"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgConfigure = "configure"
	MsgStartGame = "start_game"
	MsgAnswer    = "answer"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID     string        `json:"game_id"`
	Players    []LobbyPlayer `json:"players"`
	Bots       int           `json:"bots"`
	MaxBots    int           `json:"max_bots"`
	Difficulty string        `json:"difficulty"`
	Started    bool          `json:"started"`
	CanStart   bool          `json:"can_start"`
}

type LobbyPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinMsg claims the human seat.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ConfigureMsg sets the bot count and difficulty before the game starts.
type ConfigureMsg struct {
	Bots       int    `json:"bots"`
	Difficulty string `json:"difficulty"`
}

// PromptKind names the decision a prompt asks for.
type PromptKind string

const (
	PromptDieRoll            PromptKind = "die_roll"
	PromptTrivia             PromptKind = "trivia"
	PromptStoreOrDiscard     PromptKind = "store_or_discard"
	PromptAcknowledgePenalty PromptKind = "acknowledge_penalty"
	PromptReplacementChoice  PromptKind = "replacement_choice"
	PromptConfirmReplacement PromptKind = "confirm_replacement"
	PromptUseCard            PromptKind = "use_card"
)

// Prompt asks the human player for one decision. ID must be echoed back in
// the answer; answers to any other ID are ignored.
type Prompt struct {
	ID       uint64               `json:"id"`
	Kind     PromptKind           `json:"kind"`
	PlayerID string               `json:"player_id"`
	Die      *engine.DieRange     `json:"die,omitempty"`
	Question *engine.QuestionCard `json:"question,omitempty"`
	Card     *engine.EffectCard   `json:"card,omitempty"`
	Cards    []engine.EffectCard  `json:"cards,omitempty"`
	Slot     int                  `json:"slot,omitempty"`
	Current  *engine.EffectCard   `json:"current,omitempty"`
}

// AnswerMsg resolves a prompt. Value carries numeric answers (die value,
// option 1-3, slot index or -1); Accept carries yes/no answers.
type AnswerMsg struct {
	PromptID uint64 `json:"prompt_id"`
	Value    int    `json:"value"`
	Accept   bool   `json:"accept"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
