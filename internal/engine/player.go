package engine

import "github.com/google/uuid"

// PlayerKind distinguishes the human seat from automated opponents.
type PlayerKind int

const (
	Human PlayerKind = iota
	Bot
)

var playerKindNames = map[PlayerKind]string{
	Human: "human",
	Bot:   "bot",
}

func (k PlayerKind) String() string {
	if s, ok := playerKindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k PlayerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Player holds one player's position and turn counters.
type Player struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Kind PlayerKind `json:"kind"`
	Tile int        `json:"tile"`

	TurnsToSkip       int  `json:"turns_to_skip"`
	RepeatTurnPending bool `json:"repeat_turn_pending"`

	// set while an effect card moves the player; landing must not resolve the tile
	silenced bool
}

func NewPlayer(id, name string, kind PlayerKind) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Kind: kind,
	}
}

// NewPlayerID returns a fresh random player ID.
func NewPlayerID() string {
	return uuid.NewString()
}

func (p *Player) IsBot() bool {
	return p.Kind == Bot
}

// Silenced reports whether tile resolution is currently suppressed for p.
func (p *Player) Silenced() bool {
	return p.silenced
}
