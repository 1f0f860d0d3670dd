package lobby

import (
	"errors"
	"fmt"
	"sync"

	"boardquest/internal/engine"
)

var (
	ErrStarted     = errors.New("game already started")
	ErrSeatTaken   = errors.New("the player seat is taken")
	ErrNoHuman     = errors.New("no player has joined")
	ErrTooManyBots = errors.New("too many bots")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID   string
	Name string
}

// Lobby is a session waiting to start: one human seat plus a bot count.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Human      *PlayerInfo
	Bots       int
	MaxBots    int
	Difficulty engine.Difficulty
	Started    bool
}

// NewLobby creates a new lobby.
func NewLobby(id string) *Lobby {
	return &Lobby{
		ID:         id,
		Bots:       2,
		MaxBots:    5,
		Difficulty: engine.Medium,
	}
}

// Join claims the human seat. Rejoining with the same ID renames the player.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Human != nil && l.Human.ID == id {
		if name != "" {
			l.Human.Name = name
		}
		return nil
	}
	if l.Started {
		return ErrStarted
	}
	if l.Human != nil {
		return ErrSeatTaken
	}
	if name == "" {
		name = "Player"
	}
	l.Human = &PlayerInfo{ID: id, Name: name}
	return nil
}

// Leave frees the seat if id holds it and the game has not started. It
// reports whether the seat was freed.
func (l *Lobby) Leave(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started || l.Human == nil || l.Human.ID != id {
		return false
	}
	l.Human = nil
	return true
}

// Configure sets the number of bots and their difficulty.
func (l *Lobby) Configure(bots int, difficulty string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if bots < 0 || bots > l.MaxBots {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyBots, bots, l.MaxBots)
	}
	if difficulty != "" {
		d, err := engine.ParseDifficulty(difficulty)
		if err != nil {
			return err
		}
		l.Difficulty = d
	}
	l.Bots = bots
	return nil
}

// CanStart returns true once the human seat is filled.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.Started && l.Human != nil
}

// Seating returns the seating order without starting: the human first, then
// the bots. Each call mints fresh bot IDs.
func (l *Lobby) Seating() ([]*engine.Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return nil, ErrStarted
	}
	if l.Human == nil {
		return nil, ErrNoHuman
	}
	players := []*engine.Player{engine.NewPlayer(l.Human.ID, l.Human.Name, engine.Human)}
	for i := 0; i < l.Bots; i++ {
		name := fmt.Sprintf("Bot %d", i+1)
		players = append(players, engine.NewPlayer(engine.NewPlayerID(), name, engine.Bot))
	}
	return players, nil
}

// Start marks the lobby as started. Call it once the game has been built.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if l.Human == nil {
		return ErrNoHuman
	}
	l.Started = true
	return nil
}

// Snapshot returns a copy of the lobby state.
func (l *Lobby) Snapshot() (human *PlayerInfo, bots int, difficulty engine.Difficulty, started bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Human != nil {
		h := *l.Human
		human = &h
	}
	return human, l.Bots, l.Difficulty, l.Started
}
