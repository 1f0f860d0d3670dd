package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand/v2"
	"sync/atomic"
)

var (
	ErrEmptyBoard      = errors.New("board has no tiles")
	ErrInvalidStorage  = errors.New("max storage must be positive")
	ErrInvalidDieRange = errors.New("die range must satisfy 1 <= min <= max")
	ErrInvalidAccuracy = errors.New("bot accuracy must be within [0, 1]")
	ErrNoPlayers       = errors.New("game needs at least one player")
	ErrNoGateway       = errors.New("human players need a decision gateway")
	ErrInvalidIndex    = errors.New("invalid inventory index")
	ErrInventoryFull   = errors.New("inventory is full")
	ErrUnknownEffect   = errors.New("unknown effect kind")
	ErrTurnInProgress  = errors.New("a turn is already in progress")
)

// Deps are the collaborators a Game is wired with.
type Deps struct {
	Decks   *Decks    // nil means no content: every draw is unavailable
	Effects *Resolver // nil means every effect card is a no-op
	Gateway Gateway   // required when any player is human
	Mover   Mover     // nil moves tokens with a BoardMover
	Rand    *rand.Rand
	Logger  *log.Logger
	Sink    EventSink
}

// Game is the turn scheduler: it owns the players, the turn cursor and the
// state machine, and drives every collaborator from a single goroutine.
type Game struct {
	Players   []*Player  `json:"players"`
	Board     *Board     `json:"-"`
	Decks     *Decks     `json:"-"`
	Effects   *Resolver  `json:"-"`
	Inventory *Inventory `json:"-"`
	Config    GameConfig `json:"-"`

	State   TurnState `json:"state"`
	Current int       `json:"current"` // index into Players
	Turn    int       `json:"turn"`    // scheduler passes so far

	gateway  Gateway
	mover    Mover
	rng      *rand.Rand
	log      *log.Logger
	sink     EventSink
	inFlight atomic.Bool
}

// NewGame validates the configuration and wires a game. Configuration
// problems are reported here and never later.
func NewGame(players []*Player, config GameConfig, deps Deps) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	board, err := NewBoard(config.Board)
	if err != nil {
		return nil, err
	}
	inv, err := NewInventory(config.MaxStorage)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if !p.IsBot() && deps.Gateway == nil {
			return nil, ErrNoGateway
		}
		p.Tile = board.Wrap(p.Tile)
	}

	g := &Game{
		Players:   players,
		Board:     board,
		Decks:     deps.Decks,
		Effects:   deps.Effects,
		Inventory: inv,
		Config:    config,
		State:     StateIdle,
		gateway:   deps.Gateway,
		mover:     deps.Mover,
		rng:       deps.Rand,
		log:       deps.Logger,
		sink:      deps.Sink,
	}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	if g.Decks == nil {
		g.Decks = NewDecks(nil, nil, nil, g.rng)
	}
	if g.Effects == nil {
		g.Effects = NewResolver()
	}
	if g.mover == nil {
		g.mover = BoardMover{Board: board}
	}
	if g.log == nil {
		g.log = log.Default()
	}
	inv.log = g.log
	return g, nil
}

// DiscardLogger is handy for tests and headless runs.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// CurrentPlayer returns the player whose slot is up.
func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.Current]
}

// Move relocates p by steps; negative steps retreat. In ModeSilent the
// player's tile trigger is suppressed for the duration of the mover call and
// the landed tile is not resolved. In ModeNormal the landed tile is resolved,
// and a wrong trivia answer there undoes exactly this move.
func (g *Game) Move(ctx context.Context, p *Player, steps int, mode Mode) (int, error) {
	if steps == 0 {
		return p.Tile, nil
	}
	silent := mode == ModeSilent
	from := p.Tile

	prev := p.silenced
	if silent {
		p.silenced = true
	}
	var (
		tile int
		err  error
	)
	if steps > 0 {
		tile, err = g.mover.Advance(ctx, p, steps, silent)
	} else {
		tile, err = g.mover.Retreat(ctx, p, -steps, silent)
	}
	p.silenced = prev
	if err != nil {
		return p.Tile, err
	}

	g.emit(Event{Type: EventMoved, Player: p.ID, Data: map[string]interface{}{
		"from": from, "to": tile, "steps": steps, "silent": silent,
	}})
	if silent {
		return tile, nil
	}
	return tile, g.resolveTile(ctx, p, steps)
}

func (g *Game) storedMode() Mode {
	if g.Config.StoredMovesTrigger {
		return ModeNormal
	}
	return ModeSilent
}

func (g *Game) emit(ev Event) {
	if g.sink != nil {
		g.sink(ev)
	}
}

func (g *Game) setState(s TurnState, p *Player) {
	g.State = s
	id := ""
	if p != nil {
		id = p.ID
	}
	g.emit(Event{Type: EventPhaseChange, Player: id, Data: map[string]interface{}{
		"state": s.String(),
	}})
}

// sync publishes a snapshot so presentation never reads live state.
func (g *Game) sync() {
	g.emit(Event{Type: EventStateSync, Data: g.PublicView()})
}

// isCancel separates context errors, which end the run, from per-turn
// anomalies that are logged and absorbed.
func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// PublicViewData is the game state visible to every client.
type PublicViewData struct {
	State   TurnState          `json:"state"`
	Turn    int                `json:"turn"`
	Current string             `json:"current"`
	Board   []Tile             `json:"board"`
	Players []PublicPlayerData `json:"players"`
}

type PublicPlayerData struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Kind              PlayerKind          `json:"kind"`
	Tile              int                 `json:"tile"`
	TurnsToSkip       int                 `json:"turns_to_skip"`
	RepeatTurnPending bool                `json:"repeat_turn_pending"`
	Cards             []EffectCard        `json:"cards"`
	Pending           *PendingReplacement `json:"pending,omitempty"`
}

func (g *Game) PublicView() PublicViewData {
	pv := PublicViewData{
		State:   g.State,
		Turn:    g.Turn,
		Current: g.CurrentPlayer().ID,
		Board:   g.Board.Tiles(),
	}
	for _, p := range g.Players {
		pv.Players = append(pv.Players, PublicPlayerData{
			ID:                p.ID,
			Name:              p.Name,
			Kind:              p.Kind,
			Tile:              p.Tile,
			TurnsToSkip:       p.TurnsToSkip,
			RepeatTurnPending: p.RepeatTurnPending,
			Cards:             g.Inventory.Cards(p),
			Pending:           g.Inventory.Pending(p),
		})
	}
	return pv
}
