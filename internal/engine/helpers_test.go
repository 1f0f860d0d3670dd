package engine_test

import (
	"context"
	"sync"
	"testing"

	"boardquest/internal/engine"
	"boardquest/internal/engine/effects"
)

// scriptGateway answers from fixed queues. An empty queue gives the
// conservative default: roll the minimum, pick option 1, discard, cancel.
type scriptGateway struct {
	rolls   []int
	trivia  []int
	store   []bool
	replace []int
	confirm []bool
	use     []int

	calls map[string]int
	seen  [][]engine.EffectCard // cards shown at each replacement choice
}

func (s *scriptGateway) hit(name string) {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
}

func (s *scriptGateway) AskDieRoll(ctx context.Context, p *engine.Player, die engine.DieRange) (int, error) {
	s.hit("roll")
	if len(s.rolls) == 0 {
		return die.Min, nil
	}
	v := s.rolls[0]
	s.rolls = s.rolls[1:]
	return v, nil
}

func (s *scriptGateway) AskTrivia(ctx context.Context, p *engine.Player, card engine.QuestionCard) (int, error) {
	s.hit("trivia")
	if len(s.trivia) == 0 {
		return 1, nil
	}
	v := s.trivia[0]
	s.trivia = s.trivia[1:]
	return v, nil
}

func (s *scriptGateway) AskStoreOrDiscard(ctx context.Context, p *engine.Player, card engine.EffectCard) (bool, error) {
	s.hit("store")
	if len(s.store) == 0 {
		return false, nil
	}
	v := s.store[0]
	s.store = s.store[1:]
	return v, nil
}

func (s *scriptGateway) AskAcknowledgePenalty(ctx context.Context, p *engine.Player, card engine.EffectCard) error {
	s.hit("ack")
	return nil
}

func (s *scriptGateway) AskReplacementChoice(ctx context.Context, p *engine.Player, current []engine.EffectCard, incoming engine.EffectCard) (int, error) {
	s.hit("replace")
	s.seen = append(s.seen, current)
	if len(s.replace) == 0 {
		return engine.CancelChoice, nil
	}
	v := s.replace[0]
	s.replace = s.replace[1:]
	return v, nil
}

func (s *scriptGateway) AskConfirmReplacement(ctx context.Context, p *engine.Player, slot int, current, incoming engine.EffectCard) (bool, error) {
	s.hit("confirm")
	if len(s.confirm) == 0 {
		return false, nil
	}
	v := s.confirm[0]
	s.confirm = s.confirm[1:]
	return v, nil
}

func (s *scriptGateway) AskUseCard(ctx context.Context, p *engine.Player, cards []engine.EffectCard) (int, error) {
	s.hit("use")
	if len(s.use) == 0 {
		return engine.CancelChoice, nil
	}
	v := s.use[0]
	s.use = s.use[1:]
	return v, nil
}

// recorder collects emitted events.
type recorder struct {
	mu     sync.Mutex
	events []engine.Event
}

func (r *recorder) sink(ev engine.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(t engine.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// neutralBoard returns n neutral tiles with overrides applied.
func neutralBoard(n int, overrides map[int]engine.Tile) []engine.Tile {
	tiles := make([]engine.Tile, n)
	for i, t := range overrides {
		tiles[i] = t
	}
	return tiles
}

type fixture struct {
	game *engine.Game
	gw   *scriptGateway
	rec  *recorder
}

func newFixture(t *testing.T, players []*engine.Player, cfg engine.GameConfig, decks *engine.Decks) *fixture {
	t.Helper()
	f := &fixture{gw: &scriptGateway{}, rec: &recorder{}}
	g, err := engine.NewGame(players, cfg, engine.Deps{
		Decks:   decks,
		Effects: effects.NewResolver(),
		Gateway: f.gw,
		Rand:    engine.NewRand(42),
		Logger:  engine.DiscardLogger(),
		Sink:    f.rec.sink,
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	f.game = g
	return f
}

func testConfig(board []engine.Tile) engine.GameConfig {
	cfg := engine.DefaultConfig()
	cfg.Board = board
	return cfg
}

func human(id string) *engine.Player {
	return engine.NewPlayer(id, "Player "+id, engine.Human)
}

func bot(id string) *engine.Player {
	return engine.NewPlayer(id, "Bot "+id, engine.Bot)
}

func benefit(name string, kind engine.EffectKind) engine.EffectCard {
	return engine.EffectCard{Name: name, Kind: kind, Intent: engine.IntentBenefit}
}
