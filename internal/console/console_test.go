package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"boardquest/internal/engine"
)

func TestMatch(t *testing.T) {
	words := []string{"store", "discard", "cancel"}
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"store", "store", true},
		{"  STORE ", "store", true},
		{"dis", "discard", true},
		{"sotre", "store", true},
		{"discrad", "discard", true},
		{"cancle", "cancel", true},
		{"banana", "", false},
		{"", "", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		got, ok := match(tt.in, words)
		if got != tt.want || ok != tt.ok {
			t.Errorf("match(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClassifyPrefersExactShortWords(t *testing.T) {
	if got := classify("n", yesWords, noWords); got != 1 {
		t.Errorf("n: got %d, want no", got)
	}
	if got := classify("y", yesWords, noWords); got != 0 {
		t.Errorf("y: got %d, want yes", got)
	}
	if got := classify("yess", yesWords, noWords); got != 0 {
		t.Errorf("yess: got %d, want yes", got)
	}
}

// typist feeds one line per open prompt, the way a person at a terminal
// would. The first early lines arrive before any prompt is shown.
type typist struct {
	g     atomic.Pointer[Gateway]
	lines []string
	early int
	last  uint64
}

func (ty *typist) Read(p []byte) (int, error) {
	if len(ty.lines) == 0 {
		return 0, io.EOF
	}
	if ty.early > 0 {
		ty.early--
	} else if !ty.awaitPrompt() {
		return 0, io.EOF
	}
	n := copy(p, ty.lines[0]+"\n")
	ty.lines = ty.lines[1:]
	return n, nil
}

// awaitPrompt waits for a prompt the previous line did not answer.
func (ty *typist) awaitPrompt() bool {
	for deadline := time.Now().Add(2 * time.Second); time.Now().Before(deadline); time.Sleep(time.Millisecond) {
		g := ty.g.Load()
		if g == nil {
			continue
		}
		if token := g.prompt.Live(); token != 0 && token != ty.last {
			ty.last = token
			return true
		}
	}
	return false
}

func startTyping(ty *typist) (*Gateway, *bytes.Buffer) {
	var out bytes.Buffer
	g := New(ty, &out, engine.NewRand(1))
	ty.g.Store(g)
	return g, &out
}

func newTestGateway(lines ...string) (*Gateway, *bytes.Buffer) {
	return startTyping(&typist{lines: lines})
}

var player = engine.NewPlayer("p1", "Ada", engine.Human)

func TestAskDieRoll(t *testing.T) {
	g, out := newTestGateway("", "4")
	ctx := context.Background()
	die := engine.DefaultDie()

	v, err := g.AskDieRoll(ctx, player, die)
	if err != nil || !die.Contains(v) {
		t.Fatalf("enter should roll: %d, %v", v, err)
	}
	if v, err = g.AskDieRoll(ctx, player, die); err != nil || v != 4 {
		t.Fatalf("typed value: %d, %v", v, err)
	}
	if !strings.Contains(out.String(), "press enter to roll") {
		t.Errorf("prompt missing: %q", out.String())
	}
}

func TestAskTrivia(t *testing.T) {
	card := engine.QuestionCard{Prompt: "Capital of France?", Options: [3]string{"Lyon", "Paris", "Nice"}, Answer: 2}
	g, out := newTestGateway("7", "what", "parsi", "3")
	ctx := context.Background()

	v, err := g.AskTrivia(ctx, player, card)
	if err != nil || v != 2 {
		t.Fatalf("fuzzy option: %d, %v", v, err)
	}
	if !strings.Contains(out.String(), "Pick 1, 2 or 3.") {
		t.Error("invalid answers should be re-asked")
	}
	if v, err = g.AskTrivia(ctx, player, card); err != nil || v != 3 {
		t.Fatalf("numeric option: %d, %v", v, err)
	}
}

func TestAskStoreAndConfirm(t *testing.T) {
	g, _ := newTestGateway("keep", "discrad", "maybe", "no", "yes")
	ctx := context.Background()
	card := engine.EffectCard{Name: "Hop"}

	if keep, err := g.AskStoreOrDiscard(ctx, player, card); err != nil || !keep {
		t.Fatalf("keep: %v, %v", keep, err)
	}
	if keep, err := g.AskStoreOrDiscard(ctx, player, card); err != nil || keep {
		t.Fatalf("discard: %v, %v", keep, err)
	}
	if ok, err := g.AskConfirmReplacement(ctx, player, 0, card, card); err != nil || ok {
		t.Fatalf("confirm no: %v, %v", ok, err)
	}
	if ok, err := g.AskConfirmReplacement(ctx, player, 0, card, card); err != nil || !ok {
		t.Fatalf("confirm yes: %v, %v", ok, err)
	}
}

func TestAskSlots(t *testing.T) {
	g, _ := newTestGateway("2", "cancel", "", "9")
	ctx := context.Background()
	cards := []engine.EffectCard{{Name: "A"}, {Name: "B"}}

	tests := []int{1, engine.CancelChoice, engine.CancelChoice, 8}
	for i, want := range tests {
		var (
			got int
			err error
		)
		if i%2 == 0 {
			got, err = g.AskReplacementChoice(ctx, player, cards, engine.EffectCard{Name: "C"})
		} else {
			got, err = g.AskUseCard(ctx, player, cards)
		}
		if err != nil || got != want {
			t.Errorf("answer %d: got %d, %v; want %d", i, got, err, want)
		}
	}
}

func TestLinesTypedBetweenPromptsAreIgnored(t *testing.T) {
	ctx := context.Background()
	cards := []engine.EffectCard{{Name: "A"}, {Name: "B"}}
	tests := []struct {
		name string
		ask  func(*Gateway) (int, error)
	}{
		{"replacement", func(g *Gateway) (int, error) {
			return g.AskReplacementChoice(ctx, player, cards, engine.EffectCard{Name: "C"})
		}},
		{"use card", func(g *Gateway) (int, error) {
			return g.AskUseCard(ctx, player, cards)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// enter pressed while a bot was moving, then the real answer
			g, _ := startTyping(&typist{lines: []string{"", "2"}, early: 1})
			deadline := time.Now().Add(2 * time.Second)
			for len(g.lines) == 0 {
				if time.Now().After(deadline) {
					t.Fatal("early line never arrived")
				}
				time.Sleep(time.Millisecond)
			}

			got, err := tt.ask(g)
			if err != nil || got != 1 {
				t.Fatalf("got %d, %v; want slot 1", got, err)
			}
		})
	}
}

func TestEOFAndCancel(t *testing.T) {
	g, _ := newTestGateway()
	if _, err := g.AskDieRoll(context.Background(), player, engine.DefaultDie()); !errors.Is(err, io.EOF) {
		t.Fatalf("exhausted input: got %v, want EOF", err)
	}
	select {
	case <-g.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after EOF")
	}

	r, w := io.Pipe()
	defer w.Close()
	g = New(r, io.Discard, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.AskTrivia(ctx, player, engine.QuestionCard{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled: got %v", err)
	}
}

func TestPlaysATurn(t *testing.T) {
	g, out := newTestGateway("3")
	human := engine.NewPlayer("p1", "Ada", engine.Human)
	cfg := engine.DefaultConfig()
	cfg.Board = make([]engine.Tile, 8)

	game, err := engine.NewGame([]*engine.Player{human}, cfg, engine.Deps{
		Gateway: g,
		Logger:  engine.DiscardLogger(),
		Sink:    g.Notify,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := game.PlayTurn(context.Background()); err != nil {
		t.Fatal(err)
	}
	if human.Tile != 3 {
		t.Fatalf("tile: got %d, want 3", human.Tile)
	}
	if !strings.Contains(out.String(), "rolled 3") || !strings.Contains(out.String(), "moves to tile 3") {
		t.Errorf("narration missing: %q", out.String())
	}
}
