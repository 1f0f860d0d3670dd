// Package console plays the human seat in a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"boardquest/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAFFF")).
			Bold(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD75F"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

// Gateway answers engine questions from line-oriented input. Each prompt is
// a suspension point; a line typed while no prompt was open (say during a
// bot's turn) carries a stale token and is dropped.
type Gateway struct {
	out    io.Writer
	lines  chan typedLine
	done   chan struct{}
	prompt engine.Suspension
	rng    *rand.Rand
	names  map[string]string
}

// typedLine is one line of input, stamped with the prompt that was open
// when it arrived.
type typedLine struct {
	token uint64
	text  string
}

// New starts reading lines from in. rng rolls the die when the player just
// presses enter.
func New(in io.Reader, out io.Writer, rng *rand.Rand) *Gateway {
	if rng == nil {
		rng = engine.NewRand(0)
	}
	g := &Gateway{
		out:   out,
		lines: make(chan typedLine, 1),
		done:  make(chan struct{}),
		rng:   rng,
		names: make(map[string]string),
	}
	go g.readLoop(in)
	return g
}

func (g *Gateway) readLoop(in io.Reader) {
	defer close(g.done)
	defer close(g.lines)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		g.lines <- typedLine{token: g.prompt.Live(), text: sc.Text()}
	}
}

// Done is closed once input is exhausted.
func (g *Gateway) Done() <-chan struct{} {
	return g.done
}

// readLine waits for a line typed while token was open.
func (g *Gateway) readLine(ctx context.Context, token uint64) (string, error) {
	for {
		select {
		case l, ok := <-g.lines:
			if !ok {
				return "", io.EOF
			}
			if l.token != token {
				continue
			}
			return strings.TrimSpace(l.text), nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (g *Gateway) ask(ctx context.Context, format string, args ...any) (string, error) {
	token, _ := g.prompt.Begin()
	defer g.prompt.Cancel(token)
	fmt.Fprintln(g.out, promptStyle.Render(fmt.Sprintf(format, args...)))
	fmt.Fprint(g.out, "> ")
	return g.readLine(ctx, token)
}

func (g *Gateway) AskDieRoll(ctx context.Context, p *engine.Player, die engine.DieRange) (int, error) {
	line, err := g.ask(ctx, "%s, press enter to roll (%d-%d)", p.Name, die.Min, die.Max)
	if err != nil {
		return 0, err
	}
	if v, err := strconv.Atoi(line); err == nil {
		return v, nil
	}
	return die.Roll(g.rng), nil
}

func (g *Gateway) AskTrivia(ctx context.Context, p *engine.Player, card engine.QuestionCard) (int, error) {
	fmt.Fprintln(g.out, titleStyle.Render(card.Prompt))
	for i, opt := range card.Options {
		fmt.Fprintf(g.out, "  %d) %s\n", i+1, opt)
	}
	words := make([]string, len(card.Options))
	for i, opt := range card.Options {
		words[i] = strings.ToLower(opt)
	}
	for {
		line, err := g.ask(ctx, "Your answer (1-3)")
		if err != nil {
			return 0, err
		}
		if v, err := strconv.Atoi(line); err == nil && v >= 1 && v <= len(card.Options) {
			return v, nil
		}
		if w, ok := match(line, words); ok {
			for i := range words {
				if words[i] == w {
					return i + 1, nil
				}
			}
		}
		fmt.Fprintln(g.out, dimStyle.Render("Pick 1, 2 or 3."))
	}
}

func (g *Gateway) AskStoreOrDiscard(ctx context.Context, p *engine.Player, card engine.EffectCard) (bool, error) {
	fmt.Fprintln(g.out, goodStyle.Render(describe(card)))
	for {
		line, err := g.ask(ctx, "Store or discard?")
		if err != nil {
			return false, err
		}
		switch classify(line, storeWords, discardWords, yesWords, noWords) {
		case 0, 2:
			return true, nil
		case 1, 3:
			return false, nil
		}
		fmt.Fprintln(g.out, dimStyle.Render("Type store or discard."))
	}
}

func (g *Gateway) AskAcknowledgePenalty(ctx context.Context, p *engine.Player, card engine.EffectCard) error {
	fmt.Fprintln(g.out, badStyle.Render(describe(card)))
	_, err := g.ask(ctx, "Press enter to continue")
	return err
}

func (g *Gateway) AskReplacementChoice(ctx context.Context, p *engine.Player, current []engine.EffectCard, incoming engine.EffectCard) (int, error) {
	fmt.Fprintf(g.out, "Storage is full. Incoming: %s\n", describe(incoming))
	g.listCards(current)
	line, err := g.ask(ctx, "Replace which card? (number, or cancel)")
	if err != nil {
		return 0, err
	}
	return g.slot(line), nil
}

func (g *Gateway) AskConfirmReplacement(ctx context.Context, p *engine.Player, slot int, current, incoming engine.EffectCard) (bool, error) {
	for {
		line, err := g.ask(ctx, "Give up %s for %s? (yes/no)", current.Name, incoming.Name)
		if err != nil {
			return false, err
		}
		switch classify(line, yesWords, noWords) {
		case 0:
			return true, nil
		case 1:
			return false, nil
		}
	}
}

func (g *Gateway) AskUseCard(ctx context.Context, p *engine.Player, cards []engine.EffectCard) (int, error) {
	g.listCards(cards)
	line, err := g.ask(ctx, "Play a stored card? (number, or enter to skip)")
	if err != nil {
		return 0, err
	}
	return g.slot(line), nil
}

// slot converts a 1-based answer into a slot index. Anything that is not a
// number cancels.
func (g *Gateway) slot(line string) int {
	if classify(line, cancelWords, noWords) >= 0 {
		return engine.CancelChoice
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return engine.CancelChoice
	}
	return v - 1
}

func (g *Gateway) listCards(cards []engine.EffectCard) {
	for i, c := range cards {
		fmt.Fprintf(g.out, "  %d) %s\n", i+1, describe(c))
	}
}

func describe(c engine.EffectCard) string {
	if c.Description == "" {
		return c.Name
	}
	return c.Name + ": " + c.Description
}

// Notify narrates engine events. It runs on the scheduler goroutine, like
// the Ask methods.
func (g *Gateway) Notify(ev engine.Event) {
	data, _ := ev.Data.(map[string]interface{})
	who, ok := g.names[ev.Player]
	if !ok {
		who = ev.Player
	}
	switch ev.Type {
	case engine.EventStateSync:
		if pv, ok := ev.Data.(engine.PublicViewData); ok {
			for _, p := range pv.Players {
				g.names[p.ID] = p.Name
			}
		}
	case engine.EventTurnStart:
		fmt.Fprintln(g.out, titleStyle.Render(fmt.Sprintf("Turn %v: %s", data["turn"], who)))
	case engine.EventTurnSkipped:
		fmt.Fprintln(g.out, dimStyle.Render(who+" skips a turn"))
	case engine.EventDieRolled:
		fmt.Fprintf(g.out, "%s rolled %v\n", who, data["value"])
	case engine.EventMoved:
		fmt.Fprintf(g.out, "%s moves to tile %v\n", who, data["to"])
	case engine.EventQuestionAnswered:
		if data["correct"] == true {
			fmt.Fprintln(g.out, goodStyle.Render(who+" answered correctly"))
		} else {
			fmt.Fprintln(g.out, badStyle.Render(who+" answered wrong and goes back"))
		}
	case engine.EventCardStored, engine.EventCardReplaced:
		if c, ok := data["card"].(engine.EffectCard); ok {
			fmt.Fprintf(g.out, "%s stored %s\n", who, c.Name)
		}
	case engine.EventCardDiscarded:
		if c, ok := data["card"].(engine.EffectCard); ok {
			fmt.Fprintln(g.out, dimStyle.Render(fmt.Sprintf("%s discarded %s", who, c.Name)))
		}
	case engine.EventCardUsed:
		if c, ok := data["card"].(engine.EffectCard); ok {
			fmt.Fprintf(g.out, "%s plays %s\n", who, c.Name)
		}
	case engine.EventRepeatTurn:
		fmt.Fprintln(g.out, goodStyle.Render(who+" goes again"))
	case engine.EventInventoryCleared:
		fmt.Fprintln(g.out, badStyle.Render(who+" lost every stored card"))
	}
}
