package server

import (
	"context"
	"log"
	"sync"

	"boardquest/internal/engine"
	"boardquest/internal/protocol"
)

// RemoteGateway asks the human player's browser for decisions. Each question
// is published as a prompt and blocks the game goroutine until the matching
// answer arrives through Answer.
type RemoteGateway struct {
	playerID string
	publish  func(playerID string, env protocol.Envelope)

	susp engine.Suspension

	mu   sync.Mutex
	last *protocol.Envelope
}

func NewRemoteGateway(playerID string, publish func(string, protocol.Envelope)) *RemoteGateway {
	return &RemoteGateway{playerID: playerID, publish: publish}
}

func (g *RemoteGateway) ask(ctx context.Context, p protocol.Prompt) (engine.Answer, error) {
	token, ch := g.susp.Begin()
	p.ID = token
	p.PlayerID = g.playerID
	env := protocol.MustEnvelope(protocol.MsgPrompt, p)

	g.mu.Lock()
	g.last = &env
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.last = nil
		g.mu.Unlock()
	}()

	g.publish(g.playerID, env)
	select {
	case a := <-ch:
		return a, nil
	case <-ctx.Done():
		g.susp.Cancel(token)
		return engine.Answer{}, ctx.Err()
	}
}

// Answer delivers msg from playerID. It reports false when the answer is not
// for the prompt currently waiting, which includes repeated answers.
func (g *RemoteGateway) Answer(playerID string, msg protocol.AnswerMsg) bool {
	if playerID != g.playerID {
		return false
	}
	if !g.susp.Resume(msg.PromptID, engine.Answer{Value: msg.Value, Accept: msg.Accept}) {
		log.Printf("ignoring stale answer %d from %s", msg.PromptID, playerID)
		return false
	}
	return true
}

// Pending returns the prompt still waiting for an answer, for replay to a
// reconnecting client.
func (g *RemoteGateway) Pending() (protocol.Envelope, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		return protocol.Envelope{}, false
	}
	return *g.last, true
}

func (g *RemoteGateway) AskDieRoll(ctx context.Context, p *engine.Player, die engine.DieRange) (int, error) {
	a, err := g.ask(ctx, protocol.Prompt{Kind: protocol.PromptDieRoll, Die: &die})
	return a.Value, err
}

func (g *RemoteGateway) AskTrivia(ctx context.Context, p *engine.Player, card engine.QuestionCard) (int, error) {
	a, err := g.ask(ctx, protocol.Prompt{Kind: protocol.PromptTrivia, Question: &card})
	return a.Value, err
}

func (g *RemoteGateway) AskStoreOrDiscard(ctx context.Context, p *engine.Player, card engine.EffectCard) (bool, error) {
	a, err := g.ask(ctx, protocol.Prompt{Kind: protocol.PromptStoreOrDiscard, Card: &card})
	return a.Accept, err
}

func (g *RemoteGateway) AskAcknowledgePenalty(ctx context.Context, p *engine.Player, card engine.EffectCard) error {
	_, err := g.ask(ctx, protocol.Prompt{Kind: protocol.PromptAcknowledgePenalty, Card: &card})
	return err
}

func (g *RemoteGateway) AskReplacementChoice(ctx context.Context, p *engine.Player, current []engine.EffectCard, incoming engine.EffectCard) (int, error) {
	a, err := g.ask(ctx, protocol.Prompt{Kind: protocol.PromptReplacementChoice, Card: &incoming, Cards: current})
	return a.Value, err
}

func (g *RemoteGateway) AskConfirmReplacement(ctx context.Context, p *engine.Player, slot int, current, incoming engine.EffectCard) (bool, error) {
	a, err := g.ask(ctx, protocol.Prompt{
		Kind:    protocol.PromptConfirmReplacement,
		Card:    &incoming,
		Current: &current,
		Slot:    slot,
	})
	return a.Accept, err
}

func (g *RemoteGateway) AskUseCard(ctx context.Context, p *engine.Player, cards []engine.EffectCard) (int, error) {
	a, err := g.ask(ctx, protocol.Prompt{Kind: protocol.PromptUseCard, Cards: cards})
	return a.Value, err
}
