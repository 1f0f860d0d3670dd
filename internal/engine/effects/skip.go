package effects

import (
	"context"

	"boardquest/internal/engine"
)

// SkipTurns: the player sits out max(1, Turns) scheduler passes. Repeated
// penalties stack.
type SkipTurns struct{}

func (SkipTurns) Kind() engine.EffectKind { return engine.EffectSkipTurns }

func (SkipTurns) Apply(ctx context.Context, g *engine.Game, p *engine.Player, card engine.EffectCard, mode engine.Mode) ([]engine.Event, error) {
	p.TurnsToSkip += max(1, card.Turns)
	return nil, nil
}
