package effects

import (
	"context"

	"boardquest/internal/engine"
)

// RepeatTurn: the player rolls again once the current turn completes.
type RepeatTurn struct{}

func (RepeatTurn) Kind() engine.EffectKind { return engine.EffectRepeatTurn }

func (RepeatTurn) Apply(ctx context.Context, g *engine.Game, p *engine.Player, card engine.EffectCard, mode engine.Mode) ([]engine.Event, error) {
	p.RepeatTurnPending = true
	return nil, nil
}
