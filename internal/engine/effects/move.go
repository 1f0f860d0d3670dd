package effects

import (
	"context"

	"boardquest/internal/engine"
)

// RelativeMove: advance Steps tiles, or retreat when Steps is negative.
type RelativeMove struct{}

func (RelativeMove) Kind() engine.EffectKind { return engine.EffectRelativeMove }

func (RelativeMove) Apply(ctx context.Context, g *engine.Game, p *engine.Player, card engine.EffectCard, mode engine.Mode) ([]engine.Event, error) {
	if card.Steps == 0 {
		return nil, nil
	}
	_, err := g.Move(ctx, p, card.Steps, mode)
	return nil, err
}
