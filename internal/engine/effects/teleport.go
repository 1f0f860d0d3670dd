package effects

import (
	"context"

	"boardquest/internal/engine"
)

// Teleport: jump forward to tile index card.Tile. Passing the end of the
// board wraps like any other forward move.
type Teleport struct{}

func (Teleport) Kind() engine.EffectKind { return engine.EffectTeleport }

func (Teleport) Apply(ctx context.Context, g *engine.Game, p *engine.Player, card engine.EffectCard, mode engine.Mode) ([]engine.Event, error) {
	target := g.Board.Wrap(card.Tile)
	steps := g.Board.Wrap(target - p.Tile)
	if steps == 0 {
		return nil, nil
	}
	_, err := g.Move(ctx, p, steps, mode)
	return nil, err
}
