package effects

import (
	"context"

	"boardquest/internal/engine"
)

// LoseAllCards: the player's stored cards are thrown away.
type LoseAllCards struct{}

func (LoseAllCards) Kind() engine.EffectKind { return engine.EffectLoseAllCards }

func (LoseAllCards) Apply(ctx context.Context, g *engine.Game, p *engine.Player, card engine.EffectCard, mode engine.Mode) ([]engine.Event, error) {
	n := g.Inventory.Clear(p)
	return []engine.Event{
		{Type: engine.EventInventoryCleared, Player: p.ID, Data: map[string]interface{}{
			"lost": n,
		}},
	}, nil
}
