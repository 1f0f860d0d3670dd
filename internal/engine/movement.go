package engine

import (
	"context"
	"fmt"
)

// Mover relocates a player's token. Both calls return the final tile index.
// When silent is set, implementations that announce landings must not ask for
// the tile to be resolved.
type Mover interface {
	Advance(ctx context.Context, p *Player, steps int, silent bool) (int, error)
	Retreat(ctx context.Context, p *Player, steps int, silent bool) (int, error)
}

// BoardMover moves tokens instantly along a board.
type BoardMover struct {
	Board *Board
}

func (m BoardMover) Advance(ctx context.Context, p *Player, steps int, silent bool) (int, error) {
	if steps < 0 {
		return p.Tile, fmt.Errorf("advance by %d steps", steps)
	}
	p.Tile = m.Board.Wrap(p.Tile + steps)
	return p.Tile, nil
}

func (m BoardMover) Retreat(ctx context.Context, p *Player, steps int, silent bool) (int, error) {
	if steps < 0 {
		return p.Tile, fmt.Errorf("retreat by %d steps", steps)
	}
	p.Tile = m.Board.Wrap(p.Tile - steps)
	return p.Tile, nil
}
