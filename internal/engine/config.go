package engine

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Board      []Tile   // ordered board layout
	MaxStorage int      // stored cards per player (default 3)
	Die        DieRange // default 1-6
	Bots       BotPolicy

	// StoredMovesTrigger lets movement from a card played out of the
	// inventory resolve the tile it lands on. Off by default: stored cards
	// move silently, like every other card.
	StoredMovesTrigger bool
}

func DefaultConfig() GameConfig {
	return GameConfig{
		MaxStorage: 3,
		Die:        DefaultDie(),
		Bots:       DefaultBotPolicy(),
	}
}

// Validate reports configuration errors. They are only ever surfaced at
// construction time.
func (c GameConfig) Validate() error {
	if len(c.Board) == 0 {
		return ErrEmptyBoard
	}
	if c.MaxStorage <= 0 {
		return ErrInvalidStorage
	}
	if err := c.Die.Validate(); err != nil {
		return err
	}
	return c.Bots.Validate()
}
