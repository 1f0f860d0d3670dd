package engine

import "context"

// Run plays turns until ctx is done. There is no terminal state.
func (g *Game) Run(ctx context.Context) error {
	g.sync()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.PlayTurn(ctx); err != nil {
			return err
		}
	}
}

// PlayTurn runs one scheduler pass for the current slot. A player with turns
// to skip consumes one skip and the cursor moves on without a roll. Otherwise
// the player may play one stored card, then takes a turn, plus one more roll
// for each repeat flag raised during it. Repeat rolls go straight back to
// AwaitingRoll, so a stored card is offered at most once per pass. Only one
// pass may be in flight; a concurrent call gets ErrTurnInProgress. The
// returned error is always a context error.
func (g *Game) PlayTurn(ctx context.Context) error {
	if !g.inFlight.CompareAndSwap(false, true) {
		return ErrTurnInProgress
	}
	defer g.inFlight.Store(false)

	p := g.CurrentPlayer()
	g.Turn++

	if p.TurnsToSkip > 0 {
		p.TurnsToSkip--
		g.emit(Event{Type: EventTurnSkipped, Player: p.ID, Data: map[string]interface{}{
			"remaining": p.TurnsToSkip,
		}})
		g.advance()
		g.sync()
		return nil
	}

	g.setState(StateFocusing, p)
	g.emit(Event{Type: EventTurnStart, Player: p.ID, Data: map[string]interface{}{
		"turn": g.Turn, "tile": p.Tile,
	}})
	if err := g.playStoredCard(ctx, p); err != nil {
		g.setState(StateIdle, nil)
		return err
	}
	for {
		if err := g.takeTurn(ctx, p); err != nil {
			g.setState(StateIdle, nil)
			return err
		}
		g.setState(StateTurnComplete, p)
		if !p.RepeatTurnPending {
			break
		}
		// cleared before the repeat so one flag buys exactly one extra turn
		p.RepeatTurnPending = false
		g.emit(Event{Type: EventRepeatTurn, Player: p.ID})
	}

	g.emit(Event{Type: EventTurnEnd, Player: p.ID, Data: map[string]interface{}{
		"tile": p.Tile,
	}})
	g.advance()
	g.setState(StateIdle, nil)
	g.sync()
	return nil
}

func (g *Game) advance() {
	g.Current = (g.Current + 1) % len(g.Players)
}

// takeTurn is AwaitingRoll → Moving → ResolvingTile for one roll.
func (g *Game) takeTurn(ctx context.Context, p *Player) error {
	g.setState(StateAwaitingRoll, p)
	roll, err := g.rollFor(ctx, p)
	if err != nil {
		return err
	}
	g.emit(Event{Type: EventDieRolled, Player: p.ID, Data: map[string]interface{}{
		"value": roll,
	}})

	g.setState(StateMoving, p)
	if _, err := g.Move(ctx, p, roll, ModeNormal); err != nil {
		if isCancel(err) {
			return err
		}
		g.log.Printf("move %s by %d: %v", p.Name, roll, err)
	}
	return nil
}

// rollFor asks the human for a die value, or rolls for a bot. Bad or failed
// human answers fall back to a scheduler roll.
func (g *Game) rollFor(ctx context.Context, p *Player) (int, error) {
	die := g.Config.Die
	if p.IsBot() {
		if err := g.Config.Bots.pause(ctx); err != nil {
			return 0, err
		}
		return die.Roll(g.rng), nil
	}

	v, err := g.gateway.AskDieRoll(ctx, p, die)
	if err != nil {
		if isCancel(err) {
			return 0, err
		}
		g.log.Printf("die roll for %s: %v; rolling instead", p.Name, err)
		return die.Roll(g.rng), nil
	}
	if !die.Contains(v) {
		g.log.Printf("die roll for %s: %d outside %d-%d; rolling instead", p.Name, v, die.Min, die.Max)
		return die.Roll(g.rng), nil
	}
	return v, nil
}

// playStoredCard offers the player one stored card before the roll. Bots
// play their oldest card when the policy allows it.
func (g *Game) playStoredCard(ctx context.Context, p *Player) error {
	cards := g.Inventory.Cards(p)
	if len(cards) == 0 {
		return nil
	}

	slot := 0
	if p.IsBot() {
		if !g.Config.Bots.UseStoredCards {
			return nil
		}
		if err := g.Config.Bots.pause(ctx); err != nil {
			return err
		}
	} else {
		g.setState(StateAwaitingDecision, p)
		var err error
		slot, err = g.gateway.AskUseCard(ctx, p, cards)
		if err != nil {
			if isCancel(err) {
				return err
			}
			g.log.Printf("use card for %s: %v", p.Name, err)
			return nil
		}
		if slot == CancelChoice {
			return nil
		}
	}

	if err := g.Inventory.Use(ctx, g, p, slot); err != nil {
		if isCancel(err) {
			return err
		}
		g.log.Printf("use card for %s: %v", p.Name, err)
	}
	return nil
}
