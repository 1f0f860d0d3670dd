package engine

import "context"

// resolveTile dispatches on the tile p just landed on. delta is the move that
// brought p here; a wrong trivia answer undoes it.
func (g *Game) resolveTile(ctx context.Context, p *Player, delta int) error {
	if p.silenced {
		g.log.Printf("tile trigger suppressed for %s at %d", p.Name, p.Tile)
		return nil
	}
	tile := g.Board.Tile(p.Tile)
	g.setState(StateResolvingTile, p)
	g.emit(Event{Type: EventTileLanded, Player: p.ID, Data: map[string]interface{}{
		"tile": p.Tile, "type": tile.Type.String(), "category": tile.Category,
	}})

	switch tile.Type {
	case TileQuestion:
		return g.resolveQuestion(ctx, p, tile.Category, delta)
	case TileBenefit:
		return g.resolveBenefit(ctx, p)
	case TilePenalty:
		return g.resolvePenalty(ctx, p)
	default:
		return nil
	}
}

func (g *Game) resolveQuestion(ctx context.Context, p *Player, category Category, delta int) error {
	card, ok := g.Decks.DrawQuestion(category)
	if !ok {
		// Missing content counts as a correct answer.
		g.log.Printf("no questions for category %q; counting %s as correct", category, p.Name)
		g.emit(Event{Type: EventQuestionAnswered, Player: p.ID, Data: map[string]interface{}{
			"category": category, "correct": true, "unavailable": true,
		}})
		return nil
	}
	g.emit(Event{Type: EventQuestionAsked, Player: p.ID, Data: map[string]interface{}{
		"category": category, "prompt": card.Prompt, "options": card.Options,
	}})

	var correct bool
	if p.IsBot() {
		if err := g.Config.Bots.pause(ctx); err != nil {
			return err
		}
		correct = g.Config.Bots.AnswersCorrectly(g.rng)
	} else {
		g.setState(StateAwaitingDecision, p)
		choice, err := g.gateway.AskTrivia(ctx, p, card)
		switch {
		case err == nil:
			correct = card.IsCorrect(choice)
		case isCancel(err):
			return err
		default:
			g.log.Printf("trivia for %s: %v; counting as correct", p.Name, err)
			correct = true
		}
	}
	g.emit(Event{Type: EventQuestionAnswered, Player: p.ID, Data: map[string]interface{}{
		"category": category, "correct": correct,
	}})

	if correct {
		return nil
	}
	if _, err := g.Move(ctx, p, -delta, ModeSilent); err != nil {
		if isCancel(err) {
			return err
		}
		g.log.Printf("retreat %s by %d: %v", p.Name, delta, err)
	}
	return nil
}

func (g *Game) resolveBenefit(ctx context.Context, p *Player) error {
	card, ok := g.Decks.DrawEffect(IntentBenefit)
	if !ok {
		g.log.Printf("no benefit cards; %s draws nothing", p.Name)
		return nil
	}
	g.emit(Event{Type: EventCardDrawn, Player: p.ID, Data: map[string]interface{}{
		"card": card,
	}})

	if p.IsBot() {
		if err := g.Config.Bots.pause(ctx); err != nil {
			return err
		}
		// Bots never run the replacement workflow: full means discard.
		if g.Inventory.TryAdd(p, card) == Full {
			g.discarded(p, card, "inventory_full")
			return nil
		}
		g.emit(Event{Type: EventCardStored, Player: p.ID, Data: map[string]interface{}{
			"card": card, "slot": g.Inventory.Len(p) - 1,
		}})
		return nil
	}

	g.setState(StateAwaitingDecision, p)
	keep, err := g.gateway.AskStoreOrDiscard(ctx, p, card)
	if err != nil {
		if isCancel(err) {
			return err
		}
		g.log.Printf("store or discard for %s: %v; discarding", p.Name, err)
		keep = false
	}
	if !keep {
		g.discarded(p, card, "declined")
		return nil
	}

	res, err := g.Inventory.Offer(ctx, g.gateway, p, card)
	if err != nil {
		if isCancel(err) {
			return err
		}
		g.log.Printf("store card for %s: %v", p.Name, err)
	}
	switch res.Outcome {
	case Stored:
		g.emit(Event{Type: EventCardStored, Player: p.ID, Data: map[string]interface{}{
			"card": card, "slot": res.Slot,
		}})
	case Replaced:
		g.emit(Event{Type: EventCardReplaced, Player: p.ID, Data: map[string]interface{}{
			"card": card, "slot": res.Slot, "lost": res.Lost,
		}})
	default:
		g.discarded(p, card, "replacement_cancelled")
	}
	return nil
}

// resolvePenalty applies a penalty card at once. Penalties are never stored
// and their movement is always silent.
func (g *Game) resolvePenalty(ctx context.Context, p *Player) error {
	card, ok := g.Decks.DrawEffect(IntentPenalty)
	if !ok {
		g.log.Printf("no penalty cards; %s is spared", p.Name)
		return nil
	}
	g.emit(Event{Type: EventCardDrawn, Player: p.ID, Data: map[string]interface{}{
		"card": card,
	}})

	if p.IsBot() {
		if err := g.Config.Bots.pause(ctx); err != nil {
			return err
		}
	} else {
		g.setState(StateAwaitingDecision, p)
		if err := g.gateway.AskAcknowledgePenalty(ctx, p, card); err != nil {
			if isCancel(err) {
				return err
			}
			g.log.Printf("acknowledge penalty for %s: %v", p.Name, err)
		}
	}
	return g.Effects.Resolve(ctx, g, p, card, ModeSilent)
}

func (g *Game) discarded(p *Player, card EffectCard, reason string) {
	g.emit(Event{Type: EventCardDiscarded, Player: p.ID, Data: map[string]interface{}{
		"card": card, "reason": reason,
	}})
}
