package engine

import (
	"context"
	"fmt"
)

// Mode controls whether movement caused by a card resolves the landed tile.
type Mode int

const (
	ModeSilent Mode = iota // landing never triggers the tile
	ModeNormal             // landing resolves the tile like a roll would
)

// EffectHandler applies one kind of effect card.
type EffectHandler interface {
	Kind() EffectKind
	// Apply executes the card against p. Only context errors are fatal to
	// the turn; anything else is logged by the Resolver.
	Apply(ctx context.Context, g *Game, p *Player, card EffectCard, mode Mode) ([]Event, error)
}

// Resolver dispatches effect cards to their handlers.
type Resolver struct {
	handlers map[EffectKind]EffectHandler
}

func NewResolver() *Resolver {
	return &Resolver{handlers: make(map[EffectKind]EffectHandler)}
}

func (r *Resolver) Register(h EffectHandler) {
	r.handlers[h.Kind()] = h
}

func (r *Resolver) Get(kind EffectKind) (EffectHandler, error) {
	h, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no handler for %s", ErrUnknownEffect, kind)
	}
	return h, nil
}

// Resolve applies card to p and emits the resulting events. Missing players,
// question cards and unknown kinds are logged no-ops. The returned error is
// non-nil only when ctx ended during a triggered tile resolution.
func (r *Resolver) Resolve(ctx context.Context, g *Game, p *Player, card EffectCard, mode Mode) error {
	if p == nil {
		g.log.Printf("effect %q: no target player", card.Name)
		return nil
	}
	if card.Type == CardQuestion {
		g.log.Printf("effect %q: question card has no effect", card.Name)
		return nil
	}
	h, err := r.Get(card.Kind)
	if err != nil {
		g.log.Printf("effect %q: %v", card.Name, err)
		return nil
	}
	events, err := h.Apply(ctx, g, p, card, mode)
	for _, ev := range events {
		g.emit(ev)
	}
	if err != nil {
		if isCancel(err) {
			return err
		}
		g.log.Printf("effect %q on %s: %v", card.Name, p.Name, err)
		return nil
	}
	g.emit(Event{Type: EventEffectApplied, Player: p.ID, Data: map[string]interface{}{
		"card": card, "silent": mode == ModeSilent,
	}})
	return nil
}
