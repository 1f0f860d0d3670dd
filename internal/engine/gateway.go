package engine

import "context"

// CancelChoice is the index a gateway returns to back out of a selection.
const CancelChoice = -1

// Gateway asks the human seat for decisions. Every call blocks until the
// player answers or ctx ends. Bots never go through the gateway.
type Gateway interface {
	AskDieRoll(ctx context.Context, p *Player, die DieRange) (int, error)
	// AskTrivia returns the 1-based option the player picked.
	AskTrivia(ctx context.Context, p *Player, card QuestionCard) (int, error)
	// AskStoreOrDiscard returns true to keep the card.
	AskStoreOrDiscard(ctx context.Context, p *Player, card EffectCard) (bool, error)
	AskAcknowledgePenalty(ctx context.Context, p *Player, card EffectCard) error
	// AskReplacementChoice returns the slot to overwrite or CancelChoice.
	AskReplacementChoice(ctx context.Context, p *Player, current []EffectCard, incoming EffectCard) (int, error)
	AskConfirmReplacement(ctx context.Context, p *Player, slot int, current, incoming EffectCard) (bool, error)
	// AskUseCard returns the stored card to play before rolling, or CancelChoice.
	AskUseCard(ctx context.Context, p *Player, cards []EffectCard) (int, error)
}
