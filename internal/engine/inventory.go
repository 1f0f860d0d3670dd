package engine

import (
	"context"
	"fmt"
	"log"
)

// AddResult reports the outcome of Inventory.TryAdd.
type AddResult int

const (
	Added AddResult = iota
	Full
)

// StoreOutcome reports how an offered card ended up.
type StoreOutcome int

const (
	Stored    StoreOutcome = iota // appended to a free slot
	Replaced                      // swapped into an existing slot
	Discarded                     // the player cancelled; storage unchanged
)

var storeOutcomeNames = map[StoreOutcome]string{
	Stored:    "stored",
	Replaced:  "replaced",
	Discarded: "discarded",
}

func (o StoreOutcome) String() string {
	if s, ok := storeOutcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// maxInvalidChoices bounds how often a replacement selection may be re-asked
// after out-of-range answers before the incoming card is dropped.
const maxInvalidChoices = 5

// PendingReplacement tracks a human choosing which stored card to give up.
// It exists only while Offer is running.
type PendingReplacement struct {
	PlayerID   string     `json:"player_id"`
	Incoming   EffectCard `json:"incoming"`
	Slot       int        `json:"slot"`
	Confirming bool       `json:"confirming"`
}

// OfferResult describes what Offer did with a card.
type OfferResult struct {
	Outcome StoreOutcome
	Slot    int
	Lost    EffectCard // the card overwritten by a replacement
}

// Inventory is the bounded per-player store of deferred effect cards.
type Inventory struct {
	max     int
	slots   map[string][]EffectCard
	pending map[string]*PendingReplacement
	log     *log.Logger
}

// NewInventory creates an inventory holding at most max cards per player.
func NewInventory(max int) (*Inventory, error) {
	if max <= 0 {
		return nil, ErrInvalidStorage
	}
	return &Inventory{
		max:     max,
		slots:   make(map[string][]EffectCard),
		pending: make(map[string]*PendingReplacement),
		log:     log.Default(),
	}, nil
}

// Max returns the per-player capacity.
func (inv *Inventory) Max() int {
	return inv.max
}

// Len returns how many cards p holds.
func (inv *Inventory) Len(p *Player) int {
	return len(inv.slots[p.ID])
}

// Cards returns a copy of p's stored cards in slot order.
func (inv *Inventory) Cards(p *Player) []EffectCard {
	cards := inv.slots[p.ID]
	out := make([]EffectCard, len(cards))
	copy(out, cards)
	return out
}

// TryAdd appends card if p has a free slot. It never overwrites.
func (inv *Inventory) TryAdd(p *Player, card EffectCard) AddResult {
	if len(inv.slots[p.ID]) >= inv.max {
		return Full
	}
	inv.slots[p.ID] = append(inv.slots[p.ID], card)
	return Added
}

// Replace overwrites slot i and returns the card that was there.
func (inv *Inventory) Replace(p *Player, i int, card EffectCard) (EffectCard, error) {
	cards := inv.slots[p.ID]
	if i < 0 || i >= len(cards) {
		return EffectCard{}, fmt.Errorf("%w: slot %d of %d", ErrInvalidIndex, i, len(cards))
	}
	old := cards[i]
	cards[i] = card
	return old, nil
}

// Remove takes the card out of slot i, shifting later cards down.
func (inv *Inventory) Remove(p *Player, i int) (EffectCard, error) {
	cards := inv.slots[p.ID]
	if i < 0 || i >= len(cards) {
		return EffectCard{}, fmt.Errorf("%w: slot %d of %d", ErrInvalidIndex, i, len(cards))
	}
	card := cards[i]
	inv.slots[p.ID] = append(cards[:i], cards[i+1:]...)
	return card, nil
}

// Clear empties p's storage and returns how many cards were lost.
func (inv *Inventory) Clear(p *Player) int {
	n := len(inv.slots[p.ID])
	delete(inv.slots, p.ID)
	return n
}

// Pending returns a copy of p's in-progress replacement, or nil.
func (inv *Inventory) Pending(p *Player) *PendingReplacement {
	pr, ok := inv.pending[p.ID]
	if !ok {
		return nil
	}
	cp := *pr
	return &cp
}

// Offer stores card for a human player. When storage is full it runs the
// two-phase replacement: pick a slot, then confirm. Declining the
// confirmation goes back to the selection; cancelling the selection drops
// the incoming card and leaves storage untouched.
func (inv *Inventory) Offer(ctx context.Context, gw Gateway, p *Player, card EffectCard) (OfferResult, error) {
	if inv.TryAdd(p, card) == Added {
		return OfferResult{Outcome: Stored, Slot: inv.Len(p) - 1}, nil
	}

	pending := &PendingReplacement{PlayerID: p.ID, Incoming: card, Slot: CancelChoice}
	inv.pending[p.ID] = pending
	defer delete(inv.pending, p.ID)

	discarded := OfferResult{Outcome: Discarded, Slot: CancelChoice}
	invalid := 0
	for {
		pending.Slot, pending.Confirming = CancelChoice, false
		current := inv.Cards(p)

		slot, err := gw.AskReplacementChoice(ctx, p, current, card)
		if err != nil {
			return discarded, err
		}
		if slot == CancelChoice {
			return discarded, nil
		}
		if slot < 0 || slot >= len(current) {
			invalid++
			inv.log.Printf("replacement for %s: slot %d out of range", p.Name, slot)
			if invalid >= maxInvalidChoices {
				return discarded, fmt.Errorf("%w: gave up after %d invalid choices", ErrInventoryFull, invalid)
			}
			continue
		}

		pending.Slot, pending.Confirming = slot, true
		ok, err := gw.AskConfirmReplacement(ctx, p, slot, current[slot], card)
		if err != nil {
			return discarded, err
		}
		if !ok {
			continue
		}
		old, err := inv.Replace(p, slot, card)
		if err != nil {
			return discarded, err
		}
		return OfferResult{Outcome: Replaced, Slot: slot, Lost: old}, nil
	}
}

// Use removes the card in slot i and resolves it for p. An invalid index
// leaves storage unchanged and returns ErrInvalidIndex.
func (inv *Inventory) Use(ctx context.Context, g *Game, p *Player, i int) error {
	card, err := inv.Remove(p, i)
	if err != nil {
		return err
	}
	g.emit(Event{Type: EventCardUsed, Player: p.ID, Data: map[string]interface{}{
		"slot": i, "card": card,
	}})
	return g.Effects.Resolve(ctx, g, p, card, g.storedMode())
}
