package engine

import "math/rand/v2"

// Deck is one category's question pool. Draws remove cards; once the pool is
// empty it is refilled with a full copy of the base set.
type Deck struct {
	base  []QuestionCard
	cards []QuestionCard
}

// NewDeck creates a full deck from the given base set.
func NewDeck(cards []QuestionCard) *Deck {
	d := &Deck{base: make([]QuestionCard, len(cards))}
	copy(d.base, cards)
	d.Refill()
	return d
}

// Refill replaces the active pool with the base set. It reports false when
// the base set is empty.
func (d *Deck) Refill() bool {
	d.cards = make([]QuestionCard, len(d.base))
	copy(d.cards, d.base)
	return len(d.cards) > 0
}

// Draw removes and returns a uniformly random card, refilling first if needed.
func (d *Deck) Draw(rng *rand.Rand) (QuestionCard, bool) {
	if len(d.cards) == 0 && !d.Refill() {
		return QuestionCard{}, false
	}
	i := rng.IntN(len(d.cards))
	card := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return card, true
}

// Len returns the number of cards left before the next refill.
func (d *Deck) Len() int {
	return len(d.cards)
}

// BaseLen returns the size of the full base set.
func (d *Deck) BaseLen() int {
	return len(d.base)
}

// Decks supplies questions per category and benefit/penalty cards.
type Decks struct {
	questions map[Category]*Deck
	benefits  []EffectCard
	penalties []EffectCard
	rng       *rand.Rand
}

// NewDecks builds the deck manager. Effect cards are stamped with the intent
// of the pool they come from unless they already declare one. A nil rng gets
// a randomly seeded generator.
func NewDecks(questions map[Category][]QuestionCard, benefits, penalties []EffectCard, rng *rand.Rand) *Decks {
	if rng == nil {
		rng = NewRand(0)
	}
	d := &Decks{
		questions: make(map[Category]*Deck, len(questions)),
		benefits:  stampIntent(benefits, IntentBenefit),
		penalties: stampIntent(penalties, IntentPenalty),
		rng:       rng,
	}
	for cat, cards := range questions {
		d.questions[cat] = NewDeck(cards)
	}
	return d
}

func stampIntent(cards []EffectCard, intent Intent) []EffectCard {
	out := make([]EffectCard, len(cards))
	for i, c := range cards {
		if c.Intent == IntentNone {
			c.Intent = intent
		}
		out[i] = c
	}
	return out
}

// DrawQuestion draws without replacement from category. It reports false when
// the category has no questions at all.
func (d *Decks) DrawQuestion(category Category) (QuestionCard, bool) {
	deck, ok := d.questions[category]
	if !ok {
		return QuestionCard{}, false
	}
	return deck.Draw(d.rng)
}

// DrawEffect picks a benefit or penalty card. Cards stay in the pool, so the
// same card can come up again on the next draw.
func (d *Decks) DrawEffect(intent Intent) (EffectCard, bool) {
	var pool []EffectCard
	switch intent {
	case IntentBenefit:
		pool = d.benefits
	case IntentPenalty:
		pool = d.penalties
	}
	if len(pool) == 0 {
		return EffectCard{}, false
	}
	return pool[d.rng.IntN(len(pool))], true
}

// Remaining returns how many questions are left in category before a refill.
func (d *Decks) Remaining(category Category) int {
	if deck, ok := d.questions[category]; ok {
		return deck.Len()
	}
	return 0
}
