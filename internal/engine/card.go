package engine

import "fmt"

// CardType separates effect cards from question cards that ended up in an
// effect pool. Only effect cards do anything when resolved.
type CardType int

const (
	CardEffect CardType = iota
	CardQuestion
)

// Intent is the declared classification of an effect card.
type Intent int

const (
	IntentNone Intent = iota
	IntentBenefit
	IntentPenalty
)

var intentNames = map[Intent]string{
	IntentNone:    "none",
	IntentBenefit: "benefit",
	IntentPenalty: "penalty",
}

func (i Intent) String() string {
	if s, ok := intentNames[i]; ok {
		return s
	}
	return "unknown"
}

func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Intent) UnmarshalText(b []byte) error {
	for v, name := range intentNames {
		if name == string(b) {
			*i = v
			return nil
		}
	}
	return fmt.Errorf("unknown intent %q", b)
}

// EffectKind identifies what an effect card does.
type EffectKind int

const (
	EffectNone         EffectKind = iota
	EffectRelativeMove            // move Steps tiles, negative retreats
	EffectRepeatTurn              // play again after this turn
	EffectSkipTurns               // skip max(1, Turns) scheduler passes
	EffectTeleport                // jump forward to tile index Tile
	EffectLoseAllCards            // empty the player's inventory
)

var effectKindNames = map[EffectKind]string{
	EffectNone:         "none",
	EffectRelativeMove: "relative_move",
	EffectRepeatTurn:   "repeat_turn",
	EffectSkipTurns:    "skip_turns",
	EffectTeleport:     "teleport",
	EffectLoseAllCards: "lose_all_cards",
}

func (k EffectKind) String() string {
	if s, ok := effectKindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EffectKind) UnmarshalText(b []byte) error {
	if string(b) == "none" {
		*k = EffectNone
		return nil
	}
	v, err := ParseEffectKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseEffectKind maps a content name ("relative_move", ...) to an EffectKind.
func ParseEffectKind(s string) (EffectKind, error) {
	for k, name := range effectKindNames {
		if name == s && k != EffectNone {
			return k, nil
		}
	}
	return EffectNone, fmt.Errorf("%w: %q", ErrUnknownEffect, s)
}

// QuestionCard is a trivia question with three options.
type QuestionCard struct {
	Prompt  string    `json:"prompt"`
	Options [3]string `json:"options"`
	Answer  int       `json:"-"` // 1-3
}

// IsCorrect reports whether the 1-based choice is the right option.
func (q QuestionCard) IsCorrect(choice int) bool {
	return choice == q.Answer
}

// EffectCard is a benefit or penalty card.
type EffectCard struct {
	Type        CardType   `json:"-"`
	Intent      Intent     `json:"intent"`
	Kind        EffectKind `json:"kind"`
	Steps       int        `json:"steps,omitempty"`
	Turns       int        `json:"turns,omitempty"`
	Tile        int        `json:"tile,omitempty"` // teleport target
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
}
