// Package content loads boards, trivia and effect cards from YAML files.
// JSON content parses too, since YAML is a superset of it.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"boardquest/internal/engine"
)

//go:embed default.yaml
var defaultContent []byte

var (
	ErrNoBoard     = errors.New("content has no board")
	ErrBadQuestion = errors.New("invalid question")
	ErrBadCard     = errors.New("invalid effect card")
	ErrBadTile     = errors.New("invalid tile")
)

// File is the on-disk schema.
type File struct {
	Board     []TileSpec                `yaml:"board"`
	Questions map[string][]QuestionSpec `yaml:"questions"`
	Benefits  []CardSpec                `yaml:"benefits"`
	Penalties []CardSpec                `yaml:"penalties"`
}

type TileSpec struct {
	Type     string `yaml:"type"`
	Category string `yaml:"category,omitempty"`
}

type QuestionSpec struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Answer  int      `yaml:"answer"` // 1-3
}

type CardSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Kind        string `yaml:"kind"`
	Steps       int    `yaml:"steps,omitempty"`
	Turns       int    `yaml:"turns,omitempty"`
	Tile        int    `yaml:"tile,omitempty"`
}

// Content is validated, engine-ready game data.
type Content struct {
	Board     []engine.Tile
	Questions map[engine.Category][]engine.QuestionCard
	Benefits  []engine.EffectCard
	Penalties []engine.EffectCard
}

// Default returns the content shipped with the binary.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads a content file from disk.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates content.
func Parse(data []byte) (*Content, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return f.Build()
}

// Build validates f and converts it to engine types.
func (f File) Build() (*Content, error) {
	if len(f.Board) == 0 {
		return nil, ErrNoBoard
	}
	c := &Content{Questions: make(map[engine.Category][]engine.QuestionCard)}

	for i, ts := range f.Board {
		tt, err := engine.ParseTileType(ts.Type)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrBadTile, i, err)
		}
		if tt == engine.TileQuestion && ts.Category == "" {
			return nil, fmt.Errorf("%w %d: question tile needs a category", ErrBadTile, i)
		}
		c.Board = append(c.Board, engine.Tile{Type: tt, Category: engine.Category(ts.Category)})
	}

	for cat, qs := range f.Questions {
		for i, q := range qs {
			card, err := q.card()
			if err != nil {
				return nil, fmt.Errorf("%w: %s #%d: %v", ErrBadQuestion, cat, i+1, err)
			}
			c.Questions[engine.Category(cat)] = append(c.Questions[engine.Category(cat)], card)
		}
	}

	var err error
	if c.Benefits, err = cards(f.Benefits, engine.IntentBenefit); err != nil {
		return nil, err
	}
	if c.Penalties, err = cards(f.Penalties, engine.IntentPenalty); err != nil {
		return nil, err
	}
	return c, nil
}

func (q QuestionSpec) card() (engine.QuestionCard, error) {
	if q.Prompt == "" {
		return engine.QuestionCard{}, errors.New("empty prompt")
	}
	if len(q.Options) != 3 {
		return engine.QuestionCard{}, fmt.Errorf("want 3 options, got %d", len(q.Options))
	}
	if q.Answer < 1 || q.Answer > 3 {
		return engine.QuestionCard{}, fmt.Errorf("answer %d outside 1-3", q.Answer)
	}
	card := engine.QuestionCard{Prompt: q.Prompt, Answer: q.Answer}
	copy(card.Options[:], q.Options)
	return card, nil
}

func cards(specs []CardSpec, intent engine.Intent) ([]engine.EffectCard, error) {
	var out []engine.EffectCard
	for i, s := range specs {
		kind, err := engine.ParseEffectKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %s #%d: %v", ErrBadCard, intent, i+1, err)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("%w: %s #%d: missing name", ErrBadCard, intent, i+1)
		}
		if s.Turns < 0 {
			return nil, fmt.Errorf("%w: %s: negative turns", ErrBadCard, s.Name)
		}
		out = append(out, engine.EffectCard{
			Type:        engine.CardEffect,
			Intent:      intent,
			Kind:        kind,
			Steps:       s.Steps,
			Turns:       s.Turns,
			Tile:        s.Tile,
			Name:        s.Name,
			Description: s.Description,
		})
	}
	return out, nil
}

// Decks builds the engine deck manager for this content.
func (c *Content) Decks(rng *rand.Rand) *engine.Decks {
	return engine.NewDecks(c.Questions, c.Benefits, c.Penalties, rng)
}

// Missing lists categories used on the board that have no questions. Landing
// on such a tile counts as a correct answer, so this is a warning, not an error.
func (c *Content) Missing() []engine.Category {
	seen := map[engine.Category]bool{}
	var out []engine.Category
	for _, t := range c.Board {
		if t.Type != engine.TileQuestion || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		if len(c.Questions[t.Category]) == 0 {
			out = append(out, t.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
