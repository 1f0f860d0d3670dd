package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Difficulty selects how often bots answer trivia correctly.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
}

func (d Difficulty) String() string {
	if s, ok := difficultyNames[d]; ok {
		return s
	}
	return "unknown"
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDifficulty accepts "easy", "medium" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyNames {
		if name == s {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// DefaultAccuracy maps each difficulty to the chance of a correct answer.
func DefaultAccuracy() map[Difficulty]float64 {
	return map[Difficulty]float64{
		Easy:   0.40,
		Medium: 0.65,
		Hard:   0.85,
	}
}

// BotPolicy scripts automated players.
type BotPolicy struct {
	Difficulty Difficulty
	Accuracy   map[Difficulty]float64
	// Delay paces bot actions for presentation. It never changes game state.
	Delay time.Duration
	// UseStoredCards makes a bot play its oldest stored card before rolling.
	UseStoredCards bool
}

func DefaultBotPolicy() BotPolicy {
	return BotPolicy{
		Difficulty:     Medium,
		Accuracy:       DefaultAccuracy(),
		UseStoredCards: true,
	}
}

func (b BotPolicy) Validate() error {
	for d, p := range b.Accuracy {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidAccuracy, d, p)
		}
	}
	return nil
}

// Chance returns the probability of a correct answer at the configured difficulty.
func (b BotPolicy) Chance() float64 {
	if p, ok := b.Accuracy[b.Difficulty]; ok {
		return p
	}
	return DefaultAccuracy()[b.Difficulty]
}

// AnswersCorrectly samples one trivia outcome.
func (b BotPolicy) AnswersCorrectly(rng *rand.Rand) bool {
	return rng.Float64() < b.Chance()
}

func (b BotPolicy) pause(ctx context.Context) error {
	if b.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(b.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
