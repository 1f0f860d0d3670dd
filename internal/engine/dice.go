package engine

import "math/rand/v2"

// DieRange is an inclusive die range. The default is 1-6.
type DieRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func DefaultDie() DieRange {
	return DieRange{Min: 1, Max: 6}
}

// Validate rejects ranges that cannot produce a forward move.
func (d DieRange) Validate() error {
	if d.Min < 1 || d.Max < d.Min {
		return ErrInvalidDieRange
	}
	return nil
}

// Contains reports whether v is a face of this die.
func (d DieRange) Contains(v int) bool {
	return v >= d.Min && v <= d.Max
}

// Roll draws a uniform face.
func (d DieRange) Roll(rng *rand.Rand) int {
	return d.Min + rng.IntN(d.Max-d.Min+1)
}
