// Package effects holds one handler per effect card kind.
package effects

import "boardquest/internal/engine"

// Register adds every handler in this package to r.
func Register(r *engine.Resolver) {
	r.Register(RelativeMove{})
	r.Register(RepeatTurn{})
	r.Register(SkipTurns{})
	r.Register(Teleport{})
	r.Register(LoseAllCards{})
}

// NewResolver returns a resolver with every handler registered.
func NewResolver() *engine.Resolver {
	r := engine.NewResolver()
	Register(r)
	return r
}
