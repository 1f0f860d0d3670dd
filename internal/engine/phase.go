package engine

// TurnState is the scheduler's position in the turn state machine.
type TurnState int

const (
	StateIdle             TurnState = iota // between turns
	StateFocusing                          // presentation hand-off to the new player
	StateAwaitingRoll                      // waiting for a die value
	StateMoving                            // advancing by the roll
	StateResolvingTile                     // dispatching on the landed tile
	StateAwaitingDecision                  // waiting on the human for a choice
	StateTurnComplete                      // deciding between repeat and advance
)

var stateNames = map[TurnState]string{
	StateIdle:             "Idle",
	StateFocusing:         "Focusing",
	StateAwaitingRoll:     "AwaitingRoll",
	StateMoving:           "Moving",
	StateResolvingTile:    "ResolvingTile",
	StateAwaitingDecision: "AwaitingDecision",
	StateTurnComplete:     "TurnComplete",
}

func (s TurnState) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "Unknown"
}

func (s TurnState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
