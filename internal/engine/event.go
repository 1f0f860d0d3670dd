package engine

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventTurnStart        EventType = "turn_start"
	EventTurnSkipped      EventType = "turn_skipped"
	EventDieRolled        EventType = "die_rolled"
	EventMoved            EventType = "moved"
	EventTileLanded       EventType = "tile_landed"
	EventQuestionAsked    EventType = "question_asked"
	EventQuestionAnswered EventType = "question_answered"
	EventCardDrawn        EventType = "card_drawn"
	EventCardStored       EventType = "card_stored"
	EventCardReplaced     EventType = "card_replaced"
	EventCardDiscarded    EventType = "card_discarded"
	EventCardUsed         EventType = "card_used"
	EventEffectApplied    EventType = "effect_applied"
	EventInventoryCleared EventType = "inventory_cleared"
	EventRepeatTurn       EventType = "repeat_turn"
	EventTurnEnd          EventType = "turn_end"
	EventPhaseChange      EventType = "phase_change"
	EventStateSync        EventType = "state_sync" // Data is a PublicViewData snapshot
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType   `json:"type"`
	Player string      `json:"player,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// EventSink receives events on the scheduler goroutine. Implementations must
// not call back into the Game.
type EventSink func(Event)
