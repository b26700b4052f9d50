package game

// ActionType enumerates the moves a player can submit on their turn.
type ActionType string

const (
	ActionDraw         ActionType = "draw"
	ActionDrawPositive ActionType = "draw_positive"
	ActionDrawNegative ActionType = "draw_negative"
	ActionKeepDrawn    ActionType = "keep_drawn"
	ActionKeepExisting ActionType = "keep_existing"
	ActionDiscard      ActionType = "discard"
	ActionReplace      ActionType = "replace"
	ActionSelectKeep   ActionType = "select_keep"
	ActionStand        ActionType = "stand"
	ActionJunk         ActionType = "junk"
	ActionCallEnd      ActionType = "call_end"
)

// Action is a player's move for the current turn. CardIndex addresses a card
// in the hand for discard/replace; Keep lists the hand indices retained by a
// select_keep action.
type Action struct {
	Type      ActionType `json:"type"`
	CardIndex int        `json:"card_index,omitempty"`
	Keep      []int      `json:"keep,omitempty"`
}

// variantActions lists the actions each variant's turn state machine accepts
// while the table is awaiting an action. The kept-card choice actions are
// only reachable through the drawing sub-state and are validated separately.
var variantActions = map[Variant]map[ActionType]bool{
	CorellianSpike: {
		ActionDraw:    true,
		ActionDiscard: true,
		ActionReplace: true,
		ActionStand:   true,
		ActionJunk:    true,
	},
	Kessel: {
		ActionDrawPositive: true,
		ActionDrawNegative: true,
		ActionStand:        true,
		ActionJunk:         true,
	},
	CoruscantShift: {
		ActionSelectKeep: true,
		ActionStand:      true,
		ActionJunk:       true,
	},
	Traditional: {
		ActionDraw:    true,
		ActionReplace: true,
		ActionStand:   true,
		ActionCallEnd: true,
		ActionJunk:    true,
	},
}
