package protocol

import (
	"encoding/json"

	"sabacc-game/internal/sabacc"
)

// Message is the envelope for every frame on the wire, in both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage marshals a payload into a ready-to-send envelope.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{Type: msgType, Payload: raw}
	return json.Marshal(msg)
}

// --- Client -> Server payloads ---

// CreateTablePayload asks the hub to open a new table.
type CreateTablePayload struct {
	PlayerName string          `json:"player_name"`
	Variant    string          `json:"variant"`
	Config     json.RawMessage `json:"config,omitempty"`
}

// JoinTablePayload asks to join an existing table by its code.
type JoinTablePayload struct {
	TableCode  string `json:"table_code"`
	PlayerName string `json:"player_name"`
}

// ActionPayload carries one turn action from the seated player.
type ActionPayload struct {
	Action    string `json:"action"`
	CardIndex int    `json:"card_index,omitempty"`
	Keep      []int  `json:"keep,omitempty"`
}

// ImpostorChoicePayload carries the die the player picked for their
// Impostor card.
type ImpostorChoicePayload struct {
	Value int `json:"value"`
}

// --- Server -> Client payloads ---

// PlayerInfo identifies one seat at the table.
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// TableCreatedPayload acknowledges a new table to its host.
type TableCreatedPayload struct {
	TableCode string `json:"table_code"`
	Variant   string `json:"variant"`
}

// LobbyUpdatePayload is sent whenever the roster changes before the deal.
type LobbyUpdatePayload struct {
	TableCode string       `json:"table_code"`
	Variant   string       `json:"variant"`
	Players   []PlayerInfo `json:"players"`
	HostID    string       `json:"host_id"`
}

// GameStartPayload announces the deal to every seat.
type GameStartPayload struct {
	TableCode    string       `json:"table_code"`
	Variant      string       `json:"variant"`
	Players      []PlayerInfo `json:"players"`
	Rounds       int          `json:"rounds"`
	TargetNumber *int         `json:"target_number,omitempty"`
	TargetSuit   string       `json:"target_suit,omitempty"`
}

// DealHandPayload is sent privately to each player with their own cards.
type DealHandPayload struct {
	Cards  []sabacc.Card `json:"cards"`
	Render string        `json:"render"`
}

// TurnUpdatePayload broadcasts the visible outcome of one action.
type TurnUpdatePayload struct {
	PlayerID   string         `json:"player_id"`
	PlayerName string         `json:"player_name"`
	Action     string         `json:"action"`
	Round      int            `json:"round"`
	HandCounts map[string]int `json:"hand_counts"`
}

// YourTurnPayload is sent privately to the player whose turn begins.
type YourTurnPayload struct {
	Round   int           `json:"round"`
	Cards   []sabacc.Card `json:"cards"`
	Render  string        `json:"render"`
	Actions []string      `json:"actions"`
}

// ChooseKeptCardPayload prompts the acting player to keep the drawn card or
// the one it would displace.
type ChooseKeptCardPayload struct {
	Drawn    sabacc.Card `json:"drawn"`
	Existing sabacc.Card `json:"existing"`
}

// ImpostorPromptPayload shows the two rolled dice to the deciding player.
type ImpostorPromptPayload struct {
	Slot string `json:"slot"`
	Dice [2]int `json:"dice"`
}

// ImpostorChosenPayload broadcasts a settled Impostor value.
type ImpostorChosenPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Slot       string `json:"slot"`
	Value      int    `json:"value"`
}

// PlayerJunkedPayload broadcasts a fold.
type PlayerJunkedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// FinalRoundCalledPayload broadcasts that the current orbit is the last.
type FinalRoundCalledPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// StandingInfo is one line of the final ranking.
type StandingInfo struct {
	Player   PlayerInfo    `json:"player"`
	Cards    []sabacc.Card `json:"cards"`
	Render   string        `json:"render"`
	Category string        `json:"category"`
	Total    *int          `json:"total,omitempty"`
	Junked   bool          `json:"junked,omitempty"`
}

// GameOverPayload carries the full ranked result.
type GameOverPayload struct {
	Standings []StandingInfo `json:"standings"`
	Winners   []PlayerInfo   `json:"winners"`
	Tie       bool           `json:"tie"`
}

// ErrorPayload reports a rejected request back to its sender.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
