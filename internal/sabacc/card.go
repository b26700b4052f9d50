package sabacc

import "fmt"

// Kind distinguishes ordinary number cards from the two wildcard kinds.
type Kind int

const (
	Number   Kind = iota // plain signed value
	Impostor             // value chosen from a dice roll at game end
	Sylop                // value mirrors the partner card (or 0)
)

// Suit represents the suit of a card in suited variants.
type Suit string

const (
	SuitNone Suit = ""
	Circle   Suit = "Circle"
	Triangle Suit = "Triangle"
	Square   Suit = "Square"
	SuitWild Suit = "Wild" // Sylops match any suit
)

// Slot is a fixed position in a two-card hand, constraining the card's sign.
type Slot string

const (
	SlotNone     Slot = ""
	SlotPositive Slot = "positive"
	SlotNegative Slot = "negative"
)

// Card is an immutable value object. Decks own many duplicate instances.
type Card struct {
	Kind  Kind `json:"kind"`
	Value int  `json:"value"`
	Suit  Suit `json:"suit,omitempty"`
}

func NumberCard(value int) Card {
	return Card{Kind: Number, Value: value}
}

func SuitedCard(value int, suit Suit) Card {
	return Card{Kind: Number, Value: value, Suit: suit}
}

func ImpostorCard() Card {
	return Card{Kind: Impostor}
}

func SylopCard() Card {
	return Card{Kind: Sylop, Suit: SuitWild}
}

var suitSymbols = map[Suit]string{
	Circle:   "●",
	Triangle: "▲",
	Square:   "■",
}

// String renders a card the way the hand display does: Ψ for Impostor,
// Ø for Sylop, signed values otherwise, with a suit symbol when suited.
func (c Card) String() string {
	switch c.Kind {
	case Impostor:
		return "Ψ"
	case Sylop:
		return "Ø"
	}
	sign := ""
	if c.Value >= 0 {
		sign = "+"
	}
	if sym, ok := suitSymbols[c.Suit]; ok {
		return fmt.Sprintf("%s %s%d", sym, sign, c.Value)
	}
	return fmt.Sprintf("%s%d", sign, c.Value)
}

// Wild reports whether the card needs wildcard resolution or matches any suit.
func (c Card) Wild() bool {
	return c.Kind != Number
}
