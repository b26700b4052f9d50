package game

import (
	"fmt"

	"sabacc-game/internal/sabacc"
)

// Variant identifies one of the supported Sabacc rule sets.
type Variant string

const (
	CorellianSpike Variant = "corellian_spike"
	Kessel         Variant = "kessel"
	CoruscantShift Variant = "coruscant_shift"
	Traditional    Variant = "traditional"
)

// Valid reports whether the variant is one of the known rule sets.
func (v Variant) Valid() bool {
	_, ok := variantActions[v]
	return ok
}

// Slotted reports whether hands have the fixed positive/negative shape.
func (v Variant) Slotted() bool {
	return v == Kessel
}

// Config holds the per-table game settings. A zero Rounds means the game is
// open-ended and only finishes once a player calls the end.
type Config struct {
	Rounds              int  `json:"rounds"`
	StartingCards       int  `json:"starting_cards"`
	PlayerLimit         int  `json:"player_limit"`
	AllowDiscard        bool `json:"allow_discard,omitempty"`
	TargetRandomization bool `json:"target_randomization,omitempty"`
	// TimeoutKeepsDrawn selects the default for a timed-out kept-card
	// choice: keep the drawn card instead of the existing one.
	TimeoutKeepsDrawn bool `json:"timeout_keeps_drawn,omitempty"`
}

const maxPlayers = 8

// DefaultConfig returns the stock settings for a variant.
func DefaultConfig(v Variant) Config {
	switch v {
	case Kessel:
		return Config{Rounds: 3, StartingCards: 2, PlayerLimit: maxPlayers}
	case CoruscantShift:
		return Config{Rounds: 2, StartingCards: 5, PlayerLimit: maxPlayers, TargetRandomization: true}
	case Traditional:
		return Config{Rounds: 0, StartingCards: 2, PlayerLimit: maxPlayers}
	default:
		return Config{Rounds: 3, StartingCards: 2, PlayerLimit: maxPlayers, AllowDiscard: true}
	}
}

// Validate rejects configurations before any game state is created.
func (c Config) Validate(v Variant) error {
	if !v.Valid() {
		return fmt.Errorf("unknown variant %q", v)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative, got %d", c.Rounds)
	}
	if c.Rounds == 0 && v != Traditional {
		return fmt.Errorf("%s requires a positive number of rounds", v)
	}
	if c.StartingCards < 1 {
		return fmt.Errorf("starting cards must be positive, got %d", c.StartingCards)
	}
	if v == Kessel && c.StartingCards != 2 {
		return fmt.Errorf("kessel deals exactly 2 starting cards, got %d", c.StartingCards)
	}
	if c.PlayerLimit < 1 || c.PlayerLimit > maxPlayers {
		return fmt.Errorf("player limit must be between 1 and %d, got %d", maxPlayers, c.PlayerLimit)
	}
	if !v.Slotted() && c.StartingCards*c.PlayerLimit > deckCapacity(v) {
		return fmt.Errorf("%d players at %d starting cards exceeds the %d-card deck",
			c.PlayerLimit, c.StartingCards, deckCapacity(v))
	}
	if c.AllowDiscard && v != CorellianSpike {
		return fmt.Errorf("allow_discard is only supported by %s", CorellianSpike)
	}
	if c.TargetRandomization && v != CoruscantShift {
		return fmt.Errorf("target_randomization is only supported by %s", CoruscantShift)
	}
	return nil
}

// deckCapacity is the number of cards in the variant's draw deck, the bound
// on how many a table can ever deal.
func deckCapacity(v Variant) int {
	switch v {
	case CoruscantShift:
		return 7 * 62
	case Traditional:
		return 76
	default:
		return 62
	}
}

// buildKesselDeck constructs one side of the Kessel game: values 1..6 with
// three copies each, three Impostors and one Sylop, 22 cards. sign is +1 for
// the positive deck and -1 for the negative deck.
func buildKesselDeck(sign int) *sabacc.Deck {
	var cards []sabacc.Card
	for v := 1; v <= 6; v++ {
		for i := 0; i < 3; i++ {
			cards = append(cards, sabacc.NumberCard(sign*v))
		}
	}
	for i := 0; i < 3; i++ {
		cards = append(cards, sabacc.ImpostorCard())
	}
	cards = append(cards, sabacc.SylopCard())
	deck := sabacc.NewDeck(cards)
	deck.Shuffle()
	return deck
}

// buildCorellianDeck constructs the 62-card Corellian Spike deck: values
// 1..10 with three copies each of both signs, plus two Sylops.
func buildCorellianDeck() *sabacc.Deck {
	var cards []sabacc.Card
	for v := 1; v <= 10; v++ {
		for i := 0; i < 3; i++ {
			cards = append(cards, sabacc.NumberCard(v), sabacc.NumberCard(-v))
		}
	}
	cards = append(cards, sabacc.SylopCard(), sabacc.SylopCard())
	deck := sabacc.NewDeck(cards)
	deck.Shuffle()
	return deck
}

// buildCoruscantDeck constructs the Coruscant Shift shoe: seven copies of a
// 62-card base of three suits with values ±1..10 plus two wild-suit Sylops.
func buildCoruscantDeck() *sabacc.Deck {
	suits := []sabacc.Suit{sabacc.Circle, sabacc.Triangle, sabacc.Square}
	var cards []sabacc.Card
	for n := 0; n < 7; n++ {
		for _, s := range suits {
			for v := 1; v <= 10; v++ {
				cards = append(cards, sabacc.SuitedCard(v, s), sabacc.SuitedCard(-v, s))
			}
		}
		cards = append(cards, sabacc.SylopCard(), sabacc.SylopCard())
	}
	deck := sabacc.NewDeck(cards)
	deck.Shuffle()
	return deck
}

// Special card values in the Traditional deck: the Idiot, Balance,
// Endurance, Moderation, the Evil One, the Queen of Air and Darkness,
// Demise and the Star.
var traditionalSpecials = []int{0, -11, -8, -14, -15, -2, -13, -17}

// buildTraditionalDeck constructs the 76-card Traditional deck: four suits
// of 1..15 plus two copies of each of the eight special cards.
func buildTraditionalDeck() *sabacc.Deck {
	var cards []sabacc.Card
	for suit := 0; suit < 4; suit++ {
		for v := 1; v <= 15; v++ {
			cards = append(cards, sabacc.NumberCard(v))
		}
	}
	for _, v := range traditionalSpecials {
		cards = append(cards, sabacc.NumberCard(v), sabacc.NumberCard(v))
	}
	deck := sabacc.NewDeck(cards)
	deck.Shuffle()
	return deck
}
