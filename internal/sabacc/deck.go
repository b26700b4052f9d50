package sabacc

import "math/rand/v2"

// DeckTag identifies which deck a card was drawn from, for variants that
// run parallel positive/negative decks.
type DeckTag string

const (
	DeckMain     DeckTag = "main"
	DeckPositive DeckTag = "positive"
	DeckNegative DeckTag = "negative"
)

// Deck is an ordered stack of cards. Draw removes from the top (end of the
// slice); returned cards go to the bottom so they are not immediately redrawn.
type Deck struct {
	cards []Card
}

// NewDeck wraps the given cards in a deck without shuffling.
func NewDeck(cards []Card) *Deck {
	return &Deck{cards: cards}
}

// Shuffle randomizes the order of cards in the deck.
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckEmpty
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// ReturnToBottom puts a discarded card back at the bottom of the deck,
// making it eligible for future draws without biasing an immediate re-draw.
func (d *Deck) ReturnToBottom(c Card) {
	d.cards = append([]Card{c}, d.cards...)
}

// Cards returns a copy of the remaining cards, top of the stack last.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
