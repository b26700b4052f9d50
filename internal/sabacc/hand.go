package sabacc

import "strings"

// HeldCard is a card committed to a hand. Locked marks cards kept through a
// previous selection round, which may no longer be discarded.
type HeldCard struct {
	Card   Card `json:"card"`
	Locked bool `json:"locked,omitempty"`
}

// StagedCard is a drawn-but-not-yet-committed card, held apart from the hand
// until the player resolves a keep/discard choice.
type StagedCard struct {
	Card   Card
	Source DeckTag
}

// Hand is the cards held by exactly one player. In slotted mode the hand has
// a fixed shape of one positive and one negative card; in open mode it grows
// and shrinks freely, preserving insertion order.
type Hand struct {
	slotted  bool
	positive *Card
	negative *Card
	held     []HeldCard
	staged   *StagedCard
}

// NewHand creates an empty open hand.
func NewHand() *Hand {
	return &Hand{}
}

// NewSlottedHand creates an empty fixed-shape hand with positive and
// negative slots.
func NewSlottedHand() *Hand {
	return &Hand{slotted: true}
}

func (h *Hand) Slotted() bool {
	return h.slotted
}

// Add appends a card to an open hand.
func (h *Hand) Add(c Card) {
	h.held = append(h.held, HeldCard{Card: c})
}

// SetSlot places a card in the given slot, replacing any occupant.
func (h *Hand) SetSlot(slot Slot, c Card) {
	card := c
	if slot == SlotPositive {
		h.positive = &card
	} else {
		h.negative = &card
	}
}

// Slot returns the card occupying the given slot.
func (h *Hand) Slot(slot Slot) (Card, bool) {
	var ref *Card
	if slot == SlotPositive {
		ref = h.positive
	} else {
		ref = h.negative
	}
	if ref == nil {
		return Card{}, false
	}
	return *ref, true
}

// Cards returns the held cards in display order: slot order for slotted
// hands, insertion order otherwise.
func (h *Hand) Cards() []Card {
	if h.slotted {
		var out []Card
		if h.positive != nil {
			out = append(out, *h.positive)
		}
		if h.negative != nil {
			out = append(out, *h.negative)
		}
		return out
	}
	out := make([]Card, len(h.held))
	for i, hc := range h.held {
		out[i] = hc.Card
	}
	return out
}

// Held returns the open hand's entries, including lock flags.
func (h *Hand) Held() []HeldCard {
	out := make([]HeldCard, len(h.held))
	copy(out, h.held)
	return out
}

func (h *Hand) Count() int {
	return len(h.Cards())
}

// Remove takes the card at the given index out of an open hand. Discarding
// the last remaining card is disallowed, as is discarding a locked card.
func (h *Hand) Remove(index int) (Card, error) {
	if index < 0 || index >= len(h.held) {
		return Card{}, ErrNotInHand
	}
	if len(h.held) <= 1 {
		return Card{}, ErrCannotDiscardLast
	}
	if h.held[index].Locked {
		return Card{}, ErrCardLocked
	}
	card := h.held[index].Card
	h.held = append(h.held[:index], h.held[index+1:]...)
	return card, nil
}

// Replace swaps the card at the given index for a new one and returns the
// displaced card. Unlike Remove there is no last-card guard because the hand
// size does not change.
func (h *Hand) Replace(index int, c Card) (Card, error) {
	if index < 0 || index >= len(h.held) {
		return Card{}, ErrNotInHand
	}
	if h.held[index].Locked {
		return Card{}, ErrCardLocked
	}
	old := h.held[index].Card
	h.held[index].Card = c
	return old, nil
}

// KeepOnly retains the cards at the given indices and removes the rest,
// returning the removed cards in hand order. Locked cards must be among the
// kept indices, and at least one card must remain.
func (h *Hand) KeepOnly(indices []int) ([]Card, error) {
	keep := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(h.held) {
			return nil, ErrNotInHand
		}
		keep[i] = true
	}
	if len(keep) == 0 {
		return nil, ErrCannotDiscardLast
	}
	for i, hc := range h.held {
		if hc.Locked && !keep[i] {
			return nil, ErrCardLocked
		}
	}
	var kept []HeldCard
	var removed []Card
	for i, hc := range h.held {
		if keep[i] {
			kept = append(kept, hc)
		} else {
			removed = append(removed, hc.Card)
		}
	}
	h.held = kept
	return removed, nil
}

// LockAll marks every held card as locked in.
func (h *Hand) LockAll() {
	for i := range h.held {
		h.held[i].Locked = true
	}
}

// StageDrawn holds a just-drawn card apart from the committed hand until the
// player decides whether to keep it.
func (h *Hand) StageDrawn(c Card, source DeckTag) error {
	if h.staged != nil {
		return ErrAlreadyStaged
	}
	h.staged = &StagedCard{Card: c, Source: source}
	return nil
}

// Staged returns the pending drawn card, if any.
func (h *Hand) Staged() *StagedCard {
	if h.staged == nil {
		return nil
	}
	s := *h.staged
	return &s
}

// ResolveStaged commits or discards the staged card and returns the card
// that must go back to its source deck, or nil if nothing is returned.
func (h *Hand) ResolveStaged(keep bool) (*Card, error) {
	if h.staged == nil {
		return nil, ErrNothingStaged
	}
	staged := *h.staged
	h.staged = nil

	slot := SlotNegative
	if staged.Source == DeckPositive {
		slot = SlotPositive
	}
	if !keep {
		return &staged.Card, nil
	}
	existing, ok := h.Slot(slot)
	h.SetSlot(slot, staged.Card)
	if !ok {
		// The deal fills both slots, so an empty slot only occurs in
		// partially constructed hands.
		return nil, nil
	}
	return &existing, nil
}

// Total sums the resolved values of all held cards. The valuer supplies the
// numeric value of each card; it reports false for an unresolved wildcard,
// in which case the total is incomplete.
func (h *Hand) Total(valuer func(Slot, Card) (int, bool)) (int, bool) {
	total := 0
	if h.slotted {
		if h.positive == nil || h.negative == nil {
			return 0, false
		}
		pv, ok := valuer(SlotPositive, *h.positive)
		if !ok {
			return 0, false
		}
		nv, ok := valuer(SlotNegative, *h.negative)
		if !ok {
			return 0, false
		}
		return pv + nv, true
	}
	for _, hc := range h.held {
		v, ok := valuer(SlotNone, hc.Card)
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}

// String renders the hand the way the original presentation did:
// " | +3 | -5 |".
func (h *Hand) String() string {
	cards := h.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return " | " + strings.Join(parts, " | ") + " |"
}
