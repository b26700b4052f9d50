package game

import (
	"math/rand/v2"

	"sabacc-game/internal/sabacc"
)

// impostorPrompt is one pending Impostor decision: the player rolled two
// dice and must pick which one their card takes.
type impostorPrompt struct {
	player *Player
	slot   sabacc.Slot
	dice   [2]int
}

// wildcardResolver walks every frozen hand in seat order and collects the
// Impostor decisions that must happen before any Sylop can mirror its
// partner. Sylop assignment is deferred until the queue drains so a Sylop
// always copies a settled value.
type wildcardResolver struct {
	queue   []impostorPrompt
	pending int
}

// newWildcardResolver scans the players and rolls dice for every Impostor
// card found, in seat order then slot order (positive before negative).
func newWildcardResolver(players []*Player) *wildcardResolver {
	r := &wildcardResolver{}
	for _, p := range players {
		for _, slot := range []sabacc.Slot{sabacc.SlotPositive, sabacc.SlotNegative} {
			c, ok := p.Hand.Slot(slot)
			if !ok || c.Kind != sabacc.Impostor {
				continue
			}
			r.queue = append(r.queue, impostorPrompt{
				player: p,
				slot:   slot,
				dice:   rollImpostorDice(slot),
			})
		}
	}
	r.pending = 0
	return r
}

// rollImpostorDice rolls 2d6 and signs both faces for the slot the card
// occupies. Positive-slot Impostors land in [1,6], negative in [-6,-1].
func rollImpostorDice(slot sabacc.Slot) [2]int {
	a := rand.IntN(6) + 1
	b := rand.IntN(6) + 1
	if slot == sabacc.SlotNegative {
		a, b = -a, -b
	}
	return [2]int{a, b}
}

// current returns the prompt awaiting a choice, if any.
func (r *wildcardResolver) current() (impostorPrompt, bool) {
	if r.pending >= len(r.queue) {
		return impostorPrompt{}, false
	}
	return r.queue[r.pending], true
}

// resolve records the chosen die for the current prompt and advances the
// queue. The choice must be one of the two rolled faces.
func (r *wildcardResolver) resolve(choice int) error {
	p, ok := r.current()
	if !ok {
		return ErrInvalidForState
	}
	if choice != p.dice[0] && choice != p.dice[1] {
		return ErrInvalidChoice
	}
	p.player.ImpostorValues[p.slot] = choice
	r.pending++
	return nil
}

// resolveRandom settles the current prompt with a uniformly chosen die,
// used for timeouts and synthetic opponents.
func (r *wildcardResolver) resolveRandom() (int, error) {
	p, ok := r.current()
	if !ok {
		return 0, ErrInvalidForState
	}
	choice := p.dice[rand.IntN(2)]
	p.player.ImpostorValues[p.slot] = choice
	r.pending++
	return choice, nil
}

// done reports whether every queued Impostor has a value.
func (r *wildcardResolver) done() bool {
	return r.pending >= len(r.queue)
}

// assignSylopValues runs after the Impostor queue empties. A lone Sylop
// mirrors the absolute value of its partner card, re-signed for its own
// slot. Two Sylops in one hand are both worth zero.
func assignSylopValues(players []*Player) {
	for _, p := range players {
		positive, okP := p.Hand.Slot(sabacc.SlotPositive)
		negative, okN := p.Hand.Slot(sabacc.SlotNegative)
		if !okP || !okN {
			continue
		}
		if positive.Kind == sabacc.Sylop && negative.Kind == sabacc.Sylop {
			p.SylopValues[sabacc.SlotPositive] = 0
			p.SylopValues[sabacc.SlotNegative] = 0
			continue
		}
		if positive.Kind == sabacc.Sylop {
			if v, ok := p.CardValue(sabacc.SlotNegative, negative); ok {
				p.SylopValues[sabacc.SlotPositive] = abs(v)
			}
		}
		if negative.Kind == sabacc.Sylop {
			if v, ok := p.CardValue(sabacc.SlotPositive, positive); ok {
				p.SylopValues[sabacc.SlotNegative] = -abs(v)
			}
		}
	}
}
