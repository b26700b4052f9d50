package game

import (
	"github.com/google/uuid"

	"sabacc-game/internal/sabacc"
)

// IdentityKind tags a player as a real participant or the practice opponent
// dealt in when a table starts with a single player.
type IdentityKind int

const (
	Human IdentityKind = iota
	SyntheticOpponent
)

const syntheticOpponentName = "Lando Calrissian AI"

// PlayerIdentity wraps an external identity handle. The core never inspects
// the handle; display and winner logic branch on the kind tag only.
type PlayerIdentity struct {
	Kind IdentityKind `json:"kind"`
	ID   string       `json:"id"`
	Name string       `json:"name"`
}

func HumanIdentity(id, name string) PlayerIdentity {
	return PlayerIdentity{Kind: Human, ID: id, Name: name}
}

func SyntheticIdentity() PlayerIdentity {
	return PlayerIdentity{Kind: SyntheticOpponent, ID: uuid.NewString(), Name: syntheticOpponentName}
}

// Player owns exactly one hand plus the resolved wildcard value mappings
// filled in at game end.
type Player struct {
	Identity       PlayerIdentity
	Hand           *sabacc.Hand
	ImpostorValues map[sabacc.Slot]int
	SylopValues    map[sabacc.Slot]int
}

// NewPlayer creates a player with an empty hand of the variant's shape.
func NewPlayer(identity PlayerIdentity, slotted bool) *Player {
	hand := sabacc.NewHand()
	if slotted {
		hand = sabacc.NewSlottedHand()
	}
	return &Player{
		Identity:       identity,
		Hand:           hand,
		ImpostorValues: make(map[sabacc.Slot]int),
		SylopValues:    make(map[sabacc.Slot]int),
	}
}

// CardValue resolves a card to its numeric value. Open-hand Sylops are worth
// zero; slotted wildcards take their assigned values, reporting false while
// unresolved.
func (p *Player) CardValue(slot sabacc.Slot, c sabacc.Card) (int, bool) {
	switch c.Kind {
	case sabacc.Impostor:
		v, ok := p.ImpostorValues[slot]
		return v, ok
	case sabacc.Sylop:
		if slot == sabacc.SlotNone {
			return 0, true
		}
		v, ok := p.SylopValues[slot]
		return v, ok
	default:
		return c.Value, true
	}
}

// Total sums the resolved values of the player's hand. The second return is
// false while any held wildcard is unresolved.
func (p *Player) Total() (int, bool) {
	return p.Hand.Total(p.CardValue)
}

// HoldsImpostor reports whether any held card still needs a dice choice.
func (p *Player) HoldsImpostor() bool {
	for _, c := range p.Hand.Cards() {
		if c.Kind == sabacc.Impostor {
			return true
		}
	}
	return false
}
