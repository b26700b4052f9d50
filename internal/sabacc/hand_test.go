package sabacc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlottedHand(t *testing.T) {
	hand := NewSlottedHand()
	require.True(t, hand.Slotted())

	_, ok := hand.Slot(SlotPositive)
	assert.False(t, ok)

	hand.SetSlot(SlotNegative, NumberCard(-4))
	hand.SetSlot(SlotPositive, NumberCard(3))

	pos, ok := hand.Slot(SlotPositive)
	require.True(t, ok)
	assert.Equal(t, NumberCard(3), pos)

	// positive always renders first
	assert.Equal(t, []Card{NumberCard(3), NumberCard(-4)}, hand.Cards())
	assert.Equal(t, " | +3 | -4 |", hand.String())
}

func TestOpenHandAddRemove(t *testing.T) {
	hand := NewHand()
	hand.Add(NumberCard(5))
	hand.Add(NumberCard(-3))
	hand.Add(NumberCard(2))
	require.Equal(t, 3, hand.Count())

	card, err := hand.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, NumberCard(-3), card)
	assert.Equal(t, []Card{NumberCard(5), NumberCard(2)}, hand.Cards())

	_, err = hand.Remove(5)
	assert.ErrorIs(t, err, ErrNotInHand)
	_, err = hand.Remove(-1)
	assert.ErrorIs(t, err, ErrNotInHand)
}

func TestRemoveLastCard(t *testing.T) {
	hand := NewHand()
	hand.Add(NumberCard(1))

	_, err := hand.Remove(0)
	assert.ErrorIs(t, err, ErrCannotDiscardLast)
	assert.Equal(t, 1, hand.Count())
}

func TestRemoveLockedCard(t *testing.T) {
	hand := NewHand()
	hand.Add(NumberCard(1))
	hand.Add(NumberCard(2))
	hand.LockAll()

	_, err := hand.Remove(0)
	assert.ErrorIs(t, err, ErrCardLocked)
}

func TestReplace(t *testing.T) {
	hand := NewHand()
	hand.Add(NumberCard(7))

	old, err := hand.Replace(0, NumberCard(-7))
	require.NoError(t, err)
	assert.Equal(t, NumberCard(7), old)
	assert.Equal(t, []Card{NumberCard(-7)}, hand.Cards())

	_, err = hand.Replace(3, NumberCard(1))
	assert.ErrorIs(t, err, ErrNotInHand)

	hand.LockAll()
	_, err = hand.Replace(0, NumberCard(1))
	assert.ErrorIs(t, err, ErrCardLocked)
}

func TestKeepOnly(t *testing.T) {
	hand := NewHand()
	hand.Add(NumberCard(1))
	hand.Add(NumberCard(2))
	hand.Add(NumberCard(3))

	removed, err := hand.KeepOnly([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []Card{NumberCard(2)}, removed)
	assert.Equal(t, []Card{NumberCard(1), NumberCard(3)}, hand.Cards())
}

func TestKeepOnlyValidation(t *testing.T) {
	hand := NewHand()
	hand.Add(NumberCard(1))
	hand.Add(NumberCard(2))

	_, err := hand.KeepOnly([]int{4})
	assert.ErrorIs(t, err, ErrNotInHand)

	_, err = hand.KeepOnly(nil)
	assert.ErrorIs(t, err, ErrCannotDiscardLast)

	hand.LockAll()
	_, err = hand.KeepOnly([]int{0})
	assert.ErrorIs(t, err, ErrCardLocked)
}

func TestStagedCardLifecycle(t *testing.T) {
	hand := NewSlottedHand()
	hand.SetSlot(SlotPositive, NumberCard(3))
	hand.SetSlot(SlotNegative, NumberCard(-5))

	require.NoError(t, hand.StageDrawn(NumberCard(6), DeckPositive))
	assert.ErrorIs(t, hand.StageDrawn(NumberCard(1), DeckPositive), ErrAlreadyStaged)

	staged := hand.Staged()
	require.NotNil(t, staged)
	assert.Equal(t, NumberCard(6), staged.Card)
	assert.Equal(t, DeckPositive, staged.Source)

	returned, err := hand.ResolveStaged(true)
	require.NoError(t, err)
	require.NotNil(t, returned)
	assert.Equal(t, NumberCard(3), *returned)

	pos, _ := hand.Slot(SlotPositive)
	assert.Equal(t, NumberCard(6), pos)
	assert.Nil(t, hand.Staged())
}

func TestResolveStagedDiscard(t *testing.T) {
	hand := NewSlottedHand()
	hand.SetSlot(SlotNegative, NumberCard(-2))

	require.NoError(t, hand.StageDrawn(NumberCard(-6), DeckNegative))
	returned, err := hand.ResolveStaged(false)
	require.NoError(t, err)
	require.NotNil(t, returned)
	assert.Equal(t, NumberCard(-6), *returned)

	neg, _ := hand.Slot(SlotNegative)
	assert.Equal(t, NumberCard(-2), neg)
}

func TestResolveStagedWithoutStage(t *testing.T) {
	hand := NewSlottedHand()
	_, err := hand.ResolveStaged(true)
	assert.ErrorIs(t, err, ErrNothingStaged)
}

func TestTotal(t *testing.T) {
	plain := func(_ Slot, c Card) (int, bool) { return c.Value, true }

	open := NewHand()
	open.Add(NumberCard(4))
	open.Add(NumberCard(-9))
	total, ok := open.Total(plain)
	require.True(t, ok)
	assert.Equal(t, -5, total)

	slotted := NewSlottedHand()
	slotted.SetSlot(SlotPositive, NumberCard(2))
	_, ok = slotted.Total(plain)
	assert.False(t, ok, "half-filled slotted hand has no total")

	slotted.SetSlot(SlotNegative, ImpostorCard())
	unresolved := func(_ Slot, c Card) (int, bool) {
		if c.Kind == Impostor {
			return 0, false
		}
		return c.Value, true
	}
	_, ok = slotted.Total(unresolved)
	assert.False(t, ok, "unresolved wildcard blocks the total")
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "+7", NumberCard(7).String())
	assert.Equal(t, "-3", NumberCard(-3).String())
	assert.Equal(t, "Ψ", ImpostorCard().String())
	assert.Equal(t, "Ø", SylopCard().String())
	assert.Equal(t, "▲ +2", SuitedCard(2, Triangle).String())
	assert.Equal(t, "● -8", SuitedCard(-8, Circle).String())
}
