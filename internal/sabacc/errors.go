package sabacc

import "errors"

var (
	// ErrDeckEmpty is returned when drawing from an exhausted deck.
	ErrDeckEmpty = errors.New("the deck is empty")
	// ErrNotInHand is returned when removing a card the hand does not hold.
	ErrNotInHand = errors.New("card not in hand")
	// ErrCannotDiscardLast is returned when a discard would leave the hand empty.
	ErrCannotDiscardLast = errors.New("cannot discard the last card")
	// ErrNothingStaged is returned when resolving a keep/discard choice with no drawn card staged.
	ErrNothingStaged = errors.New("no drawn card staged")
	// ErrAlreadyStaged is returned when drawing while a keep/discard choice is pending.
	ErrAlreadyStaged = errors.New("a drawn card is already staged")
	// ErrCardLocked is returned when discarding a card locked in from a previous round.
	ErrCardLocked = errors.New("card is locked in")
)
