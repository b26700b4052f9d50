package game

import "errors"

// Lobby and start errors.
var (
	ErrAlreadyJoined  = errors.New("already in the game")
	ErrTableFull      = errors.New("the table is full")
	ErrAlreadyStarted = errors.New("the game has already started")
	ErrNotAMember     = errors.New("only players in the game can do that")
	ErrTooFewPlayers  = errors.New("not enough players to start")
)

// Action errors. These are precondition violations: the action is rejected,
// state is unchanged and the acting player keeps the turn.
var (
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidForState  = errors.New("that action is not available right now")
	ErrEndAlreadyCalled = errors.New("the final round has already been called")
	ErrInvalidChoice    = errors.New("that value was not one of the rolled dice")
	ErrGameNotOver      = errors.New("the game is not over yet")
	ErrNoSuchTable      = errors.New("no such table")
)
