package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Lobby errors
	ErrGameExists          = errors.New("a game already exists in this room")
	ErrNoActiveLobby       = errors.New("no open lobby in this room")
	ErrAlreadyJoined       = errors.New("player has already joined")
	ErrTableFull           = errors.New("table is full")
	ErrInsufficientPlayers = errors.New("at least 2 players are needed to deal")

	// Game errors
	ErrNoActiveGame   = errors.New("no active game in this room")
	ErrWrongPhase     = errors.New("action not allowed in the current phase")
	ErrNotSeated      = errors.New("player is not seated in this game")
	ErrInvalidCard    = errors.New("invalid card")
	ErrNotYourTurn    = errors.New("not this player's turn")
	ErrNotInHand      = errors.New("card is not in hand")
	ErrMustFollowSuit = errors.New("must follow the lead suit")

	// Messaging errors
	ErrDirectMessageFailed = errors.New("direct message could not be delivered")
	ErrUnknownSender       = errors.New("sender identity could not be resolved")

	// History errors
	ErrRoundNotFound = errors.New("round not found")
)

// MustFollowSuitError names the suit the player was required to follow.
// It matches ErrMustFollowSuit with errors.Is.
type MustFollowSuitError struct {
	Suit Suit
}

func (e *MustFollowSuitError) Error() string {
	return fmt.Sprintf("must follow %s", e.Suit.Name())
}

func (e *MustFollowSuitError) Is(target error) bool {
	return target == ErrMustFollowSuit
}

// WrongPhaseError records the phase that rejected an action.
// It matches ErrWrongPhase with errors.Is.
type WrongPhaseError struct {
	Phase Phase
}

func (e *WrongPhaseError) Error() string {
	return fmt.Sprintf("action not allowed in phase %s", e.Phase)
}

func (e *WrongPhaseError) Is(target error) bool {
	return target == ErrWrongPhase
}
