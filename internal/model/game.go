package model

import (
	"slices"
	"time"
)

// Phase represents the lifecycle stage of a room's game
type Phase string

const (
	PhaseLobby   Phase = "lobby"   // Players joining, no cards dealt
	PhaseDealing Phase = "dealing" // Transient while the deck is dealt
	PhasePlaying Phase = "playing" // Tricks in progress
	PhaseEnded   Phase = "ended"   // Round over or game stopped
)

// CanTransitionTo reports whether moving from p to next is allowed.
// Any live phase may be ended; ended is terminal.
func (p Phase) CanTransitionTo(next Phase) bool {
	switch p {
	case PhaseLobby:
		return next == PhaseDealing || next == PhaseEnded
	case PhaseDealing:
		return next == PhasePlaying || next == PhaseEnded
	case PhasePlaying:
		return next == PhaseEnded
	case PhaseEnded:
		return false
	default:
		return false
	}
}

// Seat is a player's position at the table and the cards they hold
type Seat struct {
	Player Player
	Hand   Cards
}

// Active reports whether the seat still holds cards
func (s Seat) Active() bool {
	return len(s.Hand) > 0
}

// PlayedCard is a card on the table together with the seat that played it
type PlayedCard struct {
	Seat int
	Card Card
}

// Trick is the set of cards played since the last lead
type Trick struct {
	LeadSuit     Suit         // Empty until the first card is played
	Plays        []PlayedCard // In play order
	Participants []int        // Seats holding cards when the trick was led
}

// Lead returns the lead suit, if a card has been led
func (t Trick) Lead() (Suit, bool) {
	return t.LeadSuit, t.LeadSuit != ""
}

// Empty reports whether no card has been played in this trick
func (t Trick) Empty() bool {
	return len(t.Plays) == 0
}

// Complete reports whether every participant has played
func (t Trick) Complete() bool {
	return len(t.Plays) > 0 && len(t.Plays) >= len(t.Participants)
}

// Leader is the seat that played the first card of the trick
func (t Trick) Leader() int {
	if len(t.Plays) == 0 {
		return -1
	}
	return t.Plays[0].Seat
}

// CompletedTrick is a resolved trick kept in the discard history
type CompletedTrick struct {
	Plays       []PlayedCard
	LeadSuit    Suit
	Winner      int
	WinningCard Card
}

// Game is the state of the single game hosted in a chat room
type Game struct {
	Room        RoomID
	Phase       Phase
	Seats       []Seat
	TurnIndex   int // Seat expected to play next
	DealerIndex int
	Trick       Trick
	Discard     []CompletedTrick

	CreatedAt time.Time
	DealtAt   time.Time // Zero until the round is dealt
	UpdatedAt time.Time
}

// NewGame returns an empty lobby for the room
func NewGame(room RoomID, now time.Time) *Game {
	return &Game{
		Room:      room,
		Phase:     PhaseLobby,
		Seats:     []Seat{},
		Discard:   []CompletedTrick{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transition moves the game to the next phase if allowed
func (g *Game) Transition(next Phase) error {
	if !g.Phase.CanTransitionTo(next) {
		return &WrongPhaseError{Phase: g.Phase}
	}
	g.Phase = next
	return nil
}

// SeatIndex returns the seat of the player, or -1 if not seated
func (g *Game) SeatIndex(id PlayerID) int {
	return slices.IndexFunc(g.Seats, func(s Seat) bool { return s.Player.ID == id })
}

// Players returns the seated players in seat order
func (g *Game) Players() []Player {
	players := make([]Player, len(g.Seats))
	for i, s := range g.Seats {
		players[i] = s.Player
	}
	return players
}

// ActiveSeats returns the seats that still hold at least one card
func (g *Game) ActiveSeats() []int {
	var idxs []int
	for i, s := range g.Seats {
		if s.Active() {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() Player {
	if g.TurnIndex < 0 || g.TurnIndex >= len(g.Seats) {
		return Player{}
	}
	return g.Seats[g.TurnIndex].Player
}

// CardsInPlay counts every card in hands, on the table and in the discard
func (g *Game) CardsInPlay() int {
	n := len(g.Trick.Plays)
	for _, s := range g.Seats {
		n += len(s.Hand)
	}
	for _, t := range g.Discard {
		n += len(t.Plays)
	}
	return n
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	c := *g
	c.Seats = make([]Seat, len(g.Seats))
	for i, s := range g.Seats {
		c.Seats[i] = Seat{Player: s.Player, Hand: s.Hand.Clone()}
	}
	c.Trick = Trick{
		LeadSuit:     g.Trick.LeadSuit,
		Plays:        slices.Clone(g.Trick.Plays),
		Participants: slices.Clone(g.Trick.Participants),
	}
	c.Discard = make([]CompletedTrick, len(g.Discard))
	for i, t := range g.Discard {
		t.Plays = slices.Clone(t.Plays)
		c.Discard[i] = t
	}
	return &c
}
