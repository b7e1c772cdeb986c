package model

import (
	"slices"
	"strings"
	"unicode"
)

// Suit is one of the four French suits, identified by its letter
type Suit string

const (
	SuitClubs    Suit = "C"
	SuitDiamonds Suit = "D"
	SuitHearts   Suit = "H"
	SuitSpades   Suit = "S"
)

// Suits lists every suit in hand-sorting order
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s.order() >= 0
}

// Name returns the long English name of the suit
func (s Suit) Name() string {
	switch s {
	case SuitClubs:
		return "Clubs"
	case SuitDiamonds:
		return "Diamonds"
	case SuitHearts:
		return "Hearts"
	case SuitSpades:
		return "Spades"
	default:
		return string(s)
	}
}

func (s Suit) order() int {
	return slices.Index(Suits, s)
}

// Rank is a card rank; tens are written "10"
type Rank string

const (
	RankTwo   Rank = "2"
	RankThree Rank = "3"
	RankFour  Rank = "4"
	RankFive  Rank = "5"
	RankSix   Rank = "6"
	RankSeven Rank = "7"
	RankEight Rank = "8"
	RankNine  Rank = "9"
	RankTen   Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankAce   Rank = "A"
)

// Ranks lists every rank from lowest to highest
var Ranks = []Rank{
	RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight,
	RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce,
}

// Value is the rank's strength, 0 for a two up to 12 for an ace.
// Unknown ranks return -1.
func (r Rank) Value() int {
	return slices.Index(Ranks, r)
}

// Valid reports whether r is a known rank
func (r Rank) Valid() bool {
	return r.Value() >= 0
}

// Card is a single playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// String renders the card as "{rank}{suit}", e.g. "10H" or "QS"
func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// Valid reports whether both rank and suit are known
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// Compare orders cards by suit (C, D, H, S) and then by rank
func (c Card) Compare(other Card) int {
	if d := c.Suit.order() - other.Suit.order(); d != 0 {
		return d
	}
	return c.Rank.Value() - other.Rank.Value()
}

// ParseCard reads a card token typed by a player. Matching is
// case-insensitive, whitespace is ignored, the final character is the suit
// and a leading "T" is accepted for ten. Tokens must be ASCII.
func ParseCard(token string) (Card, error) {
	cleaned := strings.Join(strings.Fields(token), "")
	if strings.IndexFunc(cleaned, func(r rune) bool { return r > unicode.MaxASCII }) >= 0 {
		return Card{}, ErrInvalidCard
	}
	cleaned = strings.ToUpper(cleaned)
	if len(cleaned) < 2 {
		return Card{}, ErrInvalidCard
	}

	suit := Suit(cleaned[len(cleaned)-1:])
	rank := Rank(cleaned[:len(cleaned)-1])
	if rank == "T" {
		rank = RankTen
	}

	card := Card{Rank: rank, Suit: suit}
	if !card.Valid() {
		return Card{}, ErrInvalidCard
	}
	return card, nil
}

// MustParseCard is ParseCard for literals known to be valid; it panics otherwise
func MustParseCard(token string) Card {
	card, err := ParseCard(token)
	if err != nil {
		panic("invalid card literal " + token)
	}
	return card
}

// Cards is an ordered collection of cards, such as a hand or a deck
type Cards []Card

// ParseCards parses a space separated list of card tokens
func ParseCards(tokens string) (Cards, error) {
	fields := strings.Fields(tokens)
	cards := make(Cards, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Contains reports whether the card is present
func (cs Cards) Contains(card Card) bool {
	return slices.Contains(cs, card)
}

// HasSuit reports whether any card is of the given suit
func (cs Cards) HasSuit(suit Suit) bool {
	return slices.ContainsFunc(cs, func(c Card) bool { return c.Suit == suit })
}

// Remove returns the cards without the first occurrence of card, and whether
// it was found. The receiver is not modified.
func (cs Cards) Remove(card Card) (Cards, bool) {
	i := slices.Index(cs, card)
	if i < 0 {
		return cs, false
	}
	out := make(Cards, 0, len(cs)-1)
	out = append(out, cs[:i]...)
	return append(out, cs[i+1:]...), true
}

// Sort orders the cards in place by suit then rank
func (cs Cards) Sort() {
	slices.SortFunc(cs, Card.Compare)
}

// Clone returns an independent copy
func (cs Cards) Clone() Cards {
	if cs == nil {
		return nil
	}
	return slices.Clone(cs)
}

// String renders the cards as space separated tokens
func (cs Cards) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
