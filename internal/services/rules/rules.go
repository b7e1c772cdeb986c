// Package rules holds the pure Bhabhi play rules: turn order, follow-suit
// legality and trick resolution. Nothing here touches storage or logging.
package rules

import (
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

// TrickResult is the resolution of a completed trick
type TrickResult struct {
	Winner   int
	Card     model.Card
	Fallback bool // No card of the lead suit was played; the leader took the trick
}

// CheckTurn returns ErrNotYourTurn unless seat is the seat to play
func CheckTurn(g *model.Game, seat int) error {
	if g.TurnIndex != seat {
		return model.ErrNotYourTurn
	}
	return nil
}

// CheckLegal applies the follow-suit rule to a card the seat wants to play.
// A card of the lead suit is always legal, and any card is legal when no
// suit has been led or the seat has none of the lead suit left.
func CheckLegal(g *model.Game, seat int, card model.Card) error {
	hand := g.Seats[seat].Hand
	if !hand.Contains(card) {
		return model.ErrNotInHand
	}
	lead, ok := g.Trick.Lead()
	if !ok || card.Suit == lead {
		return nil
	}
	if hand.HasSuit(lead) {
		return &model.MustFollowSuitError{Suit: lead}
	}
	return nil
}

// ValidatePlay checks turn order first and then legality
func ValidatePlay(g *model.Game, seat int, card model.Card) error {
	if err := CheckTurn(g, seat); err != nil {
		return err
	}
	return CheckLegal(g, seat, card)
}

// NextActiveSeat returns the first seat after from that still holds cards,
// looking at most len(seats)-1 seats ahead. If none does, from is returned.
func NextActiveSeat(g *model.Game, from int) int {
	n := len(g.Seats)
	for step := 1; step < n; step++ {
		i := (from + step) % n
		if g.Seats[i].Active() {
			return i
		}
	}
	return from
}

// ResolveTrick finds the highest card of the lead suit. Off-suit cards never win.
func ResolveTrick(t model.Trick) TrickResult {
	best := -1
	var result TrickResult
	for _, p := range t.Plays {
		if p.Card.Suit != t.LeadSuit {
			continue
		}
		if v := p.Card.Rank.Value(); v > best {
			best = v
			result = TrickResult{Winner: p.Seat, Card: p.Card}
		}
	}
	if best < 0 && len(t.Plays) > 0 {
		return TrickResult{Winner: t.Plays[0].Seat, Card: t.Plays[0].Card, Fallback: true}
	}
	return result
}

// Apply plays a card that has already passed ValidatePlay. It moves the card
// from the hand to the table, resolves the trick once every participant has
// played, and moves the turn on. The trick result is nil while the trick is open.
func Apply(g *model.Game, seat int, card model.Card) *TrickResult {
	if g.Trick.Empty() {
		g.Trick.LeadSuit = card.Suit
		g.Trick.Participants = g.ActiveSeats()
	}

	g.Seats[seat].Hand, _ = g.Seats[seat].Hand.Remove(card)
	g.Trick.Plays = append(g.Trick.Plays, model.PlayedCard{Seat: seat, Card: card})

	if !g.Trick.Complete() {
		g.TurnIndex = NextActiveSeat(g, seat)
		return nil
	}

	result := ResolveTrick(g.Trick)
	g.Discard = append(g.Discard, model.CompletedTrick{
		Plays:       g.Trick.Plays,
		LeadSuit:    g.Trick.LeadSuit,
		Winner:      result.Winner,
		WinningCard: result.Card,
	})
	g.Trick = model.Trick{}
	g.TurnIndex = result.Winner

	// A winner who just emptied their hand cannot lead
	if !g.Seats[result.Winner].Active() && !RoundOver(g) {
		g.TurnIndex = NextActiveSeat(g, result.Winner)
	}
	return &result
}

// RoundOver reports whether at most one seat still holds cards
func RoundOver(g *model.Game) bool {
	return len(g.ActiveSeats()) <= 1
}
