package deck

import (
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/random"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

// Size is the number of cards in a standard deck
const Size = 52

// Service shuffles and deals using an injected source of randomness
type Service struct {
	random random.Random
}

// New creates a new deck Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Build returns the 52 cards in canonical order: suits C, D, H, S and ranks 2 through A within each
func Build() model.Cards {
	cards := make(model.Cards, 0, Size)
	for _, suit := range model.Suits {
		for _, rank := range model.Ranks {
			cards = append(cards, model.Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Shuffle returns a Fisher-Yates permutation of cards. The input is left untouched.
func (s *Service) Shuffle(cards model.Cards) model.Cards {
	out := cards.Clone()
	for i := len(out) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PickDealer chooses a dealer seat uniformly from n seats
func (s *Service) PickDealer(n int) int {
	return s.random.Intn(n)
}

// Deal clears every hand, hands out the deck one card at a time starting at
// seat 0 until it is exhausted, then sorts each hand. With 52 cards and n
// seats the hands hold either 52/n rounded up or rounded down cards.
func Deal(cards model.Cards, seats []model.Seat) {
	if len(seats) == 0 {
		return
	}
	for i := range seats {
		seats[i].Hand = make(model.Cards, 0, len(cards)/len(seats)+1)
	}
	for i, c := range cards {
		seat := &seats[i%len(seats)]
		seat.Hand = append(seat.Hand, c)
	}
	for i := range seats {
		seats[i].Hand.Sort()
	}
}

// Leader is the seat that leads the first trick: the one after the dealer
func Leader(dealer, seats int) int {
	if seats == 0 {
		return 0
	}
	return (dealer + 1) % seats
}
