package response

import (
	"time"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
	}
}

func optionalPlayer(p *model.Player) *Player {
	if p == nil {
		return nil
	}
	resp := PlayerFromModel(*p)
	return &resp
}

// Seat is a player's public position at the table
type Seat struct {
	Player    Player `json:"player"`
	CardCount int    `json:"card_count"`
}

// TablePlay is a card on the table
type TablePlay struct {
	Player Player `json:"player"`
	Card   string `json:"card"`
}

// TableFromModel converts the cards on the table
func TableFromModel(table []model.TablePlay) []TablePlay {
	plays := make([]TablePlay, len(table))
	for i, t := range table {
		plays[i] = TablePlay{Player: PlayerFromModel(t.Player), Card: t.Card.String()}
	}
	return plays
}

// GameStatus is the public state of a room's game. Hands are never included.
type GameStatus struct {
	Room     string      `json:"room"`
	Phase    string      `json:"phase"`
	Seats    []Seat      `json:"seats"`
	Turn     *Player     `json:"turn"`
	Dealer   *Player     `json:"dealer"`
	LeadSuit *string     `json:"lead_suit"`
	Table    []TablePlay `json:"table"`
	Tricks   int         `json:"tricks"`
}

// GameStatusFromModel converts a model.StatusReport
func GameStatusFromModel(r *model.StatusReport) GameStatus {
	seats := make([]Seat, len(r.Seats))
	for i, s := range r.Seats {
		seats[i] = Seat{Player: PlayerFromModel(s.Player), CardCount: s.CardCount}
	}

	var lead *string
	if r.LeadSuit != "" {
		l := string(r.LeadSuit)
		lead = &l
	}

	return GameStatus{
		Room:     string(r.Room),
		Phase:    string(r.Phase),
		Seats:    seats,
		Turn:     optionalPlayer(r.Turn),
		Dealer:   optionalPlayer(r.Dealer),
		LeadSuit: lead,
		Table:    TableFromModel(r.Table),
		Tricks:   r.Tricks,
	}
}

// Round is a finished round in the room history
type Round struct {
	ID        string    `json:"id"`
	Reason    string    `json:"reason"`
	Players   []Player  `json:"players"`
	Holder    *Player   `json:"holder"`
	CardsLeft int       `json:"cards_left"`
	Tricks    int       `json:"tricks"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// RoundFromModel converts a model.RoundSummary
func RoundFromModel(r *model.RoundSummary) Round {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerFromModel(p)
	}
	return Round{
		ID:        r.ID,
		Reason:    string(r.Reason),
		Players:   players,
		Holder:    optionalPlayer(r.Holder),
		CardsLeft: r.CardsLeft,
		Tricks:    r.Tricks,
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
	}
}

// History lists a room's recent rounds, newest first
type History struct {
	Room   string  `json:"room"`
	Rounds []Round `json:"rounds"`
}

// HistoryFromModel converts a list of round summaries
func HistoryFromModel(room model.RoomID, rounds []*model.RoundSummary) History {
	resp := History{Room: string(room), Rounds: make([]Round, len(rounds))}
	for i, r := range rounds {
		resp.Rounds[i] = RoundFromModel(r)
	}
	return resp
}

// MessageResult is the response after delivering an inbound chat message
type MessageResult struct {
	Handled bool `json:"handled"`
}

// Health is the response of the health endpoint
type Health struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}
