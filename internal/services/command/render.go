package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/game"
)

const (
	lobbyCreatedText = "🃏 Bhabhi lobby created!\n" +
		"Players: type \"!join\"\n" +
		"Host: type \"!bdeal\" when everyone has joined (min 2)."

	playUsageText = "Usage: !play <card>   e.g., !play 7D or !play 10H or !play QS"

	noRoundText = "No active Bhabhi round. Use \"!bhabhi new\", \"!join\", then \"!bdeal\"."

	helpText = "🃏 Bhabhi commands\n" +
		"!bhabhi new      start a lobby\n" +
		"!join            join the lobby\n" +
		"!bdeal           deal the cards\n" +
		"!hand            get your cards by DM\n" +
		"!play <card>     play a card, e.g. !play 10H\n" +
		"!bhabhi status   show the table\n" +
		"!bhabhi history  recent rounds\n" +
		"!bhabhi end      stop the game"

	historyTimeFormat = "2006-01-02 15:04"
)

// message is an outbound room message with the players it mentions
type message struct {
	text     string
	mentions []model.PlayerID
}

func mention(p model.Player) string {
	return "@" + p.Handle()
}

// describe maps a game error to the text shown in the room. The bool is
// false for errors that are not part of the game's vocabulary.
func describe(err error) (string, bool) {
	var phaseErr *model.WrongPhaseError
	var suitErr *model.MustFollowSuitError

	switch {
	case errors.Is(err, model.ErrGameExists):
		return "A Bhabhi game already exists in this chat. Type \"!bhabhi end\" to end it, or \"!bhabhi status\" to view it.", true
	case errors.Is(err, model.ErrNoActiveLobby):
		return "No Bhabhi lobby here. Start one with \"!bhabhi new\".", true
	case errors.Is(err, model.ErrAlreadyJoined):
		return "You are already in.", true
	case errors.Is(err, model.ErrTableFull):
		return fmt.Sprintf("The table is full (%d players max).", game.MaxPlayers), true
	case errors.Is(err, model.ErrInsufficientPlayers):
		return "Need at least 2 players to deal. Ask friends to \"!join\".", true
	case errors.As(err, &phaseErr):
		return fmt.Sprintf("Cannot do that now (phase = %s).", phaseErr.Phase), true
	case errors.Is(err, model.ErrNoActiveGame):
		return "No Bhabhi game here. Start with \"!bhabhi new\".", true
	case errors.Is(err, model.ErrNotSeated):
		return "You are not seated in this game.", true
	case errors.Is(err, model.ErrInvalidCard):
		return "Invalid card. Examples: 7D, 10H, QS, AC", true
	case errors.Is(err, model.ErrNotYourTurn):
		return "Not your turn.", true
	case errors.As(err, &suitErr):
		return fmt.Sprintf("Illegal move: must follow %s (%s).", suitErr.Suit.Name(), suitErr.Suit), true
	case errors.Is(err, model.ErrMustFollowSuit):
		return "Illegal move: you must follow the lead suit.", true
	case errors.Is(err, model.ErrUnknownSender):
		return "Could not detect your ID. Try sending \"!join\" again.", true
	default:
		return "Something went wrong. Please try again.", false
	}
}

func notInHandText(token string) string {
	shown := strings.ToUpper(strings.TrimSpace(token))
	if card, err := model.ParseCard(token); err == nil {
		shown = card.String()
	}
	return fmt.Sprintf("Illegal move: you don't hold %s.", shown)
}

func renderJoin(outcome *model.JoinOutcome) message {
	names := make([]string, len(outcome.Players))
	ids := make([]model.PlayerID, len(outcome.Players))
	for i, p := range outcome.Players {
		names[i] = mention(p)
		ids[i] = p.ID
	}
	return message{
		text:     "Joined! Current players: " + strings.Join(names, ", "),
		mentions: ids,
	}
}

func renderDealtHand(cards model.Cards) string {
	return "Your Bhabhi hand:\n" + cards.String() + "\n\n(Play happens in the group.)"
}

func renderDMSent(p model.Player) message {
	return message{
		text:     "✅ DM sent to " + mention(p) + `. If you don't see it, send me "!hand".`,
		mentions: []model.PlayerID{p.ID},
	}
}

func renderHand(cards model.Cards) string {
	return "Your hand:\n" + cards.String()
}

func renderDeal(outcome *model.DealOutcome) message {
	var b strings.Builder
	fmt.Fprintf(&b, "🃏 Dealt %d players.\n", len(outcome.Players))

	ids := make([]model.PlayerID, len(outcome.Players))
	for i, p := range outcome.Players {
		ids[i] = p.ID
		switch i {
		case outcome.Dealer:
			b.WriteString("(Dealer) ")
		case outcome.Leader:
			b.WriteString("➡️ ")
		}
		fmt.Fprintf(&b, "%s: %d\n", mention(p), len(outcome.Hands[i]))
	}
	fmt.Fprintf(&b, "\nTurn: %s", mention(outcome.Players[outcome.Leader]))

	return message{text: b.String(), mentions: ids}
}

func renderTable(table []model.TablePlay) string {
	if len(table) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(table))
	for i, t := range table {
		parts[i] = mention(t.Player) + ":" + t.Card.String()
	}
	return strings.Join(parts, "  ")
}

func tableMentions(table []model.TablePlay) []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(table))
	for _, t := range table {
		ids = append(ids, t.Player.ID)
	}
	return ids
}

// renderPlay produces the table update followed by the trick result and
// whatever comes next: the next turn or the end of the round
func renderPlay(outcome *model.PlayOutcome) []message {
	msgs := []message{{
		text:     fmt.Sprintf("%s played %s\nTable: %s", mention(outcome.Player), outcome.Card, renderTable(outcome.Table)),
		mentions: tableMentions(outcome.Table),
	}}

	var b strings.Builder
	var ids []model.PlayerID
	if t := outcome.Trick; t != nil {
		fmt.Fprintf(&b, "Trick won by %s with %s\n", mention(t.Winner), t.Card)
		ids = append(ids, t.Winner.ID)
	}

	switch {
	case outcome.Round != nil:
		b.WriteString(renderRoundOver(outcome.Round))
		if h := outcome.Round.Holder; h != nil {
			ids = append(ids, h.ID)
		}
	case outcome.Next != nil:
		fmt.Fprintf(&b, "Turn: %s", mention(*outcome.Next))
		ids = append(ids, outcome.Next.ID)
	}

	msgs = append(msgs, message{text: b.String(), mentions: ids})
	return msgs
}

func renderRoundOver(round *model.RoundSummary) string {
	if round.AllHandsEmpty() {
		return "Round over. All hands empty.\nType \"!bhabhi new\" for a new lobby."
	}
	return fmt.Sprintf("Round over. Last with cards: %s (%d)\nType \"!bhabhi new\" for a new lobby.",
		mention(*round.Holder), round.CardsLeft)
}

func renderStatus(report *model.StatusReport) message {
	var b strings.Builder
	ids := make([]model.PlayerID, 0, len(report.Seats))

	b.WriteString("Game: Bhabhi\n")
	fmt.Fprintf(&b, "Phase: %s\n", report.Phase)

	if report.Phase == model.PhaseLobby {
		names := make([]string, len(report.Seats))
		for i, s := range report.Seats {
			names[i] = mention(s.Player)
			ids = append(ids, s.Player.ID)
		}
		if len(names) == 0 {
			b.WriteString("Players: (none yet)\n")
		} else {
			fmt.Fprintf(&b, "Players: %s\n", strings.Join(names, ", "))
		}
		b.WriteString("Commands: \"!join\", then host \"!bdeal\".")
		return message{text: b.String(), mentions: ids}
	}

	for _, s := range report.Seats {
		prefix := ""
		if report.Dealer != nil && s.Player.ID == report.Dealer.ID {
			prefix = "(Dealer) "
		}
		if report.Turn != nil && s.Player.ID == report.Turn.ID {
			prefix = "➡️ " + prefix
		}
		fmt.Fprintf(&b, "%s%s: %d\n", prefix, mention(s.Player), s.CardCount)
		ids = append(ids, s.Player.ID)
	}
	if report.LeadSuit != "" {
		fmt.Fprintf(&b, "Lead: %s (%s)\n", report.LeadSuit.Name(), report.LeadSuit)
	}
	fmt.Fprintf(&b, "Table: %s\n", renderTable(report.Table))
	fmt.Fprintf(&b, "Tricks: %d", report.Tricks)
	if report.Turn != nil {
		fmt.Fprintf(&b, "\nTurn: %s", mention(*report.Turn))
	}
	return message{text: b.String(), mentions: ids}
}

func renderHistory(rounds []*model.RoundSummary) message {
	if len(rounds) == 0 {
		return message{text: "No finished Bhabhi rounds yet."}
	}

	var b strings.Builder
	var ids []model.PlayerID
	b.WriteString("Recent Bhabhi rounds:")
	for i, r := range rounds {
		fmt.Fprintf(&b, "\n%d. %s ", i+1, r.EndedAt.Format(historyTimeFormat))
		switch {
		case r.Reason == model.RoundStopped:
			b.WriteString("stopped")
		case r.AllHandsEmpty():
			b.WriteString("all hands empty")
		default:
			fmt.Fprintf(&b, "last with cards: %s (%d)", mention(*r.Holder), r.CardsLeft)
			ids = append(ids, r.Holder.ID)
		}
		fmt.Fprintf(&b, ", %d players, %d tricks", len(r.Players), r.Tricks)
	}
	return message{text: b.String(), mentions: ids}
}
