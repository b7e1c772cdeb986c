package command

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/game"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/identity"
)

// HistoryLimit is how many past rounds "!bhabhi history" shows
const HistoryLimit = 5

// Messenger delivers outbound chat messages
type Messenger interface {
	SendToRoom(ctx context.Context, room model.RoomID, text string, mentions []model.PlayerID) error
	// SendDirect fails with model.ErrDirectMessageFailed when the player cannot be reached
	SendDirect(ctx context.Context, player model.PlayerID, text string) error
}

// Router turns chat commands into game operations and renders the results
type Router struct {
	games     game.ControllerInterface
	identity  *identity.Resolver
	messenger Messenger
	logger    *slog.Logger
}

// NewRouter creates a new command Router
func NewRouter(
	games game.ControllerInterface,
	identity *identity.Resolver,
	messenger Messenger,
	logger *slog.Logger,
) *Router {
	return &Router{
		games:     games,
		identity:  identity,
		messenger: messenger,
		logger:    logger,
	}
}

// Handle processes one inbound message. Messages that are not game commands
// are ignored and reported as not handled. Game errors are answered in the
// room; the returned error is only set when the room could not be answered.
func (r *Router) Handle(ctx context.Context, msg model.InboundMessage) (bool, error) {
	text := strings.TrimSpace(msg.Text)
	lower := strings.ToLower(text)
	fields := strings.Fields(lower)
	if len(fields) == 0 {
		return false, nil
	}

	var err error
	switch {
	case lower == "!bhabhi new" || lower == "!bhabhi start":
		err = r.createLobby(ctx, msg)
	case lower == "!join":
		err = r.join(ctx, msg)
	case lower == "!bdeal":
		err = r.deal(ctx, msg)
	case lower == "!hand":
		err = r.hand(ctx, msg)
	case fields[0] == "!play":
		err = r.play(ctx, msg, strings.Join(strings.Fields(text)[1:], " "))
	case lower == "!bhabhi status":
		err = r.status(ctx, msg)
	case lower == "!bhabhi end":
		err = r.end(ctx, msg)
	case lower == "!bhabhi history":
		err = r.history(ctx, msg)
	case lower == "!bhabhi" || lower == "!bhabhi help" || lower == "!help":
		err = r.say(ctx, msg.Room, helpText)
	default:
		return false, nil
	}

	if err != nil {
		r.logger.Error("failed to answer command",
			slog.String("room", string(msg.Room)),
			slog.String("command", fields[0]),
			slog.String("error", err.Error()),
		)
	}
	return true, err
}

func (r *Router) createLobby(ctx context.Context, msg model.InboundMessage) error {
	if _, err := r.games.CreateLobby(ctx, msg.Room); err != nil {
		return r.fail(ctx, msg.Room, err)
	}
	return r.say(ctx, msg.Room, lobbyCreatedText)
}

func (r *Router) join(ctx context.Context, msg model.InboundMessage) error {
	player, err := r.identity.Resolve(msg)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}
	outcome, err := r.games.Join(ctx, msg.Room, player)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}
	return r.send(ctx, msg.Room, renderJoin(outcome))
}

func (r *Router) deal(ctx context.Context, msg model.InboundMessage) error {
	outcome, err := r.games.Deal(ctx, msg.Room)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}

	for i, p := range outcome.Players {
		if !r.direct(ctx, msg.Room, p, renderDealtHand(outcome.Hands[i])) {
			continue
		}
		if err := r.send(ctx, msg.Room, renderDMSent(p)); err != nil {
			return err
		}
	}
	return r.send(ctx, msg.Room, renderDeal(outcome))
}

func (r *Router) hand(ctx context.Context, msg model.InboundMessage) error {
	player, err := r.identity.Resolve(msg)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}
	hand, err := r.games.Hand(ctx, msg.Room, player.ID)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}
	r.direct(ctx, msg.Room, hand.Player, renderHand(hand.Cards))
	return nil
}

func (r *Router) play(ctx context.Context, msg model.InboundMessage, token string) error {
	if token == "" {
		return r.say(ctx, msg.Room, playUsageText)
	}
	player, err := r.identity.Resolve(msg)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}

	outcome, err := r.games.Play(ctx, msg.Room, player.ID, token)
	if err != nil {
		if errors.Is(err, model.ErrNotYourTurn) {
			return r.notYourTurn(ctx, msg.Room)
		}
		if errors.Is(err, model.ErrNoActiveGame) {
			return r.say(ctx, msg.Room, noRoundText)
		}
		if errors.Is(err, model.ErrNotInHand) {
			return r.say(ctx, msg.Room, notInHandText(token))
		}
		return r.fail(ctx, msg.Room, err)
	}

	for _, m := range renderPlay(outcome) {
		if err := r.send(ctx, msg.Room, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) notYourTurn(ctx context.Context, room model.RoomID) error {
	report, err := r.games.Status(ctx, room)
	if err != nil || report.Turn == nil {
		return r.fail(ctx, room, model.ErrNotYourTurn)
	}
	return r.send(ctx, room, message{
		text:     "Not your turn. Turn: " + mention(*report.Turn),
		mentions: []model.PlayerID{report.Turn.ID},
	})
}

func (r *Router) status(ctx context.Context, msg model.InboundMessage) error {
	report, err := r.games.Status(ctx, msg.Room)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}
	return r.send(ctx, msg.Room, renderStatus(report))
}

func (r *Router) end(ctx context.Context, msg model.InboundMessage) error {
	if _, err := r.games.End(ctx, msg.Room); err != nil {
		if errors.Is(err, model.ErrNoActiveGame) {
			return r.say(ctx, msg.Room, "No Bhabhi game to end.")
		}
		return r.fail(ctx, msg.Room, err)
	}
	return r.say(ctx, msg.Room, "Game ended.")
}

func (r *Router) history(ctx context.Context, msg model.InboundMessage) error {
	rounds, err := r.games.History(ctx, msg.Room, HistoryLimit)
	if err != nil {
		return r.fail(ctx, msg.Room, err)
	}
	return r.send(ctx, msg.Room, renderHistory(rounds))
}

// direct sends a private message and falls back to a room notice when the
// player cannot be reached. Delivery problems never fail the command; the
// result reports whether the message was delivered.
func (r *Router) direct(ctx context.Context, room model.RoomID, player model.Player, text string) bool {
	err := r.messenger.SendDirect(ctx, player.ID, text)
	if err == nil {
		return true
	}

	r.logger.Warn("direct message failed",
		slog.String("room", string(room)),
		slog.String("player_id", string(player.ID)),
		slog.String("error", err.Error()),
	)
	notice := message{
		text:     "⚠️ Could not DM " + mention(player) + `. Please type "!hand" and I'll DM your cards.`,
		mentions: []model.PlayerID{player.ID},
	}
	if err := r.send(ctx, room, notice); err != nil {
		r.logger.Error("failed to post direct message notice",
			slog.String("room", string(room)),
			slog.String("error", err.Error()),
		)
	}
	return false
}

// fail answers the room with the user-facing description of err. Errors
// that are not game errors are logged and answered generically.
func (r *Router) fail(ctx context.Context, room model.RoomID, err error) error {
	text, known := describe(err)
	if !known {
		r.logger.Error("command failed",
			slog.String("room", string(room)),
			slog.String("error", err.Error()),
		)
	}
	return r.say(ctx, room, text)
}

func (r *Router) say(ctx context.Context, room model.RoomID, text string) error {
	return r.send(ctx, room, message{text: text})
}

func (r *Router) send(ctx context.Context, room model.RoomID, m message) error {
	return r.messenger.SendToRoom(ctx, room, m.text, m.mentions)
}
