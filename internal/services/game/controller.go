package game

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/clock"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/deck"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/rules"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
)

const (
	// MinPlayers is the smallest table that can be dealt
	MinPlayers = 2
	// MaxPlayers keeps every seat holding at least one card after the deal
	MaxPlayers = deck.Size
)

// Controller runs the per-room game lifecycle: lobby, deal, play and end.
// Every operation validates completely before it mutates, and operations on
// the same room never interleave.
type Controller struct {
	games   storage.GameStore
	history storage.HistoryStore
	deck    *deck.Service
	clock   clock.Clock
	logger  *slog.Logger
	locks   *roomLocks
}

// NewController creates a new game Controller
func NewController(
	games storage.GameStore,
	history storage.HistoryStore,
	deck *deck.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		games:   games,
		history: history,
		deck:    deck,
		clock:   clock,
		logger:  logger,
		locks:   newRoomLocks(),
	}
}

// CreateLobby opens a new lobby in the room
func (c *Controller) CreateLobby(ctx context.Context, room model.RoomID) (*model.Game, error) {
	defer c.locks.lock(room)()

	existing, err := c.games.GetGame(ctx, room)
	switch {
	case err == nil && existing.Phase != model.PhaseEnded:
		return nil, model.ErrGameExists
	case err != nil && !errors.Is(err, model.ErrNoActiveGame):
		return nil, err
	}

	game := model.NewGame(room, c.clock.Now())
	if err := c.games.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save lobby",
			slog.String("room", string(room)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("lobby created", slog.String("room", string(room)))
	return game, nil
}

// Join seats the player in the room's open lobby
func (c *Controller) Join(ctx context.Context, room model.RoomID, player model.Player) (*model.JoinOutcome, error) {
	defer c.locks.lock(room)()

	game, err := c.games.GetGame(ctx, room)
	if err != nil {
		if errors.Is(err, model.ErrNoActiveGame) {
			return nil, model.ErrNoActiveLobby
		}
		return nil, err
	}
	if game.Phase != model.PhaseLobby {
		return nil, model.ErrNoActiveLobby
	}
	if game.SeatIndex(player.ID) >= 0 {
		return nil, model.ErrAlreadyJoined
	}
	if len(game.Seats) >= MaxPlayers {
		return nil, model.ErrTableFull
	}

	game.Seats = append(game.Seats, model.Seat{Player: player, Hand: model.Cards{}})
	game.UpdatedAt = c.clock.Now()

	if err := c.games.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("room", string(room)),
		slog.String("player_id", string(player.ID)),
		slog.Int("seat", len(game.Seats)-1),
	)

	return &model.JoinOutcome{Player: player, Players: game.Players()}, nil
}

// Deal shuffles a fresh deck, deals it round-robin, picks a dealer and
// starts play with the seat after the dealer
func (c *Controller) Deal(ctx context.Context, room model.RoomID) (*model.DealOutcome, error) {
	defer c.locks.lock(room)()

	game, err := c.games.GetGame(ctx, room)
	if err != nil {
		return nil, err
	}
	if game.Phase != model.PhaseLobby {
		return nil, &model.WrongPhaseError{Phase: game.Phase}
	}
	if len(game.Seats) < MinPlayers {
		return nil, model.ErrInsufficientPlayers
	}

	if err := game.Transition(model.PhaseDealing); err != nil {
		return nil, err
	}

	deck.Deal(c.deck.Shuffle(deck.Build()), game.Seats)
	game.DealerIndex = c.deck.PickDealer(len(game.Seats))
	game.TurnIndex = deck.Leader(game.DealerIndex, len(game.Seats))
	game.Trick = model.Trick{}
	game.Discard = []model.CompletedTrick{}

	if err := game.Transition(model.PhasePlaying); err != nil {
		return nil, err
	}
	now := c.clock.Now()
	game.DealtAt = now
	game.UpdatedAt = now

	if err := c.games.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("round dealt",
		slog.String("room", string(room)),
		slog.Int("player_count", len(game.Seats)),
		slog.Int("dealer", game.DealerIndex),
		slog.Int("leader", game.TurnIndex),
	)

	outcome := &model.DealOutcome{
		Players: game.Players(),
		Hands:   make([]model.Cards, len(game.Seats)),
		Dealer:  game.DealerIndex,
		Leader:  game.TurnIndex,
	}
	for i, s := range game.Seats {
		outcome.Hands[i] = s.Hand.Clone()
	}
	return outcome, nil
}

// Hand returns the caller's current cards
func (c *Controller) Hand(ctx context.Context, room model.RoomID, playerID model.PlayerID) (*model.Hand, error) {
	defer c.locks.lock(room)()

	game, err := c.games.GetGame(ctx, room)
	if err != nil {
		return nil, err
	}
	seat := game.SeatIndex(playerID)
	if seat < 0 {
		return nil, model.ErrNotSeated
	}
	return &model.Hand{Player: game.Seats[seat].Player, Cards: game.Seats[seat].Hand.Clone()}, nil
}

// Play validates and applies the card the player typed. When the play
// completes a trick the trick is resolved, and when at most one player is
// left holding cards the round ends and the game leaves the registry.
func (c *Controller) Play(ctx context.Context, room model.RoomID, playerID model.PlayerID, token string) (*model.PlayOutcome, error) {
	defer c.locks.lock(room)()

	game, err := c.games.GetGame(ctx, room)
	if err != nil {
		return nil, err
	}
	if game.Phase != model.PhasePlaying {
		return nil, model.ErrNoActiveGame
	}

	seat := game.SeatIndex(playerID)
	if seat < 0 {
		return nil, model.ErrNotSeated
	}
	card, err := model.ParseCard(token)
	if err != nil {
		return nil, err
	}
	if err := rules.ValidatePlay(game, seat, card); err != nil {
		return nil, err
	}

	player := game.Seats[seat].Player
	result := rules.Apply(game, seat, card)
	game.UpdatedAt = c.clock.Now()

	outcome := &model.PlayOutcome{Player: player, Card: card}
	if result == nil {
		outcome.Table = tableOf(game, game.Trick.Plays)
	} else {
		outcome.Table = tableOf(game, game.Discard[len(game.Discard)-1].Plays)
		outcome.Trick = &model.TrickOutcome{
			Winner:   game.Seats[result.Winner].Player,
			Seat:     result.Winner,
			Card:     result.Card,
			Fallback: result.Fallback,
		}
		c.logTrick(game, result)
	}

	if result != nil && rules.RoundOver(game) {
		summary, err := c.finish(ctx, game, model.RoundCompleted)
		if err != nil {
			return nil, err
		}
		outcome.Round = summary
		return outcome, nil
	}

	if err := c.games.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	next := game.CurrentPlayer()
	outcome.Next = &next
	return outcome, nil
}

func (c *Controller) logTrick(game *model.Game, result *rules.TrickResult) {
	attrs := []any{
		slog.String("room", string(game.Room)),
		slog.Int("trick", len(game.Discard)),
		slog.Int("winner", result.Winner),
		slog.String("card", result.Card.String()),
	}
	if result.Fallback {
		c.logger.Warn("no lead suit card in trick, awarding to leader", attrs...)
		return
	}
	c.logger.Debug("trick resolved", attrs...)
}

// Status reports the room's game without revealing any hand
func (c *Controller) Status(ctx context.Context, room model.RoomID) (*model.StatusReport, error) {
	defer c.locks.lock(room)()

	game, err := c.games.GetGame(ctx, room)
	if err != nil {
		return nil, err
	}

	report := &model.StatusReport{
		Room:     game.Room,
		Phase:    game.Phase,
		Seats:    make([]model.SeatStatus, len(game.Seats)),
		LeadSuit: game.Trick.LeadSuit,
		Table:    tableOf(game, game.Trick.Plays),
		Tricks:   len(game.Discard),
	}
	for i, s := range game.Seats {
		report.Seats[i] = model.SeatStatus{Player: s.Player, CardCount: len(s.Hand)}
	}
	if game.Phase == model.PhasePlaying {
		turn := game.CurrentPlayer()
		dealer := game.Seats[game.DealerIndex].Player
		report.Turn = &turn
		report.Dealer = &dealer
	}
	return report, nil
}

// End stops the room's game in any phase and removes it. Rounds that had
// been dealt are recorded in the history as stopped.
func (c *Controller) End(ctx context.Context, room model.RoomID) (*model.RoundSummary, error) {
	defer c.locks.lock(room)()

	game, err := c.games.GetGame(ctx, room)
	if err != nil {
		return nil, err
	}
	return c.finish(ctx, game, model.RoundStopped)
}

// History lists the room's most recent finished rounds
func (c *Controller) History(ctx context.Context, room model.RoomID, limit int) ([]*model.RoundSummary, error) {
	return c.history.ListRounds(ctx, room, limit)
}

// finish ends the game, removes it from the registry and records the round
func (c *Controller) finish(ctx context.Context, game *model.Game, reason model.RoundEndReason) (*model.RoundSummary, error) {
	dealt := game.Phase == model.PhasePlaying
	if err := game.Transition(model.PhaseEnded); err != nil {
		return nil, err
	}
	if err := c.games.DeleteGame(ctx, game.Room); err != nil {
		return nil, err
	}

	summary := c.summarize(game, reason)
	c.logger.Info("round ended",
		slog.String("room", string(game.Room)),
		slog.String("round_id", summary.ID),
		slog.String("reason", string(reason)),
		slog.Int("tricks", summary.Tricks),
		slog.Int("cards_left", summary.CardsLeft),
	)

	if dealt {
		// History is best effort
		if err := c.history.SaveRound(ctx, summary); err != nil {
			c.logger.Error("failed to record round",
				slog.String("round_id", summary.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return summary, nil
}

func (c *Controller) summarize(game *model.Game, reason model.RoundEndReason) *model.RoundSummary {
	summary := &model.RoundSummary{
		ID:        uuid.NewString(),
		Room:      game.Room,
		Reason:    reason,
		Players:   game.Players(),
		Tricks:    len(game.Discard),
		StartedAt: game.DealtAt,
		EndedAt:   c.clock.Now(),
	}
	if reason == model.RoundCompleted {
		if holders := game.ActiveSeats(); len(holders) > 0 {
			holder := game.Seats[holders[0]]
			summary.Holder = &holder.Player
			summary.CardsLeft = len(holder.Hand)
		}
	}
	return summary
}

func tableOf(game *model.Game, plays []model.PlayedCard) []model.TablePlay {
	table := make([]model.TablePlay, len(plays))
	for i, p := range plays {
		table[i] = model.TablePlay{Player: game.Seats[p.Seat].Player, Card: p.Card}
	}
	return table
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateLobby(ctx context.Context, room model.RoomID) (*model.Game, error)
	Join(ctx context.Context, room model.RoomID, player model.Player) (*model.JoinOutcome, error)
	Deal(ctx context.Context, room model.RoomID) (*model.DealOutcome, error)
	Hand(ctx context.Context, room model.RoomID, playerID model.PlayerID) (*model.Hand, error)
	Play(ctx context.Context, room model.RoomID, playerID model.PlayerID, token string) (*model.PlayOutcome, error)
	Status(ctx context.Context, room model.RoomID) (*model.StatusReport, error)
	End(ctx context.Context, room model.RoomID) (*model.RoundSummary, error)
	History(ctx context.Context, room model.RoomID, limit int) ([]*model.RoundSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
