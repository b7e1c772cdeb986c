package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/mocks"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/deck"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/game"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/identity"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/memory"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/testutil"
)

const room = model.RoomID("12036@g.us")

var (
	alice = model.Player{ID: "111@s.whatsapp.net", DisplayName: "alice"}
	bob   = model.Player{ID: "222@s.whatsapp.net", DisplayName: "bob"}
)

type roomMessage struct {
	room     model.RoomID
	text     string
	mentions []model.PlayerID
}

// fakeMessenger records outbound messages. Players marked unreachable
// cannot receive direct messages.
type fakeMessenger struct {
	mu          sync.Mutex
	room        []roomMessage
	direct      map[model.PlayerID][]string
	unreachable map[model.PlayerID]bool
	roomErr     error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		direct:      make(map[model.PlayerID][]string),
		unreachable: make(map[model.PlayerID]bool),
	}
}

func (m *fakeMessenger) SendToRoom(ctx context.Context, room model.RoomID, text string, mentions []model.PlayerID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roomErr != nil {
		return m.roomErr
	}
	m.room = append(m.room, roomMessage{room: room, text: text, mentions: mentions})
	return nil
}

func (m *fakeMessenger) SendDirect(ctx context.Context, player model.PlayerID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unreachable[player] {
		return model.ErrDirectMessageFailed
	}
	m.direct[player] = append(m.direct[player], text)
	return nil
}

func (m *fakeMessenger) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.room))
	for i, r := range m.room {
		out[i] = r.text
	}
	return out
}

func (m *fakeMessenger) last() roomMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.room) == 0 {
		return roomMessage{}
	}
	return m.room[len(m.room)-1]
}

func (m *fakeMessenger) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.room = nil
	m.direct = make(map[model.PlayerID][]string)
}

type RouterSuite struct {
	suite.Suite
	storage   *memory.Storage
	clock     *mocks.MockClock
	messenger *fakeMessenger
	logs      *testutil.LogBuffer
	router    *Router
	ctx       context.Context
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger, logs := testutil.CaptureLogger()
	s.logs = logs
	controller := game.NewController(s.storage, s.storage, deck.New(mocks.NewMockRandom()), s.clock, logger)
	s.messenger = newFakeMessenger()
	s.router = NewRouter(controller, identity.New("999@s.whatsapp.net"), s.messenger, logger)
	s.ctx = context.Background()
}

// send delivers text from the player inside the group
func (s *RouterSuite) send(p model.Player, text string) bool {
	handled, err := s.router.Handle(s.ctx, model.InboundMessage{
		Room:        room,
		Sender:      string(room),
		Participant: string(p.ID),
		PushName:    p.DisplayName,
		Text:        text,
		ReceivedAt:  s.clock.Now(),
	})
	s.Require().NoError(err)
	return handled
}

// dealt seats alice and bob, deals, then replaces hands and turn
func (s *RouterSuite) dealt(turn int, hands ...string) {
	s.send(alice, "!bhabhi new")
	s.send(alice, "!join")
	s.send(bob, "!join")
	s.send(alice, "!bdeal")

	g, err := s.storage.GetGame(s.ctx, room)
	s.Require().NoError(err)
	for i, h := range hands {
		cards, err := model.ParseCards(h)
		s.Require().NoError(err)
		g.Seats[i].Hand = cards
	}
	g.TurnIndex = turn
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))
	s.messenger.reset()
}

func (s *RouterSuite) TestIgnoresOrdinaryChat() {
	for _, text := range []string{"", "   ", "hello", "!joinme", "!bhabhi dance"} {
		s.False(s.send(alice, text), text)
	}
	s.Empty(s.messenger.texts())
}

func (s *RouterSuite) TestCommandsAreCaseInsensitive() {
	s.True(s.send(alice, "  !BHABHI New "))
	s.Contains(s.messenger.last().text, "Bhabhi lobby created")
}

func (s *RouterSuite) TestStartIsAnAliasForNew() {
	s.True(s.send(alice, "!bhabhi start"))
	s.Contains(s.messenger.last().text, "Bhabhi lobby created")
}

func (s *RouterSuite) TestNewTwice() {
	s.send(alice, "!bhabhi new")
	s.send(bob, "!bhabhi new")
	s.Contains(s.messenger.last().text, "already exists")
}

func (s *RouterSuite) TestJoinListsPlayers() {
	s.send(alice, "!bhabhi new")
	s.send(alice, "!join")
	s.send(bob, "!join")

	last := s.messenger.last()
	s.Equal("Joined! Current players: @alice, @bob", last.text)
	s.Equal([]model.PlayerID{alice.ID, bob.ID}, last.mentions)
}

func (s *RouterSuite) TestJoinTwice() {
	s.send(alice, "!bhabhi new")
	s.send(alice, "!join")
	s.send(alice, "!join")
	s.Equal("You are already in.", s.messenger.last().text)
}

func (s *RouterSuite) TestJoinFullTable() {
	s.send(alice, "!bhabhi new")
	for i := 0; i < game.MaxPlayers; i++ {
		s.send(model.Player{ID: model.PlayerID(fmt.Sprintf("%d@s.whatsapp.net", 1000+i))}, "!join")
	}

	s.send(alice, "!join")
	s.Equal("The table is full (52 players max).", s.messenger.last().text)
}

func (s *RouterSuite) TestJoinWithoutLobby() {
	s.send(alice, "!join")
	s.Contains(s.messenger.last().text, "No Bhabhi lobby here")
}

func (s *RouterSuite) TestJoinWithUnknownSender() {
	s.send(alice, "!bhabhi new")
	handled, err := s.router.Handle(s.ctx, model.InboundMessage{
		Room:   room,
		Sender: string(room),
		Text:   "!join",
	})
	s.Require().NoError(err)
	s.True(handled)
	s.Contains(s.messenger.last().text, "Could not detect your ID")
}

func (s *RouterSuite) TestDealSendsHandsAndAnnouncesTurn() {
	s.send(alice, "!bhabhi new")
	s.send(alice, "!join")
	s.send(bob, "!join")
	s.messenger.reset()

	s.send(alice, "!bdeal")

	s.Require().Len(s.messenger.direct[alice.ID], 1)
	s.Require().Len(s.messenger.direct[bob.ID], 1)
	s.Contains(s.messenger.direct[alice.ID][0], "Your Bhabhi hand:")

	texts := s.messenger.texts()
	s.Require().Len(texts, 3)
	s.Equal(`✅ DM sent to @alice. If you don't see it, send me "!hand".`, texts[0])
	s.Equal(`✅ DM sent to @bob. If you don't see it, send me "!hand".`, texts[1])
	s.Equal([]model.PlayerID{alice.ID}, s.messenger.room[0].mentions)

	last := s.messenger.last()
	s.Equal("🃏 Dealt 2 players.\n(Dealer) @alice: 26\n➡️ @bob: 26\n\nTurn: @bob", last.text)
	s.Equal([]model.PlayerID{alice.ID, bob.ID}, last.mentions)
}

func (s *RouterSuite) TestDealNeedsTwoPlayers() {
	s.send(alice, "!bhabhi new")
	s.send(alice, "!join")
	s.send(alice, "!bdeal")
	s.Contains(s.messenger.last().text, "Need at least 2 players")
}

func (s *RouterSuite) TestDealTwice() {
	s.dealt(1)
	s.send(alice, "!bdeal")
	s.Equal("Cannot do that now (phase = playing).", s.messenger.last().text)
}

func (s *RouterSuite) TestDealWithUnreachablePlayer() {
	s.send(alice, "!bhabhi new")
	s.send(alice, "!join")
	s.send(bob, "!join")
	s.messenger.unreachable[bob.ID] = true
	s.messenger.reset()

	s.send(alice, "!bdeal")

	texts := s.messenger.texts()
	s.Require().Len(texts, 3)
	s.Equal(`✅ DM sent to @alice. If you don't see it, send me "!hand".`, texts[0])
	s.Equal(`⚠️ Could not DM @bob. Please type "!hand" and I'll DM your cards.`, texts[1])
	s.Contains(texts[2], "Dealt 2 players")
	s.Len(s.messenger.direct[alice.ID], 1)
	s.Contains(s.logs.String(), "direct message failed")
}

func (s *RouterSuite) TestHandIsSentPrivately() {
	s.dealt(0, "2C 5H", "3C 9D")

	s.send(bob, "!hand")

	s.Equal([]string{"Your hand:\n3C 9D"}, s.messenger.direct[bob.ID])
	s.Empty(s.messenger.texts())
}

func (s *RouterSuite) TestHandFromStranger() {
	s.dealt(0)
	s.send(model.Player{ID: "555@s.whatsapp.net"}, "!hand")
	s.Equal("You are not seated in this game.", s.messenger.last().text)
}

func (s *RouterSuite) TestPlayUsage() {
	s.dealt(0)
	s.send(alice, "!play")
	s.Equal(playUsageText, s.messenger.last().text)
}

func (s *RouterSuite) TestPlayWithoutRound() {
	s.send(alice, "!play 7D")
	s.Equal(noRoundText, s.messenger.last().text)
}

func (s *RouterSuite) TestPlayAndFollow() {
	s.dealt(0, "2C 5H", "3C 9D")

	s.send(alice, "!play 2c")
	s.Equal([]string{
		"@alice played 2C\nTable: @alice:2C",
		"Turn: @bob",
	}, s.messenger.texts())

	s.messenger.reset()
	s.send(bob, "!play 3 C")
	s.Equal([]string{
		"@bob played 3C\nTable: @alice:2C  @bob:3C",
		"Trick won by @bob with 3C\nTurn: @bob",
	}, s.messenger.texts())
}

func (s *RouterSuite) TestPlayRejections() {
	s.dealt(0, "2C 5H", "3C 9D")

	s.send(bob, "!play 3C")
	s.Equal("Not your turn. Turn: @alice", s.messenger.last().text)
	s.Equal([]model.PlayerID{alice.ID}, s.messenger.last().mentions)

	s.send(alice, "!play ZZ")
	s.Equal("Invalid card. Examples: 7D, 10H, QS, AC", s.messenger.last().text)

	s.send(alice, "!play as")
	s.Equal("Illegal move: you don't hold AS.", s.messenger.last().text)

	s.send(alice, "!play 2C")
	s.send(bob, "!play 9D")
	s.Equal("Illegal move: must follow Clubs (C).", s.messenger.last().text)
}

func (s *RouterSuite) TestRoundOverAnnouncesHolder() {
	s.dealt(0, "AC", "2C 3D")

	s.send(alice, "!play AC")
	s.send(bob, "!play 2C")

	last := s.messenger.last()
	s.Equal("Trick won by @alice with AC\nRound over. Last with cards: @bob (1)\nType \"!bhabhi new\" for a new lobby.", last.text)
	s.Equal([]model.PlayerID{alice.ID, bob.ID}, last.mentions)

	s.messenger.reset()
	s.send(alice, "!bhabhi history")
	s.Equal("Recent Bhabhi rounds:\n1. 2024-01-01 12:00 last with cards: @bob (1), 2 players, 1 tricks", s.messenger.last().text)
}

func (s *RouterSuite) TestRoundOverAllHandsEmpty() {
	s.dealt(0, "AC", "2C")

	s.send(alice, "!play AC")
	s.send(bob, "!play 2C")

	s.Contains(s.messenger.last().text, "Round over. All hands empty.")
}

func (s *RouterSuite) TestStatusInLobby() {
	s.send(alice, "!bhabhi new")
	s.send(alice, "!join")
	s.send(alice, "!bhabhi status")
	s.Equal("Game: Bhabhi\nPhase: lobby\nPlayers: @alice\nCommands: \"!join\", then host \"!bdeal\".", s.messenger.last().text)
}

func (s *RouterSuite) TestStatusDuringPlay() {
	s.dealt(0, "2C 5H", "3C 9D")
	s.send(alice, "!play 2C")
	s.send(alice, "!bhabhi status")

	s.Equal("Game: Bhabhi\nPhase: playing\n(Dealer) @alice: 1\n➡️ @bob: 2\nLead: Clubs (C)\nTable: @alice:2C\nTricks: 0\nTurn: @bob",
		s.messenger.last().text)
}

func (s *RouterSuite) TestStatusMarksDealerWhoIsToPlay() {
	s.dealt(0, "2C 5H", "3C 9D")
	s.send(bob, "!bhabhi status")

	s.Equal("Game: Bhabhi\nPhase: playing\n➡️ (Dealer) @alice: 2\n@bob: 2\nTable: (empty)\nTricks: 0\nTurn: @alice",
		s.messenger.last().text)
}

func (s *RouterSuite) TestStatusWithoutGame() {
	s.send(alice, "!bhabhi status")
	s.Contains(s.messenger.last().text, "No Bhabhi game here")
}

func (s *RouterSuite) TestEnd() {
	s.dealt(1)
	s.send(bob, "!bhabhi end")
	s.Equal("Game ended.", s.messenger.last().text)

	s.send(bob, "!bhabhi end")
	s.Equal("No Bhabhi game to end.", s.messenger.last().text)

	s.send(bob, "!bhabhi history")
	s.Contains(s.messenger.last().text, "stopped, 2 players, 0 tricks")
}

func (s *RouterSuite) TestHistoryEmpty() {
	s.send(alice, "!bhabhi history")
	s.Equal("No finished Bhabhi rounds yet.", s.messenger.last().text)
}

func (s *RouterSuite) TestHelp() {
	s.True(s.send(alice, "!help"))
	s.Equal(helpText, s.messenger.last().text)
}

func (s *RouterSuite) TestRoomDeliveryFailureIsReturned() {
	s.messenger.roomErr = errors.New("socket closed")

	handled, err := s.router.Handle(s.ctx, model.InboundMessage{
		Room:        room,
		Sender:      string(room),
		Participant: string(alice.ID),
		Text:        "!bhabhi new",
	})
	s.True(handled)
	s.EqualError(err, "socket closed")
	s.Contains(s.logs.String(), "failed to answer command")
}
