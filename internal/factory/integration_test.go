package factory

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/memory"
	redisstorage "github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/redis"
	sqlitestorage "github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/sqlite"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/transport/sse"
)

const room = model.RoomID("12036@g.us")

var (
	alice = model.Player{ID: "111@s.whatsapp.net", DisplayName: "alice"}
	bob   = model.Player{ID: "222@s.whatsapp.net", DisplayName: "bob"}
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
}

func (s *IntegrationSuite) subscribe(channel sse.Channel) *sse.Client {
	hub := s.app.HubManager.GetOrCreateHub(channel)
	client := sse.NewClient(hub)
	s.Require().True(hub.Register(client))
	s.Require().Eventually(func() bool { return hub.ClientCount() > 0 }, time.Second, time.Millisecond)
	return client
}

// next returns the text of the next event delivered to the client
func (s *IntegrationSuite) next(client *sse.Client) string {
	select {
	case msg := <-client.Messages():
		for _, line := range strings.Split(string(msg), "\n") {
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var event sse.EventJSON
				s.Require().NoError(json.Unmarshal([]byte(data), &event))
				return event.Text
			}
		}
		s.FailNow("event without data", string(msg))
	case <-time.After(time.Second):
		s.FailNow("no event delivered")
	}
	return ""
}

func (s *IntegrationSuite) say(p model.Player, text string) {
	handled, err := s.app.CommandRouter.Handle(s.ctx, model.InboundMessage{
		Room:        room,
		Sender:      string(room),
		Participant: string(p.ID),
		PushName:    p.DisplayName,
		Text:        text,
	})
	s.Require().NoError(err)
	s.Require().True(handled, text)
}

// Test: a complete round driven by chat commands and observed through the streams
func (s *IntegrationSuite) TestCompleteRoundOverStreams() {
	roomStream := s.subscribe(sse.RoomChannel(room))
	aliceStream := s.subscribe(sse.DirectChannel(alice.ID))

	// Step 1: Open a lobby and seat two players
	s.say(alice, "!bhabhi new")
	s.Contains(s.next(roomStream), "Bhabhi lobby created")
	s.say(alice, "!join")
	s.Equal("Joined! Current players: @alice", s.next(roomStream))
	s.say(bob, "!join")
	s.Equal("Joined! Current players: @alice, @bob", s.next(roomStream))

	// Step 2: Deal. Alice has a private stream, bob does not.
	s.say(bob, "!bdeal")
	s.Contains(s.next(aliceStream), "Your Bhabhi hand:")
	s.Equal(`✅ DM sent to @alice. If you don't see it, send me "!hand".`, s.next(roomStream))
	s.Equal(`⚠️ Could not DM @bob. Please type "!hand" and I'll DM your cards.`, s.next(roomStream))
	s.Contains(s.next(roomStream), "🃏 Dealt 2 players.")

	g, err := s.app.Storage.GetGame(s.ctx, room)
	s.Require().NoError(err)
	s.Equal(52, g.CardsInPlay())

	// Step 3: Fix the hands so the round ends after one trick
	g.Seats[0].Hand = model.Cards{model.MustParseCard("AC")}
	g.Seats[1].Hand = model.Cards{model.MustParseCard("2C"), model.MustParseCard("3D")}
	g.TurnIndex = 0
	s.Require().NoError(s.app.Storage.SaveGame(s.ctx, g))

	s.say(alice, "!play AC")
	s.Equal("@alice played AC\nTable: @alice:AC", s.next(roomStream))
	s.Equal("Turn: @bob", s.next(roomStream))

	s.app.MockClock.Advance(3 * time.Minute)
	s.say(bob, "!play 2c")
	s.Equal("@bob played 2C\nTable: @alice:AC  @bob:2C", s.next(roomStream))
	s.Contains(s.next(roomStream), "Round over. Last with cards: @bob (1)")

	// Step 4: The game left the registry and the round is in the history
	_, err = s.app.GameStore.GetGame(s.ctx, room)
	s.ErrorIs(err, model.ErrNoActiveGame)

	rounds, err := s.app.HistoryStore.ListRounds(s.ctx, room, 0)
	s.Require().NoError(err)
	s.Require().Len(rounds, 1)
	s.Equal(model.RoundCompleted, rounds[0].Reason)
	s.Require().NotNil(rounds[0].Holder)
	s.Equal(bob.ID, rounds[0].Holder.ID)
	s.Equal(3*time.Minute, rounds[0].EndedAt.Sub(rounds[0].StartedAt))

	// Step 5: A new lobby can be opened in the same room
	s.say(alice, "!bhabhi new")
	s.Contains(s.next(roomStream), "Bhabhi lobby created")
}

// Test: the hand command reaches a player once their stream is open
func (s *IntegrationSuite) TestHandAfterOpeningStream() {
	s.say(alice, "!bhabhi new")
	s.say(alice, "!join")
	s.say(bob, "!join")
	s.say(alice, "!bdeal")

	bobStream := s.subscribe(sse.DirectChannel(bob.ID))
	s.say(bob, "!hand")
	s.True(strings.HasPrefix(s.next(bobStream), "Your hand:\n"))
}

func TestNew_DefaultsToMemoryHistory(t *testing.T) {
	app, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	games, _ := app.GameStore.(*memory.Storage)
	history, ok := app.HistoryStore.(*memory.Storage)
	if !ok || history != games {
		t.Errorf("HistoryStore = %T, want the shared memory store", app.HistoryStore)
	}
}

func TestNew_SQLiteHistory(t *testing.T) {
	app, err := New(Config{
		HistoryType: HistoryTypeSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "history.db"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if _, ok := app.HistoryStore.(*sqlitestorage.Storage); !ok {
		t.Errorf("HistoryStore = %T, want *sqlite.Storage", app.HistoryStore)
	}
}

func TestNew_RedisHistory(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{HistoryType: HistoryTypeRedis, RedisConfig: &cfg})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if _, ok := app.HistoryStore.(*redisstorage.Storage); !ok {
		t.Errorf("HistoryStore = %T, want *redis.Storage", app.HistoryStore)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "unknown history type", cfg: Config{HistoryType: "postgres"}},
		{name: "redis without config", cfg: Config{HistoryType: HistoryTypeRedis}},
		{name: "sqlite without path", cfg: Config{HistoryType: HistoryTypeSQLite}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}
