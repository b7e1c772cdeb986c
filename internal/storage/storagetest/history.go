// Package storagetest holds a conformance suite shared by every HistoryStore backend
package storagetest

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
)

// HistorySuite exercises a HistoryStore built fresh for every test
type HistorySuite struct {
	suite.Suite
	NewStore func() storage.HistoryStore

	store storage.HistoryStore
	ctx   context.Context
	base  time.Time
}

func (s *HistorySuite) SetupTest() {
	s.store = s.NewStore()
	s.ctx = context.Background()
	s.base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *HistorySuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *HistorySuite) round(id string, room model.RoomID, offset time.Duration) *model.RoundSummary {
	holder := model.Player{ID: "bob@s.whatsapp.net", DisplayName: "bob"}
	return &model.RoundSummary{
		ID:     id,
		Room:   room,
		Reason: model.RoundCompleted,
		Players: []model.Player{
			{ID: "alice@s.whatsapp.net", DisplayName: "alice"},
			holder,
		},
		Holder:    &holder,
		CardsLeft: 3,
		Tricks:    12,
		StartedAt: s.base,
		EndedAt:   s.base.Add(offset),
	}
}

func (s *HistorySuite) TestSaveAndGetRound() {
	round := s.round("round-1", "room-1@g.us", time.Minute)

	s.Require().NoError(s.store.SaveRound(s.ctx, round))

	got, err := s.store.GetRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Equal(round.Room, got.Room)
	s.Equal(model.RoundCompleted, got.Reason)
	s.Equal(round.Players, got.Players)
	s.Require().NotNil(got.Holder)
	s.Equal(model.PlayerID("bob@s.whatsapp.net"), got.Holder.ID)
	s.Equal(3, got.CardsLeft)
	s.Equal(12, got.Tricks)
	s.True(round.EndedAt.Equal(got.EndedAt))
}

func (s *HistorySuite) TestRoundWithoutHolder() {
	round := s.round("round-1", "room-1@g.us", time.Minute)
	round.Holder = nil
	round.CardsLeft = 0

	s.Require().NoError(s.store.SaveRound(s.ctx, round))

	got, err := s.store.GetRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.True(got.AllHandsEmpty())
}

func (s *HistorySuite) TestGetRoundNotFound() {
	_, err := s.store.GetRound(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *HistorySuite) TestListRoundsNewestFirstPerRoom() {
	for i := 0; i < 4; i++ {
		s.Require().NoError(s.store.SaveRound(s.ctx, s.round(fmt.Sprintf("a-%d", i), "room-a", time.Duration(i)*time.Minute)))
	}
	s.Require().NoError(s.store.SaveRound(s.ctx, s.round("b-0", "room-b", time.Hour)))

	rounds, err := s.store.ListRounds(s.ctx, "room-a", 3)
	s.Require().NoError(err)
	s.Require().Len(rounds, 3)
	s.Equal("a-3", rounds[0].ID)
	s.Equal("a-2", rounds[1].ID)
	s.Equal("a-1", rounds[2].ID)

	all, err := s.store.ListRounds(s.ctx, "room-a", 0)
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *HistorySuite) TestListRoundsEmptyRoom() {
	rounds, err := s.store.ListRounds(s.ctx, "room-none", 10)
	s.Require().NoError(err)
	s.Empty(rounds)
}
