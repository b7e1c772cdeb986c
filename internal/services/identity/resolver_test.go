package identity

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

type ResolverSuite struct {
	suite.Suite
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.resolver = New("999:12@s.whatsapp.net")
}

func (s *ResolverSuite) TestNormalize() {
	s.Equal(model.PlayerID("123@s.whatsapp.net"), Normalize("123:4@s.whatsapp.net"))
	s.Equal(model.PlayerID("123@s.whatsapp.net"), Normalize("123@c.us"))
	s.Equal(model.PlayerID("123@s.whatsapp.net"), Normalize(" 123@S.WhatsApp.net "))
	s.Equal(model.PlayerID("12036@g.us"), Normalize("12036@g.us"))
	s.Equal(model.PlayerID(""), Normalize(""))
}

func (s *ResolverSuite) TestParticipantWinsInGroups() {
	player, err := s.resolver.Resolve(model.InboundMessage{
		Room:        "12036@g.us",
		Sender:      "12036@g.us",
		Participant: "123:7@s.whatsapp.net",
		PushName:    "alice",
	})

	s.Require().NoError(err)
	s.Equal(model.PlayerID("123@s.whatsapp.net"), player.ID)
	s.Equal("alice", player.DisplayName)
}

func (s *ResolverSuite) TestSenderUsedWithoutParticipant() {
	player, err := s.resolver.Resolve(model.InboundMessage{
		Room:   "123@s.whatsapp.net",
		Sender: "456@c.us",
	})

	s.Require().NoError(err)
	s.Equal(model.PlayerID("456@s.whatsapp.net"), player.ID)
	s.Equal("456", player.DisplayName)
}

func (s *ResolverSuite) TestFromMeFallsBackToBot() {
	player, err := s.resolver.Resolve(model.InboundMessage{
		Room:   "12036@g.us",
		Sender: "12036@g.us",
		FromMe: true,
	})

	s.Require().NoError(err)
	s.Equal(model.PlayerID("999@s.whatsapp.net"), player.ID)
}

func (s *ResolverSuite) TestRoomIsNeverAPlayer() {
	_, err := s.resolver.Resolve(model.InboundMessage{
		Room:   "12036@g.us",
		Sender: "12036@g.us",
	})

	s.ErrorIs(err, model.ErrUnknownSender)
}

func (s *ResolverSuite) TestStableAcrossDevices() {
	a, _ := s.resolver.Resolve(model.InboundMessage{Room: "g@g.us", Participant: "123:1@s.whatsapp.net"})
	b, _ := s.resolver.Resolve(model.InboundMessage{Room: "g@g.us", Participant: "123:2@s.whatsapp.net"})

	s.Equal(a.ID, b.ID)
}
