package identity

import (
	"strings"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

const (
	userServer   = "s.whatsapp.net"
	legacyServer = "c.us"
	groupServer  = "g.us"
)

// Resolver maps the sender of an inbound chat message to a canonical player
type Resolver struct {
	botID model.PlayerID
}

// New creates a Resolver; botID is the bot account's own JID, used for
// messages the bot sends itself
func New(botID string) *Resolver {
	return &Resolver{
		botID: Normalize(botID),
	}
}

// Normalize canonicalises a chat JID: lowercase, no ":device" suffix on the
// user part, and the legacy "c.us" server rewritten to "s.whatsapp.net".
// The result is empty for blank input.
func Normalize(jid string) model.PlayerID {
	jid = strings.ToLower(strings.TrimSpace(jid))
	if jid == "" {
		return ""
	}
	user, server, hasServer := strings.Cut(jid, "@")
	user, _, _ = strings.Cut(user, ":")
	if !hasServer {
		return model.PlayerID(user)
	}
	if server == legacyServer {
		server = userServer
	}
	return model.PlayerID(user + "@" + server)
}

// Resolve returns the player who sent msg. The group participant wins,
// then the direct sender, then the bot's own ID for messages it sent.
// The room itself is never returned as a player.
func (r *Resolver) Resolve(msg model.InboundMessage) (model.Player, error) {
	room := Normalize(string(msg.Room))
	candidates := []string{msg.Participant, msg.Sender}
	if msg.FromMe {
		candidates = append(candidates, string(r.botID))
	}

	for _, c := range candidates {
		id := Normalize(c)
		if id == "" || id == room || isGroup(id) {
			continue
		}
		return model.Player{ID: id, DisplayName: displayName(msg.PushName, id)}, nil
	}
	return model.Player{}, model.ErrUnknownSender
}

func isGroup(id model.PlayerID) bool {
	return strings.HasSuffix(string(id), "@"+groupServer)
}

func displayName(pushName string, id model.PlayerID) string {
	if name := strings.TrimSpace(pushName); name != "" {
		return name
	}
	return model.Player{ID: id}.Handle()
}
