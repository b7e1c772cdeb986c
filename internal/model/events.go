package model

import "time"

// EventType identifies the type of outbound event
type EventType string

const (
	EventRoomMessage   EventType = "room_message"
	EventDirectMessage EventType = "direct_message"
)

// Event is an outbound chat message delivered to a room or a single player
type Event struct {
	Type      EventType
	Timestamp time.Time
	Room      RoomID   // Empty for direct messages
	PlayerID  PlayerID // Recipient of a direct message
	Payload   MessagePayload
}

// MessagePayload is the text of an outbound message and the players it mentions
type MessagePayload struct {
	Text     string
	Mentions []PlayerID
}

// InboundMessage is a chat message as delivered by the chat transport
type InboundMessage struct {
	Room        RoomID
	Sender      string // Author in a direct chat, or the room itself in groups
	Participant string // Author inside a group chat
	FromMe      bool   // Sent by the bot's own account
	PushName    string
	Text        string
	ReceivedAt  time.Time
}

// JoinOutcome is the result of a successful join
type JoinOutcome struct {
	Player  Player
	Players []Player
}

// DealOutcome describes a freshly dealt round
type DealOutcome struct {
	Players []Player
	Hands   []Cards // Indexed by seat
	Dealer  int
	Leader  int
}

// TablePlay is a card on the table with the player who played it
type TablePlay struct {
	Player Player
	Card   Card
}

// TrickOutcome describes a resolved trick
type TrickOutcome struct {
	Winner   Player
	Seat     int
	Card     Card
	Fallback bool // No lead-suit card was found; the trick leader took it
}

// PlayOutcome is everything that follows from a single accepted play
type PlayOutcome struct {
	Player Player
	Card   Card
	Table  []TablePlay   // Table as it stood after the play
	Trick  *TrickOutcome // Set when the play completed a trick
	Next   *Player       // Whose turn it is, nil when the round ended
	Round  *RoundSummary // Set when the round ended
}

// SeatStatus is the public view of a seat
type SeatStatus struct {
	Player    Player
	CardCount int
}

// StatusReport is the public view of a room's game
type StatusReport struct {
	Room     RoomID
	Phase    Phase
	Seats    []SeatStatus
	Turn     *Player
	Dealer   *Player
	LeadSuit Suit
	Table    []TablePlay
	Tricks   int
}

// Hand is a player's private view of their cards
type Hand struct {
	Player Player
	Cards  Cards
}
