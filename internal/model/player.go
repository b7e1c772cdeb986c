package model

import "strings"

// PlayerID is the canonical chat identity of a player, e.g. "123@s.whatsapp.net"
type PlayerID string

// RoomID identifies a chat room (a group chat) that hosts at most one game
type RoomID string

// Player is a seated participant as seen by the chat
type Player struct {
	ID          PlayerID
	DisplayName string
}

// Handle returns the name used in "@name" mentions, falling back to the
// user part of the ID when no display name is known
func (p Player) Handle() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	user, _, _ := strings.Cut(string(p.ID), "@")
	if user == "" {
		return "player"
	}
	return user
}
