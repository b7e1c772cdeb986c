package model

import (
	"slices"
	"time"
)

// RoundEndReason explains how a round finished
type RoundEndReason string

const (
	RoundCompleted RoundEndReason = "completed" // At most one player still held cards
	RoundStopped   RoundEndReason = "stopped"   // Ended by command before completion
)

// RoundSummary is a lightweight record of a finished round
type RoundSummary struct {
	ID        string
	Room      RoomID
	Reason    RoundEndReason
	Players   []Player
	Holder    *Player // Last player holding cards; nil when all hands are empty
	CardsLeft int     // Cards held by Holder
	Tricks    int     // Tricks resolved during the round
	StartedAt time.Time
	EndedAt   time.Time
}

// Clone returns a deep copy of the summary
func (r *RoundSummary) Clone() *RoundSummary {
	c := *r
	c.Players = slices.Clone(r.Players)
	if r.Holder != nil {
		holder := *r.Holder
		c.Holder = &holder
	}
	return &c
}

// AllHandsEmpty reports whether nobody was left holding cards
func (r *RoundSummary) AllHandsEmpty() bool {
	return r.Holder == nil
}
