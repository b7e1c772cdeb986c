package redis

import (
	"fmt"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

// Key prefix for all bot data
const keyPrefix = "bhabhi"

// roundKey returns the Redis key for a RoundSummary
func roundKey(id string) string {
	return fmt.Sprintf("%s:round:%s", keyPrefix, id)
}

// roomRoundsIndexKey returns the Redis key for the sorted set of a room's rounds, scored by end time
func roomRoundsIndexKey(room model.RoomID) string {
	return fmt.Sprintf("%s:idx:room_rounds:%s", keyPrefix, room)
}
