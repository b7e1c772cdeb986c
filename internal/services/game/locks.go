package game

import (
	"sync"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

// roomLocks serialises commands per room while letting rooms proceed in parallel
type roomLocks struct {
	mu    sync.Mutex
	locks map[model.RoomID]*roomLock
}

type roomLock struct {
	sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[model.RoomID]*roomLock)}
}

// lock blocks until the room is free and returns the matching unlock
func (l *roomLocks) lock(room model.RoomID) func() {
	l.mu.Lock()
	rl, ok := l.locks[room]
	if !ok {
		rl = &roomLock{}
		l.locks[room] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.Lock()
	return func() {
		rl.Unlock()
		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.locks, room)
		}
		l.mu.Unlock()
	}
}
