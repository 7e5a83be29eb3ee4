package runtime

import (
	"sync"
	"webchat/domain/chat"
)

// RoomLocks serialises work per room key while leaving
// different rooms independent. Entries are dropped once unused.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[chat.RoomID]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[chat.RoomID]*roomLock)}
}

// Lock blocks until the room is free and returns the matching unlock.
func (l *RoomLocks) Lock(roomID chat.RoomID) func() {
	l.mu.Lock()
	lock, ok := l.locks[roomID]
	if !ok {
		lock = &roomLock{}
		l.locks[roomID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, roomID)
		}
		l.mu.Unlock()
	}
}

func (l *RoomLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
