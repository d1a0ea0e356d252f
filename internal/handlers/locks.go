package handlers

import "sync"

// sessionLocks serializes state transitions per game session so two
// concurrent requests cannot both load, mutate and store the same board.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock blocks until the session lock is held and returns its release func.
func (l *sessionLocks) Lock(gameSessionId int64) func() {
	l.mu.Lock()
	m, ok := l.locks[gameSessionId]
	if !ok {
		m = &sync.Mutex{}
		l.locks[gameSessionId] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
