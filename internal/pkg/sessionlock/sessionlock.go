// Package sessionlock serializes work per game session.
//
// Deck and inventory operations are read-modify-write against a session's
// ordered lists, so at most one of them may run for a session at a time.
// Different sessions never block each other.
package sessionlock

import (
	"context"
	"sync"
)

// Locker hands out per-session exclusive sections
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	// ch is a one-slot semaphore; holding the token means holding the session
	ch   chan struct{}
	refs int
}

// New returns an empty Locker
func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Lock blocks until the session is free or ctx is done. The returned func
// releases the session and must be called exactly once.
func (l *Locker) Lock(ctx context.Context, sessionID string) (func(), error) {
	e := l.acquire(sessionID)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(sessionID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(sessionID, e)
		})
	}, nil
}

func (l *Locker) acquire(sessionID string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[sessionID]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[sessionID] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(sessionID string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, sessionID)
	}
}
