package session

import "sync"

// browserLocks serialises read-modify-write updates of one browser's stored values.
type browserLocks struct {
	mu    sync.Mutex
	locks map[string]*browserLock
}

type browserLock struct {
	sync.Mutex
	refs int
}

var appliedJobsLocks = &browserLocks{locks: map[string]*browserLock{}}

func (b *browserLocks) lock(browserID string) func() {
	b.mu.Lock()
	l, ok := b.locks[browserID]
	if !ok {
		l = &browserLock{}
		b.locks[browserID] = l
	}
	l.refs++
	b.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		b.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(b.locks, browserID)
		}
		b.mu.Unlock()
	}
}
