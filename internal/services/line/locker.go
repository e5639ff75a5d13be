package line

import (
	"sync"

	"github.com/jcallaghan/betpool/internal/model"
)

// Locker serializes all mutating work against a single line. Reconcile,
// lock and resolve flows acquire the line's mutex around their whole
// read-check-act sequence; work on different lines proceeds in parallel.
type Locker struct {
	mu    sync.Mutex
	locks map[model.LineID]*sync.Mutex
}

// NewLocker creates a new Locker
func NewLocker() *Locker {
	return &Locker{
		locks: make(map[model.LineID]*sync.Mutex),
	}
}

// Acquire blocks until the line's mutex is held and returns the release
// function. Mutexes are created on first use and kept for the life of the
// process; lines are few and short-lived enough that this is fine.
func (l *Locker) Acquire(id model.LineID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
