package ledger

import (
	"sync"

	"github.com/jcallaghan/betpool/internal/model"
)

// memberLocker serializes read-mutate-save sequences against a single
// member's record. Line locks only cover one line, but a member can hold
// stakes on several open lines at once, so every balance and stat
// mutation funnels through the member's own mutex as well.
type memberLocker struct {
	mu    sync.Mutex
	locks map[model.MemberID]*sync.Mutex
}

func newMemberLocker() *memberLocker {
	return &memberLocker{
		locks: make(map[model.MemberID]*sync.Mutex),
	}
}

// acquire blocks until the member's mutex is held and returns the
// release function. Mutexes are created on first use and kept for the
// life of the process.
func (l *memberLocker) acquire(id model.MemberID) func() {
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
