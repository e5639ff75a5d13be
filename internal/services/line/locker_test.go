package line

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcquireSerializesSameLine(t *testing.T) {
	locker := NewLocker()

	// A plain int is only safe if Acquire really serializes the critical
	// sections
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locker.Acquire("LINE0001")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestAcquireIndependentLines(t *testing.T) {
	locker := NewLocker()

	releaseA := locker.Acquire("LINE0001")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release := locker.Acquire("LINE0002")
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquiring a different line blocked behind a held lock")
	}
}

func TestAcquireBlocksUntilReleased(t *testing.T) {
	locker := NewLocker()

	release := locker.Acquire("LINE0001")

	acquired := make(chan struct{})
	go func() {
		r := locker.Acquire("LINE0001")
		r()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while the lock was held")
	case <-time.After(50 * time.Millisecond):
	}

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire never proceeded after release")
	}
}
