package stripewebhooks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocksSerializeSameKey(t *testing.T) {
	locks := newSubscriptionLocks()

	var wg sync.WaitGroup
	counter := 0 // not atomic: torn increments would show up without the lock
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("sub_1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLocksReleaseEntries(t *testing.T) {
	locks := newSubscriptionLocks()

	unlockA := locks.lock("sub_a")
	unlockB := locks.lock("sub_b")
	assert.Len(t, locks.locks, 2)

	unlockA()
	assert.Len(t, locks.locks, 1)

	unlockB()
	assert.Empty(t, locks.locks)
}
