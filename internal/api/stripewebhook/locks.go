package stripewebhooks

import "sync"

// subscriptionLocks serializes deliveries that target the same processor
// subscription. Different subscriptions never contend; a duplicate delivery
// or a delete racing an update for the same one must not interleave.
// Entries are refcounted and dropped when the last holder releases, so the
// map size is bounded by in-flight deliveries, not by the number of distinct
// subscription ids ever seen.
type subscriptionLocks struct {
	mu    sync.Mutex
	locks map[string]*subscriptionLock
}

type subscriptionLock struct {
	mu   sync.Mutex
	refs int
}

func newSubscriptionLocks() *subscriptionLocks {
	return &subscriptionLocks{locks: map[string]*subscriptionLock{}}
}

func (s *subscriptionLocks) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &subscriptionLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}
