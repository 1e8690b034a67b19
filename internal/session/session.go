// Package session caches short-lived symmetric secrets keyed by a
// session id, the way the teacher's AuthClientSession/AuthServerSession
// held state across the lifetime of a single protocol run — generalized
// here into an explicit cache since this module has no multi-round
// protocol of its own to carry that state through.
package session

import (
	"sync"
	"time"
)

type entry struct {
	secret  []byte
	expires time.Time
}

// Store is a concurrency-safe, in-memory cache mapping a session id to
// the shared secret derived for it, with per-entry expiry. The zero
// Store is ready to use.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
}

// Put records secret under id, expiring it after ttl. Put copies
// secret; the caller keeps ownership of the slice it passed in.
func (s *Store) Put(id string, secret []byte, ttl time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string]entry)
	}
	cp := append([]byte(nil), secret...)
	s.entries[id] = entry{secret: cp, expires: now.Add(ttl)}
}

// Get returns the secret stored under id, or ok=false if it was never
// stored or has expired as of now. An expired entry is evicted.
func (s *Store) Get(id string, now time.Time) (secret []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, found := s.entries[id]
	if !found {
		return nil, false
	}
	if !now.Before(e.expires) {
		delete(s.entries, id)
		return nil, false
	}
	return e.secret, true
}

// Sweep removes every entry that has expired as of now, returning the
// number evicted.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Len reports the number of entries currently cached, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
