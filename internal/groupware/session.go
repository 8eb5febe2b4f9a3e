package groupware

import "sync"

// Session holds the single cached authentication marker for a gateway
// instance. The marker is set after a successful credential exchange,
// cleared on any authorization failure, and re-established lazily on the
// next call.
//
// Two concurrent calls hitting a 401 may both reauthenticate; the
// redundant exchange is accepted since both end in a validly
// authenticated session.
type Session struct {
	mu     sync.Mutex
	marker string
}

// Valid reports whether a cached marker is present.
func (s *Session) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marker != ""
}

// Set stores the authentication marker.
func (s *Session) Set(marker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = marker
}

// Invalidate clears the cached marker.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = ""
}
