package signup

import "sync"

// session buffers the fields delivered by session messages for one launch and
// records whether an outcome was already emitted.
type session struct {
	id      string
	release func()

	mu                sync.Mutex
	phoneNumberID     string
	businessAccountID string
	settled           bool
}

func newSession(id string) *session {
	return &session{id: id, release: func() {}}
}

func (s *session) store(phoneNumberID, businessAccountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phoneNumberID = phoneNumberID
	s.businessAccountID = businessAccountID
}

func (s *session) buffered() (phoneNumberID, businessAccountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phoneNumberID, s.businessAccountID
}

// settle marks the session finished and reports whether this call did so.
func (s *session) settle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settled {
		return false
	}
	s.settled = true
	return true
}
