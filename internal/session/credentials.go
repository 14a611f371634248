package session

import "sync"

// Credentials is the opaque bearer token plus the privileged claim
// decoded from it. How the token is acquired or parsed is outside
// this module; the client only carries it.
type Credentials struct {
	Token string
	Admin bool
}

// Store holds the session's credential. It satisfies both the API
// client's TokenSource and the order context's Credential interface,
// so the same store is injected everywhere a credential is consumed.
type Store struct {
	mu    sync.RWMutex
	creds *Credentials
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(c Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Token == "" {
		s.creds = nil
		return
	}
	s.creds = &c
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
}

func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return "", false
	}
	return s.creds.Token, true
}

func (s *Store) Privileged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds != nil && s.creds.Admin
}
