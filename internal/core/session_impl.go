package core

import (
	"sync"

	"github.com/dkeye/Party/internal/domain"
)

// userSession implements UserSession by pairing meta + transport.
// The signal may be swapped when the client reconnects.
type userSession struct {
	user *domain.User

	mu     sync.RWMutex
	signal SignalConnection
}

func NewUserSession(user *domain.User) UserSession {
	return &userSession{user: user}
}

func (s *userSession) User() *domain.User { return s.user }

func (s *userSession) Signal() SignalConnection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signal
}

func (s *userSession) UpdateSignal(sc SignalConnection) UserSession {
	s.mu.Lock()
	s.signal = sc
	s.mu.Unlock()
	return s
}
