package core

import "github.com/dkeye/Party/internal/domain"

type SessionID string

// UserSession binds a domain.User and its transport endpoint.
// This is what the hub fans out to.
type UserSession interface {
	User() *domain.User
	Signal() SignalConnection
	UpdateSignal(SignalConnection) UserSession
}
