package app

import (
	"context"
	"sync"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

const DefaultNickname = "guest"

type sessionEntry struct {
	RoomID  domain.RoomID
	Session core.UserSession
	Cancel  context.CancelFunc
}

// Registry tracks connected sessions, their users and their current room.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
	users    map[core.SessionID]*domain.User
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
		users:    make(map[core.SessionID]*domain.User),
	}
}

// GetOrCreateUser returns the user of sid. The user id equals the session id
// and doubles as the user's private channel.
func (r *Registry) GetOrCreateUser(sid core.SessionID) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[sid]; ok {
		return u
	}
	u := &domain.User{ID: domain.UserID(sid), Nickname: DefaultNickname}
	r.users[sid] = u
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("created new user")
	return u
}

// BindSignal attaches a live connection to sid, replacing a previous one.
func (r *Registry) BindSignal(sid core.SessionID, sc core.SignalConnection, cancel context.CancelFunc) core.UserSession {
	user := r.GetOrCreateUser(sid)
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		e = &sessionEntry{Session: core.NewUserSession(user)}
		r.sessions[sid] = e
	} else if e.Cancel != nil {
		e.Cancel()
	}
	e.Session.UpdateSignal(sc)
	e.Cancel = cancel
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound signal")
	return e.Session
}

func (r *Registry) GetSession(sid core.SessionID) (core.UserSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

// Unbind forgets the connection of sid if it is still sc. A newer
// connection of the same client stays bound.
func (r *Registry) Unbind(sid core.SessionID, sc core.SignalConnection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok || e.Session.Signal() != sc {
		return false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
	return true
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.RoomID == "" {
		return "", false
	}
	return entry.RoomID, true
}

func (r *Registry) UpdateRoom(sid core.SessionID, roomID domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return false
	}
	entry.RoomID = roomID
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(roomID)).Msg("updated room")
	return true
}

func (r *Registry) RemoveRoom(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[sid]; ok {
		entry.RoomID = ""
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("removed room association")
}

// ClearRoom drops every association with a deleted room.
func (r *Registry) ClearRoom(roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.sessions {
		if e.RoomID == roomID {
			e.RoomID = ""
		}
	}
}
