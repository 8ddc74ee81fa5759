package app

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrUnknownGame = errors.New("unknown game")

// Factory builds a room of one game. exec must wrap every callback the
// room receives outside of RoomManager.Do, such as flow ticks.
type Factory func(ctx context.Context, t core.Transport, exec func(func())) core.Room

type roomEntry struct {
	mu   sync.Mutex
	room core.Room
	gone bool
	// empties counts consecutive sweeps that found the room empty.
	empties int
}

func (e *roomEntry) exec(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return
	}
	fn()
}

type RoomManagerImpl struct {
	ctx             context.Context
	transport       core.Transport
	games           map[string]Factory
	maxFailedChecks int

	mu    sync.RWMutex
	rooms map[domain.RoomID]*roomEntry
}

// NewRoomManager returns a manager that deletes a room after
// maxFailedChecks sweeps that found it empty.
func NewRoomManager(ctx context.Context, t core.Transport, maxFailedChecks int, games map[string]Factory) core.RoomManager {
	return &RoomManagerImpl{
		ctx:             ctx,
		transport:       t,
		games:           games,
		maxFailedChecks: maxFailedChecks,
		rooms:           make(map[domain.RoomID]*roomEntry),
	}
}

func (m *RoomManagerImpl) Create(game string) (domain.RoomID, error) {
	factory, ok := m.games[game]
	if !ok {
		return "", ErrUnknownGame
	}
	e := &roomEntry{}
	e.room = factory(m.ctx, m.transport, e.exec)
	id := e.room.ID()

	m.mu.Lock()
	m.rooms[id] = e
	m.mu.Unlock()
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("game", game).Msg("room created")
	return id, nil
}

func (m *RoomManagerImpl) Exists(id domain.RoomID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[id]
	return ok
}

func (m *RoomManagerImpl) Do(id domain.RoomID, fn func(core.Room)) bool {
	m.mu.RLock()
	e, ok := m.rooms[id]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return false
	}
	fn(e.room)
	return true
}

func (m *RoomManagerImpl) List() []core.RoomInfo {
	m.mu.RLock()
	ids := make([]domain.RoomID, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	out := make([]core.RoomInfo, 0, len(ids))
	for _, id := range ids {
		m.Do(id, func(r core.Room) { out = append(out, r.Info()) })
	}
	return out
}

func (m *RoomManagerImpl) Delete(id domain.RoomID) {
	m.mu.Lock()
	e, ok := m.rooms[id]
	delete(m.rooms, id)
	m.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.room.Delete()
	e.gone = true
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room deleted")
}

// check runs one liveness check and reports whether the room has been
// empty for maxFailedChecks sweeps in a row.
func (m *RoomManagerImpl) check(id domain.RoomID) bool {
	m.mu.RLock()
	e, ok := m.rooms[id]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return false
	}
	if e.room.CheckActivity() {
		e.empties = 0
		return false
	}
	e.empties++
	failed := e.room.IncreaseFailedChecksCount()
	log.Debug().Str("module", "app.rooms").Str("room", string(id)).Int("empty_sweeps", e.empties).Int("failed_checks", failed).Msg("empty room")
	return e.empties >= m.maxFailedChecks
}

func (m *RoomManagerImpl) Sweep() []domain.RoomID {
	m.mu.RLock()
	ids := make([]domain.RoomID, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	var deleted []domain.RoomID
	for _, id := range ids {
		if m.check(id) {
			m.Delete(id)
			deleted = append(deleted, id)
		}
	}
	return deleted
}
