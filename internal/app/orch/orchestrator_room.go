package orch

import (
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) CreateRoom(game string) (domain.RoomID, error) {
	return o.Rooms.Create(game)
}

func (o *Orchestrator) CheckRoom(id domain.RoomID) bool {
	return o.Rooms.Exists(id)
}

// Join moves sid into the room, leaving its previous room first. A user
// is a member of one room at a time.
func (o *Orchestrator) Join(sid core.SessionID, roomID domain.RoomID, nickname string) bool {
	if cur, ok := o.Registry.RoomOf(sid); ok {
		if cur == roomID {
			return true
		}
		o.Leave(sid)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(cur)).Msg("left previous room")
	}
	if _, ok := o.Registry.GetSession(sid); !ok {
		return false
	}
	user := o.Registry.GetOrCreateUser(sid)
	if nickname != "" {
		user.Nickname = nickname
	}

	joined := false
	o.Rooms.Do(roomID, func(r core.Room) { joined = r.Join(user) })
	if !joined {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("join rejected")
		return false
	}
	o.Registry.UpdateRoom(sid, roomID)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(roomID)).Msg("added to room")
	return true
}

func (o *Orchestrator) Leave(sid core.SessionID) bool {
	kicked := false
	o.withRoom(sid, func(r core.Room, u *domain.User) { kicked = r.Kick(u) })
	o.Registry.RemoveRoom(sid)
	return kicked
}

// ChangeNickname renames sid inside its room, or just in the registry
// when it is not in a room. It returns "" when the room rejects it.
func (o *Orchestrator) ChangeNickname(sid core.SessionID, nickname string) string {
	assigned := ""
	if !o.withRoom(sid, func(r core.Room, u *domain.User) { assigned = r.ChangeNickname(u, nickname) }) {
		o.Registry.GetOrCreateUser(sid).Nickname = nickname
		return nickname
	}
	return assigned
}

func (o *Orchestrator) Become(sid core.SessionID, player bool) (ok bool) {
	o.withRoom(sid, func(r core.Room, u *domain.User) { ok = r.Become(u, player) })
	return ok
}

// OnDisconnect removes sid from its room once its connection sc is gone.
func (o *Orchestrator) OnDisconnect(sid core.SessionID, sc core.SignalConnection) {
	roomID, inRoom := o.Registry.RoomOf(sid)
	if !o.Registry.Unbind(sid, sc) || !inRoom {
		return
	}
	user := o.Registry.GetOrCreateUser(sid)
	o.Rooms.Do(roomID, func(r core.Room) { r.Kick(user) })
}

func (o *Orchestrator) EvictRoom(id domain.RoomID) {
	o.Rooms.Delete(id)
	o.Registry.ClearRoom(id)
}
