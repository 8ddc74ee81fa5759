package signal

import (
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

type createRoomPayload struct {
	Game string `json:"game"`
}

type roomPayload struct {
	Room     domain.RoomID `json:"room"`
	Nickname string        `json:"nickname,omitempty"`
}

type roomCheckedPayload struct {
	Room   domain.RoomID `json:"room"`
	Exists bool          `json:"exists"`
}

func (ctl *SignalWSController) handleCreateRoom(sid core.SessionID, c core.SignalConnection, data []byte) {
	var p createRoomPayload
	if !ctl.decode(c, core.CmdCreateRoom, data, &p) {
		return
	}
	if p.Game == "" {
		p.Game = ctl.opts.DefaultGame
	}
	id, err := ctl.Orch.CreateRoom(p.Game)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("game", p.Game).Msg("create room")
		ctl.sendError(c, core.CmdCreateRoom, err.Error())
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(id)).Msg("room created")
	ctl.sendJSON(c, core.EvRoomCreated, roomPayload{Room: id})
}

func (ctl *SignalWSController) handleCheckRoom(c core.SignalConnection, data []byte) {
	var p roomPayload
	if !ctl.decode(c, core.CmdCheckRoom, data, &p) {
		return
	}
	ctl.sendJSON(c, core.EvRoomChecked, roomCheckedPayload{Room: p.Room, Exists: ctl.Orch.CheckRoom(p.Room)})
}

func (ctl *SignalWSController) handleJoin(sid core.SessionID, c core.SignalConnection, data []byte) {
	var p roomPayload
	if !ctl.decode(c, core.CmdJoinRoom, data, &p) {
		return
	}
	if p.Nickname != "" {
		if err := domain.ValidateNickname(p.Nickname); err != nil {
			ctl.sendError(c, core.CmdJoinRoom, err.Error())
			return
		}
	}
	if !ctl.Orch.CheckRoom(p.Room) {
		log.Warn().Str("module", "signal").Str("room", string(p.Room)).Msg("room does not exist")
		ctl.sendError(c, core.CmdJoinRoom, "room_not_found")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(p.Room)).Msg("join")
	if !ctl.Orch.Join(sid, p.Room, p.Nickname) {
		ctl.sendError(c, core.CmdJoinRoom, "rejected")
		return
	}
	ctl.sendJSON(c, core.EvJoined, roomPayload{Room: p.Room})
}

// handleLeave leaves the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(sid core.SessionID, c core.SignalConnection) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	roomID, ok := ctl.Orch.Registry.RoomOf(sid)
	if !ok {
		ctl.sendError(c, core.CmdLeaveRoom, "not_in_room")
		return
	}
	ctl.Orch.Leave(sid)
	ctl.sendJSON(c, core.EvLeft, roomPayload{Room: roomID})
}
