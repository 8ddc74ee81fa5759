package signal

import (
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

type nicknamePayload struct {
	Nickname string `json:"nickname"`
}

func (ctl *SignalWSController) handleChangeNickname(sid core.SessionID, c core.SignalConnection, data []byte) {
	var p nicknamePayload
	if !ctl.decode(c, core.CmdChangeNickname, data, &p) {
		return
	}
	if err := domain.ValidateNickname(p.Nickname); err != nil {
		ctl.sendError(c, core.CmdChangeNickname, err.Error())
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("nickname", p.Nickname).Msg("change nickname")
	if _, inRoom := ctl.Orch.Registry.RoomOf(sid); !inRoom {
		nickname := ctl.Orch.ChangeNickname(sid, p.Nickname)
		ctl.sendJSON(c, core.EvNickname, core.NicknamePayload{Nickname: nickname})
		return
	}
	ctl.reply(c, core.CmdChangeNickname, ctl.Orch.ChangeNickname(sid, p.Nickname) != "")
}

func (ctl *SignalWSController) handleBecome(sid core.SessionID, c core.SignalConnection, cmd core.Event, player bool) {
	ctl.reply(c, cmd, ctl.Orch.Become(sid, player))
}
