package signal

import (
	"encoding/json"

	"github.com/dkeye/Party/internal/core"
	"github.com/rs/zerolog/log"
)

type keyPayload struct {
	Key string `json:"key"`
}

type setOptionsPayload struct {
	Key     string          `json:"key"`
	Options json.RawMessage `json:"options"`
}

func (ctl *SignalWSController) handlePing(c core.SignalConnection) {
	ctl.sendJSON(c, core.EvPong, nil)
}

func (ctl *SignalWSController) handleLifecycle(sid core.SessionID, c core.SignalConnection, cmd core.Event, data []byte) {
	var p keyPayload
	if !ctl.decode(c, cmd, data, &p) {
		return
	}
	var ok bool
	switch cmd {
	case core.CmdStart:
		ok = ctl.Orch.Start(sid, p.Key)
	case core.CmdStop:
		ok = ctl.Orch.Stop(sid, p.Key)
	case core.CmdPause:
		ok = ctl.Orch.Pause(sid, p.Key)
	case core.CmdResume:
		ok = ctl.Orch.Resume(sid, p.Key)
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("type", string(cmd)).Bool("ok", ok).Msg("lifecycle")
	ctl.reply(c, cmd, ok)
}

func (ctl *SignalWSController) handleSetOptions(sid core.SessionID, c core.SignalConnection, data []byte) {
	var p setOptionsPayload
	if !ctl.decode(c, core.CmdSetOptions, data, &p) {
		return
	}
	if len(p.Options) == 0 {
		ctl.sendError(c, core.CmdSetOptions, "bad_payload")
		return
	}
	ctl.reply(c, core.CmdSetOptions, ctl.Orch.SetOptions(sid, p.Options, p.Key))
}
