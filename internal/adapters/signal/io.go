package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Party/internal/app"
	"github.com/dkeye/Party/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

// inbound is the wire shape of every client command.
type inbound struct {
	Type core.Event      `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type errorPayload struct {
	Command core.Event `json:"command,omitempty"`
	Error   string     `json:"error"`
}

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Info().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, sid core.SessionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		c.Close()
		ctl.Orch.OnDisconnect(sid, c)
		if _, live := ctl.Orch.Registry.GetSession(sid); !live && ctl.limiter != nil {
			ctl.limiter.Forget(sid)
		}
	}()

	pongWait := ctl.opts.PingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(sid, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(sid core.SessionID, c core.SignalConnection, data []byte) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "", "bad_json")
		return
	}
	if ctl.limiter != nil && !ctl.limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("type", string(msg.Type)).Msg("rate limited")
		ctl.sendError(c, msg.Type, "rate_limited")
		return
	}

	switch msg.Type {
	case core.CmdPing:
		ctl.handlePing(c)
	case core.CmdCreateRoom:
		ctl.handleCreateRoom(sid, c, msg.Data)
	case core.CmdCheckRoom:
		ctl.handleCheckRoom(c, msg.Data)
	case core.CmdJoinRoom:
		ctl.handleJoin(sid, c, msg.Data)
	case core.CmdLeaveRoom:
		ctl.handleLeave(sid, c)
	case core.CmdStart, core.CmdStop, core.CmdPause, core.CmdResume:
		ctl.handleLifecycle(sid, c, msg.Type, msg.Data)
	case core.CmdChangeNickname:
		ctl.handleChangeNickname(sid, c, msg.Data)
	case core.CmdBecomePlayer:
		ctl.handleBecome(sid, c, msg.Type, true)
	case core.CmdBecomeSpectator:
		ctl.handleBecome(sid, c, msg.Type, false)
	case core.CmdRequestOptions:
		ctl.reply(c, msg.Type, ctl.Orch.RequestOptions(sid))
	case core.CmdSetOptions:
		ctl.handleSetOptions(sid, c, msg.Data)
	case core.CmdRequestTimer:
		ctl.reply(c, msg.Type, ctl.Orch.RequestTimer(sid))
	default:
		ctl.reply(c, msg.Type, ctl.Orch.Command(sid, msg.Type, msg.Data))
	}
}

func (ctl *SignalWSController) sendJSON(c core.SignalConnection, ev core.Event, data any) {
	b, err := json.Marshal(app.Envelope{Type: ev, Data: data})
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(c core.SignalConnection, cmd core.Event, reason string) {
	ctl.sendJSON(c, core.EvError, errorPayload{Command: cmd, Error: reason})
}

// reply reports a rejected command. Accepted ones are answered by the
// room's own notifications.
func (ctl *SignalWSController) reply(c core.SignalConnection, cmd core.Event, ok bool) {
	if !ok {
		ctl.sendError(c, cmd, "rejected")
	}
}

// decode unmarshals a command payload, answering bad_payload on failure.
func (ctl *SignalWSController) decode(c core.SignalConnection, cmd core.Event, data []byte, v any) bool {
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("type", string(cmd)).Msg("bad payload")
		ctl.sendError(c, cmd, "bad_payload")
		return false
	}
	return true
}
