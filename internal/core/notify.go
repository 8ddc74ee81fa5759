package core

import "github.com/dkeye/Party/internal/domain"

// Target selects the recipients of a notification.
type Target struct {
	user domain.UserID
}

// Everyone addresses every member of the room.
var Everyone = Target{}

// To addresses a single user.
func To(uid domain.UserID) Target { return Target{user: uid} }

type NicknamePayload struct {
	Nickname string `json:"nickname"`
	Forced   bool   `json:"forced"`
}

func (r *GameRoom[P, O]) emit(to Target, ev Event, payload any) {
	if to.user != "" {
		r.transport.Send(to.user, ev, payload)
		return
	}
	r.transport.Emit(string(r.id), ev, payload)
}

func (r *GameRoom[P, O]) NotifyMembers() {
	out := make([]MemberDTO, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, MemberDTO{IsPlayer: m.IsPlayer, Nickname: m.User.Nickname})
	}
	r.emit(Everyone, EvMembers, out)
}

func (r *GameRoom[P, O]) NotifyLogs(to Target) {
	logs := []domain.LogRecord{}
	if r.state != nil && r.state.Log() != nil {
		logs = r.state.Log()
	}
	r.emit(to, EvLogs, logs)
}

func (r *GameRoom[P, O]) NotifyLogRecord(rec domain.LogRecord) {
	r.emit(Everyone, EvLogRecord, rec)
}

func (r *GameRoom[P, O]) NotifyPlayers(to Target) {
	r.emit(to, EvPlayers, r.game.PlayersPayload())
}

// NotifyTimer sends the flow timer in milliseconds.
func (r *GameRoom[P, O]) NotifyTimer(to Target) {
	r.emit(to, EvTimer, r.flow.Timer().Milliseconds())
}

func (r *GameRoom[P, O]) NotifyStatus(to Target) {
	r.emit(to, EvStatus, r.status)
}

func (r *GameRoom[P, O]) NotifyAct(to Target, act bool) {
	r.emit(to, EvAct, act)
}

func (r *GameRoom[P, O]) NotifyPause(to Target) {
	r.emit(to, EvPause, r.IsOnPause())
}

// NotifyRestrictions sends the owner the reasons the game cannot start.
func (r *GameRoom[P, O]) NotifyRestrictions() {
	if r.owner == nil {
		return
	}
	restrictions := r.game.RestrictionsToStart()
	if restrictions == nil {
		restrictions = []string{}
	}
	r.emit(To(r.owner.User.ID), EvRestrictions, restrictions)
}

// NotifyKey sends the authority key to the owner only.
func (r *GameRoom[P, O]) NotifyKey() {
	if r.owner == nil {
		return
	}
	r.emit(To(r.owner.User.ID), EvKey, r.key)
}

func (r *GameRoom[P, O]) NotifyNickname(uid domain.UserID, nickname string, forced bool) {
	r.emit(To(uid), EvNickname, NicknamePayload{Nickname: nickname, Forced: forced})
}

func (r *GameRoom[P, O]) NotifyOptions(to Target) {
	r.emit(to, EvOptions, r.options)
}
