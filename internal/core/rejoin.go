package core

import (
	"slices"

	"github.com/dkeye/Party/internal/domain"
)

// CheckRejoin finds the seat u should resume. A seat can only be resumed
// while fewer members are flagged as players than the state has seats.
// Seats are matched by nickname, first match in turn order.
func (r *GameRoom[P, O]) CheckRejoin(u *domain.User) (P, bool) {
	var zero P
	if r.state == nil {
		return zero, false
	}
	players := r.state.Players()
	if len(r.PlayerMembers()) >= len(players) {
		return zero, false
	}
	for _, p := range players {
		if p.Nickname() == u.Nickname {
			return p, true
		}
	}
	return zero, false
}

// NextCurrentPlayer moves the current player to the back of the order.
func (r *GameRoom[P, O]) NextCurrentPlayer() {
	players := r.mustState().Players()
	if len(players) < 2 {
		return
	}
	r.state.SetPlayers(append(slices.Clone(players[1:]), players[0]))
}

// CurrentPlayer is the front of the player order.
func (r *GameRoom[P, O]) CurrentPlayer() (P, bool) {
	players := r.mustState().Players()
	if len(players) == 0 {
		var zero P
		return zero, false
	}
	return players[0], true
}

// AppendLog records rec in the state log and broadcasts it.
func (r *GameRoom[P, O]) AppendLog(rec domain.LogRecord) {
	r.mustState().AppendLog(rec)
	r.NotifyLogRecord(rec)
}

func (r *GameRoom[P, O]) mustState() State[P] {
	if r.state == nil {
		panic("core: room " + string(r.id) + " has no state snapshot")
	}
	return r.state
}
