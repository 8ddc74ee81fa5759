// Package turns is a round-robin party game: players hold the turn until
// they pass it on or their time runs out.
package turns

import (
	"context"
	"fmt"
	"time"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/dkeye/Party/internal/flow"
)

const Name = "turns"

// CmdPass hands the turn to the next player.
const CmdPass core.Event = "pass"

const (
	MinPlayers = 2

	RestrictionNotEnoughPlayers = "not enough players"
	RestrictionTooManyPlayers   = "too many players"
)

type Options struct {
	MaxPlayers  int `json:"max_players"`
	TurnSeconds int `json:"turn_seconds"`
	Rounds      int `json:"rounds"`
}

func (o Options) turn() time.Duration { return time.Duration(o.TurnSeconds) * time.Second }

type Player struct {
	Name     string `json:"nickname"`
	Passes   int    `json:"passes"`
	Timeouts int    `json:"timeouts"`
}

func (p *Player) Nickname() string { return p.Name }

// PlayerView is the player-facing state.
type PlayerView struct {
	Player
	Current bool `json:"current"`
}

type Game struct {
	*core.GameRoom[*Player, Options]
	flow  *flow.Flow
	turns int
}

var _ core.Room = (*Game)(nil)

// New builds a game room. exec serializes flow callbacks with the other
// operations on the room.
func New(ctx context.Context, t core.Transport, exec func(func()), tick time.Duration) *Game {
	g := &Game{}
	g.flow = flow.New(ctx, tick, exec, flow.Hooks{OnTick: g.onTick, OnExpire: g.onExpire})
	g.GameRoom = core.NewGameRoom[*Player, Options](g, core.Deps{Transport: t, Flow: g.flow})
	return g
}

func (g *Game) Info() core.RoomInfo {
	info := g.GameRoom.Info()
	info.Game = Name
	return info
}

func (g *Game) DefaultOptions() Options {
	return Options{MaxPlayers: 8, TurnSeconds: 15, Rounds: 3}
}

// ApplyOptions clamps requested values; zero keeps the current value.
func (g *Game) ApplyOptions(current, requested Options) Options {
	return Options{
		MaxPlayers:  clamp(requested.MaxPlayers, current.MaxPlayers, MinPlayers, 16),
		TurnSeconds: clamp(requested.TurnSeconds, current.TurnSeconds, 3, 120),
		Rounds:      clamp(requested.Rounds, current.Rounds, 1, 20),
	}
}

func clamp(v, fallback, lo, hi int) int {
	if v == 0 {
		return fallback
	}
	return max(lo, min(v, hi))
}

func (g *Game) PlayersPayload() any {
	out := []PlayerView{}
	st := g.State()
	if st == nil {
		return out
	}
	for i, p := range st.Players() {
		out = append(out, PlayerView{Player: *p, Current: i == 0})
	}
	return out
}

func (g *Game) IsRunning() bool {
	s := g.Status()
	return s == domain.StatusRunning || s == domain.StatusPaused
}

func (g *Game) RestrictionsToStart() []string {
	var out []string
	n := len(g.PlayerMembers())
	if n < MinPlayers {
		out = append(out, RestrictionNotEnoughPlayers)
	}
	if n > g.Options().MaxPlayers {
		out = append(out, RestrictionTooManyPlayers)
	}
	return out
}

func (g *Game) Start(key string) bool {
	if !g.CheckKey(key) || g.IsRunning() || len(g.RestrictionsToStart()) > 0 {
		g.Logger().Info().Str("action", "start").Msg("rejected")
		return false
	}
	members := g.PlayerMembers()
	players := make([]*Player, 0, len(members))
	for _, m := range members {
		players = append(players, &Player{Name: m.User.Nickname})
	}
	g.SetState(core.NewBasicState(players))
	g.turns = 0
	g.SetStatus(domain.StatusRunning)
	g.flow.Reset(g.Options().turn())
	g.flow.Start()

	g.NotifyStatus(core.Everyone)
	g.NotifyLogs(core.Everyone)
	g.record("game started")
	g.syncTurn()
	g.Logger().Info().Str("action", "start").Int("players", len(players)).Msg("game started")
	return true
}

func (g *Game) Stop(key string) bool {
	if !g.CheckKey(key) || !g.IsRunning() {
		g.Logger().Info().Str("action", "stop").Msg("rejected")
		return false
	}
	g.finish("game stopped")
	return true
}

func (g *Game) Pause(key string) bool {
	if !g.CheckKey(key) || g.Status() != domain.StatusRunning {
		g.Logger().Info().Str("action", "pause").Msg("rejected")
		return false
	}
	g.flow.Stop()
	g.SetStatus(domain.StatusPaused)
	g.notifyLifecycle()
	return true
}

func (g *Game) Resume(key string) bool {
	if !g.CheckKey(key) || g.Status() != domain.StatusPaused {
		g.Logger().Info().Str("action", "resume").Msg("rejected")
		return false
	}
	g.SetStatus(domain.StatusRunning)
	// The turn may have expired while the pause was pending.
	if g.flow.Timer() <= 0 {
		g.flow.Reset(g.Options().turn())
	}
	g.flow.Start()
	g.notifyLifecycle()
	return true
}

// Join seats a returning player, otherwise adds a player while idle and
// below capacity, otherwise a spectator. A seat whose nickname a member
// still holds is not free.
func (g *Game) Join(u *domain.User) bool {
	if g.IsRunning() {
		if p, ok := g.CheckRejoin(u); ok && !g.seated(p.Name) {
			g.Admit(u, true)
			g.NotifyAct(core.To(u.ID), g.isCurrent(u.Nickname))
			g.Logger().Info().Str("action", "join").Str("user", string(u.ID)).Msg("player rejoined")
			return true
		}
		g.Admit(u, false)
		return true
	}
	g.Admit(u, len(g.PlayerMembers()) < g.Options().MaxPlayers)
	return true
}

func (g *Game) Delete() {
	g.Teardown()
}

func (g *Game) Command(u *domain.User, ev core.Event, _ []byte) bool {
	switch ev {
	case CmdPass:
		return g.pass(u)
	default:
		g.Logger().Warn().Str("action", string(ev)).Msg("unknown game command")
		return false
	}
}

func (g *Game) pass(u *domain.User) bool {
	if g.Status() != domain.StatusRunning || g.Member(u.ID) == nil || !g.isCurrent(u.Nickname) {
		g.Logger().Info().Str("action", "pass").Str("user", string(u.ID)).Msg("rejected")
		return false
	}
	cur, _ := g.CurrentPlayer()
	cur.Passes++
	g.record(cur.Name + " passed")
	g.advance()
	return true
}

func (g *Game) onTick() {
	if g.Status() == domain.StatusRunning {
		g.NotifyTimer(core.Everyone)
	}
}

func (g *Game) onExpire() {
	if g.Status() != domain.StatusRunning {
		return
	}
	cur, ok := g.CurrentPlayer()
	if !ok {
		return
	}
	cur.Timeouts++
	g.record(cur.Name + " ran out of time")
	g.advance()
}

func (g *Game) advance() {
	g.NextCurrentPlayer()
	g.turns++
	if g.turns >= g.Options().Rounds*len(g.State().Players()) {
		g.finish(fmt.Sprintf("game over after %d turns", g.turns))
		return
	}
	g.flow.Stop()
	g.flow.Reset(g.Options().turn())
	g.flow.Start()
	g.syncTurn()
}

func (g *Game) finish(reason string) {
	g.flow.Stop()
	g.flow.Reset(0)
	g.SetStatus(domain.StatusIdle)
	g.record(reason)
	g.notifyLifecycle()
	g.NotifyPlayers(core.Everyone)
	g.notifyAct()
	g.NotifyRestrictions()
	g.Logger().Info().Str("action", "finish").Str("reason", reason).Msg("game finished")
}

func (g *Game) syncTurn() {
	g.NotifyPlayers(core.Everyone)
	g.NotifyTimer(core.Everyone)
	g.notifyAct()
}

func (g *Game) notifyLifecycle() {
	g.NotifyStatus(core.Everyone)
	g.NotifyPause(core.Everyone)
	g.NotifyTimer(core.Everyone)
}

// notifyAct tells every member whether the turn is theirs.
func (g *Game) notifyAct() {
	for _, m := range g.Members() {
		g.NotifyAct(core.To(m.User.ID), g.Status() == domain.StatusRunning && g.isCurrent(m.User.Nickname))
	}
}

func (g *Game) seated(nickname string) bool {
	for _, m := range g.Members() {
		if m.User.Nickname == nickname {
			return true
		}
	}
	return false
}

func (g *Game) isCurrent(nickname string) bool {
	if g.State() == nil {
		return false
	}
	cur, ok := g.CurrentPlayer()
	return ok && cur.Name == nickname
}

func (g *Game) record(text string) {
	g.AppendLog(domain.LogRecord{At: time.Now(), Text: text})
}
