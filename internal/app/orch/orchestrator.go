package orch

import (
	"context"
	"time"

	"github.com/dkeye/Party/internal/app"
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator routes session commands to rooms. Every room access goes
// through Rooms.Do, which serializes it with the room's other work.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
}

// withRoom runs fn on the room sid is in and reports whether it ran.
func (o *Orchestrator) withRoom(sid core.SessionID, fn func(core.Room, *domain.User)) bool {
	roomID, ok := o.Registry.RoomOf(sid)
	if !ok {
		return false
	}
	user := o.Registry.GetOrCreateUser(sid)
	return o.Rooms.Do(roomID, func(r core.Room) { fn(r, user) })
}

func (o *Orchestrator) Start(sid core.SessionID, key string) (ok bool) {
	o.withRoom(sid, func(r core.Room, _ *domain.User) { ok = r.Start(key) })
	return ok
}

func (o *Orchestrator) Stop(sid core.SessionID, key string) (ok bool) {
	o.withRoom(sid, func(r core.Room, _ *domain.User) { ok = r.Stop(key) })
	return ok
}

func (o *Orchestrator) Pause(sid core.SessionID, key string) (ok bool) {
	o.withRoom(sid, func(r core.Room, _ *domain.User) { ok = r.Pause(key) })
	return ok
}

func (o *Orchestrator) Resume(sid core.SessionID, key string) (ok bool) {
	o.withRoom(sid, func(r core.Room, _ *domain.User) { ok = r.Resume(key) })
	return ok
}

func (o *Orchestrator) SetOptions(sid core.SessionID, raw []byte, key string) (ok bool) {
	o.withRoom(sid, func(r core.Room, _ *domain.User) { ok = r.SetOptionsJSON(raw, key) })
	return ok
}

func (o *Orchestrator) RequestOptions(sid core.SessionID) bool {
	return o.withRoom(sid, func(r core.Room, u *domain.User) { r.NotifyOptions(core.To(u.ID)) })
}

func (o *Orchestrator) RequestTimer(sid core.SessionID) bool {
	return o.withRoom(sid, func(r core.Room, u *domain.User) { r.NotifyTimer(core.To(u.ID)) })
}

// Command forwards a game-specific event.
func (o *Orchestrator) Command(sid core.SessionID, ev core.Event, data []byte) (ok bool) {
	o.withRoom(sid, func(r core.Room, u *domain.User) { ok = r.Command(u, ev, data) })
	return ok
}

// RunSweeper periodically checks room liveness until ctx is done.
func (o *Orchestrator) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, id := range o.Rooms.Sweep() {
				o.Registry.ClearRoom(id)
				log.Info().Str("module", "orch").Str("room", string(id)).Msg("inactive room removed")
			}
		}
	}
}
