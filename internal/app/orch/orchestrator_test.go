package orch

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dkeye/Party/internal/app"
	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/dkeye/Party/internal/games/turns"
)

type conn struct {
	frames []core.Frame
}

func (c *conn) TrySend(f core.Frame) error {
	c.frames = append(c.frames, f)
	return nil
}

func (c *conn) Close() {}

// last returns the data of the latest frame of type ev.
func (c *conn) last(ev core.Event) (json.RawMessage, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		var env struct {
			Type core.Event      `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(c.frames[i], &env); err == nil && env.Type == ev {
			return env.Data, true
		}
	}
	return nil, false
}

func (c *conn) key(t *testing.T) string {
	t.Helper()
	raw, ok := c.last(core.EvKey)
	if !ok {
		t.Fatal("no key received")
	}
	var key string
	if err := json.Unmarshal(raw, &key); err != nil {
		t.Fatal(err)
	}
	return key
}

func setup(t *testing.T) (*Orchestrator, *app.Hub) {
	t.Helper()
	reg := app.NewRegistry()
	hub := app.NewHub(reg, app.SimplePolicy{})
	rooms := app.NewRoomManager(context.Background(), hub, 1, map[string]app.Factory{
		turns.Name: func(ctx context.Context, tr core.Transport, exec func(func())) core.Room {
			return turns.New(ctx, tr, exec, time.Hour)
		},
	})
	return &Orchestrator{Registry: reg, Rooms: rooms}, hub
}

func connect(o *Orchestrator, sid core.SessionID) *conn {
	c := &conn{}
	o.Registry.BindSignal(sid, c, nil)
	return c
}

func TestJoinStartLeave(t *testing.T) {
	o, hub := setup(t)
	ca := connect(o, "a")
	cb := connect(o, "b")

	id, err := o.CreateRoom(turns.Name)
	if err != nil {
		t.Fatal(err)
	}
	if !o.CheckRoom(id) || o.CheckRoom("missing") {
		t.Fatal("CheckRoom mismatch")
	}
	if !o.Join("a", id, "Ann") || !o.Join("b", id, "Ann") {
		t.Fatal("join failed")
	}
	raw, _ := cb.last(core.EvNickname)
	var nick core.NicknamePayload
	_ = json.Unmarshal(raw, &nick)
	if nick.Nickname != "Ann)" || !nick.Forced {
		t.Errorf("second nickname = %+v", nick)
	}
	if len(hub.Subscribers(string(id))) != 2 {
		t.Error("members not subscribed to the room channel")
	}

	key := ca.key(t)
	if o.Start("b", key+"x") {
		t.Error("started with a wrong key")
	}
	if !o.Start("a", key) {
		t.Fatal("owner could not start")
	}
	if !o.Command("a", turns.CmdPass, nil) {
		t.Error("current player could not pass")
	}
	if !o.RequestTimer("b") {
		t.Error("timer request failed")
	}

	if !o.Leave("a") {
		t.Fatal("leave failed")
	}
	newKey := cb.key(t)
	if newKey == key {
		t.Error("new owner got the old key")
	}
	if !o.Pause("b", newKey) {
		t.Error("new owner could not pause")
	}
	if _, ok := o.Registry.RoomOf("a"); ok {
		t.Error("registry still maps the user that left")
	}
}

func TestJoinMovesBetweenRooms(t *testing.T) {
	o, hub := setup(t)
	connect(o, "a")
	r1, _ := o.CreateRoom(turns.Name)
	r2, _ := o.CreateRoom(turns.Name)

	o.Join("a", r1, "Ann")
	o.Join("a", r2, "")

	if len(hub.Subscribers(string(r1))) != 0 {
		t.Error("user still in the first room")
	}
	if room, _ := o.Registry.RoomOf("a"); room != r2 {
		t.Errorf("room = %s, want %s", room, r2)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	o, _ := setup(t)
	connect(o, "a")
	if o.Join("a", domain.RoomID("missing"), "Ann") {
		t.Error("joined a missing room")
	}
	if o.Start("a", "k") || o.RequestOptions("a") {
		t.Error("room command without a room succeeded")
	}
}

func TestChangeNicknameOutsideRoom(t *testing.T) {
	o, _ := setup(t)
	connect(o, "a")
	if got := o.ChangeNickname("a", "Zed"); got != "Zed" {
		t.Errorf("nickname = %q", got)
	}
	if o.Registry.GetOrCreateUser("a").Nickname != "Zed" {
		t.Error("registry nickname not updated")
	}
}

func TestBecomeAndOptions(t *testing.T) {
	o, _ := setup(t)
	ca := connect(o, "a")
	id, _ := o.CreateRoom(turns.Name)
	o.Join("a", id, "Ann")

	if !o.Become("a", false) {
		t.Error("become spectator failed")
	}
	if !o.SetOptions("a", []byte(`{"rounds":5}`), ca.key(t)) {
		t.Fatal("set options failed")
	}
	if !o.RequestOptions("a") {
		t.Fatal("request options failed")
	}
	raw, _ := ca.last(core.EvOptions)
	var opts turns.Options
	_ = json.Unmarshal(raw, &opts)
	if opts.Rounds != 5 || opts.MaxPlayers != 8 {
		t.Errorf("options = %+v", opts)
	}
}

func TestDisconnectAndSweep(t *testing.T) {
	o, _ := setup(t)
	ca := connect(o, "a")
	id, _ := o.CreateRoom(turns.Name)
	o.Join("a", id, "Ann")

	o.OnDisconnect("a", ca)
	o.Rooms.Do(id, func(r core.Room) {
		if r.Info().MemberCount != 0 {
			t.Error("disconnected user still a member")
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- o.RunSweeper(ctx, time.Millisecond) }()
	deadline := time.After(2 * time.Second)
	for o.CheckRoom(id) {
		select {
		case <-deadline:
			t.Fatal("empty room was never swept")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("sweeper returned %v", err)
	}
}

func TestEvictRoom(t *testing.T) {
	o, _ := setup(t)
	connect(o, "a")
	id, _ := o.CreateRoom(turns.Name)
	o.Join("a", id, "Ann")

	o.EvictRoom(id)

	if o.CheckRoom(id) {
		t.Error("evicted room exists")
	}
	if _, ok := o.Registry.RoomOf("a"); ok {
		t.Error("registry still maps the evicted room")
	}
}
