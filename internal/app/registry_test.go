package app

import (
	"context"
	"testing"
)

func TestRegistryRebindCancelsPrevious(t *testing.T) {
	reg := NewRegistry()
	ctx1, cancel1 := context.WithCancel(context.Background())
	first := &fakeConn{}
	reg.BindSignal("s", first, cancel1)
	reg.UpdateRoom("s", "room")

	second := &fakeConn{}
	_, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	sess := reg.BindSignal("s", second, cancel2)

	if ctx1.Err() == nil {
		t.Error("previous connection was not cancelled")
	}
	if sess.Signal() != second {
		t.Error("session does not use the new connection")
	}
	if room, ok := reg.RoomOf("s"); !ok || room != "room" {
		t.Errorf("room association lost on rebind: %q", room)
	}
	if reg.Unbind("s", first) {
		t.Error("stale connection unbound the session")
	}
	if !reg.Unbind("s", second) {
		t.Error("current connection could not unbind")
	}
}

func TestRegistryUsers(t *testing.T) {
	reg := NewRegistry()
	u := reg.GetOrCreateUser("s")
	if u.Nickname != DefaultNickname || string(u.ID) != "s" {
		t.Errorf("new user = %+v", u)
	}
	if reg.GetOrCreateUser("s") != u {
		t.Error("user not reused")
	}
}

func TestRegistryClearRoom(t *testing.T) {
	reg := NewRegistry()
	reg.BindSignal("a", &fakeConn{}, nil)
	reg.BindSignal("b", &fakeConn{}, nil)
	reg.UpdateRoom("a", "r1")
	reg.UpdateRoom("b", "r2")

	reg.ClearRoom("r1")

	if _, ok := reg.RoomOf("a"); ok {
		t.Error("association with a deleted room kept")
	}
	if _, ok := reg.RoomOf("b"); !ok {
		t.Error("unrelated association cleared")
	}
}
