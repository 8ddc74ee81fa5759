package app

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dkeye/Party/internal/core"
)

type fakeConn struct {
	frames [][]byte
	full   bool
	closed bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	if c.full {
		return errors.New("backpressure")
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() { c.closed = true }

func decode(t *testing.T, frame []byte) (core.Event, json.RawMessage) {
	t.Helper()
	var env struct {
		Type core.Event      `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("bad frame %s: %v", frame, err)
	}
	return env.Type, env.Data
}

func TestHubEmitToChannel(t *testing.T) {
	reg := NewRegistry()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	reg.BindSignal("a", a, nil)
	reg.BindSignal("b", b, nil)
	reg.BindSignal("c", c, nil)
	hub := NewHub(reg, SimplePolicy{})
	hub.JoinChannel("room", "a")
	hub.JoinChannel("room", "b")

	hub.Emit("room", core.EvStatus, "idle")

	for name, conn := range map[string]*fakeConn{"a": a, "b": b} {
		if len(conn.frames) != 1 {
			t.Fatalf("%s got %d frames, want 1", name, len(conn.frames))
		}
		ev, data := decode(t, conn.frames[0])
		if ev != core.EvStatus || string(data) != `"idle"` {
			t.Errorf("%s got %s %s", name, ev, data)
		}
	}
	if len(c.frames) != 0 {
		t.Error("non-subscriber received a room frame")
	}
}

func TestHubSendToUser(t *testing.T) {
	reg := NewRegistry()
	a, b := &fakeConn{}, &fakeConn{}
	reg.BindSignal("a", a, nil)
	reg.BindSignal("b", b, nil)
	hub := NewHub(reg, nil)

	hub.Send("b", core.EvKey, "secret")

	if len(a.frames) != 0 || len(b.frames) != 1 {
		t.Fatalf("frames a=%d b=%d, want 0 and 1", len(a.frames), len(b.frames))
	}
}

func TestHubEmitWithoutSubscribers(t *testing.T) {
	reg := NewRegistry()
	named := &fakeConn{}
	reg.BindSignal("room", named, nil)
	hub := NewHub(reg, nil)

	hub.Emit("room", core.EvStatus, "idle")

	if len(named.frames) != 0 {
		t.Error("room emit reached the session named after the room")
	}
}

func TestHubLeaveChannel(t *testing.T) {
	hub := NewHub(NewRegistry(), nil)
	hub.JoinChannel("room", "a")
	hub.JoinChannel("room", "b")
	hub.LeaveChannel("room", "a")
	if got := hub.Subscribers("room"); len(got) != 1 || got[0] != "b" {
		t.Errorf("subscribers = %v, want [b]", got)
	}
	hub.LeaveChannel("room", "b")
	if got := hub.Subscribers("room"); len(got) != 0 {
		t.Errorf("subscribers = %v, want none", got)
	}
}

func TestHubLossyPolicyKeepsConnection(t *testing.T) {
	reg := NewRegistry()
	slow := &fakeConn{full: true}
	reg.BindSignal("a", slow, nil)
	hub := NewHub(reg, LossyPolicy{})

	hub.Send("a", core.EvPong, nil)

	if slow.closed {
		t.Error("lossy policy closed the connection")
	}
}

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name string
		want Policy
		ok   bool
	}{
		{"", SimplePolicy{}, true},
		{"disconnect", SimplePolicy{}, true},
		{"drop", LossyPolicy{}, true},
		{"kick", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PolicyByName(tt.name)
			if (err == nil) != tt.ok || got != tt.want {
				t.Errorf("PolicyByName(%q) = %v, %v", tt.name, got, err)
			}
		})
	}
}

func TestHubBackpressureDisconnects(t *testing.T) {
	reg := NewRegistry()
	slow := &fakeConn{full: true}
	reg.BindSignal("a", slow, nil)
	hub := NewHub(reg, SimplePolicy{})

	hub.Send("a", core.EvPong, nil)

	if !slow.closed {
		t.Error("slow consumer was not disconnected")
	}
}
