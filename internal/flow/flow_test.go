package flow

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlowExpires(t *testing.T) {
	var ticks atomic.Int32
	expired := make(chan struct{})
	f := New(context.Background(), 5*time.Millisecond, nil, Hooks{
		OnTick:   func() { ticks.Add(1) },
		OnExpire: func() { close(expired) },
	})
	f.Reset(25 * time.Millisecond)

	if !f.NotRunning() {
		t.Fatal("flow running before Start")
	}
	f.Start()
	if f.NotRunning() {
		t.Fatal("flow not running after Start")
	}

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("flow did not expire")
	}
	if got := ticks.Load(); got != 5 {
		t.Errorf("ticks = %d, want 5", got)
	}
	if f.Timer() != 0 || !f.NotRunning() {
		t.Errorf("expired flow: timer %v, running %v", f.Timer(), !f.NotRunning())
	}
}

func TestFlowStopHaltsTicks(t *testing.T) {
	var ticks atomic.Int32
	f := New(context.Background(), 2*time.Millisecond, nil, Hooks{OnTick: func() { ticks.Add(1) }})
	f.Reset(time.Hour)
	f.Start()
	time.Sleep(20 * time.Millisecond)
	f.Stop()
	time.Sleep(5 * time.Millisecond)

	remaining := f.Timer()
	seen := ticks.Load()
	time.Sleep(20 * time.Millisecond)

	if got := ticks.Load(); got != seen {
		t.Errorf("ticks after Stop: %d, want %d", got, seen)
	}
	if f.Timer() != remaining {
		t.Errorf("timer moved after Stop: %v -> %v", remaining, f.Timer())
	}
	if remaining >= time.Hour {
		t.Error("timer did not count down while running")
	}
	if !f.NotRunning() {
		t.Error("flow running after Stop")
	}
}

func TestFlowStartWithoutBudget(t *testing.T) {
	f := New(context.Background(), time.Millisecond, nil, Hooks{})
	f.Start()
	if !f.NotRunning() {
		t.Error("flow started with an empty budget")
	}
}

func TestFlowRunsHooksThroughExec(t *testing.T) {
	var execs atomic.Int32
	done := make(chan struct{})
	exec := func(fn func()) {
		execs.Add(1)
		fn()
	}
	f := New(context.Background(), time.Millisecond, exec, Hooks{OnExpire: func() { close(done) }})
	f.Reset(3 * time.Millisecond)
	f.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("flow did not expire")
	}
	if execs.Load() != 3 {
		t.Errorf("exec calls = %d, want 3", execs.Load())
	}
}

func TestFlowParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32
	f := New(ctx, time.Millisecond, nil, Hooks{OnTick: func() { ticks.Add(1) }})
	f.Reset(time.Hour)
	f.Start()
	cancel()
	time.Sleep(10 * time.Millisecond)
	seen := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	if ticks.Load() != seen {
		t.Error("flow kept ticking after parent cancel")
	}
}

func TestFlowDropsExpiryOfEarlierRun(t *testing.T) {
	queued := make(chan func(), 1)
	var expiries atomic.Int32
	f := New(context.Background(), time.Millisecond, queue(queued), Hooks{
		OnExpire: func() { expiries.Add(1) },
	})
	f.Reset(time.Millisecond)
	f.Start()

	var stale func()
	select {
	case stale = <-queued:
	case <-time.After(2 * time.Second):
		t.Fatal("flow did not expire")
	}
	f.Reset(time.Hour)
	f.Start()
	stale()

	if expiries.Load() != 0 {
		t.Error("expiry of the first run fired during the second")
	}
	f.Stop()
}

func TestFlowDeliversExpiryAfterStop(t *testing.T) {
	queued := make(chan func(), 1)
	var expiries atomic.Int32
	f := New(context.Background(), time.Millisecond, queue(queued), Hooks{
		OnExpire: func() { expiries.Add(1) },
	})
	f.Reset(time.Millisecond)
	f.Start()

	var fn func()
	select {
	case fn = <-queued:
	case <-time.After(2 * time.Second):
		t.Fatal("flow did not expire")
	}
	f.Stop()
	fn()

	if expiries.Load() != 1 {
		t.Errorf("expiries = %d, want 1", expiries.Load())
	}
}

// queue parks callbacks instead of running them, dropping any beyond the first.
func queue(ch chan func()) func(func()) {
	return func(fn func()) {
		select {
		case ch <- fn:
		default:
		}
	}
}
