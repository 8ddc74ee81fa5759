// Package flow implements a pausable countdown that drives paced game phases.
package flow

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Hooks are invoked through the exec function of the Flow, so they run
// serialized with the owning room.
type Hooks struct {
	OnTick   func()
	OnExpire func()
}

// Flow counts a time budget down while running. Stop keeps the remaining
// time, Start continues from it.
type Flow struct {
	parent context.Context
	tick   time.Duration
	exec   func(func())
	hooks  Hooks

	mu        sync.Mutex
	remaining time.Duration
	running   bool
	cancel    context.CancelFunc
	// gen identifies the current run; callbacks of older runs are dropped.
	gen uint64
}

func New(parent context.Context, tick time.Duration, exec func(func()), hooks Hooks) *Flow {
	if exec == nil {
		exec = func(fn func()) { fn() }
	}
	return &Flow{parent: parent, tick: tick, exec: exec, hooks: hooks}
}

// Reset sets the remaining time without changing the running state.
func (f *Flow) Reset(d time.Duration) {
	f.mu.Lock()
	f.remaining = d
	f.mu.Unlock()
}

func (f *Flow) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running || f.remaining <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(f.parent)
	f.cancel = cancel
	f.running = true
	f.gen++
	go f.loop(ctx, f.gen)
}

func (f *Flow) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.halt()
}

func (f *Flow) NotRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.running
}

// Timer returns the remaining time.
func (f *Flow) Timer() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remaining
}

func (f *Flow) halt() {
	if !f.running {
		return
	}
	f.cancel()
	f.running = false
}

func (f *Flow) loop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, ok := f.advance(ctx)
			if !ok {
				return
			}
			f.exec(func() {
				if !f.current(gen, expired) {
					return
				}
				if f.hooks.OnTick != nil {
					f.hooks.OnTick()
				}
				if expired && f.hooks.OnExpire != nil {
					f.hooks.OnExpire()
				}
			})
			if expired {
				log.Debug().Str("module", "flow").Msg("timer expired")
				return
			}
		}
	}
}

// current reports whether a callback of run gen is still due. A tick
// needs the run to be live; an expiry needs no later Start.
func (f *Flow) current(gen uint64, expired bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return false
	}
	return expired || f.running
}

func (f *Flow) advance(ctx context.Context) (expired, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ctx.Err() != nil {
		return false, false
	}
	f.remaining -= f.tick
	if f.remaining > 0 {
		return false, true
	}
	f.remaining = 0
	f.halt()
	return true, true
}
