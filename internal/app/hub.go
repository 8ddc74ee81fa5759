package app

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
	"github.com/rs/zerolog/log"
)

// Envelope is the wire shape of every outbound frame.
type Envelope struct {
	Type core.Event `json:"type"`
	Data any        `json:"data,omitempty"`
}

// Hub implements core.Transport over the registry's live connections.
type Hub struct {
	registry *Registry
	policy   Policy

	mu       sync.RWMutex
	channels map[string]map[domain.UserID]struct{}
}

func NewHub(registry *Registry, policy Policy) *Hub {
	return &Hub{
		registry: registry,
		policy:   policy,
		channels: make(map[string]map[domain.UserID]struct{}),
	}
}

func (h *Hub) JoinChannel(channel string, uid domain.UserID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[domain.UserID]struct{})
		h.channels[channel] = subs
	}
	subs[uid] = struct{}{}
}

func (h *Hub) LeaveChannel(channel string, uid domain.UserID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(subs, uid)
	if len(subs) == 0 {
		delete(h.channels, channel)
	}
}

// Subscribers returns the user ids of a channel.
func (h *Hub) Subscribers(channel string) []domain.UserID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.UserID, 0, len(h.channels[channel]))
	for uid := range h.channels[channel] {
		out = append(out, uid)
	}
	return out
}

func (h *Hub) Emit(channel string, event core.Event, payload any) {
	h.publish(channel, h.Subscribers(channel), event, payload)
}

func (h *Hub) Send(uid domain.UserID, event core.Event, payload any) {
	h.publish(string(uid), []domain.UserID{uid}, event, payload)
}

func (h *Hub) publish(label string, targets []domain.UserID, event core.Event, payload any) {
	if len(targets) == 0 {
		return
	}
	frame, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("module", "app.hub").Str("event", string(event)).Msg("marshal")
		return
	}
	res := core.PublishResult{}
	for _, uid := range targets {
		sess, ok := h.registry.GetSession(core.SessionID(uid))
		if !ok || sess.Signal() == nil {
			continue
		}
		if err := sess.Signal().TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, sess)
			h.onBackPressure(uid, sess)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "app.hub").Str("target", label).Str("event", string(event)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("publish")
}

func (h *Hub) onBackPressure(uid domain.UserID, sess core.UserSession) {
	if h.policy == nil {
		return
	}
	switch h.policy.OnBackPressure(uid, sess) {
	case Disconnect:
		log.Warn().Str("module", "app.hub").Str("user", string(uid)).Msg("slow consumer disconnected")
		sess.Signal().Close()
	case DropFrame:
		log.Warn().Str("module", "app.hub").Str("user", string(uid)).Msg("frame dropped for slow consumer")
	}
}
