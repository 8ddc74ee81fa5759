package app

import (
	"fmt"

	"github.com/dkeye/Party/internal/core"
	"github.com/dkeye/Party/internal/domain"
)

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	Disconnect
)

type Policy interface {
	OnBackPressure(uid domain.UserID, sess core.UserSession) BackpressureAction
}

// SimplePolicy drops clients that cannot keep up. The read pump of the
// closed connection then removes the user from its room.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.UserID, core.UserSession) BackpressureAction {
	return Disconnect
}

// LossyPolicy keeps slow clients connected and loses the frames they
// could not take. Clients resync with request_options and request_timer.
type LossyPolicy struct{}

func (LossyPolicy) OnBackPressure(domain.UserID, core.UserSession) BackpressureAction {
	return DropFrame
}

// PolicyByName maps the backpressure config value to a Policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "disconnect":
		return SimplePolicy{}, nil
	case "drop":
		return LossyPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
