package core

import (
	"crypto/subtle"
	"encoding/json"

	"github.com/dkeye/Party/internal/domain"
)

// CheckKey reports whether key is the current authority key.
// Concrete Start/Stop/Pause/Resume must call it before anything else.
func (r *GameRoom[P, O]) CheckKey(key string) bool {
	if r.key == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(r.key), []byte(key)) == 1
}

// IsOnPause is true while the game is logically active but its timer is halted.
func (r *GameRoom[P, O]) IsOnPause() bool {
	return r.game.IsRunning() && r.flow.NotRunning()
}

// CheckActivity forces an abandoned running room back to idle and reports
// whether the room still has members.
func (r *GameRoom[P, O]) CheckActivity() bool {
	if len(r.members) == 0 && r.game.IsRunning() {
		r.status = domain.StatusIdle
		r.flow.Stop()
		r.logger.Info().Str("action", "check_activity").Msg("abandoned game reset to idle")
	}
	return len(r.members) > 0
}

func (r *GameRoom[P, O]) IncreaseFailedChecksCount() int {
	r.failedChecks++
	return r.failedChecks
}

// SetOptions applies opts through the game's ApplyOptions.
func (r *GameRoom[P, O]) SetOptions(opts O, key string) bool {
	if r.game.IsRunning() {
		r.logger.Info().Str("action", "set_options").Msg("rejected: game is running")
		return false
	}
	if !r.CheckKey(key) {
		r.logger.Info().Str("action", "set_options").Msg("rejected: wrong key")
		return false
	}
	r.options = r.game.ApplyOptions(r.options, opts)

	r.NotifyOptions(Everyone)
	r.NotifyRestrictions()
	r.logger.Info().Str("action", "set_options").Msg("options changed")
	return true
}

// SetOptionsJSON decodes raw over a copy of the current options, so a
// partial record only changes the fields it names.
func (r *GameRoom[P, O]) SetOptionsJSON(raw []byte, key string) bool {
	opts := r.options
	if err := json.Unmarshal(raw, &opts); err != nil {
		r.logger.Info().Err(err).Str("action", "set_options").Msg("rejected: bad options")
		return false
	}
	return r.SetOptions(opts, key)
}
