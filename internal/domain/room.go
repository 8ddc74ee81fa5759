package domain

import "time"

type RoomID string

// Status is the room lifecycle value. Games may declare their own
// values on top of the base ones below.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusStopped Status = "stopped"
)

func (s Status) String() string { return string(s) }

// LogRecord is one entry of a game's append-only log.
type LogRecord struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}
