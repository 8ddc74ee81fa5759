package core

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/dkeye/Party/internal/core Transport,Flow

import (
	"time"

	"github.com/dkeye/Party/internal/domain"
)

// Player is a seat inside a game's State. Seats are matched to members
// by nickname.
type Player interface {
	Nickname() string
}

// State is the per-game snapshot of the ordered players and the log.
type State[P Player] interface {
	Players() []P
	SetPlayers([]P)
	Log() []domain.LogRecord
	AppendLog(domain.LogRecord)
}

// Flow owns the running/paused timer of a game.
type Flow interface {
	Start()
	Stop()
	NotRunning() bool
	Timer() time.Duration
}

// Transport delivers notifications. Channels are room ids.
// The room never inspects delivery errors.
type Transport interface {
	JoinChannel(channel string, uid domain.UserID)
	LeaveChannel(channel string, uid domain.UserID)
	// Emit delivers to every subscriber of a room channel.
	Emit(channel string, event Event, payload any)
	// Send delivers to one user.
	Send(uid domain.UserID, event Event, payload any)
}

// Game is what a concrete game supplies on top of a GameRoom.
type Game[O any] interface {
	DefaultOptions() O
	// ApplyOptions validates requested against current and returns the result.
	ApplyOptions(current, requested O) O
	PlayersPayload() any
	IsRunning() bool
	RestrictionsToStart() []string

	Start(key string) bool
	Stop(key string) bool
	Pause(key string) bool
	Resume(key string) bool
	Join(u *domain.User) bool
	Delete()
}

// Room is the type-erased view the app layer works with.
// Implementations are not safe for concurrent use; callers serialize.
type Room interface {
	ID() domain.RoomID
	Info() RoomInfo

	Join(u *domain.User) bool
	Kick(u *domain.User) bool
	Start(key string) bool
	Stop(key string) bool
	Pause(key string) bool
	Resume(key string) bool
	ChangeNickname(u *domain.User, nickname string) string
	Become(u *domain.User, wantsPlayer bool) bool
	SetOptionsJSON(raw []byte, key string) bool
	// Command handles a game-specific inbound event.
	Command(u *domain.User, ev Event, data []byte) bool

	NotifyOptions(to Target)
	NotifyTimer(to Target)

	CheckActivity() bool
	IncreaseFailedChecksCount() int
	Delete()
}

// MemberDTO is the roster entry sent to clients (no transport fields).
type MemberDTO struct {
	IsPlayer bool   `json:"is_player"`
	Nickname string `json:"nickname"`
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	Game        string        `json:"game,omitempty"`
	Status      domain.Status `json:"status"`
	MemberCount int           `json:"member_count"`
	PlayerCount int           `json:"player_count"`
}

// RoomManager owns the rooms and serializes access to each of them.
type RoomManager interface {
	Create(game string) (domain.RoomID, error)
	Exists(id domain.RoomID) bool
	// Do runs fn with exclusive access to the room. It reports false
	// when the room does not exist.
	Do(id domain.RoomID, fn func(Room)) bool
	List() []RoomInfo
	Delete(id domain.RoomID)
	// Sweep runs the liveness check on every room and returns the ids
	// of the rooms it deleted.
	Sweep() []domain.RoomID
}
