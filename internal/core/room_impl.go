package core

import (
	"math/rand/v2"
	"slices"

	"github.com/dkeye/Party/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NicknameMarker is appended to a nickname until it is unique in the room.
const NicknameMarker = ")"

// Deps are the collaborators of a GameRoom. Transport and Flow are required.
type Deps struct {
	Transport Transport
	Flow      Flow
	// PickOwner returns an index in [0, n). Defaults to a uniform pick.
	PickOwner func(n int) int
	// NewKey returns a fresh authority key. Defaults to a random uuid.
	NewKey func() string
}

// GameRoom holds the generic part of a game session: roster, owner
// authority, lifecycle status, options and the broadcast contract.
// Concrete games embed it and pass themselves as the Game.
//
// A GameRoom is not safe for concurrent use.
type GameRoom[P Player, O any] struct {
	game Game[O]

	id           domain.RoomID
	status       domain.Status
	members      []*domain.Member
	owner        *domain.Member
	key          string
	options      O
	failedChecks int
	state        State[P]

	flow      Flow
	transport Transport
	pickOwner func(n int) int
	newKey    func() string

	logger zerolog.Logger
}

func NewGameRoom[P Player, O any](game Game[O], deps Deps) *GameRoom[P, O] {
	if deps.Transport == nil || deps.Flow == nil {
		panic("core: GameRoom needs a Transport and a Flow")
	}
	r := &GameRoom[P, O]{
		game:      game,
		id:        domain.RoomID(uuid.NewString()),
		status:    domain.StatusIdle,
		flow:      deps.Flow,
		transport: deps.Transport,
		pickOwner: deps.PickOwner,
		newKey:    deps.NewKey,
	}
	if r.pickOwner == nil {
		r.pickOwner = rand.IntN
	}
	if r.newKey == nil {
		r.newKey = uuid.NewString
	}
	r.logger = log.With().Str("module", "core.room").Str("room", string(r.id)).Logger()
	r.options = game.DefaultOptions()
	return r
}

func (r *GameRoom[P, O]) ID() domain.RoomID         { return r.id }
func (r *GameRoom[P, O]) Status() domain.Status     { return r.status }
func (r *GameRoom[P, O]) SetStatus(s domain.Status) { r.status = s }
func (r *GameRoom[P, O]) Options() O                { return r.options }
func (r *GameRoom[P, O]) Owner() *domain.Member     { return r.owner }
func (r *GameRoom[P, O]) State() State[P]           { return r.state }
func (r *GameRoom[P, O]) SetState(s State[P])       { r.state = s }
func (r *GameRoom[P, O]) Flow() Flow                { return r.flow }
func (r *GameRoom[P, O]) Logger() *zerolog.Logger   { return &r.logger }
func (r *GameRoom[P, O]) Members() []*domain.Member { return slices.Clone(r.members) }
func (r *GameRoom[P, O]) MemberCount() int          { return len(r.members) }
func (r *GameRoom[P, O]) IsOwner(uid domain.UserID) bool {
	return r.owner != nil && r.owner.User.ID == uid
}

// Member returns the member for uid, or nil.
func (r *GameRoom[P, O]) Member(uid domain.UserID) *domain.Member {
	_, m := r.member(uid)
	return m
}

// PlayerMembers returns the members currently flagged as players, in roster order.
func (r *GameRoom[P, O]) PlayerMembers() []*domain.Member {
	out := make([]*domain.Member, 0, len(r.members))
	for _, m := range r.members {
		if m.IsPlayer {
			out = append(out, m)
		}
	}
	return out
}

func (r *GameRoom[P, O]) Info() RoomInfo {
	return RoomInfo{
		ID:          r.id,
		Status:      r.status,
		MemberCount: len(r.members),
		PlayerCount: len(r.PlayerMembers()),
	}
}

func (r *GameRoom[P, O]) member(uid domain.UserID) (int, *domain.Member) {
	for i, m := range r.members {
		if m.User.ID == uid {
			return i, m
		}
	}
	return -1, nil
}

// Admit adds u to the roster and syncs the new member. It is the
// building block of a concrete Join. The first member becomes the owner.
// Admitting a user twice returns the existing member unchanged.
func (r *GameRoom[P, O]) Admit(u *domain.User, isPlayer bool) *domain.Member {
	if m := r.Member(u.ID); m != nil {
		return m
	}
	requested := u.Nickname
	u.Nickname = r.uniqueNickname(requested, u.ID)

	m := domain.NewMember(u, isPlayer)
	r.members = append(r.members, m)
	r.transport.JoinChannel(string(r.id), u.ID)
	r.logger.Info().Str("action", "admit").Str("user", string(u.ID)).Str("nickname", u.Nickname).Bool("player", isPlayer).Msg("member added")

	to := To(u.ID)
	r.NotifyNickname(u.ID, u.Nickname, u.Nickname != requested)
	if r.owner == nil {
		r.setOwner(m)
	}
	r.NotifyOptions(to)
	r.NotifyStatus(to)
	r.NotifyPause(to)
	r.NotifyTimer(to)
	if r.state != nil {
		r.NotifyLogs(to)
		r.NotifyPlayers(to)
	}
	r.NotifyMembers()
	r.NotifyRestrictions()
	return m
}

// Kick removes u from the roster. If the owner leaves, a new owner is
// picked at random among the remaining members and gets a fresh key.
func (r *GameRoom[P, O]) Kick(u *domain.User) bool {
	i, m := r.member(u.ID)
	if m == nil {
		r.logger.Debug().Str("action", "kick").Str("user", string(u.ID)).Msg("not a member")
		return false
	}
	r.members = slices.Delete(r.members, i, i+1)
	r.transport.LeaveChannel(string(r.id), u.ID)

	if len(r.members) == 0 {
		r.owner = nil
		r.key = ""
		r.logger.Info().Str("action", "kick").Str("user", string(u.ID)).Msg("last member removed")
		return true
	}

	if r.owner == m {
		r.setOwner(r.members[r.pickOwner(len(r.members))])
	}
	r.NotifyRestrictions()
	r.NotifyMembers()
	r.logger.Info().Str("action", "kick").Str("user", string(u.ID)).Str("owner", string(r.owner.User.ID)).Msg("member removed")
	return true
}

// ChangeNickname renames u, suffixing NicknameMarker until the name is
// unique. It returns the assigned nickname, or "" when rejected.
func (r *GameRoom[P, O]) ChangeNickname(u *domain.User, nickname string) string {
	if r.game.IsRunning() {
		r.logger.Info().Str("action", "change_nickname").Str("user", string(u.ID)).Msg("rejected: game is running")
		return ""
	}
	m := r.Member(u.ID)
	if m == nil || nickname == "" {
		r.logger.Info().Str("action", "change_nickname").Str("user", string(u.ID)).Msg("rejected: not a member or empty nickname")
		return ""
	}
	assigned := r.uniqueNickname(nickname, u.ID)
	m.User.Nickname = assigned

	r.NotifyNickname(u.ID, assigned, assigned != nickname)
	r.NotifyMembers()
	r.logger.Info().Str("action", "change_nickname").Str("user", string(u.ID)).Str("nickname", assigned).Msg("nickname changed")
	return assigned
}

// Become switches u between player and spectator.
func (r *GameRoom[P, O]) Become(u *domain.User, wantsPlayer bool) bool {
	if r.game.IsRunning() {
		r.logger.Info().Str("action", "become").Str("user", string(u.ID)).Msg("rejected: game is running")
		return false
	}
	m := r.Member(u.ID)
	if m == nil {
		r.logger.Info().Str("action", "become").Str("user", string(u.ID)).Msg("rejected: not a member")
		return false
	}
	m.IsPlayer = wantsPlayer

	r.NotifyMembers()
	r.NotifyRestrictions()
	r.logger.Info().Str("action", "become").Str("user", string(u.ID)).Bool("player", wantsPlayer).Msg("role changed")
	return true
}

// Teardown stops the flow and drops every member from the room channel.
// Concrete games call it from Delete.
func (r *GameRoom[P, O]) Teardown() {
	r.flow.Stop()
	for _, m := range r.members {
		r.transport.LeaveChannel(string(r.id), m.User.ID)
	}
	r.members = nil
	r.owner = nil
	r.key = ""
	r.status = domain.StatusIdle
	r.logger.Info().Str("action", "delete").Msg("room torn down")
}

func (r *GameRoom[P, O]) setOwner(m *domain.Member) {
	r.owner = m
	r.key = r.newKey()
	r.NotifyKey()
	r.logger.Info().Str("owner", string(m.User.ID)).Msg("owner assigned")
}

func (r *GameRoom[P, O]) uniqueNickname(nickname string, self domain.UserID) string {
	for r.nicknameTaken(nickname, self) {
		nickname += NicknameMarker
	}
	return nickname
}

func (r *GameRoom[P, O]) nicknameTaken(nickname string, self domain.UserID) bool {
	for _, m := range r.members {
		if m.User.ID != self && m.User.Nickname == nickname {
			return true
		}
	}
	return false
}
