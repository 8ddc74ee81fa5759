package core

// Event is a wire name. The values are part of the client contract.
type Event string

// Inbound commands.
const (
	CmdCreateRoom      Event = "create_room"
	CmdCheckRoom       Event = "check_room"
	CmdJoinRoom        Event = "join_room"
	CmdLeaveRoom       Event = "leave_room"
	CmdStart           Event = "start"
	CmdStop            Event = "stop"
	CmdPause           Event = "pause"
	CmdResume          Event = "resume"
	CmdChangeNickname  Event = "change_nickname"
	CmdBecomePlayer    Event = "become_player"
	CmdBecomeSpectator Event = "become_spectator"
	CmdRequestOptions  Event = "request_options"
	CmdSetOptions      Event = "set_options"
	CmdRequestTimer    Event = "request_timer"
	CmdPing            Event = "ping"
)

// Outbound notifications.
const (
	EvMembers      Event = "members"
	EvLogs         Event = "logs"
	EvLogRecord    Event = "log_record"
	EvPlayers      Event = "players"
	EvTimer        Event = "timer"
	EvStatus       Event = "status"
	EvAct          Event = "act"
	EvPause        Event = "pause"
	EvRestrictions Event = "restrictions"
	EvKey          Event = "key"
	EvNickname     Event = "nickname"
	EvOptions      Event = "options"
)

// Replies to room-level commands.
const (
	EvRoomCreated Event = "room_created"
	EvRoomChecked Event = "room_checked"
	EvJoined      Event = "joined"
	EvLeft        Event = "left"
	EvPong        Event = "pong"
	EvError       Event = "error"
)
