package core

import "github.com/dkeye/Party/internal/domain"

// BasicState is a plain State for games without extra snapshot data.
type BasicState[P Player] struct {
	players []P
	log     []domain.LogRecord
}

func NewBasicState[P Player](players []P) *BasicState[P] {
	return &BasicState[P]{players: players}
}

func (s *BasicState[P]) Players() []P                   { return s.players }
func (s *BasicState[P]) SetPlayers(players []P)         { s.players = players }
func (s *BasicState[P]) Log() []domain.LogRecord        { return s.log }
func (s *BasicState[P]) AppendLog(rec domain.LogRecord) { s.log = append(s.log, rec) }
