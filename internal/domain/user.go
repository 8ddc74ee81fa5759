// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	MaxUserIDLen   = 36
	MaxNicknameLen = 36
)

var (
	ErrNicknameTooLong = errors.New("nickname too long")
	ErrNicknameEmpty   = errors.New("nickname empty")
)

// UserID is also the name of the user's private transport channel.
type UserID string

type User struct {
	ID       UserID `json:"id"`
	Nickname string `json:"nickname"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(nickname string) (*User, error) {
	if err := ValidateNickname(nickname); err != nil {
		return nil, err
	}
	return &User{ID: UserID(uuid.NewString()), Nickname: nickname}, nil
}

func ValidateNickname(nickname string) error {
	if len(nickname) == 0 {
		return ErrNicknameEmpty
	}
	if len(nickname) > MaxNicknameLen {
		return ErrNicknameTooLong
	}
	return nil
}
