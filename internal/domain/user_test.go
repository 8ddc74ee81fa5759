package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		err      error
	}{
		{"valid", "Ann", nil},
		{"empty", "", ErrNicknameEmpty},
		{"max length", strings.Repeat("a", MaxNicknameLen), nil},
		{"too long", strings.Repeat("a", MaxNicknameLen+1), ErrNicknameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.nickname)
			if !errors.Is(err, tt.err) {
				t.Fatalf("NewUser(%q) err = %v, want %v", tt.nickname, err, tt.err)
			}
			if err != nil {
				return
			}
			if u.Nickname != tt.nickname {
				t.Errorf("Nickname = %q, want %q", u.Nickname, tt.nickname)
			}
			if len(u.ID) == 0 || len(u.ID) > MaxUserIDLen {
				t.Errorf("unexpected id %q", u.ID)
			}
		})
	}
}
