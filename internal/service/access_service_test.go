package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessService_IsAdmin(t *testing.T) {
	access := NewAccessService([]int64{1, 7})

	tests := []struct {
		name   string
		chatID int64
		want   bool
	}{
		{name: "known admin", chatID: 1, want: true},
		{name: "another known admin", chatID: 7, want: true},
		{name: "regular user", chatID: 99, want: false},
		{name: "zero id", chatID: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.IsAdmin(tt.chatID))
		})
	}
}

func TestAccessService_EmptyList(t *testing.T) {
	access := NewAccessService(nil)
	assert.False(t, access.IsAdmin(1))
}
