package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminChatIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{name: "plain list", raw: "1,2,3", want: []int64{1, 2, 3}},
		{name: "spaces around entries", raw: " 1 , 42 ", want: []int64{1, 42}},
		{name: "invalid entries dropped", raw: "1,abc,3,", want: []int64{1, 3}},
		{name: "empty value", raw: "", want: nil},
		{name: "negative ids allowed", raw: "-100,5", want: []int64{-100, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Config{AdminIDs: tt.raw}
			assert.Equal(t, tt.want, conf.AdminChatIDs())
		})
	}
}
