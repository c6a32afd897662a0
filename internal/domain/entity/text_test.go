package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLength(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"two-byte runes", "éé", 2},
		{"japanese", "日本語", 3},
		{"emoji is a surrogate pair", "😀", 2},
		{"mixed", "a😀b", 4},
		{"invalid byte", "a\xffb", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TextLength(tt.in))
		})
	}
}
