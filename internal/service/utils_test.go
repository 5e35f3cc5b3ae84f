package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Austin", "Austin"},
		{"trimmed", "  Austin \n", "Austin"},
		{"collapsed", "San   Luis\tObispo", "San Luis Obispo"},
		{"invalid bytes", "Jo\xffe", "Joe"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanAnswer(tt.in))
		})
	}
}

func TestCleanAnswerTruncatesByRune(t *testing.T) {
	got := cleanAnswer(strings.Repeat("é", maxAnswerRunes+10))
	assert.Equal(t, maxAnswerRunes, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
