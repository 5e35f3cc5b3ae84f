package service

import (
	"strings"
	"unicode/utf8"
)

// maxAnswerRunes bounds a stored free-text answer.
const maxAnswerRunes = 255

// cleanAnswer prepares an answer value for storage: invalid UTF-8 bytes are
// dropped (Postgres rejects them), whitespace runs collapse to one space and
// the result is cut to maxAnswerRunes.
func cleanAnswer(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.Join(strings.Fields(s), " ")

	if utf8.RuneCountInString(s) > maxAnswerRunes {
		s = string([]rune(s)[:maxAnswerRunes])
	}
	return s
}
