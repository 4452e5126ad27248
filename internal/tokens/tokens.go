// Package tokens approximates language-model token counts.
package tokens

import (
	"math"
	"unicode/utf16"
)

// Hangul syllables block (가-힣).
const (
	hangulFirst = 0xAC00
	hangulLast  = 0xD7A3
)

// Estimate counts Hangul syllables, ASCII letters and everything else
// separately and returns ceil(hangul/2 + ascii/4 + other/3). "Other" is
// measured in UTF-16 code units so estimates stay identical to the values
// recorded by earlier clients.
func Estimate(text string) int {
	var hangul, ascii, other int
	for _, r := range text {
		switch {
		case r >= hangulFirst && r <= hangulLast:
			hangul++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			ascii++
		default:
			other += units(r)
		}
	}
	return int(math.Ceil(float64(hangul)/2 + float64(ascii)/4 + float64(other)/3))
}

// Length returns the UTF-16 length of text.
func Length(text string) int {
	n := 0
	for _, r := range text {
		n += units(r)
	}
	return n
}

func units(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	// invalid UTF-8 decodes to U+FFFD, a single unit
	return 1
}
