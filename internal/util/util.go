// internal/util/util.go
// Package util holds small text helpers for chart labels and placeholder images.
package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes shortens text to at most maxRunes runes, marking the cut with
// an ellipsis. A non-positive maxRunes leaves text alone.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// WrapLines breaks text into lines of at most width runes, splitting on spaces
// and cutting words that are longer than a line. Blank input lines are kept.
func WrapLines(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		var cur []rune
		for _, w := range words {
			r := []rune(w)
			switch {
			case len(cur) == 0:
			case len(cur)+1+len(r) <= width:
				cur = append(cur, ' ')
			default:
				out = append(out, string(cur))
				cur = cur[:0]
			}
			for len(cur)+len(r) > width {
				n := width - len(cur)
				out = append(out, string(append(cur, r[:n]...)))
				cur, r = cur[:0], r[n:]
			}
			cur = append(cur, r...)
		}
		if len(cur) > 0 {
			out = append(out, string(cur))
		}
	}
	return out
}
