package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares text for fingerprinting and comparison:
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace (spaces, tabs, newlines) into one space
//
// Niqqud marks and punctuation are preserved. Hebrew script has no case,
// so no case folding is applied.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
