package domain

import "strings"

// Unicode ranges for Hebrew script. Niqqud marks (vowel points and
// cantillation) occupy U+0591..U+05C7 inside the Hebrew block
// U+0590..U+05FF.
const (
	niqqudFirst = '\u0591'
	niqqudLast  = '\u05C7'
	hebrewFirst = '\u0590'
	hebrewLast  = '\u05FF'
)

// fullNiqqudThreshold is the fraction of vocalized Hebrew words above which
// a text counts as fully vocalized. Calibrated empirically; real texts
// leave a handful of short particles unpointed.
const fullNiqqudThreshold = 0.8

// IsNiqqudMark reports whether r is a Hebrew niqqud or cantillation mark.
func IsNiqqudMark(r rune) bool {
	return r >= niqqudFirst && r <= niqqudLast
}

// RemoveNiqqud returns text with every niqqud mark removed. Letters,
// punctuation, and non-Hebrew characters are preserved in order.
func RemoveNiqqud(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if IsNiqqudMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DetectNiqqud classifies the vocalization density of text.
//
// The text is split on whitespace; tokens without any Hebrew character are
// ignored. A token counts as vocalized if it contains at least one niqqud
// mark. The result is NiqqudNone when no token is vocalized, NiqqudFull
// when at least 80% are, and NiqqudPartial otherwise. Empty and fully
// non-Hebrew input classify as NiqqudNone.
func DetectNiqqud(text string) NiqqudStatus {
	hebrewWords := 0
	vocalized := 0

	for _, token := range strings.Fields(text) {
		hasHebrew := false
		hasMark := false
		for _, r := range token {
			if r >= hebrewFirst && r <= hebrewLast {
				hasHebrew = true
			}
			if IsNiqqudMark(r) {
				hasMark = true
			}
		}
		if !hasHebrew {
			continue
		}
		hebrewWords++
		if hasMark {
			vocalized++
		}
	}

	if hebrewWords == 0 || vocalized == 0 {
		return NiqqudNone
	}
	if float64(vocalized)/float64(hebrewWords) >= fullNiqqudThreshold {
		return NiqqudFull
	}
	return NiqqudPartial
}

// HasNiqqud reports whether text contains any vocalized Hebrew word.
func HasNiqqud(text string) bool {
	return DetectNiqqud(text) != NiqqudNone
}

// IsFullyNiqqud reports whether text classifies as fully vocalized.
func IsFullyNiqqud(text string) bool {
	return DetectNiqqud(text) == NiqqudFull
}
