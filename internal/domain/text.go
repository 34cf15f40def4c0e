package domain

import "strings"

// TextCache holds the three forms of one text: as originally entered,
// niqqud-stripped, and fully vocalized.
//
// Invariants: Clean == RemoveNiqqud(Original); when Full is set,
// RemoveNiqqud(Full) == Clean.
type TextCache struct {
	Original string `json:"original"`
	Clean    string `json:"clean"`
	Full     string `json:"full,omitempty"`
}

// NewTextCache creates a cache for original with the clean form derived
// and no full form yet.
func NewTextCache(original string) TextCache {
	return TextCache{
		Original: original,
		Clean:    RemoveNiqqud(original),
	}
}

// HasFull reports whether the fully vocalized form has been recorded.
func (c TextCache) HasFull() bool { return c.Full != "" }

// Form returns the cached text for the given display mode.
// The second result is false when that form is not available.
func (c TextCache) Form(mode DisplayMode) (string, bool) {
	switch mode {
	case DisplayOriginal:
		return c.Original, true
	case DisplayClean:
		return c.Clean, true
	case DisplayFull:
		return c.Full, c.Full != ""
	}
	return "", false
}

// MatchesAnyForm reports whether text equals one of the cached forms,
// compared after trimming. A match means text is an echo of an internal
// toggle rather than a genuine external edit.
func (c TextCache) MatchesAnyForm(text string) bool {
	t := strings.TrimSpace(text)
	if t == strings.TrimSpace(c.Original) || t == strings.TrimSpace(c.Clean) {
		return true
	}
	return c.Full != "" && t == strings.TrimSpace(c.Full)
}
