package syllables

import (
	"strings"

	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

// ApplyDisplayMode reprojects a syllable tree (always derived from the
// fully vocalized form) onto the text form currently displayed. Returns
// nil when the tree cannot be safely aligned with the cache; the caller
// must not display a partial result.
//
// Word and syllable counts of a non-nil result always equal the input's;
// the function never truncates or drops data.
func ApplyDisplayMode(tree *domain.SyllablesData, mode domain.DisplayMode, cache *domain.TextCache) *domain.SyllablesData {
	if tree == nil {
		return nil
	}
	if mode == domain.DisplayFull || !mode.IsValid() || cache == nil {
		return tree
	}

	if mode == domain.DisplayClean {
		return stripTree(tree)
	}

	// DisplayOriginal: keep vocalized syllables exactly for the words that
	// carried niqqud in the original entry.
	originalWords := strings.Fields(cache.Original)
	fullText := cache.Full
	if fullText == "" {
		fullText = cache.Original
	}
	fullWords := strings.Fields(fullText)

	if len(originalWords) != len(tree.Words) || len(fullWords) != len(tree.Words) {
		return nil
	}

	out := &domain.SyllablesData{Words: make([]domain.SyllableWord, len(tree.Words))}
	for i, w := range tree.Words {
		if wordHasNiqqud(originalWords[i]) {
			out.Words[i] = w
		} else {
			out.Words[i] = w.Stripped()
		}
	}
	return out
}

func stripTree(tree *domain.SyllablesData) *domain.SyllablesData {
	out := &domain.SyllablesData{Words: make([]domain.SyllableWord, len(tree.Words))}
	for i, w := range tree.Words {
		out.Words[i] = w.Stripped()
	}
	return out
}

func wordHasNiqqud(word string) bool {
	for _, r := range word {
		if domain.IsNiqqudMark(r) {
			return true
		}
	}
	return false
}
