// Package parser turns a text-generation provider's free-form
// syllabification reply into a structured word→syllables tree.
// Pure function: raw text in, domain structs out. The provider cannot be
// trusted to follow the output format, so the parser is deliberately
// lenient: it unwraps code fences, skips commentary lines, and accepts
// both supported syllable delimiters.
package parser

import (
	"strings"

	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

// WarnSingleSyllables is reported when more than one word was parsed and
// every word came back as a single syllable: the provider most likely
// ignored the division instruction. The data is still usable.
const WarnSingleSyllables = "every parsed word has exactly one syllable"

// commentMarkers flag lines that are explanation rather than data.
// Providers tend to prepend or append prose in the reply language, so the
// list carries both English and Hebrew keywords.
var commentMarkers = []string{
	"here is", "here are", "the following", "as requested",
	"note:", "explanation", "syllable division", "divided into",
	"להלן", "החלוקה", "חלוקת", "הסבר", "שים לב", "ההברות",
}

// ParseSyllableResponse parses a provider reply, nominally one word per
// line with syllables separated by hyphens. A line may hold several
// space-separated words; asterisk is accepted as a fallback delimiter.
// Returns nil when no valid word entries were produced, plus a list of
// non-fatal warnings.
func ParseSyllableResponse(raw string) (*domain.SyllablesData, []string) {
	raw = stripCodeFence(raw)

	var words []domain.SyllableWord
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isCommentary(line) {
			continue
		}
		for _, token := range strings.Fields(line) {
			w, ok := parseToken(token)
			if ok {
				words = append(words, w)
			}
		}
	}

	if len(words) == 0 {
		return nil, nil
	}

	var warnings []string
	if len(words) > 1 && allSingleSyllable(words) {
		warnings = append(warnings, WarnSingleSyllables)
	}

	return &domain.SyllablesData{Words: words}, warnings
}

// stripCodeFence unwraps the reply when the whole of it is a single fenced
// code block.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return raw
	}
	body, ok := strings.CutSuffix(trimmed, "```")
	if !ok {
		return raw
	}
	// Drop the opening fence line together with any language tag.
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		return body[idx+1:]
	}
	return ""
}

func isCommentary(line string) bool {
	if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
		return true
	}
	lower := strings.ToLower(line)
	for _, marker := range commentMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// parseToken splits one word-token into syllables. Delimiter precedence:
// hyphen, then asterisk, then none (single-syllable word).
func parseToken(token string) (domain.SyllableWord, bool) {
	var parts []string
	switch {
	case strings.Contains(token, "-"):
		parts = strings.Split(token, "-")
	case strings.Contains(token, "*"):
		parts = strings.Split(token, "*")
	default:
		parts = []string{token}
	}

	syllables := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			syllables = append(syllables, p)
		}
	}
	if len(syllables) == 0 {
		return domain.SyllableWord{}, false
	}

	w := domain.NewSyllableWord(syllables)
	if w.Word == "" {
		// Token was punctuation or marks only.
		return domain.SyllableWord{}, false
	}
	return w, true
}

func allSingleSyllable(words []domain.SyllableWord) bool {
	for _, w := range words {
		if len(w.Syllables) != 1 {
			return false
		}
	}
	return true
}
