// Package navigation tracks the reader's word/syllable/letter focus and
// moves it through the text with clamping at the document edges.
package navigation

import (
	"strings"

	"github.com/heartmarshall/myhebrew-backend/internal/domain"
)

// Layout resolves visual lines for vertical movement. A fake layout is
// enough for tests; the real one comes from whatever renders the text.
type Layout interface {
	// LineOf returns the line holding the word, or -1 when unknown.
	LineOf(wordIndex int) int
	// WordsOnLine returns the word indexes on a line in visual order.
	WordsOnLine(lineID int) []int
}

// Document is the navigable view of a text: its words and, when a
// syllable tree is available, their syllable division.
type Document struct {
	words []docWord
}

type docWord struct {
	text      string
	syllables []string
}

// NewDocument builds a document from the displayed text and an optional
// syllable tree. The tree is used only when its word count matches the
// text; a whole word then acts as its own single syllable.
func NewDocument(text string, tree *domain.SyllablesData) Document {
	fields := strings.Fields(text)
	doc := Document{words: make([]docWord, len(fields))}
	for i, f := range fields {
		doc.words[i] = docWord{text: f, syllables: []string{f}}
	}
	if tree != nil && len(tree.Words) == len(fields) {
		for i, w := range tree.Words {
			if len(w.Syllables) > 0 {
				doc.words[i].syllables = w.Syllables
			}
		}
	}
	return doc
}

// WordCount returns the number of words in the document.
func (d Document) WordCount() int { return len(d.words) }

func (d Document) syllableCount(word int) int {
	if word < 0 || word >= len(d.words) {
		return 0
	}
	return len(d.words[word].syllables)
}

// letterCount counts the base letters of a syllable, skipping vowel
// marks so a pointed syllable navigates the same as its bare form.
func (d Document) letterCount(word, syllable int) int {
	if word < 0 || word >= len(d.words) {
		return 0
	}
	syls := d.words[word].syllables
	if syllable < 0 || syllable >= len(syls) {
		return 0
	}
	n := 0
	for _, r := range syls[syllable] {
		if !domain.IsNiqqudMark(r) {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

// Reset returns the start-of-document position for a granularity.
func Reset(mode domain.NavMode) domain.NavigationPosition {
	if !mode.IsValid() {
		mode = domain.NavWords
	}
	return domain.NavigationPosition{Mode: mode}
}

// Clamp forces a position into the document's bounds. The zero document
// has no valid position; callers guard WordCount() > 0 themselves.
func Clamp(doc Document, pos domain.NavigationPosition) domain.NavigationPosition {
	if !pos.Mode.IsValid() {
		pos.Mode = domain.NavWords
	}
	pos.WordIndex = clampInt(pos.WordIndex, doc.WordCount()-1)

	switch pos.Mode {
	case domain.NavWords:
		pos.SyllableIndex = 0
		pos.LetterIndex = 0
	case domain.NavSyllables:
		pos.SyllableIndex = clampInt(pos.SyllableIndex, doc.syllableCount(pos.WordIndex)-1)
		pos.LetterIndex = 0
	case domain.NavLetters:
		pos.SyllableIndex = clampInt(pos.SyllableIndex, doc.syllableCount(pos.WordIndex)-1)
		pos.LetterIndex = clampInt(pos.LetterIndex, doc.letterCount(pos.WordIndex, pos.SyllableIndex)-1)
	}
	return pos
}

// Next advances one unit at the position's granularity, rolling into the
// following word when a syllable or letter run ends. The last unit of
// the document absorbs further calls.
func Next(doc Document, pos domain.NavigationPosition) domain.NavigationPosition {
	pos = Clamp(doc, pos)

	switch pos.Mode {
	case domain.NavWords:
		pos.WordIndex = clampInt(pos.WordIndex+1, doc.WordCount()-1)

	case domain.NavSyllables:
		if pos.SyllableIndex+1 < doc.syllableCount(pos.WordIndex) {
			pos.SyllableIndex++
		} else if pos.WordIndex+1 < doc.WordCount() {
			pos.WordIndex++
			pos.SyllableIndex = 0
		}

	case domain.NavLetters:
		if pos.LetterIndex+1 < doc.letterCount(pos.WordIndex, pos.SyllableIndex) {
			pos.LetterIndex++
		} else if pos.SyllableIndex+1 < doc.syllableCount(pos.WordIndex) {
			pos.SyllableIndex++
			pos.LetterIndex = 0
		} else if pos.WordIndex+1 < doc.WordCount() {
			pos.WordIndex++
			pos.SyllableIndex = 0
			pos.LetterIndex = 0
		}
	}
	return pos
}

// Prev is the mirror of Next; the first unit of the document absorbs
// further calls.
func Prev(doc Document, pos domain.NavigationPosition) domain.NavigationPosition {
	pos = Clamp(doc, pos)

	switch pos.Mode {
	case domain.NavWords:
		pos.WordIndex = clampInt(pos.WordIndex-1, doc.WordCount()-1)

	case domain.NavSyllables:
		if pos.SyllableIndex > 0 {
			pos.SyllableIndex--
		} else if pos.WordIndex > 0 {
			pos.WordIndex--
			pos.SyllableIndex = doc.syllableCount(pos.WordIndex) - 1
		}

	case domain.NavLetters:
		if pos.LetterIndex > 0 {
			pos.LetterIndex--
		} else if pos.SyllableIndex > 0 {
			pos.SyllableIndex--
			pos.LetterIndex = doc.letterCount(pos.WordIndex, pos.SyllableIndex) - 1
		} else if pos.WordIndex > 0 {
			pos.WordIndex--
			pos.SyllableIndex = doc.syllableCount(pos.WordIndex) - 1
			pos.LetterIndex = doc.letterCount(pos.WordIndex, pos.SyllableIndex) - 1
		}
	}
	return pos
}

// VerticalStep moves to the nearest word on the adjacent line at the
// same ordinal offset; delta is -1 for up, +1 for down. A no-op at the
// first and last line or when the layout cannot place the word.
func VerticalStep(doc Document, layout Layout, pos domain.NavigationPosition, delta int) domain.NavigationPosition {
	pos = Clamp(doc, pos)
	if layout == nil {
		return pos
	}

	line := layout.LineOf(pos.WordIndex)
	if line < 0 {
		return pos
	}
	ordinal := ordinalOnLine(layout.WordsOnLine(line), pos.WordIndex)
	if ordinal < 0 {
		return pos
	}

	target := layout.WordsOnLine(line + delta)
	if len(target) == 0 {
		return pos
	}
	if ordinal >= len(target) {
		ordinal = len(target) - 1
	}

	pos.WordIndex = target[ordinal]
	pos.SyllableIndex = 0
	pos.LetterIndex = 0
	return Clamp(doc, pos)
}

// SwitchMode changes granularity in place: the word survives, the
// deeper indexes restart at the word's beginning.
func SwitchMode(doc Document, pos domain.NavigationPosition, mode domain.NavMode) domain.NavigationPosition {
	if !mode.IsValid() {
		return Clamp(doc, pos)
	}
	pos.Mode = mode
	pos.SyllableIndex = 0
	pos.LetterIndex = 0
	return Clamp(doc, pos)
}

func ordinalOnLine(words []int, wordIndex int) int {
	for i, w := range words {
		if w == wordIndex {
			return i
		}
	}
	return -1
}

func clampInt(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
