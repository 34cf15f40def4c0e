package domain

import "strings"

// SyllableWord is one word of a syllabified text. Word is the canonical
// niqqud-stripped form; Syllables keeps the vocalized pieces in reading
// order.
type SyllableWord struct {
	Word      string   `json:"word"`
	Syllables []string `json:"syllables"`
}

// NewSyllableWord derives the canonical word from its syllables.
func NewSyllableWord(syllables []string) SyllableWord {
	return SyllableWord{
		Word:      RemoveNiqqud(strings.Join(syllables, "")),
		Syllables: syllables,
	}
}

// Stripped returns a copy of the word with niqqud removed from every
// syllable.
func (w SyllableWord) Stripped() SyllableWord {
	out := SyllableWord{Word: w.Word, Syllables: make([]string, len(w.Syllables))}
	for i, s := range w.Syllables {
		out.Syllables[i] = RemoveNiqqud(s)
	}
	return out
}

// SyllablesData is the word→syllables tree for one text.
type SyllablesData struct {
	Words []SyllableWord `json:"words"`
}

// WordCount returns the number of words in the tree.
func (d *SyllablesData) WordCount() int {
	if d == nil {
		return 0
	}
	return len(d.Words)
}
