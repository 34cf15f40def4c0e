package domain

// NavigationPosition is the reader's current focus inside a syllabified
// text. SyllableIndex is meaningful in syllable and letter granularity,
// LetterIndex only in letter granularity; both are zero otherwise.
type NavigationPosition struct {
	Mode          NavMode `json:"mode"`
	WordIndex     int     `json:"word_index"`
	SyllableIndex int     `json:"syllable_index,omitempty"`
	LetterIndex   int     `json:"letter_index,omitempty"`
}
